package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foliolab/folio/internal/model"
	"github.com/foliolab/folio/internal/repository"
	"github.com/foliolab/folio/internal/richtext"
	"github.com/foliolab/folio/internal/storage"
	"github.com/foliolab/folio/internal/task"
	"github.com/foliolab/folio/internal/validation"
)

func skillImagePrefix(id string) string {
	return "skill-images/" + id
}

type SkillService struct {
	skillRepository repository.SkillRepository
	storage         storage.Storage
	cleanup         *CleanupService
	runner          *task.Runner
	ownerID         string
}

func NewSkillService(
	skillRepository repository.SkillRepository,
	storage storage.Storage,
	cleanup *CleanupService,
	runner *task.Runner,
	ownerID string,
) *SkillService {
	return &SkillService{
		skillRepository: skillRepository,
		storage:         storage,
		cleanup:         cleanup,
		runner:          runner,
		ownerID:         ownerID,
	}
}

// Create adds a skill at the head of the collection. Content starts empty
// and is filled in by a later update.
func (s *SkillService) Create(name string) (*model.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}

	now := time.Now()
	skill := &model.Skill{
		ID:        uuid.New().String(),
		UserID:    s.ownerID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.skillRepository.Create(skill)
	if err != nil {
		return nil, fmt.Errorf("failed to create skill: %w", err)
	}

	return skill, nil
}

func (s *SkillService) All() ([]*model.Skill, error) {
	skills, err := s.skillRepository.All(s.ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get skills: %w", err)
	}
	return skills, nil
}

func (s *SkillService) ExtendedByID(id string) (*model.ExtendedSkill, error) {
	skill, err := s.skillRepository.ExtendedByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return nil, fmt.Errorf("skill not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}
	return skill, nil
}

// Update replaces name and content. A content save schedules a detached
// reconciliation pass that removes images no longer referenced by it.
func (s *SkillService) Update(id, name string, content json.RawMessage) (*model.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}

	if len(content) > 0 {
		_, err := richtext.Parse(content)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", err.Error(), ErrValidation)
		}
	}

	skill, err := s.skillRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return nil, fmt.Errorf("skill not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get skill: %w", err)
	}

	skill.Name = name
	skill.Content = content

	err = s.skillRepository.Update(skill)
	if err != nil {
		return nil, fmt.Errorf("failed to update skill: %w", err)
	}

	if len(content) > 0 {
		s.runner.Go("skill image reconciliation", func() error {
			return s.cleanup.ReconcileImages(skillImagePrefix(id), content)
		})
	}

	return skill, nil
}

// Delete removes the skill and purges its image prefix in the background.
func (s *SkillService) Delete(id string) error {
	err := s.skillRepository.Delete(id)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return fmt.Errorf("skill not found: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to delete skill: %w", err)
	}

	s.runner.Go("skill image purge", func() error {
		return s.cleanup.PurgePrefix(skillImagePrefix(id))
	})

	return nil
}

func (s *SkillService) Reorder(orderedIDs []string) error {
	err := s.skillRepository.Reorder(s.ownerID, orderedIDs)
	if err != nil {
		if errors.Is(err, repository.ErrOrderedSetMismatch) {
			return fmt.Errorf("submitted ids do not match the collection: %w", ErrValidation)
		}
		return fmt.Errorf("failed to reorder skills: %w", err)
	}
	return nil
}

// UploadImage stores a content image for the skill and returns its URL.
// The editor embeds the URL; unreferenced uploads are swept by cleanup.
func (s *SkillService) UploadImage(id string, file multipart.File, header *multipart.FileHeader) (string, error) {
	err := validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		return "", fmt.Errorf("%s: %w", err.Error(), ErrValidation)
	}

	_, err = s.skillRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return "", fmt.Errorf("skill not found: %w", ErrNotFound)
		}
		return "", fmt.Errorf("failed to get skill: %w", err)
	}

	key := timestampedKey(skillImagePrefix(id), header.Filename)
	err = s.storage.Save(key, file, header.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	return s.storage.URL(key), nil
}

// Cleanup reconciles stored images against the last saved content. Called
// when an edit is cancelled, so uploads from the abandoned session go away.
func (s *SkillService) Cleanup(id string) error {
	skill, err := s.skillRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return fmt.Errorf("skill not found: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to get skill: %w", err)
	}

	if len(skill.Content) == 0 {
		// Nothing was ever saved, so every stored image is an orphan.
		return s.cleanup.PurgePrefix(skillImagePrefix(id))
	}

	return s.cleanup.ReconcileImages(skillImagePrefix(id), skill.Content)
}
