package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/foliolab/folio/internal/model"
	"github.com/foliolab/folio/internal/repository"
	"github.com/foliolab/folio/internal/richtext"
	"github.com/foliolab/folio/internal/storage"
	"github.com/foliolab/folio/internal/task"
	"github.com/foliolab/folio/internal/validation"
)

func portfolioImagePrefix(id string) string {
	return "portfolio-images/" + id
}

// Cover images live outside the content-image prefix so reconciliation
// never touches them.
func portfolioCoverPrefix(id string) string {
	return "portfolio-covers/" + id
}

type PortfolioItemParams struct {
	Title       string
	Description string
	Content     json.RawMessage
}

type PortfolioService struct {
	portfolioItemRepository repository.PortfolioItemRepository
	skillRepository         repository.SkillRepository
	storage                 storage.Storage
	cleanup                 *CleanupService
	runner                  *task.Runner
	ownerID                 string
}

func NewPortfolioService(
	portfolioItemRepository repository.PortfolioItemRepository,
	skillRepository repository.SkillRepository,
	storage storage.Storage,
	cleanup *CleanupService,
	runner *task.Runner,
	ownerID string,
) *PortfolioService {
	return &PortfolioService{
		portfolioItemRepository: portfolioItemRepository,
		skillRepository:         skillRepository,
		storage:                 storage,
		cleanup:                 cleanup,
		runner:                  runner,
		ownerID:                 ownerID,
	}
}

func (s *PortfolioService) validateParams(params *PortfolioItemParams) error {
	params.Title = strings.TrimSpace(params.Title)
	params.Description = strings.TrimSpace(params.Description)

	if params.Title == "" {
		return fmt.Errorf("title is required: %w", ErrValidation)
	}
	if utf8.RuneCountInString(params.Title) > model.PortfolioItemTitleCharLimit {
		return fmt.Errorf("title exceeds %d characters: %w", model.PortfolioItemTitleCharLimit, ErrValidation)
	}
	if params.Description == "" {
		return fmt.Errorf("description is required: %w", ErrValidation)
	}
	if utf8.RuneCountInString(params.Description) > model.PortfolioItemDescriptionCharLimit {
		return fmt.Errorf("description exceeds %d characters: %w", model.PortfolioItemDescriptionCharLimit, ErrValidation)
	}

	if len(params.Content) > 0 {
		_, err := richtext.Parse(params.Content)
		if err != nil {
			return fmt.Errorf("%s: %w", err.Error(), ErrValidation)
		}
	}

	return nil
}

// checkTitleFree is a friendly pre-check; the unique index on
// (user_id, title) closes the race it cannot.
func (s *PortfolioService) checkTitleFree(title, excludeID string) error {
	exists, err := s.portfolioItemRepository.TitleExists(s.ownerID, title, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check title: %w", err)
	}
	if exists {
		return fmt.Errorf("a portfolio item titled %q already exists: %w", title, ErrConflict)
	}
	return nil
}

func (s *PortfolioService) Create(params PortfolioItemParams) (*model.PortfolioItem, error) {
	err := s.validateParams(&params)
	if err != nil {
		return nil, err
	}

	err = s.checkTitleFree(params.Title, "")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item := &model.PortfolioItem{
		ID:          uuid.New().String(),
		UserID:      s.ownerID,
		Title:       params.Title,
		Description: params.Description,
		Content:     params.Content,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.portfolioItemRepository.Create(item)
	if err != nil {
		return nil, fmt.Errorf("failed to create portfolio item: %w", err)
	}

	return item, nil
}

func (s *PortfolioService) ByID(id string) (*model.PortfolioItem, error) {
	item, err := s.portfolioItemRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrPortfolioItemNotFound) {
			return nil, fmt.Errorf("portfolio item not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get portfolio item: %w", err)
	}
	return item, nil
}

func (s *PortfolioService) ExtendedByID(id string) (*model.ExtendedPortfolioItem, error) {
	item, err := s.portfolioItemRepository.ExtendedByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrPortfolioItemNotFound) {
			return nil, fmt.Errorf("portfolio item not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get portfolio item: %w", err)
	}
	return item, nil
}

func (s *PortfolioService) All() ([]*model.PortfolioItem, error) {
	items, err := s.portfolioItemRepository.All(s.ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio items: %w", err)
	}
	return items, nil
}

func (s *PortfolioService) AllExtended() ([]*model.ExtendedPortfolioItem, error) {
	items, err := s.portfolioItemRepository.AllExtended(s.ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio items: %w", err)
	}
	return items, nil
}

// Update replaces title, description, and content. A content save schedules
// a detached reconciliation pass over the item's content images.
func (s *PortfolioService) Update(id string, params PortfolioItemParams) (*model.PortfolioItem, error) {
	err := s.validateParams(&params)
	if err != nil {
		return nil, err
	}

	item, err := s.portfolioItemRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrPortfolioItemNotFound) {
			return nil, fmt.Errorf("portfolio item not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get portfolio item: %w", err)
	}

	err = s.checkTitleFree(params.Title, id)
	if err != nil {
		return nil, err
	}

	item.Title = params.Title
	item.Description = params.Description
	item.Content = params.Content

	err = s.portfolioItemRepository.Update(item)
	if err != nil {
		return nil, fmt.Errorf("failed to update portfolio item: %w", err)
	}

	if len(params.Content) > 0 {
		content := params.Content
		s.runner.Go("portfolio image reconciliation", func() error {
			return s.cleanup.ReconcileImages(portfolioImagePrefix(id), content)
		})
	}

	return item, nil
}

// Delete removes the item and purges its image prefixes in the background.
func (s *PortfolioService) Delete(id string) error {
	err := s.portfolioItemRepository.Delete(id)
	if err != nil {
		if errors.Is(err, repository.ErrPortfolioItemNotFound) {
			return fmt.Errorf("portfolio item not found: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to delete portfolio item: %w", err)
	}

	s.runner.Go("portfolio image purge", func() error {
		err := s.cleanup.PurgePrefix(portfolioImagePrefix(id))
		if err != nil {
			return err
		}
		return s.cleanup.PurgePrefix(portfolioCoverPrefix(id))
	})

	return nil
}

func (s *PortfolioService) Reorder(orderedIDs []string) error {
	err := s.portfolioItemRepository.Reorder(s.ownerID, orderedIDs)
	if err != nil {
		if errors.Is(err, repository.ErrOrderedSetMismatch) {
			return fmt.Errorf("submitted ids do not match the collection: %w", ErrValidation)
		}
		return fmt.Errorf("failed to reorder portfolio items: %w", err)
	}
	return nil
}

// UploadImage stores a content image for the item and returns its URL.
func (s *PortfolioService) UploadImage(id string, file multipart.File, header *multipart.FileHeader) (string, error) {
	err := validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		return "", fmt.Errorf("%s: %w", err.Error(), ErrValidation)
	}

	_, err = s.portfolioItemRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrPortfolioItemNotFound) {
			return "", fmt.Errorf("portfolio item not found: %w", ErrNotFound)
		}
		return "", fmt.Errorf("failed to get portfolio item: %w", err)
	}

	key := timestampedKey(portfolioImagePrefix(id), header.Filename)
	err = s.storage.Save(key, file, header.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	return s.storage.URL(key), nil
}

// Cleanup reconciles stored images against the last saved content.
func (s *PortfolioService) Cleanup(id string) error {
	item, err := s.portfolioItemRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrPortfolioItemNotFound) {
			return fmt.Errorf("portfolio item not found: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to get portfolio item: %w", err)
	}

	if len(item.Content) == 0 {
		return s.cleanup.PurgePrefix(portfolioImagePrefix(id))
	}

	return s.cleanup.ReconcileImages(portfolioImagePrefix(id), item.Content)
}

// UpsertCoverImage fills the item's cover slot, replacing whatever was there.
func (s *PortfolioService) UpsertCoverImage(id string, file multipart.File, header *multipart.FileHeader) (string, error) {
	err := validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		return "", fmt.Errorf("%s: %w", err.Error(), ErrValidation)
	}

	item, err := s.portfolioItemRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrPortfolioItemNotFound) {
			return "", fmt.Errorf("portfolio item not found: %w", ErrNotFound)
		}
		return "", fmt.Errorf("failed to get portfolio item: %w", err)
	}

	oldURL := ""
	if item.CoverImageURL != nil {
		oldURL = *item.CoverImageURL
	}

	key := timestampedKey(portfolioCoverPrefix(id), header.Filename)
	return replaceSlot(s.storage, key, file, header.Header.Get("Content-Type"), oldURL, func(url string) error {
		return s.portfolioItemRepository.UpdateCoverImageURL(id, &url)
	})
}

// DeleteCoverImage empties the cover slot and removes the stored image.
func (s *PortfolioService) DeleteCoverImage(id string) error {
	item, err := s.portfolioItemRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrPortfolioItemNotFound) {
			return fmt.Errorf("portfolio item not found: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to get portfolio item: %w", err)
	}

	if item.CoverImageURL == nil || *item.CoverImageURL == "" {
		// Empty slot, nothing to do.
		return nil
	}
	oldURL := *item.CoverImageURL

	err = s.portfolioItemRepository.UpdateCoverImageURL(id, nil)
	if err != nil {
		return fmt.Errorf("failed to clear cover image: %w", err)
	}

	deleteByURL(s.storage, oldURL)
	return nil
}

// AttachSkill links a skill to the item. Linking twice is a no-op.
func (s *PortfolioService) AttachSkill(itemID, skillID string) error {
	_, err := s.portfolioItemRepository.ByID(itemID)
	if err != nil {
		if errors.Is(err, repository.ErrPortfolioItemNotFound) {
			return fmt.Errorf("portfolio item not found: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to get portfolio item: %w", err)
	}

	_, err = s.skillRepository.ByID(skillID)
	if err != nil {
		if errors.Is(err, repository.ErrSkillNotFound) {
			return fmt.Errorf("skill not found: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to get skill: %w", err)
	}

	err = s.portfolioItemRepository.AttachSkill(itemID, skillID)
	if err != nil {
		return fmt.Errorf("failed to attach skill: %w", err)
	}
	return nil
}

func (s *PortfolioService) DetachSkill(itemID, skillID string) error {
	err := s.portfolioItemRepository.DetachSkill(itemID, skillID)
	if err != nil {
		return fmt.Errorf("failed to detach skill: %w", err)
	}
	return nil
}
