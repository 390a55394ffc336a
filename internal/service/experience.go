package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foliolab/folio/internal/model"
	"github.com/foliolab/folio/internal/repository"
	"github.com/foliolab/folio/internal/validation"
)

type ExperienceParams struct {
	Title       string
	Company     string
	Description string
	IsCurrent   bool
	StartDate   string // YYYY-MM
	EndDate     string // YYYY-MM, empty for current entries
}

type ExperienceService struct {
	experienceRepository repository.ExperienceRepository
	ownerID              string
}

func NewExperienceService(experienceRepository repository.ExperienceRepository, ownerID string) *ExperienceService {
	return &ExperienceService{
		experienceRepository: experienceRepository,
		ownerID:              ownerID,
	}
}

func (s *ExperienceService) validateParams(params *ExperienceParams) (time.Time, *time.Time, error) {
	params.Title = strings.TrimSpace(params.Title)
	params.Company = strings.TrimSpace(params.Company)

	if params.Title == "" {
		return time.Time{}, nil, fmt.Errorf("title is required: %w", ErrValidation)
	}
	if params.Company == "" {
		return time.Time{}, nil, fmt.Errorf("company is required: %w", ErrValidation)
	}

	start, end, err := validation.ValidateDateRange(params.StartDate, params.EndDate, params.IsCurrent)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("%s: %w", err.Error(), ErrValidation)
	}

	return start, end, nil
}

func (s *ExperienceService) Create(params ExperienceParams) (*model.Experience, error) {
	start, end, err := s.validateParams(&params)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	experience := &model.Experience{
		ID:          uuid.New().String(),
		UserID:      s.ownerID,
		Title:       params.Title,
		Company:     params.Company,
		Description: params.Description,
		IsCurrent:   params.IsCurrent,
		StartDate:   start,
		EndDate:     end,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.experienceRepository.Create(experience)
	if err != nil {
		return nil, fmt.Errorf("failed to create experience: %w", err)
	}

	return experience, nil
}

func (s *ExperienceService) All() ([]*model.Experience, error) {
	experiences, err := s.experienceRepository.All(s.ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get experiences: %w", err)
	}
	return experiences, nil
}

func (s *ExperienceService) Update(id string, params ExperienceParams) (*model.Experience, error) {
	start, end, err := s.validateParams(&params)
	if err != nil {
		return nil, err
	}

	experience, err := s.experienceRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrExperienceNotFound) {
			return nil, fmt.Errorf("experience not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get experience: %w", err)
	}

	experience.Title = params.Title
	experience.Company = params.Company
	experience.Description = params.Description
	experience.IsCurrent = params.IsCurrent
	experience.StartDate = start
	experience.EndDate = end

	err = s.experienceRepository.Update(experience)
	if err != nil {
		return nil, fmt.Errorf("failed to update experience: %w", err)
	}

	return experience, nil
}

func (s *ExperienceService) Delete(id string) error {
	err := s.experienceRepository.Delete(id)
	if err != nil {
		if errors.Is(err, repository.ErrExperienceNotFound) {
			return fmt.Errorf("experience not found: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to delete experience: %w", err)
	}
	return nil
}
