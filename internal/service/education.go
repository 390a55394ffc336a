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

type EducationParams struct {
	School       string
	Degree       string
	FieldOfStudy string
	Description  string
	IsCurrent    bool
	StartDate    string // YYYY-MM
	EndDate      string // YYYY-MM, empty for current entries
}

type EducationService struct {
	educationRepository repository.EducationRepository
	ownerID             string
}

func NewEducationService(educationRepository repository.EducationRepository, ownerID string) *EducationService {
	return &EducationService{
		educationRepository: educationRepository,
		ownerID:             ownerID,
	}
}

func (s *EducationService) validateParams(params *EducationParams) (time.Time, *time.Time, error) {
	params.School = strings.TrimSpace(params.School)
	params.Degree = strings.TrimSpace(params.Degree)

	if params.School == "" {
		return time.Time{}, nil, fmt.Errorf("school is required: %w", ErrValidation)
	}
	if params.Degree == "" {
		return time.Time{}, nil, fmt.Errorf("degree is required: %w", ErrValidation)
	}

	start, end, err := validation.ValidateDateRange(params.StartDate, params.EndDate, params.IsCurrent)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("%s: %w", err.Error(), ErrValidation)
	}

	return start, end, nil
}

func (s *EducationService) Create(params EducationParams) (*model.Education, error) {
	start, end, err := s.validateParams(&params)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	education := &model.Education{
		ID:           uuid.New().String(),
		UserID:       s.ownerID,
		School:       params.School,
		Degree:       params.Degree,
		FieldOfStudy: params.FieldOfStudy,
		Description:  params.Description,
		IsCurrent:    params.IsCurrent,
		StartDate:    start,
		EndDate:      end,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.educationRepository.Create(education)
	if err != nil {
		return nil, fmt.Errorf("failed to create education: %w", err)
	}

	return education, nil
}

func (s *EducationService) All() ([]*model.Education, error) {
	educations, err := s.educationRepository.All(s.ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get educations: %w", err)
	}
	return educations, nil
}

func (s *EducationService) Update(id string, params EducationParams) (*model.Education, error) {
	start, end, err := s.validateParams(&params)
	if err != nil {
		return nil, err
	}

	education, err := s.educationRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrEducationNotFound) {
			return nil, fmt.Errorf("education not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get education: %w", err)
	}

	education.School = params.School
	education.Degree = params.Degree
	education.FieldOfStudy = params.FieldOfStudy
	education.Description = params.Description
	education.IsCurrent = params.IsCurrent
	education.StartDate = start
	education.EndDate = end

	err = s.educationRepository.Update(education)
	if err != nil {
		return nil, fmt.Errorf("failed to update education: %w", err)
	}

	return education, nil
}

func (s *EducationService) Delete(id string) error {
	err := s.educationRepository.Delete(id)
	if err != nil {
		if errors.Is(err, repository.ErrEducationNotFound) {
			return fmt.Errorf("education not found: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to delete education: %w", err)
	}
	return nil
}
