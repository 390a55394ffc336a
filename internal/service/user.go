package service

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/foliolab/folio/internal/model"
	"github.com/foliolab/folio/internal/repository"
	"github.com/foliolab/folio/internal/storage"
	"github.com/foliolab/folio/internal/validation"
)

const cvPrefix = "cv"

type UpdateUserParams struct {
	UserName string
	Password string // optional, blank keeps the current password
	Name     string
	Title    string
	AboutMe  string
}

type UserService struct {
	userRepository          repository.UserRepository
	userImageRepository     repository.UserImageRepository
	contactRepository       repository.ContactRepository
	skillRepository         repository.SkillRepository
	experienceRepository    repository.ExperienceRepository
	educationRepository     repository.EducationRepository
	portfolioItemRepository repository.PortfolioItemRepository
	storage                 storage.Storage
	auth                    *AuthService
	ownerID                 string
}

func NewUserService(
	userRepository repository.UserRepository,
	userImageRepository repository.UserImageRepository,
	contactRepository repository.ContactRepository,
	skillRepository repository.SkillRepository,
	experienceRepository repository.ExperienceRepository,
	educationRepository repository.EducationRepository,
	portfolioItemRepository repository.PortfolioItemRepository,
	storage storage.Storage,
	auth *AuthService,
	ownerID string,
) *UserService {
	return &UserService{
		userRepository:          userRepository,
		userImageRepository:     userImageRepository,
		contactRepository:       contactRepository,
		skillRepository:         skillRepository,
		experienceRepository:    experienceRepository,
		educationRepository:     educationRepository,
		portfolioItemRepository: portfolioItemRepository,
		storage:                 storage,
		auth:                    auth,
		ownerID:                 ownerID,
	}
}

// Extended assembles the full visitor-facing profile: the owner row plus
// every collection, ordered ones sorted by their position.
func (s *UserService) Extended() (*model.ExtendedUser, error) {
	user, err := s.userRepository.ByID(s.ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("owner profile missing: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	images, err := s.userImageRepository.AllByUser(s.ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user images: %w", err)
	}

	contacts, err := s.contactRepository.All(s.ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contacts: %w", err)
	}

	skills, err := s.skillRepository.All(s.ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get skills: %w", err)
	}

	experiences, err := s.experienceRepository.All(s.ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get experiences: %w", err)
	}

	educations, err := s.educationRepository.All(s.ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get educations: %w", err)
	}

	items, err := s.portfolioItemRepository.All(s.ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get portfolio items: %w", err)
	}

	return &model.ExtendedUser{
		User:           *user,
		UserImages:     images,
		Contacts:       contacts,
		Skills:         skills,
		Experiences:    experiences,
		Educations:     educations,
		PortfolioItems: items,
	}, nil
}

func (s *UserService) Update(params UpdateUserParams) (*model.User, error) {
	userName := strings.TrimSpace(params.UserName)
	name := strings.TrimSpace(params.Name)
	if userName == "" {
		return nil, fmt.Errorf("user name is required: %w", ErrValidation)
	}
	if name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}

	user, err := s.userRepository.ByID(s.ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("owner profile missing: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.UserName = userName
	user.Name = name
	user.Title = strings.TrimSpace(params.Title)
	user.AboutMe = params.AboutMe

	if params.Password != "" {
		hash, err := s.auth.HashPassword(params.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	err = s.userRepository.Update(user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// UploadCV replaces the owner's CV slot with the uploaded document.
func (s *UserService) UploadCV(file multipart.File, header *multipart.FileHeader) (string, error) {
	err := validation.ValidateFile(header, validation.DocumentConstraints)
	if err != nil {
		return "", fmt.Errorf("%s: %w", err.Error(), ErrValidation)
	}

	user, err := s.userRepository.ByID(s.ownerID)
	if err != nil {
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	oldURL := ""
	if user.CVURL != nil {
		oldURL = *user.CVURL
	}

	key := timestampedKey(cvPrefix, header.Filename)
	return replaceSlot(s.storage, key, file, header.Header.Get("Content-Type"), oldURL, func(url string) error {
		return s.userRepository.UpdateCVURL(s.ownerID, &url)
	})
}

// DeleteCV clears the CV slot and best-effort removes the stored document.
func (s *UserService) DeleteCV() error {
	user, err := s.userRepository.ByID(s.ownerID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if user.CVURL == nil || *user.CVURL == "" {
		// Empty slot, nothing to do.
		return nil
	}
	oldURL := *user.CVURL

	err = s.userRepository.UpdateCVURL(s.ownerID, nil)
	if err != nil {
		return fmt.Errorf("failed to clear cv: %w", err)
	}

	deleteByURL(s.storage, oldURL)
	return nil
}
