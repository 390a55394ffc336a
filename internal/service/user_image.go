package service

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/foliolab/folio/internal/model"
	"github.com/foliolab/folio/internal/repository"
	"github.com/foliolab/folio/internal/storage"
	"github.com/foliolab/folio/internal/validation"
)

type UserImageService struct {
	userImageRepository repository.UserImageRepository
	storage             storage.Storage
	ownerID             string
}

func NewUserImageService(
	userImageRepository repository.UserImageRepository,
	storage storage.Storage,
	ownerID string,
) *UserImageService {
	return &UserImageService{
		userImageRepository: userImageRepository,
		storage:             storage,
		ownerID:             ownerID,
	}
}

// Upsert fills the image slot for a place, replacing whatever was there.
func (s *UserImageService) Upsert(place string, file multipart.File, header *multipart.FileHeader) (*model.UserImage, error) {
	if !model.IsValidUserImagePlace(place) {
		return nil, fmt.Errorf("unknown image place %q: %w", place, ErrValidation)
	}

	err := validation.ValidateFile(header, validation.ImageConstraints)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), ErrValidation)
	}

	oldURL := ""
	existing, err := s.userImageRepository.ByUserAndPlace(s.ownerID, place)
	if err != nil && !errors.Is(err, repository.ErrUserImageNotFound) {
		return nil, fmt.Errorf("failed to get user image: %w", err)
	}
	if existing != nil {
		oldURL = existing.URL
	}

	key := timestampedKey("user-images/"+place, header.Filename)
	_, err = replaceSlot(s.storage, key, file, header.Header.Get("Content-Type"), oldURL, func(url string) error {
		return s.userImageRepository.Upsert(s.ownerID, place, url)
	})
	if err != nil {
		return nil, err
	}

	return s.userImageRepository.ByUserAndPlace(s.ownerID, place)
}

// Delete empties the image slot for a place.
func (s *UserImageService) Delete(place string) error {
	if !model.IsValidUserImagePlace(place) {
		return fmt.Errorf("unknown image place %q: %w", place, ErrValidation)
	}

	existing, err := s.userImageRepository.ByUserAndPlace(s.ownerID, place)
	if err != nil {
		if errors.Is(err, repository.ErrUserImageNotFound) {
			// Empty slot, nothing to do.
			return nil
		}
		return fmt.Errorf("failed to get user image: %w", err)
	}

	err = s.userImageRepository.Delete(s.ownerID, place)
	if err != nil {
		return fmt.Errorf("failed to delete user image: %w", err)
	}

	deleteByURL(s.storage, existing.URL)
	return nil
}
