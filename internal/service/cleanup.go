package service

import (
	"fmt"
	"log/slog"

	"github.com/foliolab/folio/internal/richtext"
	"github.com/foliolab/folio/internal/storage"
)

// CleanupService removes stored images no longer referenced by a rich-text
// document. It runs after content saves and on explicit cleanup requests, so
// it must be safe to run twice over the same state.
type CleanupService struct {
	storage storage.Storage
}

func NewCleanupService(storage storage.Storage) *CleanupService {
	return &CleanupService{storage: storage}
}

// ReconcileImages deletes every object under prefix whose public URL does
// not appear as an image reference in content. The document must parse and
// have a proper root; a broken tree is never grounds for deleting blobs.
func (s *CleanupService) ReconcileImages(prefix string, content []byte) error {
	if prefix == "" {
		return fmt.Errorf("cleanup prefix is required: %w", ErrValidation)
	}

	root, err := richtext.Parse(content)
	if err != nil {
		return fmt.Errorf("%s: %w", err.Error(), ErrValidation)
	}

	referenced := richtext.ImageURLs(root)

	paths, err := s.storage.List(prefix)
	if err != nil {
		return fmt.Errorf("failed to list stored images: %w", err)
	}

	for _, path := range paths {
		_, ok := referenced[s.storage.URL(path)]
		if ok {
			continue
		}

		err := s.storage.Delete(path)
		if err != nil {
			// Leave the orphan for the next pass.
			slog.Warn("failed to delete orphaned image", "path", path, "error", err)
			continue
		}
		slog.Debug("deleted orphaned image", "path", path)
	}

	return nil
}

// PurgePrefix deletes everything under prefix, for when the owning entity
// itself is removed.
func (s *CleanupService) PurgePrefix(prefix string) error {
	if prefix == "" {
		return fmt.Errorf("cleanup prefix is required: %w", ErrValidation)
	}

	paths, err := s.storage.List(prefix)
	if err != nil {
		return fmt.Errorf("failed to list stored images: %w", err)
	}

	for _, path := range paths {
		err := s.storage.Delete(path)
		if err != nil {
			slog.Warn("failed to delete image", "path", path, "error", err)
		}
	}

	return nil
}
