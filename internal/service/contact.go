package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/foliolab/folio/internal/model"
	"github.com/foliolab/folio/internal/repository"
)

type ContactParams struct {
	Label string
	Name  string
	Value string
}

type ContactService struct {
	contactRepository repository.ContactRepository
	ownerID           string
	maxContacts       int
}

func NewContactService(contactRepository repository.ContactRepository, ownerID string, maxContacts int) *ContactService {
	return &ContactService{
		contactRepository: contactRepository,
		ownerID:           ownerID,
		maxContacts:       maxContacts,
	}
}

// resolveName forces the display name to the label itself for well-known
// labels; only custom contacts carry a free-form name.
func resolveName(label, name string) (string, error) {
	if label != model.ContactLabelCustom {
		return label, nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("name is required for custom contacts: %w", ErrValidation)
	}
	return name, nil
}

func (s *ContactService) Create(params ContactParams) (*model.Contact, error) {
	if !model.IsValidContactLabel(params.Label) {
		return nil, fmt.Errorf("unknown contact label %q: %w", params.Label, ErrValidation)
	}

	value := strings.TrimSpace(params.Value)
	if value == "" {
		return nil, fmt.Errorf("value is required: %w", ErrValidation)
	}

	name, err := resolveName(params.Label, params.Name)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	contact := &model.Contact{
		ID:        uuid.New().String(),
		UserID:    s.ownerID,
		Label:     params.Label,
		Name:      name,
		Value:     value,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.contactRepository.Create(contact, s.maxContacts)
	if err != nil {
		if errors.Is(err, repository.ErrContactLimitReached) {
			return nil, fmt.Errorf("contact limit of %d reached: %w", s.maxContacts, ErrConflict)
		}
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	return contact, nil
}

func (s *ContactService) All() ([]*model.Contact, error) {
	contacts, err := s.contactRepository.All(s.ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get contacts: %w", err)
	}
	return contacts, nil
}

func (s *ContactService) Update(id string, params ContactParams) (*model.Contact, error) {
	if !model.IsValidContactLabel(params.Label) {
		return nil, fmt.Errorf("unknown contact label %q: %w", params.Label, ErrValidation)
	}

	value := strings.TrimSpace(params.Value)
	if value == "" {
		return nil, fmt.Errorf("value is required: %w", ErrValidation)
	}

	name, err := resolveName(params.Label, params.Name)
	if err != nil {
		return nil, err
	}

	contact, err := s.contactRepository.ByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, fmt.Errorf("contact not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get contact: %w", err)
	}

	contact.Label = params.Label
	contact.Name = name
	contact.Value = value

	err = s.contactRepository.Update(contact)
	if err != nil {
		return nil, fmt.Errorf("failed to update contact: %w", err)
	}

	return contact, nil
}

func (s *ContactService) Delete(id string) error {
	err := s.contactRepository.Delete(id)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return fmt.Errorf("contact not found: %w", ErrNotFound)
		}
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}

func (s *ContactService) Reorder(orderedIDs []string) error {
	err := s.contactRepository.Reorder(s.ownerID, orderedIDs)
	if err != nil {
		if errors.Is(err, repository.ErrOrderedSetMismatch) {
			return fmt.Errorf("submitted ids do not match the collection: %w", ErrValidation)
		}
		return fmt.Errorf("failed to reorder contacts: %w", err)
	}
	return nil
}
