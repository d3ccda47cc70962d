package service

import (
	"gitlab.com/radek.prochazka/contact-book/internal/model"
	"gitlab.com/radek.prochazka/contact-book/internal/repository"
	"gitlab.com/radek.prochazka/contact-book/internal/schema"
)

// ContactService fronts the contact repository. Every operation's contract
// is identical to the corresponding repository operation; the layer exists
// as the seam where auditing or rate limiting would hook in without
// touching the data access code.
type ContactService struct {
	repository *repository.ContactRepository
}

// NewContactService creates the service on top of the given repository.
func NewContactService(repository *repository.ContactRepository) *ContactService {
	return &ContactService{repository: repository}
}

// List returns the owner's contacts with pagination.
func (s *ContactService) List(owner int64, skip int, limit int) ([]model.Contact, error) {
	return s.repository.List(owner, skip, limit)
}

// Get returns a single contact of the owner.
func (s *ContactService) Get(id int64, owner int64) (model.Contact, error) {
	return s.repository.Get(id, owner)
}

// Create stores a new contact for the owner.
func (s *ContactService) Create(body schema.ContactCreate, owner int64) (model.Contact, error) {
	return s.repository.Create(body, owner)
}

// Update applies a partial update to a contact of the owner.
func (s *ContactService) Update(id int64, owner int64, body schema.ContactUpdate) (model.Contact, error) {
	return s.repository.Update(id, owner, body)
}

// Remove deletes a contact of the owner and returns its last state.
func (s *ContactService) Remove(id int64, owner int64) (model.Contact, error) {
	return s.repository.Remove(id, owner)
}

// Find searches the owner's contacts by name or email substring.
func (s *ContactService) Find(query string, owner int64, skip int, limit int) ([]model.Contact, error) {
	return s.repository.Find(query, owner, skip, limit)
}

// UpcomingBirthdays returns the owner's contacts with a birthday in the
// next seven days.
func (s *ContactService) UpcomingBirthdays(owner int64, skip int, limit int) ([]model.Contact, error) {
	return s.repository.UpcomingBirthdays(owner, skip, limit)
}
