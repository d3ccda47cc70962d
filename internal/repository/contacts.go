package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"gitlab.com/radek.prochazka/contact-book/internal/model"
	"gitlab.com/radek.prochazka/contact-book/internal/schema"
)

// likeEscaper makes the LIKE metacharacters match literally, so that a
// user-supplied search query can never act as a wildcard pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContactRepository provides all persistence operations for contacts. Every
// operation takes the owning user's id and folds the ownership check into
// the WHERE clause itself, so a contact of another user is indistinguishable
// from a missing one.
type ContactRepository struct {
	db                    *sqlx.DB
	insert                *sqlx.NamedStmt
	selectWhereIdAndOwner *sqlx.Stmt
	deleteWhereIdAndOwner *sqlx.Stmt

	// now is replaced in tests to pin the birthday window.
	now func() time.Time
}

// NewContactRepository initializes the repository on the specified database
// wrapper. Prepared statements offer a significant speed increase if
// executed many times.
func NewContactRepository(db *sqlx.DB) (*ContactRepository, error) {
	insert, err := db.PrepareNamed(`
		INSERT INTO contacts (firstname, lastname, email, phone, birthday, info, user_id)
		VALUES (:firstname, :lastname, :email, :phone, :birthday, :info, :user_id)
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare contact insert: %w", err)
	}
	selectWhereIdAndOwner, err := db.Preparex(`
		SELECT * FROM contacts WHERE id = ? AND user_id = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare contact select: %w", err)
	}
	deleteWhereIdAndOwner, err := db.Preparex(`
		DELETE FROM contacts WHERE id = ? AND user_id = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare contact delete: %w", err)
	}
	return &ContactRepository{
		db:                    db,
		insert:                insert,
		selectWhereIdAndOwner: selectWhereIdAndOwner,
		deleteWhereIdAndOwner: deleteWhereIdAndOwner,
		now:                   time.Now,
	}, nil
}

// SetClock replaces the time source used by the birthday window. Tests pin
// it to a fixed date.
func (r *ContactRepository) SetClock(now func() time.Time) {
	r.now = now
}

// List returns the owner's contacts ordered by id, skipping the first skip
// rows and returning at most limit rows.
func (r *ContactRepository) List(owner int64, skip int, limit int) ([]model.Contact, error) {
	contacts := []model.Contact{}
	err := r.db.Select(&contacts, `
		SELECT * FROM contacts WHERE user_id = ? ORDER BY id LIMIT ? OFFSET ?
	`, owner, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return contacts, nil
}

// Get returns the contact with the given id if it belongs to the owner and
// model.ErrNotFound otherwise.
func (r *ContactRepository) Get(id int64, owner int64) (model.Contact, error) {
	var contact model.Contact
	err := r.selectWhereIdAndOwner.Get(&contact, id, owner)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Contact{}, model.ErrNotFound
	}
	if err != nil {
		return model.Contact{}, fmt.Errorf("get contact: %w", err)
	}
	return contact, nil
}

// Create stores a new contact for the owner and returns the row as the
// database persisted it, including the newly assigned id and any defaults
// the engine applied.
func (r *ContactRepository) Create(body schema.ContactCreate, owner int64) (model.Contact, error) {
	contact := model.Contact{
		FirstName: body.FirstName,
		LastName:  body.LastName,
		Email:     body.Email,
		Phone:     body.Phone,
		Birthday:  body.Birthday,
		Info:      body.Info,
		UserId:    owner,
	}
	result, err := r.insert.Exec(&contact)
	if err != nil {
		return model.Contact{}, fmt.Errorf("insert contact: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.Contact{}, fmt.Errorf("read inserted contact id: %w", err)
	}
	return r.Get(id, owner)
}

// Update overwrites exactly the fields present in the request body and
// returns the stored contact after the change. A key sent with a null value
// clears the column (only info allows that); an omitted key leaves the
// column untouched. Returns model.ErrNotFound if the contact does not exist
// or belongs to somebody else.
func (r *ContactRepository) Update(id int64, owner int64, body schema.ContactUpdate) (model.Contact, error) {
	if _, err := r.Get(id, owner); err != nil {
		return model.Contact{}, err
	}

	var args []interface{}
	statement := "UPDATE contacts SET "
	if body.Provided("first_name") {
		args = append(args, body.FirstName)
		statement += "firstname=?, "
	}
	if body.Provided("last_name") {
		args = append(args, body.LastName)
		statement += "lastname=?, "
	}
	if body.Provided("email") {
		args = append(args, body.Email)
		statement += "email=?, "
	}
	if body.Provided("phone") {
		args = append(args, body.Phone)
		statement += "phone=?, "
	}
	if body.Provided("birthday") {
		args = append(args, body.Birthday)
		statement += "birthday=?, "
	}
	if body.Provided("info") {
		args = append(args, body.Info)
		statement += "info=?, "
	}

	// An empty body is a no-op; the stored record is returned unchanged.
	if len(args) == 0 {
		return r.Get(id, owner)
	}

	statement = statement[:len(statement)-2]
	statement += " WHERE id=? AND user_id=?"
	args = append(args, id, owner)
	if _, err := r.db.Exec(statement, args...); err != nil {
		return model.Contact{}, fmt.Errorf("update contact: %w", err)
	}
	return r.Get(id, owner)
}

// Remove deletes the contact and returns its pre-deletion snapshot, so the
// caller can report what was deleted without a second read. Returns
// model.ErrNotFound if the contact does not exist or belongs to somebody
// else; a repeated Remove for the same id therefore also reports not found.
func (r *ContactRepository) Remove(id int64, owner int64) (model.Contact, error) {
	contact, err := r.Get(id, owner)
	if err != nil {
		return model.Contact{}, err
	}
	if _, err := r.deleteWhereIdAndOwner.Exec(id, owner); err != nil {
		return model.Contact{}, fmt.Errorf("delete contact: %w", err)
	}
	return contact, nil
}

// Find returns the owner's contacts where the query appears as a
// case-insensitive substring of the first name, last name, or email. The
// query is matched literally; LIKE metacharacters are escaped first. An
// empty query matches every contact of the owner.
func (r *ContactRepository) Find(query string, owner int64, skip int, limit int) ([]model.Contact, error) {
	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	contacts := []model.Contact{}
	err := r.db.Select(&contacts, `
		SELECT * FROM contacts
		WHERE user_id = ?
			AND (LOWER(firstname) LIKE ? OR LOWER(lastname) LIKE ? OR LOWER(email) LIKE ?)
		ORDER BY id LIMIT ? OFFSET ?
	`, owner, pattern, pattern, pattern, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("find contacts: %w", err)
	}
	return contacts, nil
}

// UpcomingBirthdays returns the owner's contacts whose birthday, moved to
// the current year, falls within the next seven days, inclusive on both
// ends (UTC dates). February 29 resolves to March 1 in non-leap years.
//
// Pagination applies to the full contact list before the window filter, so
// a matching birthday beyond the requested page is not returned; callers
// have to page through the whole list to see every match.
func (r *ContactRepository) UpcomingBirthdays(owner int64, skip int, limit int) ([]model.Contact, error) {
	contacts, err := r.List(owner, skip, limit)
	if err != nil {
		return nil, err
	}
	now := r.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	nextweek := today.AddDate(0, 0, 7)
	upcoming := []model.Contact{}
	for _, contact := range contacts {
		birthday := time.Date(today.Year(), contact.Birthday.Month(), contact.Birthday.Day(), 0, 0, 0, 0, time.UTC)
		if !birthday.Before(today) && !birthday.After(nextweek) {
			upcoming = append(upcoming, contact)
		}
	}
	return upcoming, nil
}
