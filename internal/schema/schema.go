package schema

import (
	"encoding/json"
	"fmt"
	"time"

	"gitlab.com/radek.prochazka/contact-book/internal/model"
)

// ContactCreate is the request body for creating a contact. All fields are
// required except info.
type ContactCreate struct {
	FirstName string     `json:"first_name" binding:"required,max=50"`
	LastName  string     `json:"last_name"  binding:"required,max=50"`
	Email     string     `json:"email"      binding:"required,email,max=100"`
	Phone     string     `json:"phone"      binding:"required,max=20"`
	Birthday  model.Date `json:"birthday"   binding:"required"`
	Info      *string    `json:"info"       binding:"omitempty,max=200"`
}

// ContactUpdate is the request body for partially updating a contact. Only
// fields present in the JSON body are applied; omitted fields keep their
// stored values. Presence is tracked separately from the values because a
// nil pointer alone cannot tell "omitted" apart from "explicitly null".
type ContactUpdate struct {
	FirstName *string     `json:"first_name" binding:"omitempty,max=50"`
	LastName  *string     `json:"last_name"  binding:"omitempty,max=50"`
	Email     *string     `json:"email"      binding:"omitempty,email,max=100"`
	Phone     *string     `json:"phone"      binding:"omitempty,max=20"`
	Birthday  *model.Date `json:"birthday"`
	Info      *string     `json:"info"       binding:"omitempty,max=200"`

	provided map[string]bool
}

// UnmarshalJSON decodes the body twice: once into the field values and once
// into a raw key set, so that Provided can report which keys the caller
// actually sent.
func (u *ContactUpdate) UnmarshalJSON(data []byte) error {
	type plain ContactUpdate
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return err
	}
	*u = ContactUpdate(p)
	u.provided = make(map[string]bool, len(keys))
	for key := range keys {
		u.provided[key] = true
	}
	return nil
}

// Provided reports whether the JSON body contained the given key, even if
// its value was null.
func (u *ContactUpdate) Provided(key string) bool {
	return u.provided[key]
}

// Validate rejects the one combination the binding tags cannot express: a
// key present in the body with a null value when the underlying column is
// NOT NULL. A null info is fine and clears the note.
func (u *ContactUpdate) Validate() error {
	notNullable := []struct {
		key string
		set bool
	}{
		{"first_name", u.FirstName != nil},
		{"last_name", u.LastName != nil},
		{"email", u.Email != nil},
		{"phone", u.Phone != nil},
		{"birthday", u.Birthday != nil},
	}
	for _, field := range notNullable {
		if u.provided[field.key] && !field.set {
			return fmt.Errorf("field %s must not be null", field.key)
		}
	}
	return nil
}

// ContactRead is the response shape for all contact endpoints. It mirrors
// the stored record minus the info note.
type ContactRead struct {
	Id        int64      `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Birthday  model.Date `json:"birthday"`
}

// NewContactRead projects a stored contact onto the response shape.
func NewContactRead(contact model.Contact) ContactRead {
	return ContactRead{
		Id:        contact.Id,
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Birthday:  contact.Birthday,
	}
}

// NewContactReads projects a list of stored contacts. It always returns a
// non-nil slice so that empty results serialize as [] rather than null.
func NewContactReads(contacts []model.Contact) []ContactRead {
	reads := make([]ContactRead, 0, len(contacts))
	for _, contact := range contacts {
		reads = append(reads, NewContactRead(contact))
	}
	return reads
}

// UserCreate is the request body for registering a new account.
type UserCreate struct {
	Username string `json:"username" binding:"required,max=50"`
	Email    string `json:"email"    binding:"required,email,max=100"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// Credentials is the request body for logging in.
type Credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Token is the response body of a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// UserRead is the response shape for account endpoints.
type UserRead struct {
	Id        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserRead projects a stored user onto the response shape.
func NewUserRead(user model.User) UserRead {
	return UserRead{
		Id:        user.Id,
		Username:  user.Username,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
