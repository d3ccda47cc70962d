package service

import (
	"errors"
	"fmt"

	"gitlab.com/radek.prochazka/contact-book/internal/model"
	"gitlab.com/radek.prochazka/contact-book/internal/repository"
	"gitlab.com/radek.prochazka/contact-book/internal/schema"
	"gitlab.com/radek.prochazka/contact-book/internal/token"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials covers both an unknown username and a wrong
// password, so that a login attempt cannot probe which usernames exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles account registration and login.
type AuthService struct {
	users  *repository.UserRepository
	tokens *token.Manager
}

// NewAuthService creates the service on top of the user repository and the
// token manager.
func NewAuthService(users *repository.UserRepository, tokens *token.Manager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Signup registers a new account with a bcrypt-hashed password. Returns
// model.ErrDuplicate if the username or email is already taken.
func (s *AuthService) Signup(body schema.UserCreate) (model.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}
	return s.users.Create(body.Username, body.Email, string(hashed))
}

// Login checks the credentials and issues an access token.
func (s *AuthService) Login(body schema.Credentials) (schema.Token, error) {
	user, err := s.users.GetByUsername(body.Username)
	if errors.Is(err, model.ErrNotFound) {
		return schema.Token{}, ErrInvalidCredentials
	}
	if err != nil {
		return schema.Token{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(body.Password)) != nil {
		return schema.Token{}, ErrInvalidCredentials
	}
	access, err := s.tokens.Issue(user)
	if err != nil {
		return schema.Token{}, err
	}
	return schema.Token{AccessToken: access, TokenType: "bearer"}, nil
}

// CurrentUser loads the account behind an authenticated request.
func (s *AuthService) CurrentUser(id int64) (model.User, error) {
	return s.users.GetById(id)
}
