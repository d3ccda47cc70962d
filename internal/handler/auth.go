package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gitlab.com/radek.prochazka/contact-book/internal/model"
	"gitlab.com/radek.prochazka/contact-book/internal/schema"
	"gitlab.com/radek.prochazka/contact-book/internal/service"
)

// signup registers a new account.
//
// Example REST API call:
//
//	> curl http://localhost:8080/auth/signup --request "POST" --include --header "Content-Type: application/json" --data '{"username": "erika", "email": "erika@example.com", "password": "hunter22"}'
func (h *Handlers) signup(c *gin.Context) {
	var body schema.UserCreate
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	user, err := h.auth.Signup(body)
	if errors.Is(err, model.ErrDuplicate) {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"message": "username or email already taken"})
		return
	}
	if err != nil {
		h.abortServerError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, schema.NewUserRead(user))
}

// login checks the credentials and responds with a bearer token. Unknown
// usernames and wrong passwords are answered identically.
//
// Example REST API call:
//
//	> curl http://localhost:8080/auth/login --request "POST" --include --header "Content-Type: application/json" --data '{"username": "erika", "password": "hunter22"}'
func (h *Handlers) login(c *gin.Context) {
	var body schema.Credentials
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	accessToken, err := h.auth.Login(body)
	if errors.Is(err, service.ErrInvalidCredentials) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		return
	}
	if err != nil {
		h.abortServerError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, accessToken)
}

// me responds with the account behind the presented token.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/auth/me" --header "Authorization: Bearer $TOKEN"
func (h *Handlers) me(c *gin.Context) {
	user, err := h.auth.CurrentUser(owner(c))
	if errors.Is(err, model.ErrNotFound) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
		return
	}
	if err != nil {
		h.abortServerError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, schema.NewUserRead(user))
}
