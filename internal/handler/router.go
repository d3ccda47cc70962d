package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"gitlab.com/radek.prochazka/contact-book/internal/logger"
	"gitlab.com/radek.prochazka/contact-book/internal/service"
	"gitlab.com/radek.prochazka/contact-book/internal/token"
)

// Handlers bundles everything the HTTP layer needs.
type Handlers struct {
	contacts *service.ContactService
	auth     *service.AuthService
	tokens   *token.Manager
	db       *sqlx.DB
	log      *logger.Logger
}

// New creates the HTTP layer on top of the services.
func New(
	contacts *service.ContactService,
	auth *service.AuthService,
	tokens *token.Manager,
	db *sqlx.DB,
	log *logger.Logger,
) *Handlers {
	return &Handlers{
		contacts: contacts,
		auth:     auth,
		tokens:   tokens,
		db:       db,
		log:      log,
	}
}

// SetupHttpRouter initializes the REST API router and registers all
// endpoints. With ginLogging set to false, only the recovery middleware is
// installed and HTTP request logging is turned off.
func (h *Handlers) SetupHttpRouter(ginLogging bool) *gin.Engine {
	var router *gin.Engine
	if ginLogging {
		router = gin.Default()
	} else {
		router = gin.New()
		router.Use(gin.Recovery())
	}
	router.Use(h.requestId())

	router.GET("/healthz", h.healthz)
	router.POST("/auth/signup", h.signup)
	router.POST("/auth/login", h.login)

	authorized := router.Group("/", h.requireAuth())
	authorized.GET("/auth/me", h.me)
	authorized.GET("/contacts", h.findAllContacts)
	authorized.POST("/contacts", h.createContact)
	authorized.GET("/contacts/birthdays", h.findUpcomingBirthdays)
	authorized.GET("/contacts/find", h.findContacts)
	authorized.GET("/contacts/:id", h.findContactByID)
	authorized.PATCH("/contacts/:id", h.updateContactByID)
	authorized.DELETE("/contacts/:id", h.deleteContactByID)
	return router
}

// healthz reports whether the service and its database are reachable.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/healthz"
func (h *Handlers) healthz(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"message": "database unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
