package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"gitlab.com/radek.prochazka/contact-book/internal/logger"
	"gitlab.com/radek.prochazka/contact-book/internal/model"
	"gitlab.com/radek.prochazka/contact-book/internal/repository"
	"gitlab.com/radek.prochazka/contact-book/internal/service"
	"gitlab.com/radek.prochazka/contact-book/internal/token"
)

// createMockObjects builds a mock database handle and a mock object for
// defining our expected SQL calls.
func createMockObjects(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	return sqlx.NewDb(sqlDB, "mysql"), mock
}

// createMockObjectsWithPing is the variant for tests that exercise the
// health endpoint, which pings the database.
func createMockObjectsWithPing(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	return sqlx.NewDb(sqlDB, "mysql"), mock
}

// expectPreparedStatements instructs the mock object to expect that in the
// beginning, both repositories prepare their statements.
func expectPreparedStatements(mock sqlmock.Sqlmock) {
	mock.ExpectPrepare("INSERT INTO contacts")
	mock.ExpectPrepare("SELECT \\* FROM contacts WHERE id = \\? AND user_id = \\?")
	mock.ExpectPrepare("DELETE FROM contacts WHERE id = \\? AND user_id = \\?")
	mock.ExpectPrepare("SELECT \\* FROM users WHERE id = \\?")
	mock.ExpectPrepare("SELECT \\* FROM users WHERE username = \\?")
}

// contactColumns is the column list of the contacts table in select order.
func contactColumns() []string {
	return []string{"id", "firstname", "lastname", "email", "phone", "birthday", "info", "user_id"}
}

// userColumns is the column list of the users table in select order.
func userColumns() []string {
	return []string{"id", "username", "email", "hashed_password", "created_at"}
}

// testStack holds the wired-up service with handles to the pieces that
// tests need to reach into.
type testStack struct {
	router   *gin.Engine
	contacts *repository.ContactRepository
	tokens   *token.Manager
}

// newTestStack sets up the contact book service with the mock database and
// returns a handle to the gin engine against which requests can be
// executed.
func newTestStack(t *testing.T, db *sqlx.DB) testStack {
	contactRepository, err := repository.NewContactRepository(db)
	require.NoError(t, err)
	userRepository, err := repository.NewUserRepository(db)
	require.NoError(t, err)
	tokens := token.NewManager("test-secret", time.Hour)
	handlers := New(
		service.NewContactService(contactRepository),
		service.NewAuthService(userRepository, tokens),
		tokens,
		db,
		logger.NewNop(),
	)
	gin.SetMode(gin.ReleaseMode)
	return testStack{
		router:   handlers.SetupHttpRouter(false),
		contacts: contactRepository,
		tokens:   tokens,
	}
}

// runTest executes the HTTP request with the specified arguments and
// returns the response. With asUser set to a positive id, the request
// carries a bearer token for that user.
func runTest(t *testing.T, stack testStack, method string, url string, body *strings.Reader, asUser int64) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	if body == nil {
		body = strings.NewReader("")
	}
	request, _ := http.NewRequest(method, url, body)
	request.Header.Set("Content-Type", "application/json")
	if asUser > 0 {
		signed, err := stack.tokens.Issue(model.User{Id: asUser, Username: "tester"})
		require.NoError(t, err)
		request.Header.Set("Authorization", "Bearer "+signed)
	}
	stack.router.ServeHTTP(recorder, request)
	return recorder
}
