package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// TestSignup executes a POST request registering a new account. It expects
// the stored account without the password hash.
func TestSignup(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()
	expectPreparedStatements(mock)
	mock.ExpectExec("INSERT INTO users").
		WithArgs("erika", "erika@example.com", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(5, 1))
	rows := mock.NewRows(userColumns()).
		AddRow(5, "erika", "erika@example.com", "$2a$10$somehash", time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC))
	mock.ExpectQuery("SELECT \\* FROM users WHERE id = \\?").
		WithArgs(5).
		WillReturnRows(rows)

	stack := newTestStack(t, db)
	recorder := runTest(t, stack, "POST", "/auth/signup", strings.NewReader(`
		{
			"username": "erika",
			"email": "erika@example.com",
			"password": "hunter22"
		}
	`), 0)

	assert.Equal(t, http.StatusCreated, recorder.Code)
	var body map[string]interface{}
	json.Unmarshal(recorder.Body.Bytes(), &body)
	assert.Equal(t, 5.0, body["id"])
	assert.Equal(t, "erika", body["username"])
	assert.NotContains(t, recorder.Body.String(), "hash")
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestSignupDuplicate executes a POST request with a taken username. It
// expects CONFLICT.
func TestSignupDuplicate(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()
	expectPreparedStatements(mock)
	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'erika' for key 'uq_users_username'"})

	stack := newTestStack(t, db)
	recorder := runTest(t, stack, "POST", "/auth/signup", strings.NewReader(`
		{
			"username": "erika",
			"email": "erika@example.com",
			"password": "hunter22"
		}
	`), 0)

	assert.Equal(t, http.StatusConflict, recorder.Code)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestLogin executes a POST request with valid credentials. It expects a
// bearer token that parses back to the user.
func TestLogin(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()
	expectPreparedStatements(mock)
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	rows := mock.NewRows(userColumns()).
		AddRow(5, "erika", "erika@example.com", string(hash), time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC))
	mock.ExpectQuery("SELECT \\* FROM users WHERE username = \\?").
		WithArgs("erika").
		WillReturnRows(rows)

	stack := newTestStack(t, db)
	recorder := runTest(t, stack, "POST", "/auth/login", strings.NewReader(`
		{
			"username": "erika",
			"password": "hunter22"
		}
	`), 0)

	assert.Equal(t, http.StatusOK, recorder.Code)
	var body map[string]string
	json.Unmarshal(recorder.Body.Bytes(), &body)
	assert.Equal(t, "bearer", body["token_type"])
	claims, err := stack.tokens.Parse(body["access_token"])
	assert.NoError(t, err)
	assert.Equal(t, int64(5), claims.UserId)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestLoginWrongPassword executes a POST request with a wrong password. It
// expects UNAUTHORIZED, the same answer an unknown username gets.
func TestLoginWrongPassword(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()
	expectPreparedStatements(mock)
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)
	rows := mock.NewRows(userColumns()).
		AddRow(5, "erika", "erika@example.com", string(hash), time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC))
	mock.ExpectQuery("SELECT \\* FROM users WHERE username = \\?").
		WithArgs("erika").
		WillReturnRows(rows)

	stack := newTestStack(t, db)
	recorder := runTest(t, stack, "POST", "/auth/login", strings.NewReader(`
		{
			"username": "erika",
			"password": "wrong"
		}
	`), 0)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestLoginUnknownUsername executes a POST request with a username that
// does not exist. It expects the same UNAUTHORIZED answer as a wrong
// password.
func TestLoginUnknownUsername(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()
	expectPreparedStatements(mock)
	mock.ExpectQuery("SELECT \\* FROM users WHERE username = \\?").
		WithArgs("nobody").
		WillReturnRows(mock.NewRows(userColumns()))

	stack := newTestStack(t, db)
	recorder := runTest(t, stack, "POST", "/auth/login", strings.NewReader(`
		{
			"username": "nobody",
			"password": "hunter22"
		}
	`), 0)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}

// TestMe executes a GET request for the account behind the token.
func TestMe(t *testing.T) {
	db, mock := createMockObjects(t)
	defer db.Close()
	expectPreparedStatements(mock)
	rows := mock.NewRows(userColumns()).
		AddRow(5, "erika", "erika@example.com", "$2a$10$somehash", time.Date(2026, time.August, 31, 12, 0, 0, 0, time.UTC))
	mock.ExpectQuery("SELECT \\* FROM users WHERE id = \\?").
		WithArgs(5).
		WillReturnRows(rows)

	stack := newTestStack(t, db)
	recorder := runTest(t, stack, "GET", "/auth/me", nil, 5)

	assert.Equal(t, http.StatusOK, recorder.Code)
	var body map[string]interface{}
	json.Unmarshal(recorder.Body.Bytes(), &body)
	assert.Equal(t, "erika", body["username"])
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unfulfilled expectations: %s", err)
	}
}
