package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"gitlab.com/radek.prochazka/contact-book/internal/model"
)

// mysqlDuplicateEntry is the MySQL error number for a unique key violation.
const mysqlDuplicateEntry = 1062

// UserRepository provides persistence operations for user accounts.
type UserRepository struct {
	db                  *sqlx.DB
	selectWhereId       *sqlx.Stmt
	selectWhereUsername *sqlx.Stmt
}

// NewUserRepository initializes the repository on the specified database
// wrapper.
func NewUserRepository(db *sqlx.DB) (*UserRepository, error) {
	selectWhereId, err := db.Preparex(`
		SELECT * FROM users WHERE id = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare user select by id: %w", err)
	}
	selectWhereUsername, err := db.Preparex(`
		SELECT * FROM users WHERE username = ?
	`)
	if err != nil {
		return nil, fmt.Errorf("prepare user select by username: %w", err)
	}
	return &UserRepository{
		db:                  db,
		selectWhereId:       selectWhereId,
		selectWhereUsername: selectWhereUsername,
	}, nil
}

// Create stores a new account and returns the row as the database persisted
// it, including the assigned id and creation timestamp. Returns
// model.ErrDuplicate if the username or email is already taken.
func (r *UserRepository) Create(username string, email string, hashedPassword string) (model.User, error) {
	result, err := r.db.Exec(`
		INSERT INTO users (username, email, hashed_password) VALUES (?, ?, ?)
	`, username, email, hashedPassword)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return model.User{}, model.ErrDuplicate
		}
		return model.User{}, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return model.User{}, fmt.Errorf("read inserted user id: %w", err)
	}
	return r.GetById(id)
}

// GetById returns the user with the given id or model.ErrNotFound.
func (r *UserRepository) GetById(id int64) (model.User, error) {
	var user model.User
	err := r.selectWhereId.Get(&user, id)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, model.ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user by id: %w", err)
	}
	return user, nil
}

// GetByUsername returns the user with the given username or
// model.ErrNotFound.
func (r *UserRepository) GetByUsername(username string) (model.User, error) {
	var user model.User
	err := r.selectWhereUsername.Get(&user, username)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, model.ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user by username: %w", err)
	}
	return user, nil
}
