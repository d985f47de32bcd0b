package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/ssis/internal/app/models"
	"github.com/yigit/ssis/internal/db"
)

var userColumns = []string{"username", "email", "password_hash", "date_logged", "created_at"}

const userReturning = "RETURNING username, email, password_hash, date_logged, created_at"

// IUserRepository defines the interface for user-related database operations
type IUserRepository interface {
	GetAll(ctx context.Context) ([]*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByUsernameOrEmail(ctx context.Context, login string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) (*models.User, error)
	UpdateDateLogged(ctx context.Context, username string, at time.Time) (*models.User, error)
	Delete(ctx context.Context, username string) (*models.User, error)
}

// UserRepository handles user database operations
type UserRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(database *db.PostgresDB) *UserRepository {
	return &UserRepository{
		db: database,
		sb: newStatementBuilder(),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	if err := row.Scan(&u.Username, &u.Email, &u.PasswordHash, &u.DateLogged, &u.CreatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) one(ctx context.Context, stmt squirrel.Sqlizer) (*models.User, error) {
	var user *models.User
	found, err := queryRow(ctx, r.db, stmt, func(row pgx.Row) error {
		var err error
		user, err = scanUser(row)
		return err
	})
	if err != nil || !found {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) exists(ctx context.Context, where squirrel.Eq) (bool, error) {
	var exists bool
	_, err := queryRow(ctx, r.db, r.sb.Select("1").
		From("users").
		Where(where).
		Prefix("SELECT EXISTS (").Suffix(")"),
		func(row pgx.Row) error { return row.Scan(&exists) })
	return exists, err
}

// GetAll retrieves all users ordered by username
func (r *UserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	stmt := r.sb.Select(userColumns...).
		From("users").
		OrderBy("username")

	users := []*models.User{}
	err := queryRows(ctx, r.db, stmt, func(rows pgx.Rows) error {
		user, err := scanUser(rows)
		if err != nil {
			return err
		}
		users = append(users, user)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error querying users: %w", err)
	}

	return users, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := r.one(ctx, r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Eq{"username": username}))
	if err != nil {
		return nil, fmt.Errorf("error getting user by username: %w", err)
	}
	return user, nil
}

// GetByUsernameOrEmail retrieves the user whose username or email equals login.
// A username match wins over an email match.
func (r *UserRepository) GetByUsernameOrEmail(ctx context.Context, login string) (*models.User, error) {
	user, err := r.one(ctx, r.sb.Select(userColumns...).
		From("users").
		Where(squirrel.Or{squirrel.Eq{"username": login}, squirrel.Eq{"email": login}}).
		OrderByClause("username = ? DESC", login).
		Limit(1))
	if err != nil {
		return nil, fmt.Errorf("error getting user by login: %w", err)
	}
	return user, nil
}

// UsernameExists checks if a username is already taken
func (r *UserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	exists, err := r.exists(ctx, squirrel.Eq{"username": username})
	if err != nil {
		return false, fmt.Errorf("error checking username existence: %w", err)
	}
	return exists, nil
}

// EmailExists checks if an email is already registered
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	exists, err := r.exists(ctx, squirrel.Eq{"email": email})
	if err != nil {
		return false, fmt.Errorf("error checking email existence: %w", err)
	}
	return exists, nil
}

// Create inserts a user that has never logged in
func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	created, err := r.one(ctx, r.sb.Insert("users").
		Columns("username", "email", "password_hash").
		Values(user.Username, user.Email, user.PasswordHash).
		Suffix(userReturning))
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return created, nil
}

// UpdateDateLogged stamps a successful login
func (r *UserRepository) UpdateDateLogged(ctx context.Context, username string, at time.Time) (*models.User, error) {
	updated, err := r.one(ctx, r.sb.Update("users").
		Set("date_logged", at).
		Where(squirrel.Eq{"username": username}).
		Suffix(userReturning))
	if err != nil {
		return nil, fmt.Errorf("error updating last login: %w", err)
	}
	return updated, nil
}

// Delete removes a user account and returns the deleted row
func (r *UserRepository) Delete(ctx context.Context, username string) (*models.User, error) {
	deleted, err := r.one(ctx, r.sb.Delete("users").
		Where(squirrel.Eq{"username": username}).
		Suffix(userReturning))
	if err != nil {
		return nil, fmt.Errorf("error deleting user: %w", err)
	}
	return deleted, nil
}
