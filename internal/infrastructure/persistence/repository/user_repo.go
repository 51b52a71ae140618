package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/awahyudi/facility-portal/internal/application/port"
	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"go.uber.org/zap"
)

// UserRepository implements port.UserRepository
type UserRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) port.UserRepository {
	return &UserRepository{
		db:     db,
		logger: logger,
	}
}

const userColumns = `uid, email, display_name, role, status, password_hash, created_at`

// Create inserts an account and assigns its UID.
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	user.UID = newID()
	user.CreatedAt = time.Now().UTC()

	query := `INSERT INTO users (` + userColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query,
		user.UID,
		user.Email,
		user.DisplayName,
		user.Role,
		user.Status,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByUID retrieves an account by UID. Returns (nil, nil) when absent.
func (r *UserRepository) GetByUID(ctx context.Context, uid string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE uid = ?`
	return r.getOne(ctx, query, uid)
}

// GetByEmail retrieves an account by email. Returns (nil, nil) when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ?`
	return r.getOne(ctx, query, email)
}

// UpdateRoleStatus sets the role and account status.
func (r *UserRepository) UpdateRoleStatus(ctx context.Context, uid, role, status string) error {
	query := `UPDATE users SET role = ?, status = ? WHERE uid = ?`

	_, err := executorFrom(ctx, r.db).ExecContext(ctx, query, role, status, uid)
	if err != nil {
		r.logger.Error("Failed to update user role/status", zap.String("uid", uid), zap.Error(err))
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

// List retrieves all accounts ordered by email.
func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY email`

	rows, err := executorFrom(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list users", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg interface{}) (*entity.User, error) {
	user, err := scanUser(executorFrom(ctx, r.db).QueryRowContext(ctx, query, arg))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user", zap.Error(err))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func scanUser(row rowScanner) (*entity.User, error) {
	var user entity.User
	err := row.Scan(
		&user.UID,
		&user.Email,
		&user.DisplayName,
		&user.Role,
		&user.Status,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Verify interface compliance
var _ port.UserRepository = (*UserRepository)(nil)
