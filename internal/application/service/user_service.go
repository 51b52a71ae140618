package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/awahyudi/facility-portal/internal/application/dispatcher"
	"github.com/awahyudi/facility-portal/internal/application/port"
	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"github.com/awahyudi/facility-portal/internal/domain/event"
	"github.com/awahyudi/facility-portal/pkg/utils"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for a failed login.
var ErrInvalidCredentials = errors.New("invalid email or password")

// UserService manages portal accounts and sessions. New signups start as
// role employee / status pending; an admin activates them and may change
// the role afterwards.
type UserService interface {
	Signup(ctx context.Context, email, password string) (*entity.User, error)

	// Login verifies the password and returns the user plus a signed
	// session token carrying uid, role and account status.
	Login(ctx context.Context, email, password string) (*entity.User, string, error)

	// UpdateUser changes role and/or status; empty fields are kept.
	// Admin-only at the API boundary.
	UpdateUser(ctx context.Context, uid, role, status string) error

	Get(ctx context.Context, uid string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
}

// SessionClaims is the JWT payload for a portal session.
type SessionClaims struct {
	Role   string `json:"role"`
	Status string `json:"status"`
	jwt.RegisteredClaims
}

type userServiceImpl struct {
	repo       port.UserRepository
	txManager  port.TransactionManager
	dispatcher dispatcher.Dispatcher
	secret     []byte
	tokenTTL   time.Duration
	logger     Logger
}

// NewUserService creates a UserService signing session tokens with secret.
func NewUserService(
	repo port.UserRepository,
	txManager port.TransactionManager,
	d dispatcher.Dispatcher,
	secret []byte,
	tokenTTL time.Duration,
	logger Logger,
) UserService {
	return &userServiceImpl{
		repo:       repo,
		txManager:  txManager,
		dispatcher: d,
		secret:     secret,
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

func (s *userServiceImpl) Signup(ctx context.Context, email, password string) (*entity.User, error) {
	if err := utils.ValidateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Email:        email,
		DisplayName:  email,
		Role:         entity.RoleEmployee,
		Status:       entity.UserStatusPending,
		PasswordHash: string(hash),
	}

	// The duplicate check and the insert run in one transaction so two
	// concurrent signups with the same email cannot both pass the check.
	err = s.inTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.GetByEmail(txCtx, email)
		if err != nil {
			return fmt.Errorf("user lookup: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("account already exists for %s", email)
		}
		return s.repo.Create(txCtx, user)
	})
	if err != nil {
		s.logger.Error("Failed to create user", "error", err, "email", email)
		return nil, err
	}

	s.logger.Info("User signed up", "uid", user.UID, "email", email)
	s.notifyChanged(ctx, user.UID)
	return user, nil
}

func (s *userServiceImpl) Login(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("user lookup: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	claims := SessionClaims{
		Role:   user.Role,
		Status: user.Status,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.UID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}

	s.logger.Info("User logged in", "uid", user.UID, "role", user.Role)
	return user, token, nil
}

func (s *userServiceImpl) UpdateUser(ctx context.Context, uid, role, status string) error {
	if role == "" && status == "" {
		return fmt.Errorf("nothing to update")
	}
	if role != "" && !entity.IsValidRole(role) {
		return fmt.Errorf("unknown role: %s", role)
	}
	if status != "" && status != entity.UserStatusPending && status != entity.UserStatusApproved {
		return fmt.Errorf("unknown account status: %s", status)
	}

	user, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return fmt.Errorf("user lookup: %w", err)
	}
	if user == nil {
		return ErrNotFound
	}

	if role == "" {
		role = user.Role
	}
	if status == "" {
		status = user.Status
	}

	if err := s.repo.UpdateRoleStatus(ctx, uid, role, status); err != nil {
		s.logger.Error("Failed to update user", "error", err, "uid", uid)
		return fmt.Errorf("update user: %w", err)
	}

	s.logger.Info("User updated", "uid", uid, "role", role, "status", status)
	s.notifyChanged(ctx, uid)
	return nil
}

func (s *userServiceImpl) Get(ctx context.Context, uid string) (*entity.User, error) {
	user, err := s.repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *userServiceImpl) List(ctx context.Context) ([]*entity.User, error) {
	return s.repo.List(ctx)
}

func (s *userServiceImpl) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if s.txManager == nil {
		return fn(ctx)
	}
	return s.txManager.WithTransaction(ctx, fn)
}

func (s *userServiceImpl) notifyChanged(ctx context.Context, uid string) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.DispatchAsync(ctx, event.DocumentChanged(event.TypeUserChanged, uid))
}
