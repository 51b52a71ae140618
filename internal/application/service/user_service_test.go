package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/awahyudi/facility-portal/internal/domain/entity"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	byEmail map[string]*entity.User
	byUID   map[string]*entity.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*entity.User),
		byUID:   make(map[string]*entity.User),
	}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.nextID++
	user.UID = fmt.Sprintf("user-%d", r.nextID)
	user.CreatedAt = time.Now().UTC()
	r.byEmail[user.Email] = user
	r.byUID[user.UID] = user
	return nil
}

func (r *fakeUserRepo) GetByUID(_ context.Context, uid string) (*entity.User, error) {
	return r.byUID[uid], nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.byEmail[email], nil
}

func (r *fakeUserRepo) UpdateRoleStatus(_ context.Context, uid, role, status string) error {
	if u, ok := r.byUID[uid]; ok {
		u.Role = role
		u.Status = status
	}
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*entity.User, error) {
	users := make([]*entity.User, 0, len(r.byUID))
	for _, u := range r.byUID {
		users = append(users, u)
	}
	return users, nil
}

// fakeTxManager records whether the signup critical section ran inside
// a transaction callback.
type fakeTxManager struct {
	calls int
}

func (m *fakeTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

const testSecret = "unit-test-signing-secret"

func newTestUserService(repo *fakeUserRepo) (UserService, *fakeTxManager) {
	tx := &fakeTxManager{}
	svc := NewUserService(repo, tx, nil, []byte(testSecret), time.Hour, nopLogger{})
	return svc, tx
}

func TestSignupCreatesPendingEmployee(t *testing.T) {
	repo := newFakeUserRepo()
	svc, tx := newTestUserService(repo)

	user, err := svc.Signup(context.Background(), "budi@plant.example", "rahasia1")
	require.NoError(t, err)

	assert.Equal(t, entity.RoleEmployee, user.Role)
	assert.Equal(t, entity.UserStatusPending, user.Status)
	assert.NotEmpty(t, user.UID)
	assert.NotEqual(t, "rahasia1", user.PasswordHash)
	assert.Equal(t, 1, tx.calls)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestUserService(repo)

	_, err := svc.Signup(context.Background(), "budi@plant.example", "rahasia1")
	require.NoError(t, err)

	_, err = svc.Signup(context.Background(), "budi@plant.example", "rahasia2")
	assert.ErrorContains(t, err, "already exists")
}

func TestSignupValidatesInput(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestUserService(repo)

	_, err := svc.Signup(context.Background(), "not-an-email", "rahasia1")
	assert.Error(t, err)

	_, err = svc.Signup(context.Background(), "budi@plant.example", "abc")
	assert.ErrorContains(t, err, "at least 6 characters")
}

func TestLoginReturnsSignedSessionToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestUserService(repo)

	created, err := svc.Signup(context.Background(), "budi@plant.example", "rahasia1")
	require.NoError(t, err)

	user, token, err := svc.Login(context.Background(), "budi@plant.example", "rahasia1")
	require.NoError(t, err)
	assert.Equal(t, created.UID, user.UID)

	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, created.UID, claims.Subject)
	assert.Equal(t, entity.RoleEmployee, claims.Role)
	assert.Equal(t, entity.UserStatusPending, claims.Status)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestUserService(repo)

	_, err := svc.Signup(context.Background(), "budi@plant.example", "rahasia1")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "budi@plant.example", "salah")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(context.Background(), "nobody@plant.example", "rahasia1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateUserActivatesAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestUserService(repo)

	user, err := svc.Signup(context.Background(), "budi@plant.example", "rahasia1")
	require.NoError(t, err)

	err = svc.UpdateUser(context.Background(), user.UID, entity.RoleSecurity, entity.UserStatusApproved)
	require.NoError(t, err)

	updated, err := svc.Get(context.Background(), user.UID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleSecurity, updated.Role)
	assert.Equal(t, entity.UserStatusApproved, updated.Status)
}

func TestUpdateUserKeepsEmptyFields(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestUserService(repo)

	user, err := svc.Signup(context.Background(), "budi@plant.example", "rahasia1")
	require.NoError(t, err)

	// Only activate, leave the role alone.
	err = svc.UpdateUser(context.Background(), user.UID, "", entity.UserStatusApproved)
	require.NoError(t, err)

	updated, err := svc.Get(context.Background(), user.UID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEmployee, updated.Role)
	assert.Equal(t, entity.UserStatusApproved, updated.Status)
}

func TestUpdateUserValidation(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestUserService(repo)

	err := svc.UpdateUser(context.Background(), "user-a", "", "")
	assert.ErrorContains(t, err, "nothing to update")

	err = svc.UpdateUser(context.Background(), "user-a", "superuser", "")
	assert.ErrorContains(t, err, "unknown role")

	err = svc.UpdateUser(context.Background(), "missing", entity.RoleAdmin, "")
	assert.ErrorIs(t, err, ErrNotFound)
}
