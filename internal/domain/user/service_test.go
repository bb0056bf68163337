package user

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, f Filters) ([]User, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]User), args.Get(1).(int64), args.Error(2)
}

func TestService_Create_GeneratesUsablePassword(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo)
	created, err := svc.Create(context.Background(), CreateUserRequest{
		Email:     "Jean.Dupont@Example.com",
		FirstName: "Jean",
		LastName:  "Dupont",
		Role:      "member",
	})

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{24}$`), created.InitialPassword)
	assert.Equal(t, "jean.dupont@example.com", created.User.Email)
	assert.NotEqual(t, created.InitialPassword, created.User.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(created.User.PasswordHash), []byte(created.InitialPassword)))
	repo.AssertExpectations(t)
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(ErrEmailTaken)

	svc := NewService(repo)
	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email: "a@b.c", FirstName: "A", LastName: "B", Role: "member",
	})

	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_ChangePassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("old-secret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "u1").Return(&User{ID: "u1", PasswordHash: string(hash)}, nil)
	var updated *User
	repo.On("Update", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		updated = args.Get(1).(*User)
	}).Return(nil)

	svc := NewService(repo)
	err = svc.ChangePassword(context.Background(), "u1", ChangePasswordRequest{
		CurrentPassword: "old-secret",
		NewPassword:     "new-secret-123",
	})

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(updated.PasswordHash), []byte("new-secret-123")))
}

func TestService_ChangePassword_WrongCurrent(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("old-secret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "u1").Return(&User{ID: "u1", PasswordHash: string(hash)}, nil)

	svc := NewService(repo)
	err = svc.ChangePassword(context.Background(), "u1", ChangePasswordRequest{
		CurrentPassword: "guess",
		NewPassword:     "new-secret-123",
	})

	assert.ErrorIs(t, err, ErrWrongPassword)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestService_Update_PartialFields(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "u1").Return(&User{
		ID: "u1", FirstName: "Jean", LastName: "Dupont", Role: "member",
	}, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo)
	role := "admin"
	u, err := svc.Update(context.Background(), "u1", UpdateUserRequest{Role: &role})

	require.NoError(t, err)
	assert.Equal(t, "admin", u.Role)
	assert.Equal(t, "Jean", u.FirstName)
}

func TestService_List_Pagination(t *testing.T) {
	repo := new(MockRepository)
	repo.On("List", mock.Anything, mock.MatchedBy(func(f Filters) bool {
		return f.Role == "member" && f.Limit == 10 && f.Offset == 0
	})).Return([]User{{ID: "u1"}}, int64(1), nil)

	svc := NewService(repo)
	users, meta, err := svc.List(context.Background(), SearchQuery{Role: "member"})

	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 1, meta.TotalPages)
}
