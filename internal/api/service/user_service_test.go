package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/pkg/apperror"
)

func TestUserCreate_DefaultRole(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.User")).Return(nil)

	user, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "bob",
		Email:    "bob@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestUserCreate_ExplicitRole(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	user, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "mod",
		Email:    "mod@example.com",
		Role:     "moderator",
	})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleModerator, user.Role)
}

func TestUserCreate_UnknownRole(t *testing.T) {
	svc := NewUserService(new(MockUserRepository))

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Role:     "superuser",
	})

	ve, ok := apperror.AsValidation(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "role")
}

func TestUserCreate_ReservedUsername(t *testing.T) {
	svc := NewUserService(new(MockUserRepository))

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "Me",
		Email:    "me@example.com",
	})

	ve, ok := apperror.AsValidation(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "username")
}

func TestUserCreate_DuplicateUsername(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrDuplicatedKey)

	_, err := svc.Create(context.Background(), dto.CreateUserRequest{
		Username: "bob",
		Email:    "bob@example.com",
	})

	_, ok := apperror.AsValidation(err)
	assert.True(t, ok)
}

func TestUserGetByUsername_NotFound(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetByUsername(context.Background(), "ghost")

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUserUpdate_ChangesRole(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	stored := &models.User{ID: 3, Username: "bob", Email: "bob@example.com", Role: models.RoleUser}
	userRepo.On("FindByUsername", mock.Anything, "bob").Return(stored, nil)
	userRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	role := "admin"
	user, err := svc.Update(context.Background(), "bob", dto.UpdateUserRequest{Role: &role})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestUserUpdateSelf_RolePinned(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	stored := &models.User{ID: 3, Username: "bob", Email: "bob@example.com", Role: models.RoleUser}
	userRepo.On("FindByID", mock.Anything, int64(3)).Return(stored, nil)
	userRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	role := "admin"
	bio := "hello"
	user, err := svc.UpdateSelf(context.Background(), authenticated(3, models.RoleUser), dto.UpdateSelfRequest{Role: &role, Bio: &bio})

	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Role, "self-service edits must not change the role")
	assert.Equal(t, "hello", user.Bio)
}

func TestUserDelete_NotFound(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), "ghost")

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUserList_MapsResponses(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := NewUserService(userRepo)

	users := []models.User{{Username: "alice", Role: models.RoleAdmin}, {Username: "bob", Role: models.RoleUser}}
	userRepo.On("List", mock.Anything, "", 1, 20).Return(users, int64(2), nil)

	page, err := svc.List(context.Background(), "", 1, 20)

	assert.NoError(t, err)
	results := page.Results.([]dto.UserResponse)
	assert.Equal(t, "admin", results[0].Role)
	assert.Equal(t, "user", results[1].Role)
}
