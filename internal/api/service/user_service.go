package service

import (
	"context"
	"fmt"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/identity"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/pkg/apperror"
)

type UserService interface {
	List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Update(ctx context.Context, username string, req dto.UpdateUserRequest) (*models.User, error)
	Delete(ctx context.Context, username string) error
	GetSelf(ctx context.Context, who identity.Identity) (*models.User, error)
	// UpdateSelf applies a profile edit for the acting user. The role field
	// is pinned to its stored value: self-service edits can never elevate
	// privilege.
	UpdateSelf(ctx context.Context, who identity.Identity, req dto.UpdateSelfRequest) (*models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated, error) {
	users, total, err := s.userRepo.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	results := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		results = append(results, dto.FromUser(&users[i]))
	}
	return dto.NewPaginated(results, total, page, pageSize), nil
}

func (s *userService) Create(ctx context.Context, req dto.CreateUserRequest) (*models.User, error) {
	if models.ReservedUsername(req.Username) {
		return nil, apperror.NewValidation("username", `"me" is a reserved username`)
	}

	role := models.RoleUser
	if req.Role != "" {
		parsed, err := models.ParseRole(req.Role)
		if err != nil {
			return nil, apperror.NewValidation("role", "must be one of: user, moderator, admin")
		}
		role = parsed
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperror.NewValidation("username", "username or email already in use")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) Update(ctx context.Context, username string, req dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		if models.ReservedUsername(*req.Username) {
			return nil, apperror.NewValidation("username", `"me" is a reserved username`)
		}
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Role != nil {
		role, err := models.ParseRole(*req.Role)
		if err != nil {
			return nil, apperror.NewValidation("role", "must be one of: user, moderator, admin")
		}
		user.Role = role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperror.NewValidation("username", "username or email already in use")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *userService) GetSelf(ctx context.Context, who identity.Identity) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, who.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.ErrUnauthenticated
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateSelf(ctx context.Context, who identity.Identity, req dto.UpdateSelfRequest) (*models.User, error) {
	user, err := s.GetSelf(ctx, who)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		if models.ReservedUsername(*req.Username) {
			return nil, apperror.NewValidation("username", `"me" is a reserved username`)
		}
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	// req.Role is deliberately ignored

	if err := s.userRepo.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperror.NewValidation("username", "username or email already in use")
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
