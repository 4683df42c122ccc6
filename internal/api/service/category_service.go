package service

import (
	"context"
	"fmt"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/pkg/apperror"
)

type CategoryService interface {
	List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated, error)
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*models.Category, error)
	Delete(ctx context.Context, slug string) error
}

type categoryService struct {
	repo repository.CategoryRepository
}

func NewCategoryService(repo repository.CategoryRepository) CategoryService {
	return &categoryService{repo: repo}
}

func (s *categoryService) List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated, error) {
	list, total, err := s.repo.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return dto.NewPaginated(list, total, page, pageSize), nil
}

func (s *categoryService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*models.Category, error) {
	c := &models.Category{Name: req.Name, Slug: req.Slug}
	if err := s.repo.Create(ctx, c); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperror.NewValidation("slug", "slug already in use")
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return c, nil
}

func (s *categoryService) Delete(ctx context.Context, slug string) error {
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		if repository.IsNotFound(err) {
			return apperror.ErrNotFound
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
