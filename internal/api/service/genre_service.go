package service

import (
	"context"
	"fmt"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/pkg/apperror"
)

type GenreService interface {
	List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated, error)
	Create(ctx context.Context, req dto.CreateCategoryRequest) (*models.Genre, error)
	Delete(ctx context.Context, slug string) error
}

type genreService struct {
	repo repository.GenreRepository
}

func NewGenreService(repo repository.GenreRepository) GenreService {
	return &genreService{repo: repo}
}

func (s *genreService) List(ctx context.Context, search string, page, pageSize int) (*dto.Paginated, error) {
	list, total, err := s.repo.List(ctx, search, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	return dto.NewPaginated(list, total, page, pageSize), nil
}

func (s *genreService) Create(ctx context.Context, req dto.CreateCategoryRequest) (*models.Genre, error) {
	g := &models.Genre{Name: req.Name, Slug: req.Slug}
	if err := s.repo.Create(ctx, g); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperror.NewValidation("slug", "slug already in use")
		}
		return nil, fmt.Errorf("create genre: %w", err)
	}
	return g, nil
}

func (s *genreService) Delete(ctx context.Context, slug string) error {
	if err := s.repo.DeleteBySlug(ctx, slug); err != nil {
		if repository.IsNotFound(err) {
			return apperror.ErrNotFound
		}
		return fmt.Errorf("delete genre: %w", err)
	}
	return nil
}
