package service

import (
	"context"
	"fmt"
	"time"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/pkg/apperror"
)

type TitleService interface {
	List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.Paginated, error)
	Get(ctx context.Context, id int64) (*models.Title, error)
	Create(ctx context.Context, req dto.CreateTitleRequest) (*models.Title, error)
	Update(ctx context.Context, id int64, req dto.UpdateTitleRequest) (*models.Title, error)
	Delete(ctx context.Context, id int64) error
}

type titleService struct {
	titleRepo    repository.TitleRepository
	categoryRepo repository.CategoryRepository
	genreRepo    repository.GenreRepository
}

func NewTitleService(
	titleRepo repository.TitleRepository,
	categoryRepo repository.CategoryRepository,
	genreRepo repository.GenreRepository,
) TitleService {
	return &titleService{
		titleRepo:    titleRepo,
		categoryRepo: categoryRepo,
		genreRepo:    genreRepo,
	}
}

func (s *titleService) List(ctx context.Context, filter repository.TitleFilter, page, pageSize int) (*dto.Paginated, error) {
	titles, total, err := s.titleRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list titles: %w", err)
	}

	results := make([]dto.TitleResponse, 0, len(titles))
	for i := range titles {
		results = append(results, dto.FromTitle(&titles[i]))
	}
	return dto.NewPaginated(results, total, page, pageSize), nil
}

func (s *titleService) Get(ctx context.Context, id int64) (*models.Title, error) {
	t, err := s.titleRepo.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("find title: %w", err)
	}
	return t, nil
}

func (s *titleService) Create(ctx context.Context, req dto.CreateTitleRequest) (*models.Title, error) {
	if err := validateYear(req.Year); err != nil {
		return nil, err
	}

	t := &models.Title{
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
	}

	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		t.CategoryID = &category.ID
	}

	genres, err := s.resolveGenres(ctx, req.Genre)
	if err != nil {
		return nil, err
	}
	t.Genres = genres

	if err := s.titleRepo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create title: %w", err)
	}
	return s.Get(ctx, t.ID)
}

func (s *titleService) Update(ctx context.Context, id int64, req dto.UpdateTitleRequest) (*models.Title, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Year != nil {
		if err := validateYear(*req.Year); err != nil {
			return nil, err
		}
		t.Year = *req.Year
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		t.CategoryID = &category.ID
	}

	if err := s.titleRepo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("update title: %w", err)
	}

	if req.Genre != nil {
		genres, err := s.resolveGenres(ctx, *req.Genre)
		if err != nil {
			return nil, err
		}
		if err := s.titleRepo.ReplaceGenres(ctx, t, genres); err != nil {
			return nil, fmt.Errorf("replace genres: %w", err)
		}
	}

	return s.Get(ctx, id)
}

func (s *titleService) Delete(ctx context.Context, id int64) error {
	if err := s.titleRepo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return apperror.ErrNotFound
		}
		return fmt.Errorf("delete title: %w", err)
	}
	return nil
}

func validateYear(year int) error {
	if year > time.Now().Year() {
		return apperror.NewValidation("year", "year must not be in the future")
	}
	return nil
}

func (s *titleService) resolveCategory(ctx context.Context, slug string) (*models.Category, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.NewValidation("category", fmt.Sprintf("unknown category %q", slug))
		}
		return nil, fmt.Errorf("find category: %w", err)
	}
	return category, nil
}

func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]models.Genre, error) {
	genres, err := s.genreRepo.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("find genres: %w", err)
	}
	if len(genres) != len(slugs) {
		known := make(map[string]bool, len(genres))
		for _, g := range genres {
			known[g.Slug] = true
		}
		ve := &apperror.ValidationError{}
		for _, slug := range slugs {
			if !known[slug] {
				ve.Add("genre", fmt.Sprintf("unknown genre %q", slug))
			}
		}
		return nil, ve
	}
	return genres, nil
}
