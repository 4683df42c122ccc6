package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/models"
	"reviewhub/pkg/apperror"
)

// MockCategoryRepository mocks the CategoryRepository interface
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *models.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

func (m *MockCategoryRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.Category, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Category), args.Get(1).(int64), args.Error(2)
}

// MockGenreRepository mocks the GenreRepository interface
type MockGenreRepository struct {
	mock.Mock
}

func (m *MockGenreRepository) Create(ctx context.Context, g *models.Genre) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockGenreRepository) FindBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Genre), args.Error(1)
}

func (m *MockGenreRepository) FindBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	args := m.Called(ctx, slugs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Genre), args.Error(1)
}

func (m *MockGenreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	args := m.Called(ctx, slug)
	return args.Error(0)
}

func (m *MockGenreRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	args := m.Called(ctx, search, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Genre), args.Get(1).(int64), args.Error(2)
}

func TestTitleCreate_ResolvesCategoryAndGenres(t *testing.T) {
	titleRepo := new(MockTitleRepository)
	categoryRepo := new(MockCategoryRepository)
	genreRepo := new(MockGenreRepository)
	svc := NewTitleService(titleRepo, categoryRepo, genreRepo)

	category := "movie"
	categoryRepo.On("FindBySlug", mock.Anything, "movie").Return(&models.Category{ID: 2, Slug: "movie"}, nil)
	genreRepo.On("FindBySlugs", mock.Anything, []string{"drama"}).Return([]models.Genre{{ID: 3, Slug: "drama"}}, nil)
	titleRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Title")).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Title).ID = 7
	}).Return(nil)
	titleRepo.On("FindByID", mock.Anything, int64(7)).
		Return(&models.Title{ID: 7, Name: "Heat", Year: 1995}, nil)

	title, err := svc.Create(context.Background(), dto.CreateTitleRequest{
		Name:     "Heat",
		Year:     1995,
		Category: &category,
		Genre:    []string{"drama"},
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(7), title.ID)
	titleRepo.AssertExpectations(t)
}

func TestTitleCreate_FutureYear(t *testing.T) {
	svc := NewTitleService(new(MockTitleRepository), new(MockCategoryRepository), new(MockGenreRepository))

	_, err := svc.Create(context.Background(), dto.CreateTitleRequest{
		Name: "From the future",
		Year: time.Now().Year() + 1,
	})

	ve, ok := apperror.AsValidation(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "year")
}

func TestTitleCreate_UnknownCategory(t *testing.T) {
	categoryRepo := new(MockCategoryRepository)
	svc := NewTitleService(new(MockTitleRepository), categoryRepo, new(MockGenreRepository))

	category := "nope"
	categoryRepo.On("FindBySlug", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), dto.CreateTitleRequest{
		Name:     "x",
		Year:     2000,
		Category: &category,
	})

	ve, ok := apperror.AsValidation(err)
	assert.True(t, ok)
	assert.Contains(t, ve.Fields, "category")
}

func TestTitleCreate_UnknownGenres(t *testing.T) {
	genreRepo := new(MockGenreRepository)
	svc := NewTitleService(new(MockTitleRepository), new(MockCategoryRepository), genreRepo)

	genreRepo.On("FindBySlugs", mock.Anything, []string{"drama", "nope", "nada"}).
		Return([]models.Genre{{ID: 3, Slug: "drama"}}, nil)

	_, err := svc.Create(context.Background(), dto.CreateTitleRequest{
		Name:  "x",
		Year:  2000,
		Genre: []string{"drama", "nope", "nada"},
	})

	ve, ok := apperror.AsValidation(err)
	assert.True(t, ok)
	assert.Len(t, ve.Fields["genre"], 2)
}

func TestTitleUpdate_ReplacesGenres(t *testing.T) {
	titleRepo := new(MockTitleRepository)
	genreRepo := new(MockGenreRepository)
	svc := NewTitleService(titleRepo, new(MockCategoryRepository), genreRepo)

	stored := &models.Title{ID: 7, Name: "Heat", Year: 1995}
	titleRepo.On("FindByID", mock.Anything, int64(7)).Return(stored, nil)
	titleRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
	newGenres := []models.Genre{{ID: 4, Slug: "thriller"}}
	genreRepo.On("FindBySlugs", mock.Anything, []string{"thriller"}).Return(newGenres, nil)
	titleRepo.On("ReplaceGenres", mock.Anything, mock.Anything, newGenres).Return(nil)

	genre := []string{"thriller"}
	_, err := svc.Update(context.Background(), 7, dto.UpdateTitleRequest{Genre: &genre})

	assert.NoError(t, err)
	titleRepo.AssertCalled(t, "ReplaceGenres", mock.Anything, mock.Anything, newGenres)
}

func TestTitleDelete_NotFound(t *testing.T) {
	titleRepo := new(MockTitleRepository)
	svc := NewTitleService(titleRepo, new(MockCategoryRepository), new(MockGenreRepository))

	titleRepo.On("Delete", mock.Anything, int64(99)).Return(gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), 99)

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
