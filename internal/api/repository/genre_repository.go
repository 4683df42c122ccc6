package repository

import (
	"context"

	"gorm.io/gorm"

	"reviewhub/internal/api/models"
)

type GenreRepository interface {
	Create(ctx context.Context, g *models.Genre) error
	FindBySlug(ctx context.Context, slug string) (*models.Genre, error)
	FindBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error)
	DeleteBySlug(ctx context.Context, slug string) error
	List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error)
}

type genreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) GenreRepository {
	return &genreRepository{db: db}
}

func (r *genreRepository) Create(ctx context.Context, g *models.Genre) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *genreRepository) FindBySlug(ctx context.Context, slug string) (*models.Genre, error) {
	var g models.Genre
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&g).Error; err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *genreRepository) FindBySlugs(ctx context.Context, slugs []string) ([]models.Genre, error) {
	var list []models.Genre
	if len(slugs) == 0 {
		return list, nil
	}
	if err := r.db.WithContext(ctx).Where("slug IN ?", slugs).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteBySlug removes the genre and its join rows; titles themselves are
// untouched.
func (r *genreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var g models.Genre
		if err := tx.Where("slug = ?", slug).First(&g).Error; err != nil {
			return err
		}
		if err := tx.Where("genre_id = ?", g.ID).Delete(&models.TitleGenre{}).Error; err != nil {
			return err
		}
		return tx.Delete(&g).Error
	})
}

func (r *genreRepository) List(ctx context.Context, search string, page, pageSize int) ([]models.Genre, int64, error) {
	var list []models.Genre
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Genre{})
	if search != "" {
		q = q.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := q.Order("name asc").Limit(pageSize).Offset(offset).Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}
