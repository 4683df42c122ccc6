package repository

import (
	"context"

	"gorm.io/gorm"

	"reviewhub/internal/api/models"
)

// ratingSelect projects the mean review score onto each title row. Rating is
// a computed column, not persisted state.
const ratingSelect = "titles.*, (SELECT AVG(score) FROM reviews WHERE reviews.title_id = titles.id) AS rating"

// TitleFilter narrows title listings. Zero values mean "no filter".
type TitleFilter struct {
	Name         string
	CategorySlug string
	GenreSlug    string
	Year         *int
}

type TitleRepository interface {
	Create(ctx context.Context, t *models.Title) error
	Update(ctx context.Context, t *models.Title) error
	ReplaceGenres(ctx context.Context, t *models.Title, genres []models.Genre) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*models.Title, error)
	Exists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error)
}

type titleRepository struct {
	db *gorm.DB
}

func NewTitleRepository(db *gorm.DB) TitleRepository {
	return &titleRepository{db: db}
}

func (r *titleRepository) Create(ctx context.Context, t *models.Title) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *titleRepository) Update(ctx context.Context, t *models.Title) error {
	// Save would try to upsert associations; limit the write to title columns
	return r.db.WithContext(ctx).Model(t).
		Select("name", "year", "description", "category_id").
		Updates(map[string]interface{}{
			"name":        t.Name,
			"year":        t.Year,
			"description": t.Description,
			"category_id": t.CategoryID,
		}).Error
}

func (r *titleRepository) ReplaceGenres(ctx context.Context, t *models.Title, genres []models.Genre) error {
	return r.db.WithContext(ctx).Model(t).Association("Genres").Replace(genres)
}

// Delete cascades to the title's reviews and their comments via the FK
// constraints.
func (r *titleRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Title{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *titleRepository) FindByID(ctx context.Context, id int64) (*models.Title, error) {
	var t models.Title
	if err := r.db.WithContext(ctx).
		Select(ratingSelect).
		Preload("Category").
		Preload("Genres").
		First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *titleRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Title{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *titleRepository) List(ctx context.Context, filter TitleFilter, page, pageSize int) ([]models.Title, int64, error) {
	var list []models.Title
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Title{})
	if filter.Name != "" {
		q = q.Where("titles.name ILIKE ?", "%"+filter.Name+"%")
	}
	if filter.Year != nil {
		q = q.Where("titles.year = ?", *filter.Year)
	}
	if filter.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = titles.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		q = q.Joins("JOIN title_genres tg ON tg.title_id = titles.id").
			Joins("JOIN genres g ON g.id = tg.genre_id").
			Where("g.slug = ?", filter.GenreSlug)
	}

	if err := q.Distinct("titles.id").Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := q.
		Select(ratingSelect).
		Preload("Category").
		Preload("Genres").
		Order("titles.name asc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}

	return list, total, nil
}
