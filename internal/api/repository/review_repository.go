package repository

import (
	"context"

	"gorm.io/gorm"

	"reviewhub/internal/api/models"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	FindByTitleAndAuthor(ctx context.Context, titleID, authorID int64) (*models.Review, error)
	ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Create(review).Error
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Model(review).
		Updates(map[string]interface{}{
			"text":  review.Text,
			"score": review.Score,
		}).Error
}

// Delete cascades to the review's comments via the FK constraint.
func (r *reviewRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID scopes the lookup to the parent title so a review can never be
// addressed through another title's path.
func (r *reviewRepository) FindByID(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).
		Where("title_id = ?", titleID).
		Preload("Author").
		First(&review, reviewID).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) FindByTitleAndAuthor(ctx context.Context, titleID, authorID int64) (*models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).
		Where("title_id = ? AND author_id = ?", titleID, authorID).
		First(&review).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *reviewRepository) ListByTitle(ctx context.Context, titleID int64, page, pageSize int) ([]models.Review, int64, error) {
	var reviews []models.Review
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("title_id = ?", titleID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Where("title_id = ?", titleID).
		Preload("Author").
		Order("pub_date DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}
