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

type ReviewService interface {
	List(ctx context.Context, titleID int64, page, pageSize int) (*dto.Paginated, error)
	Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error)
	Create(ctx context.Context, titleID int64, author identity.Identity, req dto.CreateReviewRequest) (*models.Review, error)
	Update(ctx context.Context, titleID, reviewID int64, who identity.Identity, req dto.UpdateReviewRequest) (*models.Review, error)
	Delete(ctx context.Context, titleID, reviewID int64, who identity.Identity) error
}

type reviewService struct {
	reviewRepo repository.ReviewRepository
	titleRepo  repository.TitleRepository
}

func NewReviewService(reviewRepo repository.ReviewRepository, titleRepo repository.TitleRepository) ReviewService {
	return &reviewService{reviewRepo: reviewRepo, titleRepo: titleRepo}
}

func (s *reviewService) List(ctx context.Context, titleID int64, page, pageSize int) (*dto.Paginated, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	reviews, total, err := s.reviewRepo.ListByTitle(ctx, titleID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}

	results := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		results = append(results, dto.FromReview(&reviews[i]))
	}
	return dto.NewPaginated(results, total, page, pageSize), nil
}

func (s *reviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}

	review, err := s.reviewRepo.FindByID(ctx, titleID, reviewID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return review, nil
}

// Create auto-populates the author from the acting identity - clients cannot
// spoof authorship. At most one review per (title, author): the check here is
// advisory, the unique index settles the race.
func (s *reviewService) Create(ctx context.Context, titleID int64, author identity.Identity, req dto.CreateReviewRequest) (*models.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	if !models.ValidScore(req.Score) {
		return nil, apperror.NewValidation("score", "score must be between 1 and 10")
	}

	if _, err := s.reviewRepo.FindByTitleAndAuthor(ctx, titleID, author.UserID); err == nil {
		return nil, apperror.NewValidation("title", "you have already reviewed this title")
	} else if !repository.IsNotFound(err) {
		return nil, fmt.Errorf("find review: %w", err)
	}

	review := &models.Review{
		TitleID:  titleID,
		AuthorID: author.UserID,
		Text:     req.Text,
		Score:    req.Score,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperror.NewValidation("title", "you have already reviewed this title")
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	return s.Get(ctx, titleID, review.ID)
}

func (s *reviewService) Update(ctx context.Context, titleID, reviewID int64, who identity.Identity, req dto.UpdateReviewRequest) (*models.Review, error) {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if !who.Owns(review.AuthorID) && !who.CanModerate() {
		return nil, apperror.ErrForbidden
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		if !models.ValidScore(*req.Score) {
			return nil, apperror.NewValidation("score", "score must be between 1 and 10")
		}
		review.Score = *req.Score
	}

	if err := s.reviewRepo.Update(ctx, review); err != nil {
		return nil, fmt.Errorf("update review: %w", err)
	}
	return review, nil
}

func (s *reviewService) Delete(ctx context.Context, titleID, reviewID int64, who identity.Identity) error {
	review, err := s.Get(ctx, titleID, reviewID)
	if err != nil {
		return err
	}
	if !who.Owns(review.AuthorID) && !who.CanModerate() {
		return apperror.ErrForbidden
	}

	if err := s.reviewRepo.Delete(ctx, review.ID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}

func (s *reviewService) requireTitle(ctx context.Context, titleID int64) error {
	exists, err := s.titleRepo.Exists(ctx, titleID)
	if err != nil {
		return fmt.Errorf("check title: %w", err)
	}
	if !exists {
		return apperror.ErrNotFound
	}
	return nil
}
