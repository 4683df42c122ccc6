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

type CommentService interface {
	List(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.Paginated, error)
	Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error)
	Create(ctx context.Context, titleID, reviewID int64, author identity.Identity, req dto.CreateCommentRequest) (*models.Comment, error)
	Update(ctx context.Context, titleID, reviewID, commentID int64, who identity.Identity, req dto.UpdateCommentRequest) (*models.Comment, error)
	Delete(ctx context.Context, titleID, reviewID, commentID int64, who identity.Identity) error
}

type commentService struct {
	commentRepo repository.CommentRepository
	reviewRepo  repository.ReviewRepository
}

func NewCommentService(commentRepo repository.CommentRepository, reviewRepo repository.ReviewRepository) CommentService {
	return &commentService{commentRepo: commentRepo, reviewRepo: reviewRepo}
}

func (s *commentService) List(ctx context.Context, titleID, reviewID int64, page, pageSize int) (*dto.Paginated, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.ListByReview(ctx, reviewID, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	results := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		results = append(results, dto.FromComment(&comments[i]))
	}
	return dto.NewPaginated(results, total, page, pageSize), nil
}

func (s *commentService) Get(ctx context.Context, titleID, reviewID, commentID int64) (*models.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment, err := s.commentRepo.FindByID(ctx, reviewID, commentID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return comment, nil
}

// Create auto-populates the author and parent review from the request path.
func (s *commentService) Create(ctx context.Context, titleID, reviewID int64, author identity.Identity, req dto.CreateCommentRequest) (*models.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ReviewID: reviewID,
		AuthorID: author.UserID,
		Text:     req.Text,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	return s.Get(ctx, titleID, reviewID, comment.ID)
}

func (s *commentService) Update(ctx context.Context, titleID, reviewID, commentID int64, who identity.Identity, req dto.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if !who.Owns(comment.AuthorID) && !who.CanModerate() {
		return nil, apperror.ErrForbidden
	}

	if req.Text != nil {
		comment.Text = *req.Text
	}

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, titleID, reviewID, commentID int64, who identity.Identity) error {
	comment, err := s.Get(ctx, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if !who.Owns(comment.AuthorID) && !who.CanModerate() {
		return apperror.ErrForbidden
	}

	if err := s.commentRepo.Delete(ctx, comment.ID); err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return nil
}

// requireReview checks the review exists under the given title, so comments
// can only be reached through their own title/review path.
func (s *commentService) requireReview(ctx context.Context, titleID, reviewID int64) error {
	if _, err := s.reviewRepo.FindByID(ctx, titleID, reviewID); err != nil {
		if repository.IsNotFound(err) {
			return apperror.ErrNotFound
		}
		return fmt.Errorf("check review: %w", err)
	}
	return nil
}
