package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/identity"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/models"
	"reviewhub/pkg/apperror"
)

// MockReviewService mocks the ReviewService interface
type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) List(ctx context.Context, titleID int64, page, pageSize int) (*dto.Paginated, error) {
	args := m.Called(ctx, titleID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.Paginated), args.Error(1)
}

func (m *MockReviewService) Get(ctx context.Context, titleID, reviewID int64) (*models.Review, error) {
	args := m.Called(ctx, titleID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Create(ctx context.Context, titleID int64, author identity.Identity, req dto.CreateReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, titleID, author, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, titleID, reviewID int64, who identity.Identity, req dto.UpdateReviewRequest) (*models.Review, error) {
	args := m.Called(ctx, titleID, reviewID, who, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Review), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, titleID, reviewID int64, who identity.Identity) error {
	args := m.Called(ctx, titleID, reviewID, who)
	return args.Error(0)
}

func setupReviewRouter(reviewService *MockReviewService, auth *MockAuthService) *gin.Engine {
	router := setupRouter()
	router.Use(middleware.Authenticate(auth))
	NewReviewHandler(reviewService).RegisterRoutes(router.Group("/titles"))
	return router
}

func TestReviewsList_Public(t *testing.T) {
	reviewService := new(MockReviewService)
	reviewService.On("List", mock.Anything, int64(1), 1, 20).
		Return(dto.NewPaginated([]dto.ReviewResponse{{ID: 9, Score: 8}}, 1, 1, 20), nil)
	router := setupReviewRouter(reviewService, new(MockAuthService))

	w := doRequest(router, http.MethodGet, "/titles/1/reviews", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Paginated
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, int64(1), resp.Count)
}

func TestReviewsList_UnknownTitle(t *testing.T) {
	reviewService := new(MockReviewService)
	reviewService.On("List", mock.Anything, int64(99), 1, 20).Return(nil, apperror.ErrNotFound)
	router := setupReviewRouter(reviewService, new(MockAuthService))

	w := doRequest(router, http.MethodGet, "/titles/99/reviews", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewsList_BadTitleID(t *testing.T) {
	router := setupReviewRouter(new(MockReviewService), new(MockAuthService))

	w := doRequest(router, http.MethodGet, "/titles/abc/reviews", "", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewsCreate_AnonymousUnauthorized(t *testing.T) {
	reviewService := new(MockReviewService)
	router := setupReviewRouter(reviewService, new(MockAuthService))

	w := doRequest(router, http.MethodPost, "/titles/1/reviews", "", dto.CreateReviewRequest{Text: "x", Score: 5})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	reviewService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewsCreate_Authenticated(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("ValidateToken", "user-token").Return(asIdentity(5, "alice", models.RoleUser), nil)
	reviewService := new(MockReviewService)
	review := &models.Review{ID: 9, TitleID: 1, AuthorID: 5, Text: "great", Score: 8, Author: &models.User{Username: "alice"}}
	reviewService.On("Create", mock.Anything, int64(1), mock.Anything, dto.CreateReviewRequest{Text: "great", Score: 8}).
		Return(review, nil)
	router := setupReviewRouter(reviewService, auth)

	w := doRequest(router, http.MethodPost, "/titles/1/reviews", "user-token", dto.CreateReviewRequest{Text: "great", Score: 8})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp dto.ReviewResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Equal(t, "alice", resp.Author)

	// the identity passed through is the token's, not anything in the body
	who := reviewService.Calls[0].Arguments.Get(2).(identity.Identity)
	assert.Equal(t, int64(5), who.UserID)
}

func TestReviewsCreate_ScoreValidatedAtBinding(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("ValidateToken", "user-token").Return(asIdentity(5, "alice", models.RoleUser), nil)
	reviewService := new(MockReviewService)
	router := setupReviewRouter(reviewService, auth)

	for _, score := range []int{0, 11} {
		w := doRequest(router, http.MethodPost, "/titles/1/reviews", "user-token", gin.H{"text": "x", "score": score})

		assert.Equal(t, http.StatusBadRequest, w.Code, "score %d", score)
	}
	reviewService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReviewsCreate_Duplicate(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("ValidateToken", "user-token").Return(asIdentity(5, "alice", models.RoleUser), nil)
	reviewService := new(MockReviewService)
	reviewService.On("Create", mock.Anything, int64(1), mock.Anything, mock.Anything).
		Return(nil, apperror.NewValidation("title", "you have already reviewed this title"))
	router := setupReviewRouter(reviewService, auth)

	w := doRequest(router, http.MethodPost, "/titles/1/reviews", "user-token", dto.CreateReviewRequest{Text: "again", Score: 7})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReviewsUpdate_Forbidden(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("ValidateToken", "other-token").Return(asIdentity(6, "bob", models.RoleUser), nil)
	reviewService := new(MockReviewService)
	reviewService.On("Update", mock.Anything, int64(1), int64(9), mock.Anything, mock.Anything).
		Return(nil, apperror.ErrForbidden)
	router := setupReviewRouter(reviewService, auth)

	w := doRequest(router, http.MethodPatch, "/titles/1/reviews/9", "other-token", gin.H{"text": "hijack"})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestReviewsDelete_NoContent(t *testing.T) {
	auth := new(MockAuthService)
	auth.On("ValidateToken", "mod-token").Return(asIdentity(2, "mod", models.RoleModerator), nil)
	reviewService := new(MockReviewService)
	reviewService.On("Delete", mock.Anything, int64(1), int64(9), mock.Anything).Return(nil)
	router := setupReviewRouter(reviewService, auth)

	w := doRequest(router, http.MethodDelete, "/titles/1/reviews/9", "mod-token", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
