//go:build integration
// +build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"reviewhub/internal/api/models"
)

// setupDB starts a throwaway postgres container and migrates the schema the
// same way the server does, so FK constraints and unique indexes are real.
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:alpine",
		tcpostgres.WithDatabase("reviewhub_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Genre{},
		&models.TitleGenre{},
		&models.Title{},
		&models.Review{},
		&models.Comment{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	u := models.User{Username: username, Email: username + "@example.com", Role: models.RoleUser}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func seedTitle(t *testing.T, db *gorm.DB, name string, categoryID *int64) models.Title {
	t.Helper()
	title := models.Title{Name: name, Year: 2001, CategoryID: categoryID}
	if err := db.Create(&title).Error; err != nil {
		t.Fatalf("seed title %s: %v", name, err)
	}
	return title
}

func seedReview(t *testing.T, db *gorm.DB, titleID, authorID int64, score int) models.Review {
	t.Helper()
	review := models.Review{TitleID: titleID, AuthorID: authorID, Text: "fine", Score: score}
	if err := db.Create(&review).Error; err != nil {
		t.Fatalf("seed review: %v", err)
	}
	return review
}

func TestTitleRepository_RatingIsMeanOfScores(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewTitleRepository(db)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	rated := seedTitle(t, db, "Heat", nil)
	unrated := seedTitle(t, db, "Unseen", nil)
	seedReview(t, db, rated.ID, alice.ID, 6)
	seedReview(t, db, rated.ID, bob.ID, 9)

	got, err := repo.FindByID(ctx, rated.ID)
	assert.NoError(t, err)
	if assert.NotNil(t, got.Rating) {
		assert.InDelta(t, 7.5, *got.Rating, 0.001)
	}

	got, err = repo.FindByID(ctx, unrated.ID)
	assert.NoError(t, err)
	assert.Nil(t, got.Rating)
}

func TestTitleRepository_ListCarriesRating(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewTitleRepository(db)

	alice := seedUser(t, db, "alice")
	title := seedTitle(t, db, "Heat", nil)
	seedReview(t, db, title.ID, alice.ID, 8)

	list, total, err := repo.List(ctx, TitleFilter{}, 1, 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	if assert.Len(t, list, 1) && assert.NotNil(t, list[0].Rating) {
		assert.InDelta(t, 8.0, *list[0].Rating, 0.001)
	}
}

func TestTitleRepository_DeleteCascadesReviewsAndComments(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewTitleRepository(db)

	alice := seedUser(t, db, "alice")
	title := seedTitle(t, db, "Heat", nil)
	review := seedReview(t, db, title.ID, alice.ID, 7)
	comment := models.Comment{ReviewID: review.ID, AuthorID: alice.ID, Text: "agreed"}
	assert.NoError(t, db.Create(&comment).Error)

	assert.NoError(t, repo.Delete(ctx, title.ID))

	var reviews, comments int64
	assert.NoError(t, db.Model(&models.Review{}).Count(&reviews).Error)
	assert.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.Zero(t, reviews)
	assert.Zero(t, comments)
}

func TestTitleRepository_CategoryDeleteSetsNull(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewTitleRepository(db)

	category := models.Category{Name: "Movies", Slug: "movies"}
	assert.NoError(t, db.Create(&category).Error)
	title := seedTitle(t, db, "Heat", &category.ID)

	assert.NoError(t, db.Delete(&models.Category{}, category.ID).Error)

	got, err := repo.FindByID(ctx, title.ID)
	assert.NoError(t, err)
	assert.Nil(t, got.CategoryID)
	assert.Nil(t, got.Category)
}

func TestReviewRepository_DuplicateAuthorUniqueViolation(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewReviewRepository(db)

	alice := seedUser(t, db, "alice")
	title := seedTitle(t, db, "Heat", nil)
	seedReview(t, db, title.ID, alice.ID, 7)

	err := repo.Create(ctx, &models.Review{TitleID: title.ID, AuthorID: alice.ID, Text: "again", Score: 3})
	assert.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
}

func TestReviewRepository_DeleteCascadesComments(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	repo := NewReviewRepository(db)

	alice := seedUser(t, db, "alice")
	title := seedTitle(t, db, "Heat", nil)
	review := seedReview(t, db, title.ID, alice.ID, 7)
	comment := models.Comment{ReviewID: review.ID, AuthorID: alice.ID, Text: "agreed"}
	assert.NoError(t, db.Create(&comment).Error)

	assert.NoError(t, repo.Delete(ctx, review.ID))

	var comments int64
	assert.NoError(t, db.Model(&models.Comment{}).Count(&comments).Error)
	assert.Zero(t, comments)
}
