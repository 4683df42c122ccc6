package fixtures

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gorm.io/gorm"

	"reviewhub/internal/api/models"
)

const insertBatchSize = 500

// Loader bulk-imports the CSV fixture set into the database. Files are
// loaded in dependency order so foreign keys resolve.
type Loader struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewLoader(db *gorm.DB, logger *slog.Logger) *Loader {
	return &Loader{db: db, logger: logger}
}

// LoadDir reads the seven fixture files from dir and inserts them inside a
// single transaction. Every file must be present.
func (l *Loader) LoadDir(ctx context.Context, dir string) error {
	users, err := loadFile(filepath.Join(dir, "users.csv"), parseUser)
	if err != nil {
		return err
	}
	categories, err := loadFile(filepath.Join(dir, "category.csv"), parseCategory)
	if err != nil {
		return err
	}
	genres, err := loadFile(filepath.Join(dir, "genre.csv"), parseGenre)
	if err != nil {
		return err
	}
	titles, err := loadFile(filepath.Join(dir, "titles.csv"), parseTitle)
	if err != nil {
		return err
	}
	titleGenres, err := loadFile(filepath.Join(dir, "genre_title.csv"), parseTitleGenre)
	if err != nil {
		return err
	}
	reviews, err := loadFile(filepath.Join(dir, "review.csv"), parseReview)
	if err != nil {
		return err
	}
	comments, err := loadFile(filepath.Join(dir, "comments.csv"), parseComment)
	if err != nil {
		return err
	}

	return l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, step := range []struct {
			name string
			rows any
			n    int
		}{
			{"users", users, len(users)},
			{"categories", categories, len(categories)},
			{"genres", genres, len(genres)},
			{"titles", titles, len(titles)},
			{"title_genres", titleGenres, len(titleGenres)},
			{"reviews", reviews, len(reviews)},
			{"comments", comments, len(comments)},
		} {
			if err := tx.CreateInBatches(step.rows, insertBatchSize).Error; err != nil {
				return fmt.Errorf("insert %s: %w", step.name, err)
			}
			l.logger.Info("fixtures loaded", "table", step.name, "rows", step.n)
		}
		return nil
	})
}

// loadFile reads one CSV file with a header row and converts each record
// through parse, keyed by column name the way the fixtures are shipped.
func loadFile[T any](path string, parse func(row map[string]string) (T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", filepath.Base(path), err)
	}

	var out []T
	line := 1
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s line %d: %w", filepath.Base(path), line+1, err)
		}
		line++
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		v, err := parse(row)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", filepath.Base(path), line, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseUser(row map[string]string) (models.User, error) {
	id, err := parseInt64(row, "id")
	if err != nil {
		return models.User{}, err
	}
	role, err := models.ParseRole(row["role"])
	if err != nil {
		return models.User{}, fmt.Errorf("user %d: %w", id, err)
	}
	return models.User{
		ID:        id,
		Username:  row["username"],
		Email:     row["email"],
		Role:      role,
		Bio:       row["bio"],
		FirstName: row["first_name"],
		LastName:  row["last_name"],
	}, nil
}

func parseCategory(row map[string]string) (models.Category, error) {
	id, err := parseInt64(row, "id")
	if err != nil {
		return models.Category{}, err
	}
	return models.Category{ID: id, Name: row["name"], Slug: row["slug"]}, nil
}

func parseGenre(row map[string]string) (models.Genre, error) {
	id, err := parseInt64(row, "id")
	if err != nil {
		return models.Genre{}, err
	}
	return models.Genre{ID: id, Name: row["name"], Slug: row["slug"]}, nil
}

func parseTitle(row map[string]string) (models.Title, error) {
	id, err := parseInt64(row, "id")
	if err != nil {
		return models.Title{}, err
	}
	year, err := strconv.Atoi(row["year"])
	if err != nil {
		return models.Title{}, fmt.Errorf("title %d: invalid year %q", id, row["year"])
	}
	title := models.Title{ID: id, Name: row["name"], Year: year}
	if raw := row["category"]; raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return models.Title{}, fmt.Errorf("title %d: invalid category %q", id, raw)
		}
		title.CategoryID = &categoryID
	}
	return title, nil
}

func parseTitleGenre(row map[string]string) (models.TitleGenre, error) {
	id, err := parseInt64(row, "id")
	if err != nil {
		return models.TitleGenre{}, err
	}
	titleID, err := parseInt64(row, "title_id")
	if err != nil {
		return models.TitleGenre{}, err
	}
	genreID, err := parseInt64(row, "genre_id")
	if err != nil {
		return models.TitleGenre{}, err
	}
	return models.TitleGenre{ID: id, TitleID: titleID, GenreID: genreID}, nil
}

func parseReview(row map[string]string) (models.Review, error) {
	id, err := parseInt64(row, "id")
	if err != nil {
		return models.Review{}, err
	}
	titleID, err := parseInt64(row, "title_id")
	if err != nil {
		return models.Review{}, err
	}
	authorID, err := parseInt64(row, "author")
	if err != nil {
		return models.Review{}, err
	}
	score, err := strconv.Atoi(row["score"])
	if err != nil || !models.ValidScore(score) {
		return models.Review{}, fmt.Errorf("review %d: invalid score %q", id, row["score"])
	}
	pubDate, err := parsePubDate(row["pub_date"])
	if err != nil {
		return models.Review{}, fmt.Errorf("review %d: %w", id, err)
	}
	return models.Review{
		ID:       id,
		TitleID:  titleID,
		AuthorID: authorID,
		Text:     row["text"],
		Score:    score,
		PubDate:  pubDate,
	}, nil
}

func parseComment(row map[string]string) (models.Comment, error) {
	id, err := parseInt64(row, "id")
	if err != nil {
		return models.Comment{}, err
	}
	reviewID, err := parseInt64(row, "review_id")
	if err != nil {
		return models.Comment{}, err
	}
	authorID, err := parseInt64(row, "author")
	if err != nil {
		return models.Comment{}, err
	}
	pubDate, err := parsePubDate(row["pub_date"])
	if err != nil {
		return models.Comment{}, fmt.Errorf("comment %d: %w", id, err)
	}
	return models.Comment{
		ID:       id,
		ReviewID: reviewID,
		AuthorID: authorID,
		Text:     row["text"],
		PubDate:  pubDate,
	}, nil
}

func parseInt64(row map[string]string, col string) (int64, error) {
	v, err := strconv.ParseInt(row[col], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", col, row[col])
	}
	return v, nil
}

// parsePubDate accepts the RFC 3339 timestamps the dataset ships, with or
// without fractional seconds.
func parsePubDate(raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid pub_date %q", raw)
	}
	return t, nil
}
