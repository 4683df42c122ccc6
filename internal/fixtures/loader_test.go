package fixtures

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"reviewhub/internal/api/models"
)

func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile_Users(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "users.csv",
		"id,username,email,role,bio,first_name,last_name\n"+
			"1,admin,admin@example.com,admin,,Ann,Admin\n"+
			"2,bob,bob@example.com,user,likes movies,,\n")

	users, err := loadFile(path, parseUser)

	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, models.RoleAdmin, users[0].Role)
	assert.Equal(t, "Ann", users[0].FirstName)
	assert.Equal(t, "likes movies", users[1].Bio)
}

func TestLoadFile_UserBadRole(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "users.csv",
		"id,username,email,role,bio,first_name,last_name\n"+
			"1,x,x@example.com,wizard,,,\n")

	_, err := loadFile(path, parseUser)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadFile_TitleOptionalCategory(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "titles.csv",
		"id,name,year,category\n"+
			"1,Heat,1995,2\n"+
			"2,Unfiled,2001,\n")

	titles, err := loadFile(path, parseTitle)

	assert.NoError(t, err)
	assert.Len(t, titles, 2)
	assert.NotNil(t, titles[0].CategoryID)
	assert.Equal(t, int64(2), *titles[0].CategoryID)
	assert.Nil(t, titles[1].CategoryID)
}

func TestLoadFile_Reviews(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "review.csv",
		"id,title_id,text,author,score,pub_date\n"+
			`1,1,"Wonderful, truly",2,10,2019-09-24T21:08:21.567Z`+"\n")

	reviews, err := loadFile(path, parseReview)

	assert.NoError(t, err)
	assert.Len(t, reviews, 1)
	assert.Equal(t, "Wonderful, truly", reviews[0].Text)
	assert.Equal(t, int64(2), reviews[0].AuthorID)
	assert.Equal(t, 10, reviews[0].Score)
	assert.Equal(t, 2019, reviews[0].PubDate.Year())
}

func TestLoadFile_ReviewScoreOutOfRange(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "review.csv",
		"id,title_id,text,author,score,pub_date\n"+
			"1,1,meh,2,15,2019-09-24T21:08:21.567Z\n")

	_, err := loadFile(path, parseReview)

	assert.Error(t, err)
}

func TestLoadFile_Comments(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "comments.csv",
		"id,review_id,text,author,pub_date\n"+
			"1,1,agreed,3,2019-09-24T21:08:21Z\n")

	comments, err := loadFile(path, parseComment)

	assert.NoError(t, err)
	assert.Len(t, comments, 1)
	assert.Equal(t, int64(1), comments[0].ReviewID)
	assert.Equal(t, time.Date(2019, 9, 24, 21, 8, 21, 0, time.UTC), comments[0].PubDate)
}

func TestLoadFile_GenreTitleJoin(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "genre_title.csv",
		"id,title_id,genre_id\n1,1,1\n2,1,2\n")

	rows, err := loadFile(path, parseTitleGenre)

	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, int64(2), rows[1].GenreID)
}

func TestLoadFile_MalformedRecord(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "category.csv",
		"id,name,slug\n"+
			"1,Movies,movies\n"+
			"2,broken-row\n"+
			"3,Books,books\n")

	rows, err := loadFile(path, parseCategory)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
	assert.Nil(t, rows)
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := loadFile(filepath.Join(t.TempDir(), "users.csv"), parseUser)

	assert.Error(t, err)
}

func TestParsePubDate(t *testing.T) {
	for _, raw := range []string{"2019-09-24T21:08:21.567Z", "2019-09-24T21:08:21Z"} {
		_, err := parsePubDate(raw)
		assert.NoError(t, err, "timestamp %q", raw)
	}

	_, err := parsePubDate("24/09/2019")
	assert.Error(t, err)
}
