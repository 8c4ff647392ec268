package hashtags

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      conn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestUpsertNewTag(t *testing.T) {
	db, mock := newTestDB(t)
	ix := NewIndexer(db)

	mock.ExpectQuery("SELECT (.+) FROM `hashtags`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tag", "count"}))
	mock.ExpectExec("INSERT INTO `hashtags`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `hashtag_posts`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, ix.Upsert(db, []string{"#go"}, 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertExistingTagIncrementsCount(t *testing.T) {
	db, mock := newTestDB(t)
	ix := NewIndexer(db)

	mock.ExpectQuery("SELECT (.+) FROM `hashtags`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tag", "count"}).AddRow(7, "#go", 3))
	mock.ExpectExec("UPDATE `hashtags` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `hashtag_posts`").
		WillReturnResult(sqlmock.NewResult(2, 1))

	require.NoError(t, ix.Upsert(db, []string{"#go"}, 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertDuplicateOccurrenceCountsTwice(t *testing.T) {
	db, mock := newTestDB(t)
	ix := NewIndexer(db)

	// same tag twice in one post: two lookups, two increments, two link rows
	mock.ExpectQuery("SELECT (.+) FROM `hashtags`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tag", "count"}).AddRow(7, "#go", 1))
	mock.ExpectExec("UPDATE `hashtags` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `hashtag_posts`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT (.+) FROM `hashtags`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tag", "count"}).AddRow(7, "#go", 2))
	mock.ExpectExec("UPDATE `hashtags` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `hashtag_posts`").
		WillReturnResult(sqlmock.NewResult(2, 1))

	require.NoError(t, ix.Upsert(db, []string{"#go", "#go"}, 42))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLookupSkipsDeadPostsAndMissingUsers(t *testing.T) {
	db, mock := newTestDB(t)
	ix := NewIndexer(db)

	createdAt := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM `hashtags`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tag", "count"}).AddRow(1, "#go", 3))
	mock.ExpectQuery("SELECT (.+) FROM `hashtag_posts`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "hashtag_id", "post_id"}).
			AddRow(1, 1, 10).
			AddRow(2, 1, 99). // post 99 was deleted
			AddRow(3, 1, 10))
	mock.ExpectQuery("SELECT (.+) FROM `posts`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content", "created_at"}).
			AddRow(10, 5, "shipping #go", createdAt))
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}))

	entry, posts, err := ix.Lookup("#go")
	require.NoError(t, err)
	assert.Equal(t, "#go", entry.Tag)
	assert.Equal(t, 3, entry.Count)

	// dead id skipped, surviving id kept in link order including the duplicate
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.Equal(t, uint(10), p.PostID)
		assert.Equal(t, "Unknown User", p.Username)
		assert.Equal(t, `shipping <a href="/hashtags/go" class="hashtag-links">#go</a>`, p.ContentHTML)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLookupUnknownTag(t *testing.T) {
	db, mock := newTestDB(t)
	ix := NewIndexer(db)

	mock.ExpectQuery("SELECT (.+) FROM `hashtags`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tag", "count"}))

	_, _, err := ix.Lookup("#nope")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestTrending(t *testing.T) {
	db, mock := newTestDB(t)
	ix := NewIndexer(db)

	mock.ExpectQuery("SELECT tag, count FROM `hashtags`").
		WillReturnRows(sqlmock.NewRows([]string{"tag", "count"}).
			AddRow("#go", 12).
			AddRow("#news", 12).
			AddRow("#misc", 3))

	out, err := ix.Trending(10)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, TagCount{Tag: "#go", Count: 12}, out[0])
	assert.Equal(t, TagCount{Tag: "#news", Count: 12}, out[1])
	assert.NoError(t, mock.ExpectationsWereMet())
}
