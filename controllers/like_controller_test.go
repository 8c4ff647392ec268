package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/talksapp/talks/middleware"
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

func authedContext(t *testing.T, method, target, postID string, userID uint) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(method, target, nil)
	ctx.Params = gin.Params{{Key: "id", Value: postID}}
	ctx.Set(middleware.ContextUserIDKey, userID)
	return ctx, w
}

type likeResponse struct {
	Code int `json:"code"`
	Data struct {
		Action    string `json:"action"`
		LikeCount int64  `json:"like_count"`
	} `json:"data"`
}

func TestTogglePostLikeAddsLike(t *testing.T) {
	db, mock := newTestDB(t)
	ctrl := NewLikeController(db)

	mock.ExpectQuery("SELECT (.+) FROM `posts`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content"}).AddRow(1, 2, "hi"))
	mock.ExpectQuery("SELECT (.+) FROM `post_likes`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "user_id"}))
	mock.ExpectExec("INSERT INTO `post_likes`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT count(.+) FROM `post_likes`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ctx, w := authedContext(t, http.MethodPost, "/api/v1/posts/1/like", "1", 7)
	ctrl.TogglePostLike(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	var resp likeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "liked", resp.Data.Action)
	assert.Equal(t, int64(1), resp.Data.LikeCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTogglePostLikeRemovesExistingLike(t *testing.T) {
	db, mock := newTestDB(t)
	ctrl := NewLikeController(db)

	mock.ExpectQuery("SELECT (.+) FROM `posts`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content"}).AddRow(1, 2, "hi"))
	mock.ExpectQuery("SELECT (.+) FROM `post_likes`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "user_id"}).AddRow(5, 1, 7))
	mock.ExpectExec("DELETE FROM `post_likes`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT count(.+) FROM `post_likes`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	ctx, w := authedContext(t, http.MethodPost, "/api/v1/posts/1/like", "1", 7)
	ctrl.TogglePostLike(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	var resp likeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "unliked", resp.Data.Action)
	assert.Equal(t, int64(0), resp.Data.LikeCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTogglePostLikeMissingPost(t *testing.T) {
	db, mock := newTestDB(t)
	ctrl := NewLikeController(db)

	mock.ExpectQuery("SELECT (.+) FROM `posts`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content"}))

	ctx, w := authedContext(t, http.MethodPost, "/api/v1/posts/99/like", "99", 7)
	ctrl.TogglePostLike(ctx)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleCommentLikeAddsLike(t *testing.T) {
	db, mock := newTestDB(t)
	ctrl := NewLikeController(db)

	mock.ExpectQuery("SELECT (.+) FROM `comments`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "user_id", "content"}).AddRow(3, 1, 2, "nice"))
	mock.ExpectQuery("SELECT (.+) FROM `comment_likes`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "comment_id", "user_id"}))
	mock.ExpectExec("INSERT INTO `comment_likes`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT count(.+) FROM `comment_likes`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	ctx, w := authedContext(t, http.MethodPost, "/api/v1/comments/3/like", "3", 7)
	ctrl.ToggleCommentLike(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	var resp likeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "liked", resp.Data.Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}
