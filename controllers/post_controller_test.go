package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talksapp/talks/hashtags"
	"github.com/talksapp/talks/middleware"
)

func jsonContext(t *testing.T, method, target, body, postID string, userID uint) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	ctx.Request.Header.Set("Content-Type", "application/json")
	if postID != "" {
		ctx.Params = gin.Params{{Key: "id", Value: postID}}
	}
	if userID != 0 {
		ctx.Set(middleware.ContextUserIDKey, userID)
		ctx.Set(middleware.ContextUsernameKey, "tester")
	}
	return ctx, w
}

func TestCreatePostIndexesHashtags(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db, mock := newTestDB(t)
	ctrl := NewPostController(db, hashtags.NewIndexer(db))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `posts`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT (.+) FROM `hashtags`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tag", "count"}))
	mock.ExpectExec("INSERT INTO `hashtags`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `hashtag_posts`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectQuery("SELECT (.+) FROM `posts`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content"}).AddRow(1, 7, "hello #go"))
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username"}).AddRow(7, "tester"))

	ctx, w := jsonContext(t, http.MethodPost, "/api/v1/posts", `{"content":"hello #go"}`, "", 7)
	ctrl.CreatePost(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePostRejectsEmptyContent(t *testing.T) {
	db, _ := newTestDB(t)
	ctrl := NewPostController(db, hashtags.NewIndexer(db))

	ctx, w := jsonContext(t, http.MethodPost, "/api/v1/posts", `{"content":"   "}`, "", 7)
	ctrl.CreatePost(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportPost(t *testing.T) {
	db, mock := newTestDB(t)
	ctrl := NewPostController(db, hashtags.NewIndexer(db))

	mock.ExpectQuery("SELECT (.+) FROM `posts`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content"}).AddRow(4, 2, "spam"))
	mock.ExpectExec("INSERT INTO `reports`").
		WillReturnResult(sqlmock.NewResult(9, 1))

	ctx, w := jsonContext(t, http.MethodPost, "/api/v1/posts/4/report", "", "4", 0)
	ctrl.ReportPost(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Code int `json:"code"`
		Data struct {
			ReportID uint `json:"report_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, uint(9), resp.Data.ReportID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportMissingPost(t *testing.T) {
	db, mock := newTestDB(t)
	ctrl := NewPostController(db, hashtags.NewIndexer(db))

	mock.ExpectQuery("SELECT (.+) FROM `posts`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content"}))

	ctx, w := jsonContext(t, http.MethodPost, "/api/v1/posts/99/report", "", "99", 0)
	ctrl.ReportPost(ctx)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
