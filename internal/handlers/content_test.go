package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupContentRouter() *gin.Engine {
	r := gin.New()
	r.POST("/api/content/submit", asUser(submitterUser()), SubmitContent)
	r.PATCH("/api/content/:id", asUser(moderatorUser()), UpdateContentStatus)
	return r
}

func TestSubmitContentValidation(t *testing.T) {
	mock := newMockDB(t)
	router := setupContentRouter()

	cases := []struct {
		name string
		body map[string]interface{}
		path string
	}{
		{
			name: "missing title",
			body: map[string]interface{}{"type": "TEXT", "text_content": "hello"},
			path: "title",
		},
		{
			name: "unknown type",
			body: map[string]interface{}{"title": "Hello", "type": "AUDIO"},
			path: "type",
		},
		{
			name: "TEXT without text_content",
			body: map[string]interface{}{"title": "Hello", "type": "TEXT"},
			path: "text_content",
		},
		{
			name: "IMAGE without image_url",
			body: map[string]interface{}{"title": "Hello", "type": "IMAGE"},
			path: "image_url",
		},
		{
			name: "VIDEO without video_url",
			body: map[string]interface{}{"title": "Hello", "type": "VIDEO"},
			path: "video_url",
		},
		{
			name: "URL without url",
			body: map[string]interface{}{"title": "Hello", "type": "URL"},
			path: "url",
		},
		{
			name: "too many tags",
			body: map[string]interface{}{
				"title": "Hello", "type": "TEXT", "text_content": "hi",
				"tags": []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"},
			},
			path: "tags",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req, w := jsonRequest(http.MethodPost, "/api/content/submit", tc.body)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var response struct {
				Error   string `json:"error"`
				Details []struct {
					Path    string `json:"path"`
					Message string `json:"message"`
				} `json:"details"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			require.NotEmpty(t, response.Details)

			found := false
			for _, detail := range response.Details {
				if detail.Path == tc.path {
					found = true
				}
			}
			assert.True(t, found, "expected a validation error on %q", tc.path)
		})
	}

	// No validation failure may reach the database.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitContentSuccess(t *testing.T) {
	mock := newMockDB(t)
	router := setupContentRouter()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "contents"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	req, w := jsonRequest(http.MethodPost, "/api/content/submit", map[string]interface{}{
		"title":        "Hello",
		"type":         "TEXT",
		"text_content": "World",
		"tags":         []string{"a", "b"},
	})
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Content struct {
			ID          uint     `json:"id"`
			Status      string   `json:"status"`
			Priority    int      `json:"priority"`
			SubmitterID uint     `json:"submitter_id"`
			Tags        []string `json:"tags"`
		} `json:"content"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, uint(42), response.Content.ID)
	assert.Equal(t, "PENDING", response.Content.Status)
	assert.Equal(t, 0, response.Content.Priority)
	assert.Equal(t, submitterUser().ID, response.Content.SubmitterID)
	assert.Equal(t, []string{"a", "b"}, response.Content.Tags)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateContentStatusInvalidStatus(t *testing.T) {
	mock := newMockDB(t)
	router := setupContentRouter()

	req, w := jsonRequest(http.MethodPatch, "/api/content/7", map[string]interface{}{
		"status": "PUBLISHED",
	})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateContentStatusNotFound(t *testing.T) {
	mock := newMockDB(t)
	router := setupContentRouter()

	mock.ExpectQuery(`SELECT \* FROM "contents" WHERE "contents"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status", "submitter_id"}))

	req, w := jsonRequest(http.MethodPatch, "/api/content/99", map[string]interface{}{
		"status": "APPROVED",
	})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateContentStatusIllegalTransition(t *testing.T) {
	mock := newMockDB(t)
	router := setupContentRouter()

	mock.ExpectQuery(`SELECT \* FROM "contents" WHERE "contents"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status", "submitter_id"}).
			AddRow(7, "Hello", "ARCHIVED", 1))

	req, w := jsonRequest(http.MethodPatch, "/api/content/7", map[string]interface{}{
		"status": "APPROVED",
	})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	// The record must be untouched: only the lookup was expected.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateContentStatusApprove(t *testing.T) {
	mock := newMockDB(t)
	router := setupContentRouter()

	mock.ExpectQuery(`SELECT \* FROM "contents" WHERE "contents"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status", "submitter_id"}).
			AddRow(7, "Hello", "PENDING", 1))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "contents" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Approval notifies the submitter.
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	// And leaves an audit trail.
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	req, w := jsonRequest(http.MethodPatch, "/api/content/7", map[string]interface{}{
		"status": "APPROVED",
	})
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Status      string  `json:"status"`
		PublishedAt *string `json:"published_at"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, "APPROVED", response.Status)
	assert.NotNil(t, response.PublishedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateContentStatusRejectDoesNotPublish(t *testing.T) {
	mock := newMockDB(t)
	router := setupContentRouter()

	mock.ExpectQuery(`SELECT \* FROM "contents" WHERE "contents"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "status", "submitter_id"}).
			AddRow(8, "Hello", "PENDING", 1))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "contents" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	req, w := jsonRequest(http.MethodPatch, "/api/content/8", map[string]interface{}{
		"status": "REJECTED",
	})
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Status      string  `json:"status"`
		PublishedAt *string `json:"published_at"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	assert.Equal(t, "REJECTED", response.Status)
	assert.Nil(t, response.PublishedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}
