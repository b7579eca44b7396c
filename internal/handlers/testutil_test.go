package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gatekeep-dev/gatekeep/db"
	"github.com/gatekeep-dev/gatekeep/internal/auth"
	"github.com/gatekeep-dev/gatekeep/internal/middleware"
	"github.com/gatekeep-dev/gatekeep/internal/types"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	os.Setenv("JWT_SECRET", "test-secret")
	if err := auth.InitJWTSecret(); err != nil {
		panic(err)
	}

	os.Exit(m.Run())
}

// newMockDB swaps the global DB handle for a sqlmock-backed connection.
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	require.NoError(t, err)

	db.DB = gdb

	t.Cleanup(func() {
		conn.Close()
	})

	return mock
}

// asUser injects an authenticated user into the request context, standing
// in for AuthMiddleware in tests.
func asUser(user middleware.AuthenticatedUser) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Set(types.ContextUserKey, user)
		ctx.Next()
	}
}

func moderatorUser() middleware.AuthenticatedUser {
	return middleware.AuthenticatedUser{
		ID:    2,
		Name:  "Mod",
		Email: "mod@example.com",
		Role:  string(types.RoleModerator),
	}
}

func submitterUser() middleware.AuthenticatedUser {
	return middleware.AuthenticatedUser{
		ID:    1,
		Name:  "Sub",
		Email: "sub@example.com",
		Role:  string(types.RoleSubmitter),
	}
}

func jsonRequest(method, url string, body interface{}) (*http.Request, *httptest.ResponseRecorder) {
	bodyBytes, _ := json.Marshal(body)
	req, _ := http.NewRequest(method, url, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	return req, w
}
