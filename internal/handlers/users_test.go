package handlers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gatekeep-dev/gatekeep/internal/middleware"
	"github.com/gatekeep-dev/gatekeep/internal/types"
)

func setupUsersRouter(actor middleware.AuthenticatedUser) *gin.Engine {
	r := gin.New()
	r.PATCH("/api/users/:id", asUser(actor), UpdateUserRole)
	return r
}

func TestUpdateUserRoleInvalidRole(t *testing.T) {
	mock := newMockDB(t)
	router := setupUsersRouter(moderatorUser())

	req, w := jsonRequest(http.MethodPatch, "/api/users/3", map[string]interface{}{
		"role": "SUPERUSER",
	})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	// No lookup and no mutation on an invalid role value.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserRoleModeratorCannotGrantAdmin(t *testing.T) {
	mock := newMockDB(t)
	router := setupUsersRouter(moderatorUser())

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role"}).
			AddRow(3, "Bob", "bob@example.com", "SUBMITTER"))

	req, w := jsonRequest(http.MethodPatch, "/api/users/3", map[string]interface{}{
		"role": "ADMIN",
	})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserRoleByAdmin(t *testing.T) {
	mock := newMockDB(t)

	admin := middleware.AuthenticatedUser{
		ID:    9,
		Name:  "Root",
		Email: "root@example.com",
		Role:  string(types.RoleAdmin),
	}
	router := setupUsersRouter(admin)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role"}).
			AddRow(3, "Bob", "bob@example.com", "SUBMITTER"))

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "users" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	req, w := jsonRequest(http.MethodPatch, "/api/users/3", map[string]interface{}{
		"role": "MODERATOR",
	})
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"MODERATOR"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUserRoleNotFound(t *testing.T) {
	mock := newMockDB(t)
	router := setupUsersRouter(moderatorUser())

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email", "role"}))

	req, w := jsonRequest(http.MethodPatch, "/api/users/404", map[string]interface{}{
		"role": "REVIEWER",
	})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
