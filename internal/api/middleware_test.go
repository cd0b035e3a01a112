package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/HASGITH/Mathforces/internal/auth"
	"github.com/HASGITH/Mathforces/internal/database"
	"github.com/HASGITH/Mathforces/internal/database/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "middleware-test-secret"

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	require.NoError(t, err)
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string, staff bool) *models.User {
	t.Helper()
	user := &models.User{
		ID:       uuid.NewString(),
		Username: username,
		IsStaff:  staff,
	}
	require.NoError(t, database.CreateUser(db, user))
	return user
}

func staffRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/guarded", AuthMiddleware(testSecret), RequireStaff(db), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return r
}

func doGet(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Basic dXNlcjpwYXNz", "", false},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			c.Request.Header.Set("Authorization", tc.header)
		}

		token, ok := BearerToken(c)
		assert.Equal(t, tc.ok, ok, "header %q", tc.header)
		assert.Equal(t, tc.token, token, "header %q", tc.header)
	}
}

func TestAuthMiddlewareRejectsMissingAndBadTokens(t *testing.T) {
	db := setupDB(t)
	r := staffRouter(db)

	assert.Equal(t, http.StatusUnauthorized, doGet(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, "not-a-jwt").Code)

	wrongSecret, err := auth.GenerateJWT(uuid.NewString(), "another-secret", 1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, wrongSecret).Code)
}

func TestRequireStaffForbidsRegularUsers(t *testing.T) {
	db := setupDB(t)
	r := staffRouter(db)
	user := createUser(t, db, "alice", false)

	token, err := auth.GenerateJWT(user.ID, testSecret, 1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, doGet(r, token).Code)
}

func TestRequireStaffAdmitsStaff(t *testing.T) {
	db := setupDB(t)
	r := staffRouter(db)
	admin := createUser(t, db, "root", true)

	token, err := auth.GenerateJWT(admin.ID, testSecret, 1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, doGet(r, token).Code)
}

func TestRequireStaffRereadsFlagPerRequest(t *testing.T) {
	db := setupDB(t)
	r := staffRouter(db)
	admin := createUser(t, db, "root", true)

	token, err := auth.GenerateJWT(admin.ID, testSecret, 1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, doGet(r, token).Code)

	// Demotion takes effect on the next request, with no re-login.
	admin.IsStaff = false
	require.NoError(t, database.UpdateUser(db, admin))
	assert.Equal(t, http.StatusForbidden, doGet(r, token).Code)
}

func TestRequireStaffRejectsTokenForDeletedUser(t *testing.T) {
	db := setupDB(t)
	r := staffRouter(db)

	token, err := auth.GenerateJWT(uuid.NewString(), testSecret, 1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, doGet(r, token).Code)
}
