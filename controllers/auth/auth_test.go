package authControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sanjaysagar12/EcoFinds/models"
	"github.com/sanjaysagar12/EcoFinds/testutil"
)

func newAuthRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/auth/register", Register(db))
	r.POST("/api/auth/login", Login(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := newAuthRouter(t, db)

	w := doJSON(t, r, "/api/auth/register", RegisterInput{
		Username: "alice", Email: "alice@example.com", Password: "correcthorse",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var registered struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &registered))
	require.NotEmpty(t, registered.AccessToken)

	// The password must never be stored in the clear.
	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "alice@example.com").Error)
	require.NotNil(t, user.Password)
	require.NotEqual(t, "correcthorse", *user.Password)

	// Registration also provisions an empty cart.
	var cartCount int64
	require.NoError(t, db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&cartCount).Error)
	require.EqualValues(t, 1, cartCount)

	w = doJSON(t, r, "/api/auth/login", LoginInput{
		Email: "alice@example.com", Password: "correcthorse",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := newAuthRouter(t, db)

	w := doJSON(t, r, "/api/auth/register", RegisterInput{
		Username: "bob", Email: "bob@example.com", Password: "longenough",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "/api/auth/register", RegisterInput{
		Username: "bob2", Email: "bob@example.com", Password: "longenough",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "already exists")

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "bob@example.com").Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := newAuthRouter(t, db)

	w := doJSON(t, r, "/api/auth/register", RegisterInput{
		Username: "carol", Email: "carol@example.com", Password: "longenough",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, "/api/auth/register", RegisterInput{
		Username: "carol", Email: "carol2@example.com", Password: "longenough",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, w.Body.String(), "already taken")
}

func TestRegisterValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := newAuthRouter(t, db)

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{"bad email", RegisterInput{Username: "dave", Email: "not-an-email", Password: "longenough"}},
		{"short password", RegisterInput{Username: "dave", Email: "dave@example.com", Password: "short"}},
		{"short username", RegisterInput{Username: "ab", Email: "dave@example.com", Password: "longenough"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, r, "/api/auth/register", tc.input)
			require.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := newAuthRouter(t, db)

	w := doJSON(t, r, "/api/auth/register", RegisterInput{
		Username: "erin", Email: "erin@example.com", Password: "longenough",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// Wrong password and unknown email must be indistinguishable.
	w = doJSON(t, r, "/api/auth/login", LoginInput{Email: "erin@example.com", Password: "wrongpass"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	wrongPassBody := w.Body.String()

	w = doJSON(t, r, "/api/auth/login", LoginInput{Email: "nobody@example.com", Password: "whatever"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, wrongPassBody, w.Body.String())
}

func TestLoginOAuthOnlyAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	r := newAuthRouter(t, db)

	user := testutil.CreateUser(t, db, "frank", "frank@example.com")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{"password": nil, "provider": "google"}).Error)

	w := doJSON(t, r, "/api/auth/login", LoginInput{Email: "frank@example.com", Password: "anything"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "sign in with Google")
}
