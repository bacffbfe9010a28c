package addressControllers

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

func newAddressRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(testutil.AuthAs(userID, models.RoleUser))
	r.GET("/api/address", GetUserAddresses(db))
	r.GET("/api/address/:id", GetAddress(db))
	r.POST("/api/address", CreateAddress(db))
	r.PUT("/api/address/:id", UpdateAddress(db))
	r.DELETE("/api/address/:id", DeleteAddress(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func defaultCount(t *testing.T, db *gorm.DB, userID string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&models.Address{}).
		Where("user_id = ? AND is_default = ?", userID, true).Count(&n).Error)
	return n
}

func TestCreateDefaultAddressUnsetsPrevious(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateUser(t, db, "alice", "alice@example.com")
	r := newAddressRouter(db, user.ID)

	w := doJSON(t, r, http.MethodPost, "/api/address", AddressInput{
		Street: "1 First St", City: "Springfield", State: "IL",
		Pincode: "62701", Country: "USA", IsDefault: true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/address", AddressInput{
		Street: "2 Second Ave", City: "Portland", State: "OR",
		Pincode: "97201", Country: "USA", IsDefault: true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.EqualValues(t, 1, defaultCount(t, db, user.ID))

	var def models.Address
	require.NoError(t, db.Where("user_id = ? AND is_default = ?", user.ID, true).First(&def).Error)
	require.Equal(t, "2 Second Ave", def.Street)
}

func TestUpdateAddressPromotesDefault(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateUser(t, db, "bob", "bob@example.com")
	r := newAddressRouter(db, user.ID)

	w := doJSON(t, r, http.MethodPost, "/api/address", AddressInput{
		Street: "1 First St", City: "Austin", State: "TX",
		Pincode: "73301", Country: "USA", IsDefault: true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/address", AddressInput{
		Street: "2 Second Ave", City: "Austin", State: "TX",
		Pincode: "73301", Country: "USA",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var second models.Address
	require.NoError(t, db.Where("user_id = ? AND street = ?", user.ID, "2 Second Ave").First(&second).Error)

	makeDefault := true
	w = doJSON(t, r, http.MethodPut, "/api/address/"+second.ID,
		UpdateAddressInput{IsDefault: &makeDefault})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.EqualValues(t, 1, defaultCount(t, db, user.ID))

	var def models.Address
	require.NoError(t, db.Where("user_id = ? AND is_default = ?", user.ID, true).First(&def).Error)
	require.Equal(t, second.ID, def.ID)
}

func TestAddressMissingFieldRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateUser(t, db, "carol", "carol@example.com")
	r := newAddressRouter(db, user.ID)

	// Street is required.
	w := doJSON(t, r, http.MethodPost, "/api/address", AddressInput{
		City: "Denver", State: "CO", Pincode: "80201", Country: "USA",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddressScopedToOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	owner := testutil.CreateUser(t, db, "dave", "dave@example.com")
	other := testutil.CreateUser(t, db, "eve", "eve@example.com")

	ownerRouter := newAddressRouter(db, owner.ID)
	w := doJSON(t, ownerRouter, http.MethodPost, "/api/address", AddressInput{
		Street: "5 Fifth Rd", City: "Boston", State: "MA",
		Pincode: "02101", Country: "USA",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var addr models.Address
	require.NoError(t, db.First(&addr, "user_id = ?", owner.ID).Error)

	otherRouter := newAddressRouter(db, other.ID)
	w = doJSON(t, otherRouter, http.MethodGet, "/api/address/"+addr.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, otherRouter, http.MethodDelete, "/api/address/"+addr.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Still there for the owner.
	w = doJSON(t, ownerRouter, http.MethodGet, "/api/address/"+addr.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteAddress(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateUser(t, db, "frank", "frank@example.com")
	r := newAddressRouter(db, user.ID)

	w := doJSON(t, r, http.MethodPost, "/api/address", AddressInput{
		Street: "9 Ninth St", City: "Seattle", State: "WA",
		Pincode: "98101", Country: "USA",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var addr models.Address
	require.NoError(t, db.First(&addr, "user_id = ?", user.ID).Error)

	w = doJSON(t, r, http.MethodDelete, "/api/address/"+addr.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/address/"+addr.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
