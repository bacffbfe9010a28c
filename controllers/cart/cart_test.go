package cartControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sanjaysagar12/EcoFinds/models"
	"github.com/sanjaysagar12/EcoFinds/testutil"
)

func newCartRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(testutil.AuthAs(userID, models.RoleUser))
	r.GET("/api/cart", GetCart(db))
	r.POST("/api/cart", AddToCart(db))
	r.PUT("/api/cart/:id", UpdateCartItem(db))
	r.DELETE("/api/cart/:id", RemoveFromCart(db))
	r.DELETE("/api/cart", ClearCart(db))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddToCartRejectsOwnProduct(t *testing.T) {
	db := testutil.SetupTestDB(t)

	seller := testutil.CreateUser(t, db, "seller", "seller@example.com")
	product := testutil.CreateProduct(t, db, seller.ID, "Guitar", decimal.NewFromInt(120), 5)

	r := newCartRouter(db, seller.ID)
	w := doJSON(t, r, http.MethodPost, "/api/cart", AddToCartInput{ProductID: product.ID, Quantity: 1})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "your own products")
}

func TestAddToCartRejectsOverStock(t *testing.T) {
	db := testutil.SetupTestDB(t)

	seller := testutil.CreateUser(t, db, "seller", "seller@example.com")
	buyer := testutil.CreateUser(t, db, "buyer", "buyer@example.com")
	product := testutil.CreateProduct(t, db, seller.ID, "Speaker", decimal.NewFromInt(45), 3)

	r := newCartRouter(db, buyer.ID)
	w := doJSON(t, r, http.MethodPost, "/api/cart", AddToCartInput{ProductID: product.ID, Quantity: 4})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "Insufficient stock")
}

func TestAddToCartMergesQuantities(t *testing.T) {
	db := testutil.SetupTestDB(t)

	seller := testutil.CreateUser(t, db, "seller", "seller@example.com")
	buyer := testutil.CreateUser(t, db, "buyer", "buyer@example.com")
	product := testutil.CreateProduct(t, db, seller.ID, "Headphones", decimal.NewFromInt(30), 10)

	r := newCartRouter(db, buyer.ID)
	w := doJSON(t, r, http.MethodPost, "/api/cart", AddToCartInput{ProductID: product.ID, Quantity: 2})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = doJSON(t, r, http.MethodPost, "/api/cart", AddToCartInput{ProductID: product.ID, Quantity: 3})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// One row, merged quantity.
	var items []models.CartItem
	require.NoError(t, db.Where("product_id = ?", product.ID).Find(&items).Error)
	require.Len(t, items, 1)
	require.Equal(t, 5, items[0].Quantity)

	// A merge pushing past stock is rejected and leaves the row untouched.
	w = doJSON(t, r, http.MethodPost, "/api/cart", AddToCartInput{ProductID: product.ID, Quantity: 6})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, db.First(&items[0], "id = ?", items[0].ID).Error)
	require.Equal(t, 5, items[0].Quantity)
}

func TestAddToCartDefaultsQuantityToOne(t *testing.T) {
	db := testutil.SetupTestDB(t)

	seller := testutil.CreateUser(t, db, "seller", "seller@example.com")
	buyer := testutil.CreateUser(t, db, "buyer", "buyer@example.com")
	product := testutil.CreateProduct(t, db, seller.ID, "Keyboard", decimal.NewFromInt(55), 2)

	r := newCartRouter(db, buyer.ID)
	w := doJSON(t, r, http.MethodPost, "/api/cart", AddToCartInput{ProductID: product.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var item models.CartItem
	require.NoError(t, db.First(&item, "product_id = ?", product.ID).Error)
	require.Equal(t, 1, item.Quantity)
}

func TestUpdateCartItemScopedToOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)

	seller := testutil.CreateUser(t, db, "seller", "seller@example.com")
	buyer := testutil.CreateUser(t, db, "buyer", "buyer@example.com")
	intruder := testutil.CreateUser(t, db, "intruder", "intruder@example.com")
	product := testutil.CreateProduct(t, db, seller.ID, "Monitor", decimal.NewFromInt(180), 6)

	r := newCartRouter(db, buyer.ID)
	w := doJSON(t, r, http.MethodPost, "/api/cart", AddToCartInput{ProductID: product.ID, Quantity: 1})
	require.Equal(t, http.StatusCreated, w.Code)

	var item models.CartItem
	require.NoError(t, db.First(&item, "product_id = ?", product.ID).Error)

	other := newCartRouter(db, intruder.ID)
	w = doJSON(t, other, http.MethodPut, "/api/cart/"+item.ID, UpdateCartInput{Quantity: 3})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "your own cart items")

	// The owner can update, within stock.
	w = doJSON(t, r, http.MethodPut, "/api/cart/"+item.ID, UpdateCartInput{Quantity: 6})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = doJSON(t, r, http.MethodPut, "/api/cart/"+item.ID, UpdateCartInput{Quantity: 7})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetCartComputesTotals(t *testing.T) {
	db := testutil.SetupTestDB(t)

	seller := testutil.CreateUser(t, db, "seller", "seller@example.com")
	buyer := testutil.CreateUser(t, db, "buyer", "buyer@example.com")
	p1 := testutil.CreateProduct(t, db, seller.ID, "Mouse", decimal.NewFromInt(20), 10)
	p2 := testutil.CreateProduct(t, db, seller.ID, "Webcam", decimal.NewFromInt(35), 10)

	r := newCartRouter(db, buyer.ID)
	doJSON(t, r, http.MethodPost, "/api/cart", AddToCartInput{ProductID: p1.ID, Quantity: 2})
	doJSON(t, r, http.MethodPost, "/api/cart", AddToCartInput{ProductID: p2.ID, Quantity: 1})

	w := doJSON(t, r, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []cartItemView  `json:"items"`
		Total decimal.Decimal `json:"total"`
		Count int             `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	require.Equal(t, 3, resp.Count)
	require.True(t, resp.Total.Equal(decimal.NewFromInt(20*2+35)),
		"expected total 75, got %s", resp.Total)
}

func TestCartItemsIncludeSellerSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)

	seller := testutil.CreateUser(t, db, "seller", "seller@example.com")
	buyer := testutil.CreateUser(t, db, "buyer", "buyer@example.com")
	product := testutil.CreateProduct(t, db, seller.ID, "Amplifier", decimal.NewFromInt(250), 3)

	r := newCartRouter(db, buyer.ID)

	// The add response already carries the seller summary.
	w := doJSON(t, r, http.MethodPost, "/api/cart", AddToCartInput{ProductID: product.ID, Quantity: 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var added cartItemView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &added))
	require.NotNil(t, added.Product)
	require.NotNil(t, added.Product.Seller, "cart item product must carry its seller summary")
	require.Equal(t, seller.ID, added.Product.Seller.ID)
	require.Equal(t, "seller", added.Product.Seller.Name)
	require.Equal(t, "seller@example.com", added.Product.Seller.Email)

	// So does the cart view.
	w = doJSON(t, r, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []cartItemView `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	require.NotNil(t, resp.Items[0].Product)
	require.NotNil(t, resp.Items[0].Product.Seller)
	require.Equal(t, seller.ID, resp.Items[0].Product.Seller.ID)
}

func TestClearCartRemovesAllItems(t *testing.T) {
	db := testutil.SetupTestDB(t)

	seller := testutil.CreateUser(t, db, "seller", "seller@example.com")
	buyer := testutil.CreateUser(t, db, "buyer", "buyer@example.com")
	product := testutil.CreateProduct(t, db, seller.ID, "Printer", decimal.NewFromInt(95), 4)

	r := newCartRouter(db, buyer.ID)
	doJSON(t, r, http.MethodPost, "/api/cart", AddToCartInput{ProductID: product.ID, Quantity: 2})

	w := doJSON(t, r, http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, db.Model(&models.CartItem{}).Count(&count).Error)
	require.Zero(t, count)
}
