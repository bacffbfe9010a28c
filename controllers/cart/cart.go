package cartControllers

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sanjaysagar12/EcoFinds/models"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

type AddToCartInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateCartInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// cartProductView re-attaches the seller summary the model keeps out of
// its own JSON.
type cartProductView struct {
	models.Product
	Seller *models.PublicUser `json:"seller,omitempty"`
}

type cartItemView struct {
	ID        string           `json:"id"`
	ProductID string           `json:"productId"`
	Quantity  int              `json:"quantity"`
	Product   *cartProductView `json:"product"`
	Subtotal  decimal.Decimal  `json:"subtotal"`
}

// getOrCreateCart loads the user's cart, creating it lazily.
func getOrCreateCart(db *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items.Product.Seller").Where("user_id = ?", userID).First(&cart).Error
	if err == gorm.ErrRecordNotFound {
		cart = models.Cart{ID: uuid.NewString(), UserID: userID, CreatedAt: time.Now()}
		if err := db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func itemView(item models.CartItem) cartItemView {
	view := cartItemView{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		Subtotal:  decimal.Zero,
	}
	if item.Product != nil {
		view.Product = &cartProductView{Product: *item.Product}
		if item.Product.Seller != nil {
			pub := item.Product.Seller.Public()
			view.Product.Seller = &pub
		}
		view.Subtotal = item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
	}
	return view
}

// GET /api/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		cart, err := getOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch cart"})
			return
		}

		// Subtotals and the total are computed on read, never persisted.
		items := make([]cartItemView, 0, len(cart.Items))
		total := decimal.Zero
		count := 0
		for _, item := range cart.Items {
			view := itemView(item)
			items = append(items, view)
			total = total.Add(view.Subtotal)
			count += item.Quantity
		}

		c.JSON(http.StatusOK, gin.H{
			"id":        cart.ID,
			"items":     items,
			"total":     total,
			"count":     count,
			"createdAt": cart.CreatedAt,
			"updatedAt": cart.UpdatedAt,
		})
	}
}

// POST /api/cart
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity == 0 {
			input.Quantity = 1
		}

		var product models.Product
		if err := db.Preload("Seller").First(&product, "id = ?", input.ProductID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		if !product.IsActive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product is not available"})
			return
		}
		if product.Stock < input.Quantity {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock"})
			return
		}
		if product.SellerID == userID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot add your own products to cart"})
			return
		}

		cart, err := getOrCreateCart(db, userID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to fetch cart"})
			return
		}

		var item models.CartItem
		err = db.Where("cart_id = ? AND product_id = ?", cart.ID, input.ProductID).First(&item).Error
		if err == gorm.ErrRecordNotFound {
			item = models.CartItem{
				ID:        uuid.NewString(),
				CartID:    cart.ID,
				ProductID: input.ProductID,
				Quantity:  input.Quantity,
				CreatedAt: time.Now(),
			}
			if err := db.Create(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item to cart"})
				return
			}
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cart item"})
			return
		} else {
			// Merge with the existing line, re-checking the stock ceiling.
			newQuantity := item.Quantity + input.Quantity
			if newQuantity > product.Stock {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock for requested quantity"})
				return
			}
			item.Quantity = newQuantity
			if err := db.Save(&item).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
				return
			}
		}

		item.Product = &product
		logger.Info().Str("user_id", userID).Str("product_id", product.ID).Int("quantity", item.Quantity).Msg("cart item added")
		c.JSON(http.StatusCreated, itemView(item))
	}
}

// PUT /api/cart/:id
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		itemID := c.Param("id")

		var input UpdateCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		var item models.CartItem
		if err := db.Preload("Product.Seller").First(&item, "id = ?", itemID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		var cart models.Cart
		if err := db.First(&cart, "id = ?", item.CartID).Error; err != nil || cart.UserID != userID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You can only update your own cart items"})
			return
		}

		if item.Product == nil || !item.Product.IsActive {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product is no longer available"})
			return
		}
		if input.Quantity > item.Product.Stock {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient stock"})
			return
		}

		item.Quantity = input.Quantity
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, itemView(item))
	}
}

// DELETE /api/cart/:id
func RemoveFromCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")
		itemID := c.Param("id")

		var item models.CartItem
		if err := db.First(&item, "id = ?", itemID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}

		var cart models.Cart
		if err := db.First(&cart, "id = ?", item.CartID).Error; err != nil || cart.UserID != userID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You can only remove your own cart items"})
			return
		}

		if err := db.Delete(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove item from cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart successfully"})
	}
}

// DELETE /api/cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString("user_id")

		var cart models.Cart
		if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart not found"})
			return
		}

		if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear cart"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared successfully"})
	}
}
