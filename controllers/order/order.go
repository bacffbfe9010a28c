package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sanjaysagar12/EcoFinds/models"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// -------- Request Structs --------

type OrderItemInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

type CreateOrderInput struct {
	Items        []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	ShippingInfo string           `json:"shippingInfo" binding:"required"`
}

type UpdateStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// orderError carries the HTTP status a business-rule failure maps to.
type orderError struct {
	status  int
	message string
}

func (e *orderError) Error() string { return e.message }

// -------- Core Logic --------

// CreateOrder validates every line, then inside one transaction creates the
// order with snapshot items and decrements stock on each product row. The
// order, its items, and the decrements apply together or not at all.
func CreateOrder(db *gorm.DB, buyerID string, input CreateOrderInput) (*models.Order, error) {
	order := models.Order{
		ID:           uuid.NewString(),
		BuyerID:      buyerID,
		Status:       models.OrderStatusPending,
		ShippingInfo: input.ShippingInfo,
		CreatedAt:    time.Now(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero

		for _, line := range input.Items {
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", line.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return &orderError{http.StatusNotFound, "Product with ID " + line.ProductID + " not found"}
				}
				return err
			}

			if !product.IsActive || !product.IsApproved {
				return &orderError{http.StatusBadRequest,
					fmt.Sprintf("Product %s is not available for purchase", product.Title)}
			}
			if product.Stock < line.Quantity {
				return &orderError{http.StatusBadRequest,
					fmt.Sprintf("Insufficient stock for product %s. Available: %d, Requested: %d",
						product.Title, product.Stock, line.Quantity)}
			}

			subtotal := product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(subtotal)

			order.Items = append(order.Items, models.OrderItem{
				ID:          uuid.NewString(),
				ProductID:   product.ID,
				ProductName: product.Title,
				Price:       product.Price,
				Quantity:    line.Quantity,
				Subtotal:    subtotal,
			})

			if err := tx.Model(&product).
				Update("stock", gorm.Expr("stock - ?", line.Quantity)).Error; err != nil {
				return err
			}
		}

		order.Total = total
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}

	if err := preloadOrder(db).First(&order, "id = ?", order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func preloadOrder(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items.Product.Seller").
		Preload("Buyer")
}

// productView re-attaches the seller summary the model keeps out of its
// own JSON.
type productView struct {
	models.Product
	Seller *models.PublicUser `json:"seller,omitempty"`
}

func toProductView(p *models.Product) *productView {
	if p == nil {
		return nil
	}
	view := &productView{Product: *p}
	if p.Seller != nil {
		pub := p.Seller.Public()
		view.Seller = &pub
	}
	return view
}

type orderItemView struct {
	models.OrderItem
	Product *productView `json:"product,omitempty"`
}

type orderView struct {
	models.Order
	Items []orderItemView   `json:"items"`
	Buyer models.PublicUser `json:"buyer"`
}

func toView(o models.Order) orderView {
	view := orderView{Order: o, Items: make([]orderItemView, 0, len(o.Items))}
	for _, item := range o.Items {
		view.Items = append(view.Items, orderItemView{
			OrderItem: item,
			Product:   toProductView(item.Product),
		})
	}
	if o.Buyer != nil {
		view.Buyer = o.Buyer.Public()
	}
	return view
}

func toViews(orders []models.Order) []orderView {
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, toView(o))
	}
	return views
}

// -------- Handlers --------

// POST /api/orders
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID := c.GetString("user_id")

		var input CreateOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := CreateOrder(db, buyerID, input)
		if err != nil {
			var oe *orderError
			if errors.As(err, &oe) {
				c.JSON(oe.status, gin.H{"error": oe.message})
				return
			}
			logger.Error().Err(err).Str("user_id", buyerID).Msg("order creation failed")
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to create order. Please try again."})
			return
		}

		logger.Info().Str("order_id", order.ID).Str("user_id", buyerID).
			Str("total", order.Total.String()).Msg("order placed")
		broadcastOrderEvent("order.created", *order)
		c.JSON(http.StatusCreated, toView(*order))
	}
}

// GET /api/orders
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID := c.GetString("user_id")

		page, limit := 1, 10
		if v := c.Query("page"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				page = n
			}
		}
		if v := c.Query("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				limit = n
			}
		}

		query := db.Model(&models.Order{}).Where("buyer_id = ?", buyerID)
		if status := c.Query("status"); status != "" {
			parsed, ok := models.ParseOrderStatus(status)
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
				return
			}
			query = query.Where("status = ?", parsed)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		var orders []models.Order
		if err := preloadOrder(query).
			Order("created_at desc").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		totalPages := int(total) / limit
		if int(total)%limit > 0 {
			totalPages++
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": toViews(orders),
			"pagination": gin.H{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"totalPages": totalPages,
				"hasNext":    page < totalPages,
				"hasPrev":    page > 1,
			},
		})
	}
}

// GET /api/orders/:id
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID := c.GetString("user_id")

		var order models.Order
		if err := preloadOrder(db).
			Where("id = ? AND buyer_id = ?", c.Param("id"), buyerID).
			First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		c.JSON(http.StatusOK, toView(order))
	}
}

// PATCH /api/orders/:id/status
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID := c.GetString("user_id")
		orderID := c.Param("id")

		var input UpdateStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		next, ok := models.ParseOrderStatus(input.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
			return
		}

		var order models.Order
		if err := db.Where("id = ? AND buyer_id = ?", orderID, buyerID).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		if !models.CanTransition(order.Status, next) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Cannot transition order from %s to %s", order.Status, next),
			})
			return
		}

		updates := map[string]interface{}{"status": next}
		if next == models.OrderStatusDelivered {
			now := time.Now()
			updates["delivered_at"] = &now
		}
		if err := db.Model(&order).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}

		if err := preloadOrder(db).First(&order, "id = ?", orderID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		logger.Info().Str("order_id", orderID).Str("status", string(next)).Msg("order status updated")
		broadcastOrderEvent("order.status_updated", order)
		c.JSON(http.StatusOK, toView(order))
	}
}
