package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sanjaysagar12/EcoFinds/models"
)

// Pagination is the page metadata attached to listing responses.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

type productFilters struct {
	category  string
	minPrice  string
	maxPrice  string
	sellerID  string
	condition string
	brand     string
	search    string
	isActive  *bool
	// approvedOnly hides unapproved listings; sellers see their own
	// pending products through /my-products.
	approvedOnly bool
}

func paginationParams(c *gin.Context) (page, limit int, bad bool) {
	page, limit = 1, 10
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return 0, 0, true
		}
		page = n
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return 0, 0, true
		}
		limit = n
	}
	return page, limit, false
}

func filtersFromQuery(c *gin.Context) productFilters {
	f := productFilters{
		category:     c.Query("category"),
		minPrice:     c.Query("minPrice"),
		maxPrice:     c.Query("maxPrice"),
		sellerID:     c.Query("sellerId"),
		condition:    c.Query("condition"),
		brand:        c.Query("brand"),
		search:       c.Query("search"),
		approvedOnly: true,
	}
	if v := c.Query("isActive"); v != "" {
		active := v == "true"
		f.isActive = &active
	}
	return f
}

func listProducts(db *gorm.DB, c *gin.Context, f productFilters) {
	page, limit, bad := paginationParams(c)
	if bad {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid pagination params"})
		return
	}

	query := db.Model(&models.Product{})

	active := true
	if f.isActive != nil {
		active = *f.isActive
	}
	query = query.Where("is_active = ?", active)
	if f.approvedOnly {
		query = query.Where("is_approved = ?", true)
	}
	if f.category != "" {
		query = query.Where("category = ?", f.category)
	}
	if f.sellerID != "" {
		query = query.Where("seller_id = ?", f.sellerID)
	}
	if f.condition != "" {
		query = query.Where("condition = ?", f.condition)
	}
	if f.brand != "" {
		query = query.Where("brand = ?", f.brand)
	}
	if f.minPrice != "" {
		mp, err := strconv.ParseFloat(f.minPrice, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid minPrice"})
			return
		}
		query = query.Where("price >= ?", mp)
	}
	if f.maxPrice != "" {
		mp, err := strconv.ParseFloat(f.maxPrice, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid maxPrice"})
			return
		}
		query = query.Where("price <= ?", mp)
	}
	if f.search != "" {
		likePattern := "%" + f.search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", likePattern, likePattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	var products []models.Product
	if err := query.
		Preload("Seller").
		Preload("Reviews").
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	totalPages := int(total) / limit
	if int(total)%limit > 0 {
		totalPages++
	}

	c.JSON(http.StatusOK, gin.H{
		"products": toViews(products),
		"pagination": Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
			HasPrev:    page > 1,
		},
	})
}

// GET /api/products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		listProducts(db, c, filtersFromQuery(c))
	}
}

// GET /api/products/my-products
func GetMyProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := filtersFromQuery(c)
		f.sellerID = c.GetString("user_id")
		f.approvedOnly = false // sellers see their pending listings too
		listProducts(db, c, f)
	}
}

// GET /api/products/by-user/:userId
func GetProductsByUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := filtersFromQuery(c)
		f.sellerID = c.Param("userId")
		f.isActive = nil // public view: active only
		listProducts(db, c, f)
	}
}
