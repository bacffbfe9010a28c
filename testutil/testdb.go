package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sanjaysagar12/EcoFinds/models"
)

// SetupTestDB starts a throwaway Postgres container, migrates the schema,
// and returns a connected GORM handle. The container is terminated when the
// test finishes.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	dsn := fmt.Sprintf("host=%s user=testuser password=testpass dbname=testdb port=%s sslmode=disable",
		host, port.Port())

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Address{},
		&models.Product{},
		&models.Review{},
		&models.Cart{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("Failed to migrate schema: %v", err)
	}

	return db
}

// AuthAs is a drop-in replacement for the token middleware that fixes the
// session identity for a test request.
func AuthAs(userID string, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Set("role", string(role))
		c.Next()
	}
}

// CreateUser inserts a user with an empty password hash and a cart.
func CreateUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()
	hash := "not-a-real-hash"
	user := models.User{
		ID:        uuid.NewString(),
		Name:      name,
		Email:     email,
		Password:  &hash,
		Role:      models.RoleUser,
		Cart:      &models.Cart{ID: uuid.NewString()},
		CreatedAt: time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Create user: %v", err)
	}
	return user
}

// CreateProduct inserts an approved, active product for a seller.
func CreateProduct(t *testing.T, db *gorm.DB, sellerID, title string, price decimal.Decimal, stock int) models.Product {
	t.Helper()
	product := models.Product{
		ID:          uuid.NewString(),
		SellerID:    sellerID,
		Title:       title,
		Category:    "Electronics",
		Description: "Test listing",
		Price:       price,
		Stock:       stock,
		Condition:   "used",
		IsActive:    true,
		IsApproved:  true,
		CreatedAt:   time.Now(),
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("Create product: %v", err)
	}
	return product
}
