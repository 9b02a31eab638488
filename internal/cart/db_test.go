package cart

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/angelmondragon/shopline-backend/pkg/config"
	"github.com/angelmondragon/shopline-backend/pkg/db"
	"github.com/angelmondragon/shopline-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func openTestClient(t *testing.T) *db.Client {
	t.Helper()

	dsn := os.Getenv("SHOPLINE_DB_DSN")
	if dsn == "" {
		t.Skip("SHOPLINE_DB_DSN is not set")
	}

	client, err := db.New(context.Background(), config.DBConfig{DSN: dsn}, nil)
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func createTestUser(t *testing.T, conn *gorm.DB) *models.User {
	t.Helper()

	suffix := fmt.Sprintf("%d-%s", time.Now().UnixNano(), uuid.NewString()[:8])
	user := &models.User{
		Username:     "cart-user-" + suffix,
		Email:        fmt.Sprintf("cart-%s@example.com", suffix),
		PasswordHash: "irrelevant",
		IsActive:     true,
	}
	if err := conn.Create(user).Error; err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func createTestProduct(t *testing.T, conn *gorm.DB, price string) *models.Product {
	t.Helper()

	product := &models.Product{
		SKU:      fmt.Sprintf("cart-sku-%d-%s", time.Now().UnixNano(), uuid.NewString()[:8]),
		Title:    "Cart Test Product",
		Price:    mustDecimal(t, price),
		IsActive: true,
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("create test product: %v", err)
	}
	return product
}
