package cart

import (
	"context"
	"sync"
	"testing"

	"github.com/angelmondragon/shopline-backend/pkg/db"
	"github.com/angelmondragon/shopline-backend/pkg/db/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func mustDecimal(t *testing.T, value string) decimal.Decimal {
	t.Helper()
	return decimal.RequireFromString(value)
}

func TestRepositoryActiveCartUniqueIndex(t *testing.T) {
	client := openTestClient(t)
	conn := client.DB()
	repo := NewRepository(conn)
	ctx := context.Background()

	user := createTestUser(t, conn)

	first, err := repo.Create(ctx, &models.Cart{UserID: user.ID})
	if err != nil {
		t.Fatalf("create first cart: %v", err)
	}

	_, err = repo.Create(ctx, &models.Cart{UserID: user.ID})
	if err == nil {
		t.Fatalf("expected unique violation for second active cart")
	}
	if !db.IsUniqueViolation(err, "uq_carts_user_active") {
		t.Fatalf("expected uq_carts_user_active violation, got %v", err)
	}

	// After checkout the user may open a fresh cart.
	if err := repo.UpdateStatus(ctx, first.ID, "checked_out"); err != nil {
		t.Fatalf("flip status: %v", err)
	}
	if _, err := repo.Create(ctx, &models.Cart{UserID: user.ID}); err != nil {
		t.Fatalf("expected new active cart after checkout, got %v", err)
	}
}

func TestRepositoryListLinesInsertionOrder(t *testing.T) {
	client := openTestClient(t)
	conn := client.DB()
	repo := NewRepository(conn)
	ctx := context.Background()

	user := createTestUser(t, conn)
	product := createTestProduct(t, conn, "4.00")

	cart, err := repo.Create(ctx, &models.Cart{UserID: user.ID})
	if err != nil {
		t.Fatalf("create cart: %v", err)
	}

	quantities := []int{1, 2, 3}
	for _, qty := range quantities {
		_, err := repo.AddLine(ctx, &models.CartLine{
			CartID:     cart.ID,
			ProductID:  product.ID,
			Quantity:   qty,
			UnitPrice:  product.Price,
			TotalPrice: product.Price.Mul(decimal.NewFromInt(int64(qty))),
		})
		if err != nil {
			t.Fatalf("add line qty %d: %v", qty, err)
		}
	}

	lines, err := repo.ListLines(ctx, cart.ID)
	if err != nil {
		t.Fatalf("list lines: %v", err)
	}
	if len(lines) != len(quantities) {
		t.Fatalf("expected %d lines, got %d", len(quantities), len(lines))
	}
	for i, line := range lines {
		if line.Quantity != quantities[i] {
			t.Fatalf("expected insertion order %v, got qty %d at %d", quantities, line.Quantity, i)
		}
	}
}

func TestServiceConcurrentAddToCartSingleActiveCart(t *testing.T) {
	client := openTestClient(t)
	conn := client.DB()
	ctx := context.Background()

	user := createTestUser(t, conn)
	product := createTestProduct(t, conn, "9.99")

	svc, err := NewService(ServiceParams{
		Repo: NewRepository(conn),
		Tx:   client,
		Pricer: priceResolverFunc(func(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
			return product.Price, nil
		}),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddToCart(ctx, user.ID, AddItemInput{ProductID: product.ID, Quantity: 1})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent add: %v", err)
		}
	}

	var count int64
	if err := conn.Model(&models.Cart{}).
		Where("user_id = ? AND status = ?", user.ID, "active").
		Count(&count).Error; err != nil {
		t.Fatalf("count carts: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly one active cart, got %d", count)
	}

	active, err := NewRepository(conn).FindActiveByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("load active cart: %v", err)
	}
	if len(active.Lines) != workers {
		t.Fatalf("expected %d lines, got %d", workers, len(active.Lines))
	}
}
