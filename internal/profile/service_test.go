package profile

import (
	"context"
	"testing"
	"time"

	"github.com/angelmondragon/shopline-backend/pkg/db/models"
	"github.com/angelmondragon/shopline-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopline-backend/pkg/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func TestGetProfileAggregatesUserCartAndSales(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	now := time.Now().UTC()
	svc := newTestService(t, serviceDeps{
		user: &models.User{ID: userID, Username: "shopper", Email: "shopper@example.com", IsActive: true},
		cart: &models.Cart{
			ID:     uuid.New(),
			UserID: userID,
			Status: enums.CartStatusActive,
			Lines: []models.CartLine{
				{TotalPrice: decimal.RequireFromString("12.00")},
			},
		},
		sales: []models.Sale{
			{
				ID:         uuid.New(),
				UserID:     userID,
				TotalPrice: decimal.RequireFromString("50.00"),
				CreatedAt:  now,
				Lines: []models.CartLine{
					{ProductID: uuid.New(), Quantity: 2, UnitPrice: decimal.RequireFromString("25.00"), TotalPrice: decimal.RequireFromString("50.00")},
				},
			},
			{ID: uuid.New(), UserID: userID, TotalPrice: decimal.RequireFromString("20.00"), CreatedAt: now.Add(-time.Hour)},
		},
	})

	profile, err := svc.GetProfile(context.Background(), userID, userID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}

	if profile.User == nil || profile.User.Username != "shopper" {
		t.Fatalf("expected user in profile, got %+v", profile.User)
	}
	if profile.ActiveCart == nil {
		t.Fatal("expected active cart in profile")
	}
	if !profile.ActiveCart.Total.Equal(decimal.RequireFromString("12.00")) {
		t.Fatalf("expected cart total 12.00, got %s", profile.ActiveCart.Total)
	}
	if len(profile.Sales) != 2 {
		t.Fatalf("expected two sales, got %d", len(profile.Sales))
	}
	if !profile.Sales[0].TotalPrice.Equal(decimal.RequireFromString("50.00")) {
		t.Fatalf("expected newest sale first, got %s", profile.Sales[0].TotalPrice)
	}
	if len(profile.Sales[0].Lines) != 1 {
		t.Fatalf("expected sale to carry its originating line, got %d", len(profile.Sales[0].Lines))
	}
	line := profile.Sales[0].Lines[0]
	if line.Quantity != 2 || !line.TotalPrice.Equal(decimal.RequireFromString("50.00")) {
		t.Fatalf("expected line snapshot qty 2 / 50.00, got qty %d / %s", line.Quantity, line.TotalPrice)
	}
}

func TestGetProfileWithoutActiveCart(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := newTestService(t, serviceDeps{
		user: &models.User{ID: userID, Username: "idle", Email: "idle@example.com"},
	})

	profile, err := svc.GetProfile(context.Background(), userID, userID)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.ActiveCart != nil {
		t.Fatalf("expected no active cart, got %+v", profile.ActiveCart)
	}
	if profile.Sales == nil || len(profile.Sales) != 0 {
		t.Fatalf("expected empty sales slice, got %v", profile.Sales)
	}
}

func TestGetProfileStrangerForbidden(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := newTestService(t, serviceDeps{
		user: &models.User{ID: userID, Username: "private", Email: "private@example.com"},
	})

	_, err := svc.GetProfile(context.Background(), uuid.New(), userID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestGetProfileUnknownUserNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, serviceDeps{})

	missing := uuid.New()
	_, err := svc.GetProfile(context.Background(), missing, missing)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

type serviceDeps struct {
	user  *models.User
	cart  *models.Cart
	sales []models.Sale
}

func newTestService(t *testing.T, deps serviceDeps) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Users: stubUserLoader{user: deps.user},
		Carts: stubCartLoader{cart: deps.cart},
		Sales: stubSalesLister{sales: deps.sales},
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

type stubUserLoader struct {
	user *models.User
}

func (s stubUserLoader) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

type stubCartLoader struct {
	cart *models.Cart
}

func (s stubCartLoader) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	if s.cart == nil || s.cart.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.cart, nil
}

type stubSalesLister struct {
	sales []models.Sale
}

func (s stubSalesLister) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Sale, error) {
	return append([]models.Sale(nil), s.sales...), nil
}
