package cart

import (
	"context"

	"github.com/angelmondragon/shopline-backend/pkg/db/models"
	"github.com/angelmondragon/shopline-backend/pkg/enums"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartRepository defines the persistence surface required by the cart service.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	Create(ctx context.Context, cart *models.Cart) (*models.Cart, error)
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	FindActiveByUserForUpdate(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	FindByIDWithLines(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	FindActiveByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Cart, error)
	AddLine(ctx context.Context, line *models.CartLine) (*models.CartLine, error)
	ListLines(ctx context.Context, cartID uuid.UUID) ([]models.CartLine, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.CartStatus) error
}

// PriceResolver supplies the current catalog price for a product.
type PriceResolver interface {
	GetPrice(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error)
}

// TxRunner executes a function inside a database transaction.
type TxRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
