package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopline-backend/internal/pricing"
	"github.com/angelmondragon/shopline-backend/pkg/db/models"
	"github.com/angelmondragon/shopline-backend/pkg/enums"
)

// CartLineDTO is the transport shape of a single cart line snapshot.
type CartLineDTO struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}

// CartDTO is the transport shape of a cart with its lines and running total.
type CartDTO struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Status    enums.CartStatus `json:"status"`
	Lines     []CartLineDTO    `json:"lines"`
	Total     decimal.Decimal  `json:"total"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func FromModel(c *models.Cart) *CartDTO {
	if c == nil {
		return nil
	}

	lines := make([]CartLineDTO, 0, len(c.Lines))
	for i := range c.Lines {
		line := c.Lines[i]
		lines = append(lines, CartLineDTO{
			ID:         line.ID,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.TotalPrice,
			CreatedAt:  line.CreatedAt,
		})
	}

	return &CartDTO{
		ID:        c.ID,
		UserID:    c.UserID,
		Status:    c.Status,
		Lines:     lines,
		Total:     pricing.CartTotal(c.Lines),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
