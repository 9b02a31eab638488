package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/shopline-backend/pkg/db/models"
)

// SaleLineDTO is one purchased line as it was snapshotted into the source cart.
type SaleLineDTO struct {
	ID         uuid.UUID       `json:"id"`
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
}

// SaleDTO is the transport representation of a finalized sale receipt,
// carrying the line snapshots of the cart it was converted from.
type SaleDTO struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	CartID     uuid.UUID       `json:"cart_id"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Lines      []SaleLineDTO   `json:"lines"`
	CreatedAt  time.Time       `json:"created_at"`
}

func FromModel(s *models.Sale) *SaleDTO {
	if s == nil {
		return nil
	}

	lines := make([]SaleLineDTO, 0, len(s.Lines))
	for i := range s.Lines {
		line := s.Lines[i]
		lines = append(lines, SaleLineDTO{
			ID:         line.ID,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			UnitPrice:  line.UnitPrice,
			TotalPrice: line.TotalPrice,
			CreatedAt:  line.CreatedAt,
		})
	}

	return &SaleDTO{
		ID:         s.ID,
		UserID:     s.UserID,
		CartID:     s.CartID,
		TotalPrice: s.TotalPrice,
		Lines:      lines,
		CreatedAt:  s.CreatedAt,
	}
}

func FromModels(items []models.Sale) []SaleDTO {
	out := make([]SaleDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out
}
