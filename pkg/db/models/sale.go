package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Sale is the immutable receipt produced by checkout. TotalPrice is the sum
// of the source cart's snapshotted line totals at the instant of conversion;
// later catalog price changes never alter it. Lines resolves the source
// cart's line snapshots through cart_id; the cart is never deleted, so the
// association stays readable for the life of the sale.
type Sale struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID     uuid.UUID       `gorm:"column:user_id;type:uuid;not null"`
	CartID     uuid.UUID       `gorm:"column:cart_id;type:uuid;not null"`
	TotalPrice decimal.Decimal `gorm:"column:total_price;type:numeric(12,2);not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	Lines      []CartLine      `gorm:"foreignKey:CartID;references:CartID"`
}
