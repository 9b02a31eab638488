package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/shopline-backend/pkg/enums"
)

// Cart is a user's open basket. At most one active cart exists per user,
// enforced by a partial unique index on (user_id) WHERE status = 'active'.
// Checked-out carts are retained indefinitely for receipt reconstruction.
type Cart struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID        `gorm:"column:user_id;type:uuid;not null"`
	Status    enums.CartStatus `gorm:"column:status;type:cart_status;not null;default:'active'"`
	Lines     []CartLine       `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}
