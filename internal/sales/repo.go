package sales

import (
	"context"

	"github.com/angelmondragon/shopline-backend/internal/repo"
	"github.com/angelmondragon/shopline-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleRepository defines the persistence surface for sale receipts.
type SaleRepository interface {
	WithTx(tx *gorm.DB) SaleRepository
	Create(ctx context.Context, sale *models.Sale) (*models.Sale, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Sale, error)
}

// Repository persists immutable sale receipts.
type Repository struct {
	repo.Base
}

// NewRepository constructs a sales repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) SaleRepository {
	if tx == nil {
		return r
	}
	return &Repository{Base: repo.NewBase(tx)}
}

// Create inserts the sale receipt.
func (r *Repository) Create(ctx context.Context, sale *models.Sale) (*models.Sale, error) {
	if err := r.DB(ctx).Create(sale).Error; err != nil {
		return nil, err
	}
	return sale, nil
}

// ListByUser returns the user's sales newest first with a stable tiebreak,
// each carrying its source cart's line snapshots in insertion order.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Sale, error) {
	var rows []models.Sale
	if err := r.DB(ctx).
		Preload("Lines", lineOrder).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func lineOrder(db *gorm.DB) *gorm.DB {
	return db.Order("cart_lines.created_at ASC, cart_lines.id ASC")
}
