package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/angelmondragon/shopline-backend/internal/cart"
	"github.com/angelmondragon/shopline-backend/internal/pricing"
	"github.com/angelmondragon/shopline-backend/internal/sales"
	"github.com/angelmondragon/shopline-backend/pkg/db"
	"github.com/angelmondragon/shopline-backend/pkg/db/models"
	"github.com/angelmondragon/shopline-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopline-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultLockTimeout = 3 * time.Second

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service finalizes a cart into an immutable sale.
type Service interface {
	Execute(ctx context.Context, userID, cartID uuid.UUID) (*sales.SaleDTO, error)
}

type service struct {
	tx          txRunner
	cartRepo    cart.CartRepository
	salesRepo   sales.SaleRepository
	lockTimeout time.Duration
}

// ServiceParams bundles the checkout dependencies.
type ServiceParams struct {
	Tx          txRunner
	CartRepo    cart.CartRepository
	SalesRepo   sales.SaleRepository
	LockTimeout time.Duration
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.SalesRepo == nil {
		return nil, fmt.Errorf("sales repository required")
	}
	lockTimeout := params.LockTimeout
	if lockTimeout <= 0 {
		lockTimeout = defaultLockTimeout
	}
	return &service{
		tx:          params.Tx,
		cartRepo:    params.CartRepo,
		salesRepo:   params.SalesRepo,
		lockTimeout: lockTimeout,
	}, nil
}

// Execute runs the checkout protocol: lock the active cart row, snapshot its
// total from the stored line totals, write the sale, and retire the cart. The
// whole protocol commits or rolls back as one transaction.
func (s *service) Execute(ctx context.Context, userID, cartID uuid.UUID) (*sales.SaleDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if cartID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id required")
	}

	var receipt *sales.SaleDTO
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.applyLockTimeout(tx); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set lock timeout")
		}

		cartRepo := s.cartRepo.WithTx(tx)
		salesRepo := s.salesRepo.WithTx(tx)

		record, err := cartRepo.FindActiveByIDForUpdate(ctx, cartID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return s.classifyMissingCart(ctx, cartRepo, userID, cartID)
			}
			if db.IsLockTimeout(err) {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "cart is locked by another checkout")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lock cart")
		}
		if record.UserID != userID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "cart belongs to another user")
		}

		lines, err := cartRepo.ListLines(ctx, cartID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart lines")
		}
		total := pricing.CartTotal(lines)

		sale, err := salesRepo.Create(ctx, &models.Sale{
			UserID:     userID,
			CartID:     cartID,
			TotalPrice: total,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create sale")
		}

		if err := cartRepo.UpdateStatus(ctx, cartID, enums.CartStatusCheckedOut); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "retire cart")
		}

		// The receipt carries the lines it was just totaled from.
		sale.Lines = lines
		receipt = sales.FromModel(sale)
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	return receipt, nil
}

// applyLockTimeout bounds how long the FOR UPDATE below may wait. SET LOCAL
// scopes the setting to the surrounding transaction.
func (s *service) applyLockTimeout(tx *gorm.DB) error {
	if tx == nil {
		return nil
	}
	millis := s.lockTimeout.Milliseconds()
	return tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", millis)).Error
}

// classifyMissingCart separates "never existed" from "already checked out" and
// "not yours" once the locked lookup comes back empty. A cart retired by a
// concurrent winner is terminal, so the loser sees "not active" rather than a
// retryable conflict.
func (s *service) classifyMissingCart(ctx context.Context, cartRepo cart.CartRepository, userID, cartID uuid.UUID) error {
	record, err := cartRepo.FindByID(ctx, cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	if record.UserID != userID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "cart belongs to another user")
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "cart is not active")
}
