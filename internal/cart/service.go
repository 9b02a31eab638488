package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/shopline-backend/internal/pricing"
	"github.com/angelmondragon/shopline-backend/pkg/db"
	"github.com/angelmondragon/shopline-backend/pkg/db/models"
	"github.com/angelmondragon/shopline-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/shopline-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const activeCartConstraint = "uq_carts_user_active"

// AddItemInput is the validated payload for adding a product to a cart.
type AddItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// Service exposes cart staging operations.
type Service interface {
	AddToCart(ctx context.Context, userID uuid.UUID, input AddItemInput) (*CartDTO, error)
	AddLineToCart(ctx context.Context, userID, cartID uuid.UUID, input AddItemInput) (*CartDTO, error)
	GetCartForOwner(ctx context.Context, userID, cartID uuid.UUID) (*CartDTO, error)
}

// ServiceParams bundles the dependencies for the cart service.
type ServiceParams struct {
	Repo   CartRepository
	Tx     TxRunner
	Pricer PriceResolver
}

type service struct {
	repo   CartRepository
	tx     TxRunner
	pricer PriceResolver
}

// NewService constructs a cart service instance.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if params.Pricer == nil {
		return nil, fmt.Errorf("price resolver required")
	}
	return &service{
		repo:   params.Repo,
		tx:     params.Tx,
		pricer: params.Pricer,
	}, nil
}

// AddToCart appends a snapshot line to the user's active cart, lazily creating
// the cart when none exists. A repeated product gets a fresh line.
func (s *service) AddToCart(ctx context.Context, userID uuid.UUID, input AddItemInput) (*CartDTO, error) {
	line, err := s.buildLine(ctx, input)
	if err != nil {
		return nil, err
	}

	var cartID uuid.UUID
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		cart, err := s.findOrCreateActive(ctx, repo, userID)
		if err != nil {
			return err
		}

		line.CartID = cart.ID
		if _, err := repo.AddLine(ctx, line); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add cart line")
		}
		cartID = cart.ID
		return nil
	})
	if txErr != nil {
		return nil, mapStoreError(txErr)
	}

	return s.loadDTO(ctx, cartID)
}

// AddLineToCart appends a snapshot line to an explicitly addressed cart.
func (s *service) AddLineToCart(ctx context.Context, userID, cartID uuid.UUID, input AddItemInput) (*CartDTO, error) {
	if cartID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}

	line, err := s.buildLine(ctx, input)
	if err != nil {
		return nil, err
	}

	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		// Missing, foreign, and retired carts all answer the same way so the
		// caller cannot probe for other users' cart ids.
		cart, err := repo.FindByID(ctx, cartID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errCartNotAvailable()
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}
		if cart.UserID != userID || cart.Status != enums.CartStatusActive {
			return errCartNotAvailable()
		}

		// Re-check under lock; a concurrent checkout may have flipped the status.
		if _, err := repo.FindActiveByIDForUpdate(ctx, cartID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errCartNotAvailable()
			}
			if db.IsLockTimeout(err) {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "cart is locked by another request")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lock cart")
		}

		line.CartID = cartID
		if _, err := repo.AddLine(ctx, line); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "add cart line")
		}
		return nil
	})
	if txErr != nil {
		return nil, mapStoreError(txErr)
	}

	return s.loadDTO(ctx, cartID)
}

// GetCartForOwner returns the cart with its lines and total, enforcing ownership.
func (s *service) GetCartForOwner(ctx context.Context, userID, cartID uuid.UUID) (*CartDTO, error) {
	if cartID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart id is required")
	}

	cart, err := s.repo.FindByIDWithLines(ctx, cartID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}
	// A foreign cart reads as missing; existence is not leaked across owners.
	if cart.UserID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
	}

	return FromModel(cart), nil
}

// errCartNotAvailable is the single answer for addressing a cart that is
// missing, foreign, or no longer active.
func errCartNotAvailable() error {
	return pkgerrors.New(pkgerrors.CodeForbidden, "cart is not available")
}

// buildLine snapshots the current catalog price into a new line.
func (s *service) buildLine(ctx context.Context, input AddItemInput) (*models.CartLine, error) {
	if input.ProductID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	unitPrice, err := s.pricer.GetPrice(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	lineTotal, err := pricing.LineTotal(unitPrice, input.Quantity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "compute line total")
	}

	return &models.CartLine{
		ProductID:  input.ProductID,
		Quantity:   input.Quantity,
		UnitPrice:  unitPrice,
		TotalPrice: lineTotal,
	}, nil
}

// findOrCreateActive resolves the user's active cart under lock, creating one
// when absent. A concurrent creator loses on the partial unique index and the
// existing row is re-read.
func (s *service) findOrCreateActive(ctx context.Context, repo CartRepository, userID uuid.UUID) (*models.Cart, error) {
	cart, err := repo.FindActiveByUserForUpdate(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load active cart")
	}

	created, err := repo.Create(ctx, &models.Cart{UserID: userID})
	if err == nil {
		return created, nil
	}
	if !db.IsUniqueViolation(err, activeCartConstraint) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create cart")
	}

	cart, err = repo.FindActiveByUserForUpdate(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "re-read active cart")
	}
	return cart, nil
}

func (s *service) loadDTO(ctx context.Context, cartID uuid.UUID) (*CartDTO, error) {
	cart, err := s.repo.FindByIDWithLines(ctx, cartID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reload cart")
	}
	return FromModel(cart), nil
}

// mapStoreError leaves typed errors untouched and hides everything else
// behind an internal wrap.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}
	if typed := pkgerrors.As(err); typed != nil {
		return err
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cart store")
}
