package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/shopline-backend/internal/cart"
	"github.com/angelmondragon/shopline-backend/internal/sales"
	"github.com/angelmondragon/shopline-backend/internal/users"
	"github.com/angelmondragon/shopline-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/shopline-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProfileDTO aggregates the user's account, open cart, and purchase history.
type ProfileDTO struct {
	User       *users.UserDTO  `json:"user"`
	ActiveCart *cart.CartDTO   `json:"active_cart,omitempty"`
	Sales      []sales.SaleDTO `json:"sales"`
}

type userLoader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type cartLoader interface {
	FindActiveByUser(ctx context.Context, userID uuid.UUID) (*models.Cart, error)
}

type salesLister interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Sale, error)
}

// Service assembles the read-only profile view.
type Service interface {
	GetProfile(ctx context.Context, requesterID, userID uuid.UUID) (*ProfileDTO, error)
}

// ServiceParams bundles the aggregator dependencies.
type ServiceParams struct {
	Users userLoader
	Carts cartLoader
	Sales salesLister
}

type service struct {
	users userLoader
	carts cartLoader
	sales salesLister
}

// NewService constructs the profile aggregator.
func NewService(params ServiceParams) (Service, error) {
	if params.Users == nil {
		return nil, fmt.Errorf("user loader required")
	}
	if params.Carts == nil {
		return nil, fmt.Errorf("cart loader required")
	}
	if params.Sales == nil {
		return nil, fmt.Errorf("sales lister required")
	}
	return &service{
		users: params.Users,
		carts: params.Carts,
		sales: params.Sales,
	}, nil
}

// GetProfile returns the caller's own profile. The view is assembled from
// committed state; no locks are taken.
func (s *service) GetProfile(ctx context.Context, requesterID, userID uuid.UUID) (*ProfileDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	if requesterID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "profiles are private")
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}

	profile := &ProfileDTO{User: users.FromModel(user)}

	activeCart, err := s.carts.FindActiveByUser(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load active cart")
	}
	if activeCart != nil {
		profile.ActiveCart = cart.FromModel(activeCart)
	}

	history, err := s.sales.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list sales")
	}
	profile.Sales = sales.FromModels(history)

	return profile, nil
}
