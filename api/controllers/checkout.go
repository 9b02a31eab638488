package controllers

import (
	"net/http"

	"github.com/angelmondragon/shopline-backend/api/responses"
	checkoutsvc "github.com/angelmondragon/shopline-backend/internal/checkout"
	pkgerrors "github.com/angelmondragon/shopline-backend/pkg/errors"
	"github.com/angelmondragon/shopline-backend/pkg/logger"
)

// Checkout finalizes the addressed cart into a sale.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		userID, err := userIDFromContext(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cartID, err := uuidURLParam(r, "cartId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		receipt, err := svc.Execute(r.Context(), userID, cartID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}
