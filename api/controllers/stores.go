package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ratewise/ratewise-backend/api/middleware"
	"github.com/ratewise/ratewise-backend/api/responses"
	"github.com/ratewise/ratewise-backend/api/validators"
	"github.com/ratewise/ratewise-backend/internal/ratings"
	"github.com/ratewise/ratewise-backend/internal/stores"
	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
	"github.com/ratewise/ratewise-backend/pkg/logger"
)

// ListStores serves the shopper directory: aggregates plus the caller's
// own rating per store.
func ListStores(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stores service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := stores.UserListFilter{
			Name:      validators.QueryString(r, "name"),
			Address:   validators.QueryString(r, "address"),
			SortBy:    validators.QueryString(r, "sortBy"),
			SortOrder: validators.QueryString(r, "sortOrder"),
		}

		list, err := svc.ListForUser(r.Context(), userID, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"stores": list})
	}
}

type submitRatingRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

// SubmitRating upserts the caller's rating for a store. A first
// submission answers 201, a revision answers 200.
func SubmitRating(svc ratings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ratings service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeID, err := uuid.Parse(chi.URLParam(r, "storeId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store id"))
			return
		}

		var body submitRatingRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Submit(r.Context(), userID, storeID, body.Rating)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusOK
		outcome := "updated"
		if created {
			status = http.StatusCreated
			outcome = "created"
		}
		responses.WriteSuccessStatus(w, status, map[string]any{
			"rating":  body.Rating,
			"outcome": outcome,
		})
	}
}

// GetUserRating returns the caller's rating for a store, null when the
// store has not been rated by them yet.
func GetUserRating(svc ratings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ratings service unavailable"))
			return
		}

		userID, err := callerID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeID, err := uuid.Parse(chi.URLParam(r, "storeId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid store id"))
			return
		}

		rating, err := svc.GetUserRating(r.Context(), userID, storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"rating": rating})
	}
}

func callerID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid caller id")
	}
	return id, nil
}
