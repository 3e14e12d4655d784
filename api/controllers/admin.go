package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ratewise/ratewise-backend/api/responses"
	"github.com/ratewise/ratewise-backend/api/validators"
	"github.com/ratewise/ratewise-backend/internal/stats"
	"github.com/ratewise/ratewise-backend/internal/stores"
	"github.com/ratewise/ratewise-backend/internal/users"
	"github.com/ratewise/ratewise-backend/pkg/enums"
	pkgerrors "github.com/ratewise/ratewise-backend/pkg/errors"
	"github.com/ratewise/ratewise-backend/pkg/logger"
)

// AdminDashboard returns platform-wide entity counts.
func AdminDashboard(svc stats.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stats service unavailable"))
			return
		}

		dashboard, err := svc.Dashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, dashboard)
	}
}

// AdminListUsers serves the filtered, sorted user directory.
func AdminListUsers(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		filter := users.ListFilter{
			Name:      validators.QueryString(r, "name"),
			Email:     validators.QueryString(r, "email"),
			Address:   validators.QueryString(r, "address"),
			Role:      validators.QueryString(r, "role"),
			SortBy:    validators.QueryString(r, "sortBy"),
			SortOrder: validators.QueryString(r, "sortOrder"),
		}

		list, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"users": list})
	}
}

// AdminGetUser returns one user; store owners carry their store's
// rating aggregate.
func AdminGetUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "userId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid user id"))
			return
		}

		detail, err := svc.GetDetail(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, detail)
	}
}

type adminCreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=20,max=60"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Address  string `json:"address" validate:"required,max=400"`
	Role     string `json:"role" validate:"required,oneof=admin user store_owner"`
}

// AdminCreateUser creates a user with any role.
func AdminCreateUser(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "users service unavailable"))
			return
		}

		var body adminCreateUserRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		role, err := enums.ParseRole(body.Role)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid role"))
			return
		}

		user, err := svc.Create(r.Context(), users.CreateUserInput{
			Name:     body.Name,
			Email:    body.Email,
			Password: body.Password,
			Address:  body.Address,
			Role:     role,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, user)
	}
}

// AdminListStores serves the store directory joined with owners and
// rating aggregates.
func AdminListStores(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stores service unavailable"))
			return
		}

		filter := stores.AdminListFilter{
			Name:      validators.QueryString(r, "name"),
			Email:     validators.QueryString(r, "email"),
			Address:   validators.QueryString(r, "address"),
			SortBy:    validators.QueryString(r, "sortBy"),
			SortOrder: validators.QueryString(r, "sortOrder"),
		}

		list, err := svc.ListForAdmin(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"stores": list})
	}
}

type adminCreateStoreRequest struct {
	Name    string  `json:"name" validate:"required,max=100"`
	Email   string  `json:"email" validate:"required,email"`
	Address string  `json:"address" validate:"required,max=400"`
	OwnerID *string `json:"owner_id,omitempty"`
}

// AdminCreateStore creates a store, optionally bound to a store_owner.
func AdminCreateStore(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "stores service unavailable"))
			return
		}

		var body adminCreateStoreRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var ownerID *uuid.UUID
		if body.OwnerID != nil && *body.OwnerID != "" {
			parsed, err := uuid.Parse(*body.OwnerID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid owner id"))
				return
			}
			ownerID = &parsed
		}

		store, err := svc.Create(r.Context(), stores.CreateStoreInput{
			Name:    body.Name,
			Email:   body.Email,
			Address: body.Address,
			OwnerID: ownerID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, store)
	}
}
