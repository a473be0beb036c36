package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/desrlabs/desr-backend/api/responses"
	"github.com/desrlabs/desr-backend/api/validators"
	"github.com/desrlabs/desr-backend/internal/orders"
	"github.com/desrlabs/desr-backend/internal/tables"
	pkgerrors "github.com/desrlabs/desr-backend/pkg/errors"
	"github.com/desrlabs/desr-backend/pkg/logger"
)

// Table numbers accepted at the boundary. The registry itself creates
// rows lazily, so the cap keeps stray QR codes from minting tables.
const maxTableNumber = 100

type validateSessionRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

func tableNumberParam(r *http.Request) (int, error) {
	return validators.ParseURLInt(chi.URLParam(r, "number"), "number")
}

// TablesList returns every known table.
func TablesList(svc tables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListAll(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// TablesOccupied returns tables with a live session.
func TablesOccupied(svc tables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := svc.ListOccupied(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// TablesStatus returns the live status view for one table, including
// its active order count.
func TablesStatus(svc tables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number, err := tableNumberParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := svc.Status(r.Context(), number)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, status)
	}
}

// TablesStartSession opens a fresh session for the table, replacing any
// session already running there.
func TablesStartSession(svc tables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number, err := tableNumberParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if number < 1 || number > maxTableNumber {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid table number"))
			return
		}

		session, err := svc.StartSession(r.Context(), number)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, session)
	}
}

// TablesEndSession frees the table.
func TablesEndSession(svc tables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number, err := tableNumberParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ok, err := svc.EndSession(r.Context(), number)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "table not found"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"success": true, "message": "Session ended"})
	}
}

// TablesOrders lists the orders placed from one table, newest first.
func TablesOrders(ordersSvc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number, err := tableNumberParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := ordersSvc.List(r.Context(), orders.ListFilters{TableNumber: &number})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// TablesValidateSession checks whether a session id is still the
// table's current one.
func TablesValidateSession(svc tables.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number, err := tableNumberParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req validateSessionRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		valid, err := svc.ValidateSession(r.Context(), number, req.SessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"valid": valid})
	}
}
