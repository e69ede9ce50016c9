package handlers

import (
	"errors"
	"net/http"

	"fundflow/internal/crowdfund"
	"fundflow/internal/domain"
)

// domainError maps engine failures onto HTTP status codes and stable error
// codes. A missing principal is 401; a principal that is not allowed is 403.
func (a *App) domainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		a.error(w, http.StatusBadRequest, "invalid_amount", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrCampaignClosed):
		a.error(w, http.StatusConflict, "campaign_closed", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		status := http.StatusForbidden
		if _, ok := crowdfund.InvokerFromContext(r.Context()); !ok {
			status = http.StatusUnauthorized
		}
		a.error(w, status, "unauthorized", err.Error())
	case errors.Is(err, domain.ErrArithmeticOverflow):
		a.error(w, http.StatusUnprocessableEntity, "arithmetic_overflow", err.Error())
	default:
		a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}
