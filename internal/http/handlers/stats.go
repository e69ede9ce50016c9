package handlers

import "net/http"

// StatsSummary reports ledger totals for dashboards.
func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	stats, err := a.Service.Stats(r.Context())
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, stats)
}
