package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"fundflow/internal/domain"
)

type createCampaignRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Goal        int64  `json:"goal"`
}

type donateRequest struct {
	Amount int64 `json:"amount"`
}

type campaignResponse struct {
	domain.Campaign
	State       domain.CampaignState `json:"state"`
	ProgressPct int                  `json:"progress_pct"`
}

func toResponse(c domain.Campaign) campaignResponse {
	return campaignResponse{Campaign: c, State: c.State(), ProgressPct: c.ProgressPercent()}
}

func (a *App) CampaignsCreate(w http.ResponseWriter, r *http.Request) {
	var req createCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	id, err := a.Service.CreateCampaign(r.Context(), req.Title, req.Description, domain.Amount(req.Goal))
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, map[string]any{"campaign_id": id})
}

// CampaignsList returns ids in creation order, or full records with ?expand=1.
func (a *App) CampaignsList(w http.ResponseWriter, r *http.Request) {
	if expand, _ := strconv.ParseBool(r.URL.Query().Get("expand")); expand {
		campaigns, err := a.Service.ListCampaignDetails(r.Context())
		if err != nil {
			a.domainError(w, r, err)
			return
		}
		items := make([]campaignResponse, 0, len(campaigns))
		for _, c := range campaigns {
			items = append(items, toResponse(c))
		}
		a.json(w, http.StatusOK, map[string]any{"items": items})
		return
	}
	ids, err := a.Service.ListCampaigns(r.Context())
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"campaign_ids": ids})
}

func (a *App) CampaignsGet(w http.ResponseWriter, r *http.Request) {
	id, ok := a.campaignID(w, r)
	if !ok {
		return
	}
	c, err := a.Service.GetCampaign(r.Context(), id)
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toResponse(c))
}

func (a *App) CampaignsDonate(w http.ResponseWriter, r *http.Request) {
	id, ok := a.campaignID(w, r)
	if !ok {
		return
	}
	var req donateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	raised, err := a.Service.Donate(r.Context(), id, domain.Amount(req.Amount))
	if err != nil {
		a.domainError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"campaign_id": id, "raised": raised})
}

func (a *App) CampaignsClose(w http.ResponseWriter, r *http.Request) {
	id, ok := a.campaignID(w, r)
	if !ok {
		return
	}
	if err := a.Service.CloseCampaign(r.Context(), id); err != nil {
		a.domainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) campaignID(w http.ResponseWriter, r *http.Request) (domain.CampaignID, bool) {
	raw := chi.URLParam(r, "id")
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid campaign id")
		return 0, false
	}
	return domain.CampaignID(n), true
}
