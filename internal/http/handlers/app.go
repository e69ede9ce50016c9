package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"fundflow/internal/domain"
)

// CampaignService is the engine surface the HTTP host drives.
type CampaignService interface {
	CreateCampaign(ctx context.Context, title, description string, goal domain.Amount) (domain.CampaignID, error)
	Donate(ctx context.Context, id domain.CampaignID, amount domain.Amount) (domain.Amount, error)
	GetCampaign(ctx context.Context, id domain.CampaignID) (domain.Campaign, error)
	ListCampaigns(ctx context.Context) ([]domain.CampaignID, error)
	ListCampaignDetails(ctx context.Context) ([]domain.Campaign, error)
	CloseCampaign(ctx context.Context, id domain.CampaignID) error
	Stats(ctx context.Context) (domain.Stats, error)
}

type App struct {
	Service CampaignService
	Logger  zerolog.Logger
}

func NewApp(svc CampaignService, logger zerolog.Logger) *App {
	return &App{Service: svc, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) error(w http.ResponseWriter, status int, code, message string) {
	a.json(w, status, errorBody{Error: errorDetail{Code: code, Message: message}})
}
