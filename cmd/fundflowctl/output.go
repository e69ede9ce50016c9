package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"fundflow/internal/domain"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

type campaignView struct {
	ID          domain.CampaignID    `json:"campaign_id" yaml:"campaign_id"`
	Title       string               `json:"title" yaml:"title"`
	Description string               `json:"description" yaml:"description"`
	Goal        domain.Amount        `json:"goal" yaml:"goal"`
	Raised      domain.Amount        `json:"raised" yaml:"raised"`
	Owner       domain.Address       `json:"owner" yaml:"owner"`
	IsActive    bool                 `json:"is_active" yaml:"is_active"`
	State       domain.CampaignState `json:"state" yaml:"state"`
	ProgressPct int                  `json:"progress_pct" yaml:"progress_pct"`
}

func newCampaignView(c domain.Campaign) campaignView {
	return campaignView{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Goal:        c.Goal,
		Raised:      c.Raised,
		Owner:       c.Owner,
		IsActive:    c.IsActive,
		State:       c.State(),
		ProgressPct: c.ProgressPercent(),
	}
}

// render writes v in the structured format selected by -o, or calls text for
// the human readable form.
func (c *cli) render(v any, text func(io.Writer)) error {
	switch c.format {
	case formatJSON:
		enc := json.NewEncoder(c.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(c.out)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		text(c.out)
		return nil
	}
}

func (c *cli) writeCampaign(w io.Writer, v campaignView) {
	fmt.Fprintf(w, "campaign %d: %s\n", v.ID, v.Title)
	if v.Description != "" {
		fmt.Fprintf(w, "  description: %s\n", v.Description)
	}
	fmt.Fprintf(w, "  owner:       %s\n", v.Owner)
	fmt.Fprintf(w, "  state:       %s\n", v.State)
	c.printer.Fprintf(w, "  raised:      %d / %d (%d%%)\n", int64(v.Raised), int64(v.Goal), v.ProgressPct)
}

func (c *cli) writeCampaignLine(w io.Writer, v campaignView) {
	c.printer.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%s\n", fmt.Sprint(v.ID), v.State, v.Owner, int64(v.Raised), int64(v.Goal), v.Title)
}
