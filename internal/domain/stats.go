package domain

// Stats aggregates the ledger for dashboards.
type Stats struct {
	TotalCampaigns  int    `json:"total_campaigns" yaml:"total_campaigns"`
	ActiveCampaigns int    `json:"active_campaigns" yaml:"active_campaigns"`
	TotalRaised     Amount `json:"total_raised" yaml:"total_raised"`
}

// Summarize folds campaigns into Stats. A total beyond the Amount range is
// ErrArithmeticOverflow.
func Summarize(campaigns []Campaign) (Stats, error) {
	var s Stats
	for _, c := range campaigns {
		total, err := s.TotalRaised.CheckedAdd(c.Raised)
		if err != nil {
			return Stats{}, err
		}
		s.TotalRaised = total
		s.TotalCampaigns++
		if c.IsActive {
			s.ActiveCampaigns++
		}
	}
	return s, nil
}
