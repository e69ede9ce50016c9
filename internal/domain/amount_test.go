package domain

import (
	"errors"
	"math"
	"testing"
)

func TestAmountCheckedAdd(t *testing.T) {
	tests := []struct {
		name    string
		a, b    Amount
		want    Amount
		wantErr error
	}{
		{name: "simple", a: 40, b: 70, want: 110},
		{name: "to max", a: math.MaxInt64 - 1, b: 1, want: math.MaxInt64},
		{name: "past max", a: math.MaxInt64, b: 1, wantErr: ErrArithmeticOverflow},
		{name: "past min", a: math.MinInt64, b: -1, wantErr: ErrArithmeticOverflow},
		{name: "negative in range", a: 5, b: -3, want: 2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.a.CheckedAdd(tc.b)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("CheckedAdd() error = %v, want %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Fatalf("CheckedAdd() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCampaignProgressPercent(t *testing.T) {
	tests := []struct {
		goal, raised Amount
		want         int
	}{
		{goal: 100, raised: 0, want: 0},
		{goal: 100, raised: 40, want: 40},
		{goal: 100, raised: 110, want: 100},
		{goal: 3, raised: 1, want: 33},
		{goal: math.MaxInt64, raised: math.MaxInt64 / 2, want: 50},
	}
	for _, tc := range tests {
		c := Campaign{Goal: tc.goal, Raised: tc.raised, IsActive: true}
		if got := c.ProgressPercent(); got != tc.want {
			t.Fatalf("ProgressPercent(goal=%d, raised=%d) = %d, want %d", tc.goal, tc.raised, got, tc.want)
		}
	}
}

func TestCampaignState(t *testing.T) {
	if (Campaign{IsActive: true}).State() != CampaignStateActive {
		t.Fatalf("active campaign reported closed")
	}
	if (Campaign{}).State() != CampaignStateClosed {
		t.Fatalf("inactive campaign reported active")
	}
}
