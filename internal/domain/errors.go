package domain

import "errors"

var (
	ErrInvalidAmount      = errors.New("amount must be > 0")
	ErrNotFound           = errors.New("campaign not found")
	ErrCampaignClosed     = errors.New("campaign is closed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
)
