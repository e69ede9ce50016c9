package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// DataKey names one entry of the ledger's key-value state. The set of
// implementations is closed: CampaignKey, CampaignIDsKey and LastCampaignIDKey.
type DataKey interface {
	// StorageKey is the stable encoding used by key-value backends.
	StorageKey() string
	isDataKey()
}

// CampaignKey addresses the record of one campaign.
type CampaignKey CampaignID

func (k CampaignKey) StorageKey() string { return "campaign/" + strconv.FormatUint(uint64(k), 10) }
func (CampaignKey) isDataKey()           {}

type campaignIDsKey struct{}

func (campaignIDsKey) StorageKey() string { return "campaign_ids" }
func (campaignIDsKey) isDataKey()         {}

type lastCampaignIDKey struct{}

func (lastCampaignIDKey) StorageKey() string { return "last_campaign_id" }
func (lastCampaignIDKey) isDataKey()         {}

var (
	// CampaignIDsKey addresses the append-only registry of campaign ids.
	CampaignIDsKey DataKey = campaignIDsKey{}
	// LastCampaignIDKey addresses the highest id issued so far.
	LastCampaignIDKey DataKey = lastCampaignIDKey{}
)

// ParseDataKey reverses StorageKey.
func ParseDataKey(s string) (DataKey, error) {
	switch s {
	case CampaignIDsKey.StorageKey():
		return CampaignIDsKey, nil
	case LastCampaignIDKey.StorageKey():
		return LastCampaignIDKey, nil
	}
	rest, ok := strings.CutPrefix(s, "campaign/")
	if !ok {
		return nil, fmt.Errorf("unknown data key %q", s)
	}
	id, err := strconv.ParseUint(rest, 10, 32)
	if err != nil || id == 0 {
		return nil, fmt.Errorf("invalid campaign key %q", s)
	}
	return CampaignKey(id), nil
}
