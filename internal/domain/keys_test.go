package domain

import "testing"

func TestDataKeyEncodingRoundTrip(t *testing.T) {
	keys := []DataKey{CampaignKey(1), CampaignKey(4294967295), CampaignIDsKey, LastCampaignIDKey}
	seen := map[string]bool{}
	for _, k := range keys {
		enc := k.StorageKey()
		if seen[enc] {
			t.Fatalf("duplicate encoding %q", enc)
		}
		seen[enc] = true
		got, err := ParseDataKey(enc)
		if err != nil {
			t.Fatalf("ParseDataKey(%q) error: %v", enc, err)
		}
		if got != k {
			t.Fatalf("ParseDataKey(%q) = %#v, want %#v", enc, got, k)
		}
	}
}

func TestParseDataKeyRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "campaign/", "campaign/0", "campaign/x", "campaign/4294967296", "other"} {
		if _, err := ParseDataKey(in); err == nil {
			t.Fatalf("ParseDataKey(%q) expected error", in)
		}
	}
}
