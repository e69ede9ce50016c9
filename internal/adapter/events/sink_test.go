package events

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"fundflow/internal/infra"
)

type published struct {
	topic   string
	payload string
}

type recordingSink struct {
	got []published
	err error
}

func (r *recordingSink) Publish(_ context.Context, topic string, payload []byte) error {
	r.got = append(r.got, published{topic: topic, payload: string(payload)})
	return r.err
}

func TestFanoutPublishesToEverySink(t *testing.T) {
	first := &recordingSink{err: errors.New("first down")}
	second := &recordingSink{}

	err := Fanout{first, nil, second}.Publish(context.Background(), "DonationMade", []byte(`{}`))
	if err == nil || !strings.Contains(err.Error(), "first down") {
		t.Fatalf("Publish() error = %v, want first sink error", err)
	}
	if len(first.got) != 1 || len(second.got) != 1 {
		t.Fatalf("deliveries = %d/%d, want 1/1", len(first.got), len(second.got))
	}
}

func TestQualify(t *testing.T) {
	tests := []struct {
		prefix, sep, topic, want string
	}{
		{"fundflow", ".", "CampaignClosed", "fundflow.CampaignClosed"},
		{"fundflow.", ".", "CampaignClosed", "fundflow.CampaignClosed"},
		{"", ":", "CampaignClosed", "CampaignClosed"},
		{" ledger ", ":", "DonationMade", "ledger:DonationMade"},
	}
	for _, tc := range tests {
		if got := qualify(tc.prefix, tc.sep, tc.topic); got != tc.want {
			t.Fatalf("qualify(%q, %q, %q) = %q, want %q", tc.prefix, tc.sep, tc.topic, got, tc.want)
		}
	}
}

type fakeRedis struct {
	channel string
	message any
	err     error
}

func (f *fakeRedis) Publish(_ context.Context, channel string, message any) *redis.IntCmd {
	f.channel = channel
	f.message = message
	return redis.NewIntResult(1, f.err)
}

func TestRedisSinkPublish(t *testing.T) {
	client := &fakeRedis{}
	sink := NewRedisSink(client, "fundflow")
	if err := sink.Publish(context.Background(), "CampaignCreated", []byte(`{"campaign_id":1}`)); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if client.channel != "fundflow:CampaignCreated" {
		t.Fatalf("channel = %q, want %q", client.channel, "fundflow:CampaignCreated")
	}
	if string(client.message.([]byte)) != `{"campaign_id":1}` {
		t.Fatalf("message = %v", client.message)
	}

	client.err = errors.New("connection refused")
	if err := sink.Publish(context.Background(), "CampaignCreated", nil); err == nil {
		t.Fatalf("Publish() expected error")
	}
}

type fakeNATS struct {
	subject string
	data    []byte
}

func (f *fakeNATS) Publish(subject string, data []byte) error {
	f.subject = subject
	f.data = data
	return nil
}

func TestNATSSinkPublish(t *testing.T) {
	conn := &fakeNATS{}
	sink := NewNATSSink(conn, "fundflow")
	if err := sink.Publish(context.Background(), "DonationMade", []byte(`{"amount":5}`)); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if conn.subject != "fundflow.DonationMade" || string(conn.data) != `{"amount":5}` {
		t.Fatalf("published %q %q", conn.subject, conn.data)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := sink.Publish(ctx, "DonationMade", nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("Publish() error = %v, want context.Canceled", err)
	}
}

func TestLogSinkWritesPayload(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(zerolog.New(&buf))
	if err := sink.Publish(context.Background(), "CampaignClosed", []byte(`{"campaign_id":3}`)); err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if line["topic"] != "CampaignClosed" {
		t.Fatalf("topic = %v", line["topic"])
	}
	payload, ok := line["payload"].(map[string]any)
	if !ok || payload["campaign_id"] != float64(3) {
		t.Fatalf("payload = %#v", line["payload"])
	}
}

func TestOpenLogSinkOnly(t *testing.T) {
	sink, closeFn, err := Open(context.Background(), &infra.Config{EventSinks: []string{infra.EventSinkLog}}, zerolog.Nop())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer closeFn()
	if err := sink.Publish(context.Background(), "CampaignClosed", []byte(`{"campaign_id":1}`)); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if _, _, err := Open(context.Background(), &infra.Config{EventSinks: []string{"kafka"}}, zerolog.Nop()); err == nil {
		t.Fatal("expected error for unknown sink")
	}
}
