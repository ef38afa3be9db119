package natsadapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/aeroprofile/internal/core/domain"
)

// Subjects and stream used for chart hand-off.
const (
	ChartStream       = "PROFILE_CHARTS"
	ChartSubjectRoot  = "profile.chart"
	BroadcastSubject  = "profile.updates.broadcast"
	chartSubjectAll   = ChartSubjectRoot + ".>"
	anonymousChartKey = "adhoc"
)

// Publisher implements ports.ChartPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   nats.JetStreamContext
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := RawConn(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	cfg := &nats.StreamConfig{
		Name:      ChartStream,
		Subjects:  []string{chartSubjectAll},
		Retention: nats.InterestPolicy,
		MaxAge:    24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(cfg); err != nil {
		// Stream may already exist, try update
		if _, err := js.UpdateStream(cfg); err != nil {
			return nil, fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}

	return &Publisher{conn: conn, js: js}, nil
}

// ChartSubject returns the subject a profile's sets are published on.
func ChartSubject(profileID string) string {
	key := strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ':
			return '_'
		}
		return r
	}, profileID)
	if key == "" {
		key = anonymousChartKey
	}
	return ChartSubjectRoot + "." + key
}

// MessageID is the JetStream dedup id of an event: the same set rendered for
// the same profile within the stream window is stored once.
func MessageID(ev *domain.ChartEvent) string {
	id := ev.ProfileID
	if id == "" {
		id = anonymousChartKey
	}
	return id + ":" + ev.Fingerprint
}

// PublishChart hands one complete geometry set to the stream.
func (p *Publisher) PublishChart(ctx context.Context, ev *domain.ChartEvent) error {
	data, err := EncodeChartEvent(ev)
	if err != nil {
		return err
	}
	msg := nats.NewMsg(ChartSubject(ev.ProfileID))
	msg.Data = data
	msg.Header.Set(nats.MsgIdHdr, MessageID(ev))
	_, err = p.js.PublishMsg(msg, nats.Context(ctx))
	return err
}

// PublishBroadcast sends a core NATS message to live WebSocket listeners.
func (p *Publisher) PublishBroadcast(ctx context.Context, data []byte) error {
	return p.conn.Publish(BroadcastSubject, data)
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	_ = p.conn.Drain()
}

// RawConn creates a plain NATS connection for subscribing (e.g. WebSocket relay).
func RawConn(url string) (*nats.Conn, error) {
	return nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
}
