package http

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	natsadapter "github.com/samirrijal/aeroprofile/internal/adapters/nats"
	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/pkg/metrics"
)

// wsMessage is sent from client to subscribe/unsubscribe to chart feeds.
type wsMessage struct {
	Action  string `json:"action"`  // "subscribe" | "unsubscribe"
	Profile string `json:"profile"` // profile id, "" = every profile
}

// ChartNotice is what WebSocket clients receive for each generated set.
type ChartNotice struct {
	Type        string           `json:"type"`
	ProfileID   string           `json:"profile_id,omitempty"`
	ProfileName string           `json:"profile_name,omitempty"`
	Fingerprint string           `json:"fingerprint"`
	GeneratedAt time.Time        `json:"generated_at"`
	Features    int              `json:"features"`
	Warnings    []domain.Warning `json:"warnings,omitempty"`
}

func chartNotice(ev *domain.ChartEvent) ChartNotice {
	n := ChartNotice{
		Type:        "chart",
		ProfileID:   ev.ProfileID,
		ProfileName: ev.ProfileName,
		Fingerprint: ev.Fingerprint,
		GeneratedAt: ev.GeneratedAt,
	}
	if ev.Geometry != nil {
		n.Features = ev.Geometry.Len()
		n.Warnings = ev.Geometry.Warnings
	}
	return n
}

// WebSocketHandler relays generation events to connected clients. Every client
// gets the broadcast feed; {"action":"subscribe","profile":"<id>"} adds the
// chart stream of one profile, an empty profile adds all of them.
func WebSocketHandler(nc *nats.Conn) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		metrics.ActiveWebSockets.Inc()
		defer metrics.ActiveWebSockets.Dec()

		remoteAddr := c.RemoteAddr().String()
		log := slog.With("remote", remoteAddr)
		log.Info("ws client connected")

		var mu sync.Mutex
		subs := make(map[string]*nats.Subscription) // subject -> subscription

		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		if nc == nil {
			_ = writeJSON(map[string]string{"error": "live feed not available"})
			return
		}

		sub, err := nc.Subscribe(natsadapter.BroadcastSubject, func(msg *nats.Msg) {
			_ = writeJSON(json.RawMessage(msg.Data))
		})
		if err != nil {
			log.Error("ws broadcast subscribe", "error", err)
			return
		}
		subs[natsadapter.BroadcastSubject] = sub

		relayChart := func(msg *nats.Msg) {
			ev, err := natsadapter.DecodeChartEvent(msg.Data)
			if err != nil {
				log.Warn("ws undecodable chart", "subject", msg.Subject, "error", err)
				return
			}
			_ = writeJSON(chartNotice(ev))
		}

		done := make(chan struct{})
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m wsMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				_ = writeJSON(map[string]string{"error": "invalid JSON"})
				continue
			}

			subject := natsadapter.ChartSubjectRoot + ".>"
			if m.Profile != "" {
				subject = natsadapter.ChartSubject(m.Profile)
			}

			switch m.Action {
			case "subscribe":
				if _, exists := subs[subject]; exists {
					_ = writeJSON(map[string]string{"status": "already subscribed", "subject": subject})
					continue
				}
				s, err := nc.Subscribe(subject, relayChart)
				if err != nil {
					_ = writeJSON(map[string]string{"error": "subscribe failed: " + err.Error()})
					continue
				}
				subs[subject] = s
				_ = writeJSON(map[string]string{"status": "subscribed", "subject": subject})

			case "unsubscribe":
				if s, exists := subs[subject]; exists {
					_ = s.Unsubscribe()
					delete(subs, subject)
					_ = writeJSON(map[string]string{"status": "unsubscribed", "subject": subject})
				} else {
					_ = writeJSON(map[string]string{"error": "not subscribed to " + subject})
				}

			default:
				_ = writeJSON(map[string]string{"error": "unknown action: " + m.Action})
			}
		}

		close(done)
		for _, s := range subs {
			_ = s.Unsubscribe()
		}
		log.Info("ws client disconnected")
	}
}
