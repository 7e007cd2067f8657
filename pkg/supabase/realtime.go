package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// ChangeEvent is a single row change delivered by the realtime channel
type ChangeEvent struct {
	Type            string          // INSERT, UPDATE or DELETE
	Record          json.RawMessage // new row state (INSERT/UPDATE)
	OldRecord       json.RawMessage // previous row state (UPDATE/DELETE)
	CommitTimestamp time.Time
}

// ChangeHandler receives row changes. Handlers must not block: they run on
// the read loop goroutine.
type ChangeHandler func(ChangeEvent)

const (
	heartbeatInterval = 25 * time.Second
	reconnectMinWait  = time.Second
	reconnectMaxWait  = 30 * time.Second
)

// phoenixMessage is the framing used by the Supabase realtime protocol
type phoenixMessage struct {
	Topic   string          `json:"topic"`
	Event   string          `json:"event"`
	Payload json.RawMessage `json:"payload"`
	Ref     string          `json:"ref"`
}

type changePayload struct {
	Data struct {
		Type            string          `json:"type"`
		Record          json.RawMessage `json:"record"`
		OldRecord       json.RawMessage `json:"old_record"`
		CommitTimestamp string          `json:"commit_timestamp"`
	} `json:"data"`
}

type joinPayload struct {
	Config struct {
		PostgresChanges []postgresChangesConfig `json:"postgres_changes"`
	} `json:"config"`
}

type postgresChangesConfig struct {
	Event  string `json:"event"`
	Schema string `json:"schema"`
	Table  string `json:"table"`
}

// Subscription is a long-lived realtime subscription on a single table
type Subscription struct {
	client  *Client
	table   string
	handler ChangeHandler
	cancel  context.CancelFunc
	done    chan struct{}
}

// Subscribe opens a realtime subscription for all row changes on the given
// public-schema table. It reconnects with backoff until ctx is cancelled or
// Close is called.
func (c *Client) Subscribe(ctx context.Context, table string, handler ChangeHandler) (*Subscription, error) {
	endpoint, err := c.realtimeURL()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription{
		client:  c,
		table:   table,
		handler: handler,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	go sub.run(ctx, endpoint)

	return sub, nil
}

// Close stops the subscription and waits for the read loop to exit
func (s *Subscription) Close() {
	s.cancel()
	<-s.done
}

func (s *Subscription) run(ctx context.Context, endpoint string) {
	defer close(s.done)

	wait := reconnectMinWait
	for {
		if ctx.Err() != nil {
			return
		}

		err := s.connectAndRead(ctx, endpoint)
		if ctx.Err() != nil {
			return
		}

		s.client.logger.WithError(err).WithField("table", s.table).
			Warn("Realtime connection lost, reconnecting")

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
		wait *= 2
		if wait > reconnectMaxWait {
			wait = reconnectMaxWait
		}
	}
}

// connectAndRead dials the realtime endpoint, joins the table topic and
// pumps messages until the connection drops or ctx is cancelled
func (s *Subscription) connectAndRead(ctx context.Context, endpoint string) error {
	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, _, err := dialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to dial realtime endpoint: %w", err)
	}
	defer conn.Close()

	topic := fmt.Sprintf("realtime:public:%s", s.table)

	join := joinPayload{}
	join.Config.PostgresChanges = []postgresChangesConfig{
		{Event: "*", Schema: "public", Table: s.table},
	}
	joinBody, err := json.Marshal(join)
	if err != nil {
		return fmt.Errorf("failed to marshal join payload: %w", err)
	}

	if err := conn.WriteJSON(phoenixMessage{
		Topic:   topic,
		Event:   "phx_join",
		Payload: joinBody,
		Ref:     uuid.NewString(),
	}); err != nil {
		return fmt.Errorf("failed to join topic %s: %w", topic, err)
	}

	s.client.logger.WithField("table", s.table).Info("Realtime subscription joined")

	// Writer goroutine owns the connection for heartbeats; the read loop
	// below owns reads.
	hbCtx, hbCancel := context.WithCancel(ctx)
	defer hbCancel()
	go s.heartbeat(hbCtx, conn)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(2 * heartbeatInterval)); err != nil {
			return fmt.Errorf("failed to set read deadline: %w", err)
		}

		var msg phoenixMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return fmt.Errorf("realtime read failed: %w", err)
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		switch msg.Event {
		case "postgres_changes":
			event, err := decodeChange(msg.Payload)
			if err != nil {
				s.client.logger.WithError(err).Warn("Failed to decode realtime change, skipping")
				continue
			}
			s.handler(event)
		case "phx_error":
			return fmt.Errorf("realtime channel error on topic %s", msg.Topic)
		default:
			// phx_reply, presence and system frames are not interesting here
		}
	}
}

func (s *Subscription) heartbeat(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			msg := phoenixMessage{
				Topic:   "phoenix",
				Event:   "heartbeat",
				Payload: json.RawMessage(`{}`),
				Ref:     uuid.NewString(),
			}
			if err := conn.WriteJSON(msg); err != nil {
				// Read loop will notice the dead connection and reconnect
				return
			}
		}
	}
}

// decodeChange converts a postgres_changes payload into a ChangeEvent
func decodeChange(payload json.RawMessage) (ChangeEvent, error) {
	var body changePayload
	if err := json.Unmarshal(payload, &body); err != nil {
		return ChangeEvent{}, fmt.Errorf("failed to unmarshal change payload: %w", err)
	}

	if body.Data.Type == "" {
		return ChangeEvent{}, fmt.Errorf("change payload missing type")
	}

	event := ChangeEvent{
		Type:      body.Data.Type,
		Record:    body.Data.Record,
		OldRecord: body.Data.OldRecord,
	}

	if body.Data.CommitTimestamp != "" {
		ts, err := time.Parse(time.RFC3339, body.Data.CommitTimestamp)
		if err != nil {
			return ChangeEvent{}, fmt.Errorf("failed to parse commit timestamp: %w", err)
		}
		event.CommitTimestamp = ts
	}

	return event, nil
}
