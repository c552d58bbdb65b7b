// Package bus publishes the assistant's transcript over a websocket so an
// external UI can mirror the conversation. Publishing is best effort: a
// dead bus never blocks or fails a turn.
package bus

import (
	"encoding/json"
	log "log/slog"
	"net/url"
	"sync"

	"github.com/gorilla/websocket"
)

const shardName = "aura"

// Kinds of transcript events.
const (
	KindUtterance = "utterance" // what the user said
	KindReply     = "reply"     // what the assistant answered
)

type Message struct {
	From    string `json:"from"`
	Kind    string `json:"kind"`
	Content string `json:"content"`
}

type Bus struct {
	url string

	mu   sync.Mutex
	conn *websocket.Conn
}

func Dial(wsURL string) (*Bus, error) {
	u, err := url.Parse(wsURL)
	if err != nil {
		return nil, err
	}

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, err
	}

	log.Info("connected to bus", "url", wsURL)
	return &Bus{url: wsURL, conn: conn}, nil
}

// Publish sends one transcript event, redialing once if the connection
// has gone away. Failures are logged and swallowed.
func (b *Bus) Publish(kind, content string) {
	if b == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	msg := Message{From: shardName, Kind: kind, Content: content}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Warn("bus marshal failed", "err", err)
		return
	}

	if err := b.conn.WriteMessage(websocket.TextMessage, data); err == nil {
		return
	}

	conn, _, err := websocket.DefaultDialer.Dial(b.url, nil)
	if err != nil {
		log.Warn("bus unreachable", "url", b.url, "err", err)
		return
	}
	b.conn.Close()
	b.conn = conn

	if err := b.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Warn("bus write failed after redial", "err", err)
	}
}

func (b *Bus) Close() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.conn.Close()
}
