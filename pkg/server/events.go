package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/decred/slog"
	"github.com/gorilla/websocket"
)

// Event names pushed to websocket subscribers.
const (
	EventGameStarted     = "gameStarted"
	EventGameStateUpdate = "gameStateUpdate"
	EventPlayersUpdate   = "playersUpdate"
	EventRoundEnded      = "roundEnded"
)

const (
	writeWait = 10 * time.Second

	// Events queued per subscriber before it is dropped as too slow.
	sendBuffer = 32
)

// Event is the envelope every websocket message uses
type Event struct {
	Type    string      `json:"type"`
	Table   string      `json:"table"`
	Payload interface{} `json:"payload"`
}

// subscriber owns one websocket connection. All writes to the connection
// happen on its single writer goroutine, fed by send; gorilla permits
// only one concurrent writer per connection.
type subscriber struct {
	conn *websocket.Conn
	send chan Event
}

// Broadcaster fans table events out to websocket subscribers. Broadcasts
// are fire-and-forget: a slow or dead subscriber is dropped, and no
// delivery failure ever reaches the game engine.
type Broadcaster struct {
	log      slog.Logger
	upgrader websocket.Upgrader

	mu   sync.Mutex
	subs map[string]map[*subscriber]bool // table id -> subscribers
}

// NewBroadcaster creates an empty broadcaster
func NewBroadcaster(log slog.Logger) *Broadcaster {
	if log == nil {
		log = slog.Disabled
	}
	return &Broadcaster{
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Browser clients connect from arbitrary origins.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		subs: make(map[string]map[*subscriber]bool),
	}
}

// Subscribe upgrades the request to a websocket and registers it for the
// table's events until the peer disconnects.
func (b *Broadcaster) Subscribe(tableID string, w http.ResponseWriter, r *http.Request) error {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	s := &subscriber{conn: conn, send: make(chan Event, sendBuffer)}

	b.mu.Lock()
	if b.subs[tableID] == nil {
		b.subs[tableID] = make(map[*subscriber]bool)
	}
	b.subs[tableID][s] = true
	b.mu.Unlock()

	b.log.Debugf("ws subscriber added for table %s", tableID)

	go b.writeLoop(tableID, s)
	go b.readLoop(tableID, s)

	return nil
}

// writeLoop is the subscriber's single writer; it ends when send closes.
func (b *Broadcaster) writeLoop(tableID string, s *subscriber) {
	defer s.conn.Close()
	for event := range s.send {
		s.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := s.conn.WriteJSON(event); err != nil {
			b.log.Debugf("dropping ws subscriber for table %s: %v", tableID, err)
			b.drop(tableID, s)
			return
		}
	}
}

// readLoop exists to notice the peer closing; subscribers only listen.
func (b *Broadcaster) readLoop(tableID string, s *subscriber) {
	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			b.drop(tableID, s)
			return
		}
	}
}

// Broadcast queues one event for every subscriber of the table. A
// subscriber whose queue is full is dropped rather than waited on.
func (b *Broadcaster) Broadcast(tableID, eventType string, payload interface{}) {
	event := Event{Type: eventType, Table: tableID, Payload: payload}

	b.mu.Lock()
	defer b.mu.Unlock()
	for s := range b.subs[tableID] {
		select {
		case s.send <- event:
		default:
			b.log.Debugf("dropping slow ws subscriber for table %s", tableID)
			b.removeLocked(tableID, s)
		}
	}
}

// SubscriberCount returns the number of live subscribers for a table
func (b *Broadcaster) SubscriberCount(tableID string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[tableID])
}

func (b *Broadcaster) drop(tableID string, s *subscriber) {
	b.mu.Lock()
	b.removeLocked(tableID, s)
	b.mu.Unlock()
}

// removeLocked unregisters the subscriber and closes its send channel,
// ending the writer. Callers hold b.mu, so no Broadcast can race the
// close; the double guard makes a second drop a no-op.
func (b *Broadcaster) removeLocked(tableID string, s *subscriber) {
	subs := b.subs[tableID]
	if subs == nil || !subs[s] {
		return
	}
	delete(subs, s)
	if len(subs) == 0 {
		delete(b.subs, tableID)
	}
	close(s.send)
}
