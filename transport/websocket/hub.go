package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/wricardo/mcp-training/arcade/game/engine"
	"github.com/wricardo/mcp-training/arcade/game/service"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 1024

	// Pending outbound messages per client before it is dropped.
	sendBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Message is what the hub sends to clients
type Message struct {
	SessionID string           `json:"session_id"`
	Snapshot  *engine.Snapshot `json:"snapshot,omitempty"`
	Event     string           `json:"event,omitempty"`
	Data      any              `json:"data,omitempty"`

	disconnect bool
}

// Inbound is what clients send. Type "select" starts Game, "back" returns
// to the menu, anything else is passed to the running game as an action.
type Inbound struct {
	engine.Action
	Game engine.Kind `json:"game,omitempty"`
}

// Controller executes inbound client requests. service.GameService
// satisfies it.
type Controller interface {
	SelectGame(ctx context.Context, sessionID string, game engine.Kind) (*engine.Snapshot, error)
	Back(ctx context.Context, sessionID string) (*engine.Snapshot, error)
	Act(ctx context.Context, sessionID string, action engine.Action) (*service.ActionResult, error)
	GetState(ctx context.Context, sessionID string) (*engine.Snapshot, error)
}

// Client represents a WebSocket client
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub maintains the set of active clients and broadcasts messages
type Hub struct {
	// Registered clients by session ID
	sessions map[string]map[*Client]bool
	mu       sync.RWMutex

	broadcast chan *Message
	done      chan struct{}
	closeOnce sync.Once

	controller  Controller
	clientGauge func(int)
}

// HubOption configures a Hub.
type HubOption func(*Hub)

// WithClientGauge reports the number of connected clients after every
// change.
func WithClientGauge(f func(int)) HubOption {
	return func(h *Hub) { h.clientGauge = f }
}

// NewHub creates a new WebSocket hub
func NewHub(opts ...HubOption) *Hub {
	h := &Hub{
		sessions:  make(map[string]map[*Client]bool),
		broadcast: make(chan *Message, sendBuffer),
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// SetController sets where inbound client messages go. The hub is usually
// built before the service it notifies, so this is set afterwards.
func (h *Hub) SetController(c Controller) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.controller = c
}

// Run starts the hub's event loop. It returns after Close.
func (h *Hub) Run() {
	for {
		select {
		case message := <-h.broadcast:
			if message.disconnect {
				h.disconnectSession(message.SessionID)
				continue
			}
			h.broadcastMessage(message)

		case <-h.done:
			h.closeAll()
			return
		}
	}
}

// Close stops Run and disconnects every client.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// ServeWS handles WebSocket requests from clients
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		sessionID: sessionID,
	}

	select {
	case <-h.done:
		conn.Close()
		return
	default:
	}
	h.registerClient(client)

	go client.writePump()
	go client.readPump()

	// Initial state
	if c := h.getController(); c != nil {
		if snap, err := c.GetState(r.Context(), sessionID); err == nil {
			client.reply(&Message{SessionID: sessionID, Snapshot: snap, Event: "state_update"})
		}
	}
}

// BroadcastState sends a snapshot to all clients of a session. Clients use
// Snapshot.Version to drop updates older than what they already have.
func (h *Hub) BroadcastState(sessionID string, snap engine.Snapshot) {
	h.enqueue(&Message{
		SessionID: sessionID,
		Snapshot:  &snap,
		Event:     "state_update",
	})
}

// BroadcastEvent sends a custom event to all clients in a session
func (h *Hub) BroadcastEvent(sessionID string, event string, data any) {
	h.enqueue(&Message{
		SessionID: sessionID,
		Event:     event,
		Data:      data,
	})
}

// CloseSession disconnects every client of a session once the messages
// queued before it have been delivered.
func (h *Hub) CloseSession(sessionID string) {
	h.enqueue(&Message{SessionID: sessionID, disconnect: true})
}

// ClientCount returns the number of clients watching a session.
func (h *Hub) ClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

func (h *Hub) enqueue(m *Message) {
	select {
	case h.broadcast <- m:
	case <-h.done:
	}
}

func (h *Hub) getController() Controller {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.controller
}

// registerClient adds a client to a session
func (h *Hub) registerClient(client *Client) {
	h.mu.Lock()
	if h.sessions[client.sessionID] == nil {
		h.sessions[client.sessionID] = make(map[*Client]bool)
	}
	h.sessions[client.sessionID][client] = true
	n := len(h.sessions[client.sessionID])
	h.mu.Unlock()

	log.WithFields(log.Fields{"session": client.sessionID, "clients": n}).Debug("websocket client registered")
	h.reportClients()
}

// unregisterClient removes a client from a session
func (h *Hub) unregisterClient(client *Client) {
	h.mu.Lock()
	clients, ok := h.sessions[client.sessionID]
	if !ok || !clients[client] {
		h.mu.Unlock()
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.sessions, client.sessionID)
	}
	n := len(clients)
	h.mu.Unlock()

	log.WithFields(log.Fields{"session": client.sessionID, "clients": n}).Debug("websocket client unregistered")
	h.reportClients()
}

// broadcastMessage sends a message to all clients in a session
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		log.WithError(err).Error("failed to marshal broadcast message")
		return
	}

	h.mu.RLock()
	var slow []*Client
	for client := range h.sessions[message.SessionID] {
		select {
		case client.send <- data:
		default:
			slow = append(slow, client)
		}
	}
	h.mu.RUnlock()

	// Client's send buffer is full, drop it
	for _, client := range slow {
		h.unregisterClient(client)
	}
}

// disconnectSession closes the send channel of each client in a session.
// Their write pumps then send a close frame.
func (h *Hub) disconnectSession(sessionID string) {
	h.mu.Lock()
	clients := h.sessions[sessionID]
	for client := range clients {
		close(client.send)
	}
	delete(h.sessions, sessionID)
	h.mu.Unlock()

	if len(clients) > 0 {
		log.WithFields(log.Fields{"session": sessionID, "clients": len(clients)}).Debug("websocket session closed")
		h.reportClients()
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	for id, clients := range h.sessions {
		for client := range clients {
			close(client.send)
		}
		delete(h.sessions, id)
	}
	h.mu.Unlock()
	h.reportClients()
}

func (h *Hub) reportClients() {
	if h.clientGauge == nil {
		return
	}
	h.mu.RLock()
	n := 0
	for _, clients := range h.sessions {
		n += len(clients)
	}
	h.mu.RUnlock()
	h.clientGauge(n)
}

// reply queues a message for this client only.
func (c *Client) reply(m *Message) {
	data, err := json.Marshal(m)
	if err != nil {
		log.WithError(err).Error("failed to marshal reply")
		return
	}
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if !c.hub.sessions[c.sessionID][c] {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

// handle executes one inbound request.
func (c *Client) handle(data []byte) {
	var in Inbound
	if err := json.Unmarshal(data, &in); err != nil {
		c.reply(&Message{SessionID: c.sessionID, Event: "error", Data: "invalid JSON: " + err.Error()})
		return
	}
	ctrl := c.hub.getController()
	if ctrl == nil {
		c.reply(&Message{SessionID: c.sessionID, Event: "error", Data: "actions are not accepted on this connection"})
		return
	}

	ctx := context.Background()
	var err error
	switch in.Type {
	case "select":
		_, err = ctrl.SelectGame(ctx, c.sessionID, in.Game)
	case "back":
		_, err = ctrl.Back(ctx, c.sessionID)
	default:
		var res *service.ActionResult
		res, err = ctrl.Act(ctx, c.sessionID, in.Action)
		if err == nil {
			c.reply(&Message{SessionID: c.sessionID, Event: "action_result", Data: res})
		}
	}
	if err != nil {
		c.reply(&Message{SessionID: c.sessionID, Event: "error", Data: err.Error()})
	}
}

// readPump pumps messages from the WebSocket connection to the controller
func (c *Client) readPump() {
	defer func() {
		c.hub.unregisterClient(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).WithField("session", c.sessionID).Warn("websocket read failed")
			}
			break
		}
		c.handle(data)
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
