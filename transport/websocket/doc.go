// Package websocket provides the WebSocket transport for the arcade.
//
// The Hub groups connections by session ID. Every state change of a session,
// including computer moves and snake ticks that happen between requests,
// is pushed to all of that session's clients.
//
// Message Protocol:
//
// Outgoing messages are JSON:
//   - {"session_id": "ab12", "event": "state_update", "snapshot": {...}}
//   - {"session_id": "ab12", "event": "game_finished", "data": {...}}
//   - {"session_id": "ab12", "event": "action_result", "data": {...}} (sender only)
//   - {"session_id": "ab12", "event": "error", "data": "..."} (sender only)
//
// Incoming messages are actions in the REST shape, plus two navigation
// types:
//   - {"type": "select", "game": "snake"}
//   - {"type": "back"}
//   - {"type": "turn", "direction": "up"}
//
// Snapshots carry a version. Clients keep the highest one they have seen
// and ignore older ones.
//
// Usage:
//
//	hub := websocket.NewHub(websocket.WithClientGauge(metrics.SetClients))
//	go hub.Run()
//	svc := service.NewGameService(sessions, configs, service.WithNotifier(hub))
//	hub.SetController(svc)
//
//	router.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
//		hub.ServeWS(w, r, r.URL.Query().Get("session"))
//	})
//
// A client whose send buffer fills up is disconnected. Close stops Run and
// disconnects everyone.
package websocket
