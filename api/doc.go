// Package api provides the HTTP REST API for the arcade.
//
// Endpoints:
//
// Catalogue:
//   - GET /api/games - List the six games and the actions each accepts
//
// Session Management:
//   - POST /api/sessions - Create a session ({"config_id": "quick"}, optional)
//   - GET /api/sessions - List sessions (?sort=created|accessed&order=asc|desc&limit=N)
//   - GET /api/sessions/{id} - Get one session with its current snapshot
//   - DELETE /api/sessions/{id} - Delete a session and stop its game
//
// Play:
//   - POST /api/sessions/{id}/select - Start a game ({"game": "snake"})
//   - POST /api/sessions/{id}/back - Return to the menu
//   - POST /api/sessions/{id}/actions - Send an action to the running game
//   - GET /api/sessions/{id}/state - Current snapshot
//   - GET /api/sessions/{id}/history - Action history (?page&limit&order)
//
// Configuration:
//   - GET /api/configs - List settings presets
//   - GET /api/configs/{name} - Get one preset
//   - POST /api/configs - Save a preset (engine.Settings JSON)
//
// Other:
//   - GET /ws?session={id} - WebSocket push and inbound actions
//   - GET /healthz - Liveness
//   - GET /metrics - Prometheus metrics, when configured
//
// Actions:
//
// The action body has one shape for every game. Only the fields the game
// reads matter:
//
//	{"type": "guess", "letter": "e"}
//	{"type": "place", "cell": 4}
//	{"type": "move", "row": 5, "col": 0, "to_row": 4, "to_col": 1}
//	{"type": "turn", "direction": "up"}
//	{"type": "bet", "amount": 25}
//	{"type": "reveal", "row": 3, "col": 7}
//
// A move the rules reject is not an error: the response is 200 with
// "success": false and the unchanged snapshot.
//
// Error Handling:
//
// Errors are returned as {"error": "message"} with these status codes:
//   - 404: unknown session or preset
//   - 400: unknown game, unknown action, invalid preset or malformed body
//   - 409: action sent while the menu is showing
package api
