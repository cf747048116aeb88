// Package mcp provides the Model Context Protocol interface for the arcade.
//
// The Client registers MCP tools and answers each call by proxying it to
// the REST API, so an agent sees the same sessions as browsers and
// WebSocket clients.
//
// MCP Tools:
//   - list_games: Catalogue with the actions each game accepts
//   - create_session: New session, optionally from a preset (config_id)
//   - list_sessions / get_session: Session details
//   - select_game / back: Navigate between the menu and a game
//   - act: Send one action; requires an intent explanation
//   - game_state: Current snapshot rendered as text
//   - action_history: Paginated action history
//   - list_configs: Settings presets
//   - game_instructions: Rules and action formats
//
// Snapshots are rendered per game: boards as character grids, cards as
// short names, and the menu as a list.
//
// Transport Modes:
//   - Stdio: server.ServeStdio(client.GetMCPServer())
//   - HTTP: POST bodies to /mcp are passed to GetMCPServer().HandleMessage
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	if err := server.ServeStdio(client.GetMCPServer()); err != nil {
//		log.Fatal(err)
//	}
package mcp
