// Package service provides the business logic layer for the arcade.
//
// The service package implements:
//   - Multi-session management
//   - Settings preset loading
//   - Game selection and action routing
//   - Action history paging
//
// Core Interfaces:
//
// GameService is the main service interface used by the HTTP, WebSocket and
// MCP transports. SessionManager stores sessions and ConfigManager loads
// settings presets. Notifier and Recorder are optional sinks for state
// pushes and counters.
//
// Architecture:
//
// Each session owns an engine.Selector. The service registers itself as the
// selector's observer, so computer moves and snake ticks that happen between
// requests still reach connected clients through the Notifier.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr,
//		service.WithNotifier(hub))
//
//	info, err := gameService.CreateSession(ctx, "classic")
//	if err != nil {
//		log.Fatal(err)
//	}
//	_, _ = gameService.SelectGame(ctx, info.ID, engine.Hangman)
//	res, err := gameService.Act(ctx, info.ID, engine.Action{Type: engine.ActionGuess, Letter: "g"})
package service
