package service

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/wricardo/mcp-training/arcade/game/engine"
)

// GameService defines all arcade operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error
	CleanupExpired(ctx context.Context, maxAge time.Duration) (int, error)

	// Game selection
	ListGames(ctx context.Context) ([]engine.GameInfo, error)
	SelectGame(ctx context.Context, sessionID string, game engine.Kind) (*engine.Snapshot, error)
	Back(ctx context.Context, sessionID string) (*engine.Snapshot, error)

	// Play
	Act(ctx context.Context, sessionID string, action engine.Action) (*ActionResult, error)
	GetState(ctx context.Context, sessionID string) (*engine.Snapshot, error)
	GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.Settings, error)
	SaveConfig(ctx context.Context, configName string, settings *engine.Settings) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, settings *engine.Settings) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	CleanupExpiredSessions(maxAge time.Duration) []string
	Count() int
}

// ConfigManager handles settings presets
type ConfigManager interface {
	LoadConfig(name string) (*engine.Settings, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.Settings
	SaveConfig(name string, settings *engine.Settings) error
}

// Notifier pushes session updates to connected clients.
type Notifier interface {
	BroadcastState(sessionID string, snap engine.Snapshot)
	BroadcastEvent(sessionID, event string, data any)
	// CloseSession disconnects the session's clients after everything
	// already broadcast to them.
	CloseSession(sessionID string)
}

// Recorder collects gameplay counters.
type Recorder interface {
	SetActiveSessions(n int)
	GameSelected(game string)
	ActionHandled(game string, applied bool)
	GameFinished(game, outcome string)
}

// Session represents one player's screen
type Session struct {
	ID         string
	ConfigName string
	Settings   engine.Settings
	Selector   *engine.Selector
	CreatedAt  time.Time

	lastAccessed atomic.Int64 // unix nanoseconds
}

// Touch records t as the last time the session was used.
func (s *Session) Touch(t time.Time) {
	s.lastAccessed.Store(t.UnixNano())
}

// LastAccessedAt returns the last time the session was used. It is safe to
// call while other goroutines Touch the session.
func (s *Session) LastAccessedAt() time.Time {
	return time.Unix(0, s.lastAccessed.Load())
}
