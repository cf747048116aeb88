package service

import (
	"time"

	"github.com/wricardo/mcp-training/arcade/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string          `json:"id"`
	ConfigName     string          `json:"config_name"`
	CreatedAt      time.Time       `json:"created_at"`
	LastAccessedAt time.Time       `json:"last_accessed_at"`
	Selected       engine.Kind     `json:"selected,omitempty"`
	Snapshot       engine.Snapshot `json:"snapshot"`
}

// ActionResult contains the result of a player action
type ActionResult struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Snapshot engine.Snapshot `json:"snapshot"`
}

// GameEvent is pushed to clients next to state updates
type GameEvent struct {
	Type      string    `json:"type"` // "game_selected", "back", "game_finished", "session_deleted", "session_expired"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Game      string    `json:"game,omitempty"`
	Outcome   string    `json:"outcome,omitempty"`
}

// HistoryOptions configures action history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated action history
type HistoryResponse struct {
	Actions      []engine.HistoryEntry `json:"actions"`
	TotalActions int                   `json:"total_actions"`
	Page         int                   `json:"page"`
	PageSize     int                   `json:"page_size"`
	TotalPages   int                   `json:"total_pages"`
	HasNext      bool                  `json:"has_next"`
	HasPrevious  bool                  `json:"has_previous"`
}

// ConfigInfo provides information about a settings preset
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
}
