package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/wricardo/mcp-training/arcade/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	notifier Notifier
	recorder Recorder
}

// Option configures the game service.
type Option func(*gameServiceImpl)

// WithNotifier pushes state changes and events to n.
func WithNotifier(n Notifier) Option {
	return func(s *gameServiceImpl) { s.notifier = n }
}

// WithRecorder reports gameplay counters to r.
func WithRecorder(r Recorder) Option {
	return func(s *gameServiceImpl) { s.recorder = r }
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager, opts ...Option) GameService {
	s := &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "classic"
	}
	return configName
}

// CreateSession creates a new session showing the game menu
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	var settings *engine.Settings
	var err error
	if configName != "" {
		settings, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found. Available configs: %v: %w", configName, configIDs, err)
				}
				return nil, fmt.Errorf("config '%s' not found. Use /api/configs to list available configurations: %w", configName, err)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		settings = s.configs.GetDefault()
	}

	session, err := s.sessions.Create("", settings)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	session.Selector.SetObserver(&sessionObserver{id: session.ID, svc: s})
	s.updateActiveSessions()

	configID := configName
	if configID == "" {
		configID = s.getConfigID(settings.Name)
	}

	log.WithFields(log.Fields{"session": session.ID, "config": configID}).Info("session created")
	return s.sessionInfo(session, configID), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	session, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	return s.sessionInfo(session, s.getConfigID(session.ConfigName)), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, s.sessionInfo(sess, s.getConfigID(sess.ConfigName)))
	}
	return result, nil
}

// DeleteSession removes a session and stops its game
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return fmt.Errorf("session not found: %w", err)
	}
	if err := s.sessions.Delete(sess.ID); err != nil {
		return fmt.Errorf("session not found: %w", err)
	}
	s.updateActiveSessions()
	s.closeSession(sess.ID, GameEvent{Type: "session_deleted", Message: "Session deleted"})
	return nil
}

// CleanupExpired removes sessions idle for longer than maxAge and
// disconnects their clients.
func (s *gameServiceImpl) CleanupExpired(ctx context.Context, maxAge time.Duration) (int, error) {
	expired := s.sessions.CleanupExpiredSessions(maxAge)
	if len(expired) == 0 {
		return 0, nil
	}
	s.updateActiveSessions()
	for _, id := range expired {
		log.WithField("session", id).Debug("session expired")
		s.closeSession(id, GameEvent{Type: "session_expired", Message: "Session expired"})
	}
	return len(expired), nil
}

// ListGames returns the catalogue shown on the menu
func (s *gameServiceImpl) ListGames(ctx context.Context) ([]engine.GameInfo, error) {
	return engine.Games(), nil
}

// SelectGame starts a fresh instance of game for the session
func (s *gameServiceImpl) SelectGame(ctx context.Context, sessionID string, game engine.Kind) (*engine.Snapshot, error) {
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	snap, err := sess.Selector.Select(game)
	if err != nil {
		return nil, err
	}
	if s.recorder != nil {
		s.recorder.GameSelected(string(game))
	}
	s.event(sess.ID, GameEvent{
		Type:    "game_selected",
		Message: fmt.Sprintf("Started %s", game),
		Game:    string(game),
	})
	return &snap, nil
}

// Back returns the session to the menu
func (s *gameServiceImpl) Back(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	snap := sess.Selector.Back()
	s.event(sess.ID, GameEvent{Type: "back", Message: "Back to menu"})
	return &snap, nil
}

// Act sends a player action to the session's running game
func (s *gameServiceImpl) Act(ctx context.Context, sessionID string, action engine.Action) (*ActionResult, error) {
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	res, err := sess.Selector.Apply(action)
	if err != nil {
		return nil, err
	}
	if s.recorder != nil {
		s.recorder.ActionHandled(string(res.Snapshot.Selected), res.Applied)
	}
	log.Infof("[ACT] session=%s game=%s action=%s applied=%t",
		sess.ID, res.Snapshot.Selected, action.Type, res.Applied)

	message := fmt.Sprintf("%s applied", action.Type)
	if !res.Applied {
		message = fmt.Sprintf("%s not allowed in the current position", action.Type)
	}
	return &ActionResult{
		Success:  res.Applied,
		Message:  message,
		Snapshot: res.Snapshot,
	}, nil
}

// GetState returns the session's current snapshot
func (s *gameServiceImpl) GetState(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}
	snap := sess.Selector.Snapshot()
	return &snap, nil
}

// GetHistory returns paginated action history
func (s *gameServiceImpl) GetHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	history := sess.Selector.History()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	var actions []engine.HistoryEntry
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			actions = append(actions, history[i])
		}
	} else if start < total {
		actions = history[start:end]
	}
	if actions == nil {
		actions = []engine.HistoryEntry{}
	}

	return &HistoryResponse{
		Actions:      actions,
		TotalActions: total,
		Page:         opts.Page,
		PageSize:     opts.Limit,
		TotalPages:   totalPages,
		HasNext:      opts.Page < totalPages,
		HasPrevious:  opts.Page > 1,
	}, nil
}

// ListConfigs returns available settings presets
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific settings preset
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.Settings, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a settings preset to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, settings *engine.Settings) error {
	return s.configs.SaveConfig(configName, settings)
}

func (s *gameServiceImpl) touch(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	_ = s.sessions.UpdateLastAccessed(sess.ID)
	return sess, nil
}

func (s *gameServiceImpl) sessionInfo(sess *Session, configID string) *SessionInfo {
	snap := sess.Selector.Snapshot()
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     configID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt(),
		Selected:       snap.Selected,
		Snapshot:       snap,
	}
}

func (s *gameServiceImpl) updateActiveSessions() {
	if s.recorder != nil {
		s.recorder.SetActiveSessions(s.sessions.Count())
	}
}

func (s *gameServiceImpl) event(sessionID string, ev GameEvent) {
	if s.notifier == nil {
		return
	}
	ev.Timestamp = time.Now()
	s.notifier.BroadcastEvent(sessionID, ev.Type, ev)
}

// closeSession sends a final event to the session's clients and then
// disconnects them.
func (s *gameServiceImpl) closeSession(sessionID string, ev GameEvent) {
	if s.notifier == nil {
		return
	}
	s.event(sessionID, ev)
	s.notifier.CloseSession(sessionID)
}

// sessionObserver forwards a selector's notifications for one session.
type sessionObserver struct {
	id  string
	svc *gameServiceImpl
}

func (o *sessionObserver) StateChanged(snap engine.Snapshot) {
	if o.svc.notifier != nil {
		o.svc.notifier.BroadcastState(o.id, snap)
	}
}

func (o *sessionObserver) ComputerMoved(game engine.Kind, a engine.Action) {
	log.Infof("[ACT] session=%s game=%s action=%s applied=true source=%s",
		o.id, game, a.Type, engine.SourceComputer)
}

func (o *sessionObserver) GameFinished(game engine.Kind, outcome string) {
	log.WithFields(log.Fields{
		"session": o.id,
		"game":    game,
		"outcome": outcome,
	}).Info("game finished")

	if o.svc.recorder != nil {
		o.svc.recorder.GameFinished(string(game), outcome)
	}
	o.svc.event(o.id, GameEvent{
		Type:    "game_finished",
		Message: fmt.Sprintf("%s finished: %s", game, outcome),
		Game:    string(game),
		Outcome: outcome,
	})
}
