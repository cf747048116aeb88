package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/mcp-training/arcade/game/config"
	"github.com/wricardo/mcp-training/arcade/game/engine"
	"github.com/wricardo/mcp-training/arcade/game/service"
	"github.com/wricardo/mcp-training/arcade/game/session"
	"github.com/wricardo/mcp-training/arcade/transport/websocket"
)

// MockGameService implements service.GameService for testing
type MockGameService struct {
	// Session Management
	CreateSessionFunc func(ctx context.Context, configName string) (*service.SessionInfo, error)
	GetSessionFunc    func(ctx context.Context, sessionID string) (*service.SessionInfo, error)
	ListSessionsFunc  func(ctx context.Context) ([]*service.SessionInfo, error)
	DeleteSessionFunc func(ctx context.Context, sessionID string) error
	CleanupFunc       func(ctx context.Context, maxAge time.Duration) (int, error)

	// Game selection and play
	SelectGameFunc func(ctx context.Context, sessionID string, game engine.Kind) (*engine.Snapshot, error)
	BackFunc       func(ctx context.Context, sessionID string) (*engine.Snapshot, error)
	ActFunc        func(ctx context.Context, sessionID string, action engine.Action) (*service.ActionResult, error)
	GetStateFunc   func(ctx context.Context, sessionID string) (*engine.Snapshot, error)
	GetHistoryFunc func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error)

	// Configuration
	ListConfigsFunc func(ctx context.Context) ([]*service.ConfigInfo, error)
	LoadConfigFunc  func(ctx context.Context, configName string) (*engine.Settings, error)
	SaveConfigFunc  func(ctx context.Context, configName string, settings *engine.Settings) error
}

func (m *MockGameService) CreateSession(ctx context.Context, configName string) (*service.SessionInfo, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, configName)
	}
	return &service.SessionInfo{ID: "test-session", ConfigName: configName, CreatedAt: time.Now()}, nil
}

func (m *MockGameService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return &service.SessionInfo{ID: sessionID, ConfigName: "classic", CreatedAt: time.Now()}, nil
}

func (m *MockGameService) ListSessions(ctx context.Context) ([]*service.SessionInfo, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return []*service.SessionInfo{}, nil
}

func (m *MockGameService) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockGameService) CleanupExpired(ctx context.Context, maxAge time.Duration) (int, error) {
	if m.CleanupFunc != nil {
		return m.CleanupFunc(ctx, maxAge)
	}
	return 0, nil
}

func (m *MockGameService) ListGames(ctx context.Context) ([]engine.GameInfo, error) {
	return engine.Games(), nil
}

func (m *MockGameService) SelectGame(ctx context.Context, sessionID string, game engine.Kind) (*engine.Snapshot, error) {
	if m.SelectGameFunc != nil {
		return m.SelectGameFunc(ctx, sessionID, game)
	}
	return &engine.Snapshot{Selected: game, Version: 1}, nil
}

func (m *MockGameService) Back(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	if m.BackFunc != nil {
		return m.BackFunc(ctx, sessionID)
	}
	return &engine.Snapshot{Menu: engine.Games()}, nil
}

func (m *MockGameService) Act(ctx context.Context, sessionID string, action engine.Action) (*service.ActionResult, error) {
	if m.ActFunc != nil {
		return m.ActFunc(ctx, sessionID, action)
	}
	return &service.ActionResult{Success: true, Message: action.Type + " applied"}, nil
}

func (m *MockGameService) GetState(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
	if m.GetStateFunc != nil {
		return m.GetStateFunc(ctx, sessionID)
	}
	return &engine.Snapshot{}, nil
}

func (m *MockGameService) GetHistory(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
	if m.GetHistoryFunc != nil {
		return m.GetHistoryFunc(ctx, sessionID, opts)
	}
	return &service.HistoryResponse{
		Actions:    []engine.HistoryEntry{},
		Page:       opts.Page,
		PageSize:   opts.Limit,
		TotalPages: 1,
	}, nil
}

func (m *MockGameService) ListConfigs(ctx context.Context) ([]*service.ConfigInfo, error) {
	if m.ListConfigsFunc != nil {
		return m.ListConfigsFunc(ctx)
	}
	return []*service.ConfigInfo{}, nil
}

func (m *MockGameService) LoadConfig(ctx context.Context, configName string) (*engine.Settings, error) {
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc(ctx, configName)
	}
	s := engine.DefaultSettings()
	s.Name = configName
	return &s, nil
}

func (m *MockGameService) SaveConfig(ctx context.Context, configName string, settings *engine.Settings) error {
	if m.SaveConfigFunc != nil {
		return m.SaveConfigFunc(ctx, configName, settings)
	}
	return nil
}

// Test helpers
func setupTestServer(t *testing.T, mockService *MockGameService) *Server {
	hub := websocket.NewHub()
	go hub.Run()
	t.Cleanup(hub.Close)
	return NewServer(mockService, hub, WithMetrics(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("arcade_active_sessions 0\n"))
	})))
}

func makeRequest(method, path string, body any) *http.Request {
	var bodyBytes []byte
	switch b := body.(type) {
	case nil:
	case string:
		bodyBytes = []byte(b)
	default:
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target), "failed to parse response")
}

func notFound() error {
	return fmt.Errorf("session not found: %w", session.ErrSessionNotFound)
}


// dialWS opens a WebSocket to ts for sessionID.
func dialWS(t *testing.T, ts *httptest.Server, sessionID string) *gorillaws.Conn {
	t.Helper()
	conn, _, err := gorillaws.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws?session="+sessionID, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{notFound(), http.StatusNotFound},
		{fmt.Errorf("config 'x' not found: %w", config.ErrConfigNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: %q", engine.ErrUnknownGame, "pong"), http.StatusBadRequest},
		{fmt.Errorf("%w %q for snake", engine.ErrUnknownAction, "jump"), http.StatusBadRequest},
		{fmt.Errorf("%w: bad", config.ErrInvalidConfig), http.StatusBadRequest},
		{engine.ErrNoGameSelected, http.StatusConflict},
		{engine.ErrClosed, http.StatusConflict},
		{fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), "statusFor(%v)", tt.err)
	}
}

func TestCreateSession(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    any
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "Create session with default config",
			requestBody: nil,
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					assert.Empty(t, configName)
					return &service.SessionInfo{ID: "ab12", ConfigName: "classic"}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				assert.Equal(t, "ab12", resp.ID)
			},
		},
		{
			name:        "Create session with specific config",
			requestBody: map[string]string{"config_id": "quick"},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					return &service.SessionInfo{ID: "cd34", ConfigName: configName}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				assert.Equal(t, "quick", resp.ConfigName)
			},
		},
		{
			name:        "Unknown config",
			requestBody: map[string]string{"config_id": "nope"},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("config 'nope' not found: %w", config.ErrConfigNotFound)
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Malformed body",
			requestBody:    "{",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Handle service error",
			requestBody: nil,
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("service error")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				parseResponse(t, w, &resp)
				assert.Equal(t, "service error", resp["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(t, mockService)
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("POST", "/api/sessions", tt.requestBody))

			assert.Equal(t, tt.expectedStatus, w.Code, w.Body.String())
			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestListSessions(t *testing.T) {
	now := time.Now()
	mockService := &MockGameService{
		ListSessionsFunc: func(ctx context.Context) ([]*service.SessionInfo, error) {
			return []*service.SessionInfo{
				{ID: "old", CreatedAt: now.Add(-2 * time.Hour), LastAccessedAt: now.Add(-time.Minute)},
				{ID: "new", CreatedAt: now.Add(-time.Hour), LastAccessedAt: now.Add(-time.Hour)},
			}, nil
		},
	}
	server := setupTestServer(t, mockService)

	tests := []struct {
		name      string
		query     string
		wantFirst string
		wantCount int
	}{
		{"default sorts by last access", "", "old", 2},
		{"created descending", "?sort=created", "new", 2},
		{"created ascending", "?sort=created&order=asc", "old", 2},
		{"limit", "?sort=created&limit=1", "new", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("GET", "/api/sessions"+tt.query, nil))
			require.Equal(t, http.StatusOK, w.Code)

			var resp struct {
				Count    int                    `json:"count"`
				Total    int                    `json:"total"`
				Sessions []*service.SessionInfo `json:"sessions"`
			}
			parseResponse(t, w, &resp)
			assert.Equal(t, tt.wantCount, resp.Count)
			require.Len(t, resp.Sessions, tt.wantCount)
			assert.Equal(t, 2, resp.Total)
			assert.Equal(t, tt.wantFirst, resp.Sessions[0].ID)
		})
	}
}

func TestGetAndDeleteSession(t *testing.T) {
	mockService := &MockGameService{
		GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
			if sessionID != "ab12" {
				return nil, notFound()
			}
			return &service.SessionInfo{ID: sessionID}, nil
		},
		DeleteSessionFunc: func(ctx context.Context, sessionID string) error {
			if sessionID != "ab12" {
				return notFound()
			}
			return nil
		},
	}
	server := setupTestServer(t, mockService)

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{"GET", "/api/sessions/ab12", http.StatusOK},
		{"GET", "/api/sessions/zz99", http.StatusNotFound},
		{"DELETE", "/api/sessions/ab12", http.StatusOK},
		{"DELETE", "/api/sessions/zz99", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestDeleteSessionDisconnectsWatchers(t *testing.T) {
	configs, err := config.NewManager(t.TempDir())
	require.NoError(t, err)
	sessions := session.NewManager(engine.WithScheduler(&engine.ManualScheduler{}))
	t.Cleanup(sessions.CloseAll)

	hub := websocket.NewHub()
	svc := service.NewGameService(sessions, configs, service.WithNotifier(hub))
	hub.SetController(svc)
	go hub.Run()
	t.Cleanup(hub.Close)

	ts := httptest.NewServer(NewServer(svc, hub))
	t.Cleanup(ts.Close)

	info, err := svc.CreateSession(context.Background(), "")
	require.NoError(t, err)

	conn := dialWS(t, ts, info.ID)
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg websocket.Message
	require.NoError(t, conn.ReadJSON(&msg))
	require.Equal(t, "state_update", msg.Event)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/sessions/"+strings.ToUpper(info.ID), nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var events []string
	for {
		var msg websocket.Message
		if err := conn.ReadJSON(&msg); err != nil {
			assert.True(t, gorillaws.IsCloseError(err, gorillaws.CloseNoStatusReceived, gorillaws.CloseNormalClosure),
				"expected the server to close the socket, got %v", err)
			break
		}
		events = append(events, msg.Event)
	}
	assert.Contains(t, events, "session_deleted")
	assert.Equal(t, 0, hub.ClientCount(info.ID))
}

func TestListGames(t *testing.T) {
	server := setupTestServer(t, &MockGameService{})
	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/games", nil))

	var games []engine.GameInfo
	parseResponse(t, w, &games)
	require.Len(t, games, 6)
	assert.Equal(t, engine.Minesweeper, games[5].ID)
}

func TestSelectGame(t *testing.T) {
	mockService := &MockGameService{
		SelectGameFunc: func(ctx context.Context, sessionID string, game engine.Kind) (*engine.Snapshot, error) {
			if game == "pong" {
				return nil, fmt.Errorf("%w: %q", engine.ErrUnknownGame, game)
			}
			return &engine.Snapshot{Selected: game, InstanceID: "inst", Version: 2}, nil
		},
	}
	server := setupTestServer(t, mockService)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"known game", map[string]string{"game": "checkers"}, http.StatusOK},
		{"unknown game", map[string]string{"game": "pong"}, http.StatusBadRequest},
		{"missing game", map[string]string{}, http.StatusBadRequest},
		{"bad json", "{", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/select", tt.body))
			assert.Equal(t, tt.want, w.Code)
		})
	}

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/back", nil))
	var snap engine.Snapshot
	parseResponse(t, w, &snap)
	assert.Empty(t, snap.Selected)
	assert.Len(t, snap.Menu, 6)
}

func TestAction(t *testing.T) {
	var got engine.Action
	mockService := &MockGameService{
		ActFunc: func(ctx context.Context, sessionID string, action engine.Action) (*service.ActionResult, error) {
			got = action
			switch action.Type {
			case "jump":
				return nil, fmt.Errorf("%w %q for snake", engine.ErrUnknownAction, action.Type)
			case "idle":
				return nil, engine.ErrNoGameSelected
			case engine.ActionStand:
				return &service.ActionResult{Success: false, Message: "stand not allowed in the current position"}, nil
			}
			return &service.ActionResult{Success: true, Snapshot: engine.Snapshot{Selected: engine.Checkers}}, nil
		},
	}
	server := setupTestServer(t, mockService)

	tests := []struct {
		name        string
		body        any
		wantStatus  int
		wantSuccess bool
	}{
		{"applied move", `{"type":"move","row":5,"col":0,"to_row":4,"to_col":1}`, http.StatusOK, true},
		{"rule rejection is not an error", `{"type":"stand"}`, http.StatusOK, false},
		{"unknown action", `{"type":"jump"}`, http.StatusBadRequest, false},
		{"no game selected", `{"type":"idle"}`, http.StatusConflict, false},
		{"missing type", `{"row":1}`, http.StatusBadRequest, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/actions", tt.body))
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if w.Code != http.StatusOK {
				return
			}
			var res service.ActionResult
			parseResponse(t, w, &res)
			assert.Equal(t, tt.wantSuccess, res.Success)
		})
	}

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/actions", `{"type":"move","row":5,"col":0,"to_row":4,"to_col":1}`))
	assert.Equal(t, 5, got.Row)
	assert.Equal(t, 4, got.ToRow)
	assert.Equal(t, 1, got.ToCol)
}

func TestGetHistory(t *testing.T) {
	var gotOpts service.HistoryOptions
	mockService := &MockGameService{
		GetHistoryFunc: func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
			if sessionID == "missing" {
				return nil, notFound()
			}
			gotOpts = opts
			return &service.HistoryResponse{Actions: []engine.HistoryEntry{}, Page: opts.Page, PageSize: opts.Limit}, nil
		},
	}
	server := setupTestServer(t, mockService)

	tests := []struct {
		name  string
		query string
		want  service.HistoryOptions
	}{
		{"defaults", "", service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}},
		{"explicit", "?page=3&limit=5&order=asc", service.HistoryOptions{Page: 3, Limit: 5, Order: "asc"}},
		{"garbage ignored", "?page=-1&limit=abc&order=sideways", service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("GET", "/api/sessions/ab12/history"+tt.query, nil))
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.want, gotOpts)
		})
	}

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/sessions/missing/history", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetState(t *testing.T) {
	mockService := &MockGameService{
		GetStateFunc: func(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
			return &engine.Snapshot{Selected: engine.Snake, Version: 42}, nil
		},
	}
	server := setupTestServer(t, mockService)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/sessions/ab12/state", nil))
	var snap engine.Snapshot
	parseResponse(t, w, &snap)
	assert.Equal(t, uint64(42), snap.Version)
	assert.Equal(t, engine.Snake, snap.Selected)
}

func TestConfigs(t *testing.T) {
	var saved *engine.Settings
	mockService := &MockGameService{
		ListConfigsFunc: func(ctx context.Context) ([]*service.ConfigInfo, error) {
			return []*service.ConfigInfo{{ConfigID: "classic", Name: "classic"}}, nil
		},
		LoadConfigFunc: func(ctx context.Context, configName string) (*engine.Settings, error) {
			if configName != "classic" {
				return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, configName)
			}
			s := engine.DefaultSettings()
			return &s, nil
		},
		SaveConfigFunc: func(ctx context.Context, configName string, settings *engine.Settings) error {
			if err := engine.ValidateSettings(settings); err != nil {
				return fmt.Errorf("%w: %v", config.ErrInvalidConfig, err)
			}
			saved = settings
			return nil
		},
	}
	server := setupTestServer(t, mockService)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/configs", nil))
	var configs []*service.ConfigInfo
	parseResponse(t, w, &configs)
	require.Len(t, configs, 1)
	assert.Equal(t, "classic", configs[0].ConfigID)

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/configs/classic.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/configs/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	custom := engine.DefaultSettings()
	custom.Name = "custom"
	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/configs", custom))
	assert.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, saved)
	assert.Equal(t, "custom", saved.Name)

	custom.Snake.GridSize = 2
	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/configs", custom))
	assert.Equal(t, http.StatusBadRequest, w.Code, "invalid settings")

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/configs", map[string]string{"description": "no name"}))
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing name")
}

func TestHealthAndMetrics(t *testing.T) {
	server := setupTestServer(t, &MockGameService{})

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ok")

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/metrics", nil))
	assert.Contains(t, w.Body.String(), "arcade_active_sessions")
}

func TestWebSocket(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    string
		setupMock      func(*MockGameService)
		expectedStatus int
	}{
		{
			name:           "Missing session parameter",
			queryParams:    "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Invalid session",
			queryParams: "?session=invalid",
			setupMock: func(m *MockGameService) {
				m.GetSessionFunc = func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
					return nil, notFound()
				}
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}
			server := setupTestServer(t, mockService)
			w := httptest.NewRecorder()
			server.ServeHTTP(w, httptest.NewRequest("GET", "/ws"+tt.queryParams, nil))
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestWebSocketUpgradeThroughMiddleware(t *testing.T) {
	mockService := &MockGameService{
		GetStateFunc: func(ctx context.Context, sessionID string) (*engine.Snapshot, error) {
			return &engine.Snapshot{Version: 9}, nil
		},
	}
	hub := websocket.NewHub()
	hub.SetController(mockService)
	go hub.Run()
	defer hub.Close()

	ts := httptest.NewServer(NewServer(mockService, hub))
	defer ts.Close()

	conn := dialWS(t, ts, "ab12")
	conn.SetReadDeadline(time.Now().Add(time.Second))
	var msg websocket.Message
	require.NoError(t, conn.ReadJSON(&msg), "failed to read initial state")
	require.NotNil(t, msg.Snapshot)
	assert.Equal(t, uint64(9), msg.Snapshot.Version)
}
