package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	log "github.com/sirupsen/logrus"

	"github.com/wricardo/mcp-training/arcade/game/engine"
	"github.com/wricardo/mcp-training/arcade/game/service"
)

// Client is a thin MCP client that proxies to the REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
	mcpServer  *server.MCPServer
}

// NewClient creates a new MCP client that calls the REST API
func NewClient(baseURL string) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}

	c.initMCPServer()
	return c
}

// initMCPServer initializes the MCP server with all tools
func (c *Client) initMCPServer() {
	c.mcpServer = server.NewMCPServer(
		"Arcade",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Arcade - MCP Interface

This is a thin client that proxies all requests to the REST API server.

A session starts at the menu. Pick one of six games with select_game, play it
with act, and return to the menu with back.

GAMES:
- hangman: guess letters
- tictactoe: play X against the computer
- checkers: play red against the computer
- snake: steer a snake on a timer
- blackjack: bet, hit and stand against the dealer
- minesweeper: reveal and flag cells

AVAILABLE TOOLS:
- list_games: Games and the actions each accepts
- create_session / list_sessions / get_session: Session management
- select_game / back: Move between the menu and a game
- act: Send one action to the running game - requires intent explanation
- game_state: Current snapshot
- action_history: Past actions
- list_configs: Settings presets
- game_instructions: Rules and action formats for every game

NOTE: The 'intent' parameter on act serves as rubber duck debugging - explain your reasoning!`),
	)

	c.registerTools()
}

func sessionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session ID",
	}
}

func intProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

// registerTools registers all MCP tools
func (c *Client) registerTools() {
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_games",
		Description: "List the games in the catalogue and the actions each accepts",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListGames)

	// Session management
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "create_session",
		Description: "Create a new arcade session with an optional settings preset",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"config_id": map[string]interface{}{
					"type":        "string",
					"description": "Preset to use: classic, quick, expert (optional)",
				},
			},
		},
	}, c.handleCreateSession)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_sessions",
		Description: "List all active sessions",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListSessions)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "get_session",
		Description: "Get details of a specific session",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGetSession)

	// Navigation
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "select_game",
		Description: "Start a game from the menu. Any running game is discarded.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"game": map[string]interface{}{
					"type":        "string",
					"description": "Game to start",
					"enum":        []string{"hangman", "tictactoe", "checkers", "snake", "blackjack", "minesweeper"},
				},
			},
			Required: []string{"session_id", "game"},
		},
	}, c.handleSelectGame)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "back",
		Description: "Leave the running game and return to the menu",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleBack)

	// Play
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "act",
		Description: "Send one action to the running game. Only the fields the action needs are read.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"type": map[string]interface{}{
					"type":        "string",
					"description": "Action type: guess, place, click, move, start, turn, bet, deal, hit, stand, new_round, reveal, flag, reset",
				},
				"letter": map[string]interface{}{
					"type":        "string",
					"description": "Letter for hangman guess",
				},
				"cell":   intProperty("Cell 0-8 for tictactoe place"),
				"row":    intProperty("Row for checkers click/move and minesweeper reveal/flag"),
				"col":    intProperty("Column for checkers click/move and minesweeper reveal/flag"),
				"to_row": intProperty("Destination row for checkers move"),
				"to_col": intProperty("Destination column for checkers move"),
				"direction": map[string]interface{}{
					"type":        "string",
					"description": "Direction for snake turn",
					"enum":        []string{"up", "down", "left", "right"},
				},
				"amount": intProperty("Amount for blackjack bet"),
				"intent": map[string]interface{}{
					"type":        "string",
					"description": "Explain what you expect this action to achieve",
				},
			},
			Required: []string{"session_id", "type", "intent"},
		},
	}, c.handleAct)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current snapshot: the menu or the running game",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
			},
			Required: []string{"session_id"},
		},
	}, c.handleGameState)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "action_history",
		Description: "Get the action history of a session with pagination",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"session_id": sessionProperty(),
				"page":       intProperty("Page number (default 1)"),
				"limit":      intProperty("Entries per page (default 20, max 100)"),
				"order": map[string]interface{}{
					"type":        "string",
					"description": "asc or desc (default desc)",
					"enum":        []string{"asc", "desc"},
				},
			},
			Required: []string{"session_id"},
		},
	}, c.handleActionHistory)

	// Information
	c.mcpServer.AddTool(mcp.Tool{
		Name:        "list_configs",
		Description: "List the settings presets",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleListConfigs)

	c.mcpServer.AddTool(mcp.Tool{
		Name:        "game_instructions",
		Description: "Get the rules and action formats for every game",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, c.handleGameInstructions)
}

// GetMCPServer returns the underlying MCP server
func (c *Client) GetMCPServer() *server.MCPServer {
	return c.mcpServer
}

// Helper methods for API calls

func (c *Client) apiCall(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errResp map[string]string
		json.NewDecoder(resp.Body).Decode(&errResp)
		if msg, ok := errResp["error"]; ok {
			return fmt.Errorf("%s", msg)
		}
		return fmt.Errorf("API error: %d", resp.StatusCode)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

// intArg reads a JSON number argument, which arrives as float64
func intArg(args map[string]interface{}, key string) (int, bool) {
	switch v := args[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

func sessionPath(sessionID, suffix string) string {
	return "/api/sessions/" + url.PathEscape(sessionID) + suffix
}

// Tool handlers

func (c *Client) handleListGames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var games []engine.GameInfo
	if err := c.apiCall(ctx, "GET", "/api/games", nil, &games); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatMenu(games)), nil
}

func (c *Client) handleCreateSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	configID, _ := args["config_id"].(string)

	body := map[string]string{}
	if configID != "" {
		body["config_id"] = configID
	}

	var session service.SessionInfo
	if err := c.apiCall(ctx, "POST", "/api/sessions", body, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := fmt.Sprintf("Created session: %s\nConfig: %s\n\n%s", session.ID, session.ConfigName, formatSnapshot(&session.Snapshot))
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleListSessions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var response struct {
		Count    int                   `json:"count"`
		Total    int                   `json:"total"`
		Sessions []service.SessionInfo `json:"sessions"`
	}
	if err := c.apiCall(ctx, "GET", "/api/sessions", nil, &response); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if len(response.Sessions) == 0 {
		return mcp.NewToolResultText("No active sessions"), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Active Sessions (%d of %d):\n", response.Count, response.Total)
	for _, session := range response.Sessions {
		b.WriteString(formatSessionInfo(&session))
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGetSession(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var session service.SessionInfo
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, ""), nil, &session); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result := formatSessionInfo(&session) + "\n" + formatSnapshot(&session.Snapshot)
	return mcp.NewToolResultText(result), nil
}

func (c *Client) handleSelectGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	game, _ := args["game"].(string)

	var snap engine.Snapshot
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/select"), map[string]string{"game": game}, &snap); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSnapshot(&snap)), nil
}

func (c *Client) handleBack(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var snap engine.Snapshot
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/back"), nil, &snap); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSnapshot(&snap)), nil
}

func (c *Client) handleAct(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)
	intent, _ := args["intent"].(string)

	action := engine.Action{}
	action.Type, _ = args["type"].(string)
	action.Letter, _ = args["letter"].(string)
	action.Direction, _ = args["direction"].(string)
	action.Cell, _ = intArg(args, "cell")
	action.Row, _ = intArg(args, "row")
	action.Col, _ = intArg(args, "col")
	action.ToRow, _ = intArg(args, "to_row")
	action.ToCol, _ = intArg(args, "to_col")
	action.Amount, _ = intArg(args, "amount")

	log.WithFields(log.Fields{
		"session": sessionID,
		"action":  action.Type,
		"intent":  intent,
	}).Debug("mcp act")

	var result service.ActionResult
	if err := c.apiCall(ctx, "POST", sessionPath(sessionID, "/actions"), action, &result); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatActionResult(&result)), nil
}

func (c *Client) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID, _ := arguments(request)["session_id"].(string)

	var snap engine.Snapshot
	if err := c.apiCall(ctx, "GET", sessionPath(sessionID, "/state"), nil, &snap); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatSnapshot(&snap)), nil
}

func (c *Client) handleActionHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	sessionID, _ := args["session_id"].(string)

	params := url.Values{}
	if page, ok := intArg(args, "page"); ok {
		params.Set("page", fmt.Sprint(page))
	}
	if limit, ok := intArg(args, "limit"); ok {
		params.Set("limit", fmt.Sprint(limit))
	}
	if order, ok := args["order"].(string); ok && order != "" {
		params.Set("order", order)
	}
	path := sessionPath(sessionID, "/history")
	if len(params) > 0 {
		path += "?" + params.Encode()
	}

	var history service.HistoryResponse
	if err := c.apiCall(ctx, "GET", path, nil, &history); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(formatHistory(&history)), nil
}

func (c *Client) handleListConfigs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var configs []service.ConfigInfo
	if err := c.apiCall(ctx, "GET", "/api/configs", nil, &configs); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	b.WriteString("Available Configurations:\n\n")
	for _, config := range configs {
		fmt.Fprintf(&b, "• %s (%s)\n  %s\n\n", config.Name, config.ConfigID, config.Description)
	}
	return mcp.NewToolResultText(b.String()), nil
}

func (c *Client) handleGameInstructions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(instructions), nil
}

const instructions = `Arcade - Complete Instructions

FLOW:
1. create_session (optionally with config_id classic, quick or expert)
2. select_game with one of the six games
3. act until the snapshot shows an outcome
4. back to the menu, or select_game again to start over

HANGMAN:
• {"type": "guess", "letter": "e"} - one letter at a time
• Wrong guesses use up the allowance; repeated letters are ignored
• {"type": "reset"} picks a new word

TIC-TAC-TOE:
• You are X and always move first: {"type": "place", "cell": 4}
• Cells are numbered 0-8, left to right, top to bottom
• The computer answers as O after a short delay; call game_state to see it
• {"type": "reset"} clears the board

CHECKERS:
• You are red (r), moving up the board from the bottom rows
• Select a piece and then a destination with click, or in one step:
  {"type": "move", "row": 5, "col": 0, "to_row": 4, "to_col": 1}
• Pieces step one square diagonally forward; there are no captures or kings
• The side with no legal move loses
• Black replies after a short delay

SNAKE:
• {"type": "start"} starts or restarts the clock
• {"type": "turn", "direction": "up"} - reversing onto yourself is ignored
• Eating food grows the snake; hitting a wall or yourself ends the game

BLACKJACK:
• {"type": "bet", "amount": 25}, then {"type": "deal"}
• {"type": "hit"} or {"type": "stand"}; the dealer draws to 17
• A win adds the bet to your balance, a loss or bust takes it away
• A push leaves the balance unchanged
• {"type": "new_round"} after a round finishes

MINESWEEPER:
• {"type": "reveal", "row": 3, "col": 7}
• {"type": "flag", "row": 3, "col": 7} toggles a flag
• Revealing a mine ends the game; zeros open their neighbours
• Grid legend: # hidden, F flag, * mine, digits count adjacent mines

Good luck!`

// Formatting helpers

func formatMenu(games []engine.GameInfo) string {
	var b strings.Builder
	b.WriteString("Games:\n")
	for _, g := range games {
		fmt.Fprintf(&b, "• %s (%s): %s\n  actions: %s\n", g.Name, g.ID, g.Description, strings.Join(g.Actions, ", "))
	}
	return b.String()
}

func formatSessionInfo(session *service.SessionInfo) string {
	playing := "menu"
	if session.Selected != "" {
		playing = string(session.Selected)
	}
	return fmt.Sprintf("Session: %s\nConfig: %s\nPlaying: %s\nCreated: %s\nLast accessed: %s\n",
		session.ID, session.ConfigName, playing,
		session.CreatedAt.Format(time.RFC3339), session.LastAccessedAt.Format(time.RFC3339))
}

func formatActionResult(result *service.ActionResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("✓ ")
	} else {
		b.WriteString("✗ ")
	}
	b.WriteString(result.Message)
	b.WriteString("\n\n")
	b.WriteString(formatSnapshot(&result.Snapshot))
	return b.String()
}

// decodeView converts the loosely typed state of a decoded snapshot into
// the view struct of its game.
func decodeView(state any, view any) bool {
	data, err := json.Marshal(state)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, view) == nil
}

func formatSnapshot(snap *engine.Snapshot) string {
	if snap == nil {
		return ""
	}
	if snap.Selected == "" {
		return formatMenu(snap.Menu)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Game: %s (version %d)\n", snap.Selected, snap.Version)
	if snap.Outcome != "" {
		fmt.Fprintf(&b, "Outcome: %s\n", snap.Outcome)
	}
	b.WriteString("\n")

	switch snap.Selected {
	case engine.Hangman:
		var v engine.HangmanView
		if decodeView(snap.State, &v) {
			formatHangman(&b, &v)
			return b.String()
		}
	case engine.TicTacToe:
		var v engine.TicTacToeView
		if decodeView(snap.State, &v) {
			formatTicTacToe(&b, &v)
			return b.String()
		}
	case engine.Checkers:
		var v engine.CheckersView
		if decodeView(snap.State, &v) {
			formatCheckers(&b, &v)
			return b.String()
		}
	case engine.Snake:
		var v engine.SnakeView
		if decodeView(snap.State, &v) {
			formatSnake(&b, &v)
			return b.String()
		}
	case engine.Blackjack:
		var v engine.BlackjackView
		if decodeView(snap.State, &v) {
			formatBlackjack(&b, &v)
			return b.String()
		}
	case engine.Minesweeper:
		var v engine.MinesweeperView
		if decodeView(snap.State, &v) {
			formatMinesweeper(&b, &v)
			return b.String()
		}
	}

	data, _ := json.MarshalIndent(snap.State, "", "  ")
	b.Write(data)
	b.WriteString("\n")
	return b.String()
}

func formatHangman(b *strings.Builder, v *engine.HangmanView) {
	fmt.Fprintf(b, "Word: %s\n", strings.Join(strings.Split(v.Masked, ""), " "))
	fmt.Fprintf(b, "Guessed: %s\n", v.Guessed)
	fmt.Fprintf(b, "Wrong guesses left: %d/%d\n", v.Remaining, v.MaxGuesses)
	fmt.Fprintf(b, "Status: %s\n", v.Status)
	if v.Word != "" {
		fmt.Fprintf(b, "The word was: %s\n", v.Word)
	}
}

func formatTicTacToe(b *strings.Builder, v *engine.TicTacToeView) {
	for r := 0; r < 3; r++ {
		cells := make([]string, 3)
		for c := 0; c < 3; c++ {
			i := r*3 + c
			cells[c] = v.Board[i]
			if cells[c] == "" {
				cells[c] = fmt.Sprint(i)
			}
		}
		fmt.Fprintf(b, " %s\n", strings.Join(cells, " | "))
	}
	switch {
	case v.Winner != "":
		fmt.Fprintf(b, "Winner: %s\n", v.Winner)
	case v.Draw:
		b.WriteString("Draw\n")
	case v.Thinking:
		b.WriteString("Computer is thinking...\n")
	default:
		fmt.Fprintf(b, "Turn: %s\n", v.Turn)
	}
}

func formatCheckers(b *strings.Builder, v *engine.CheckersView) {
	b.WriteString("   01234567\n")
	for r, row := range v.Board {
		fmt.Fprintf(b, "%d  %s\n", r, row)
	}
	fmt.Fprintf(b, "Turn: %s  Red: %d  Black: %d\n", v.Turn, v.Red, v.Black)
	if v.Selected != nil {
		fmt.Fprintf(b, "Selected: (%d,%d)\n", v.Selected.Row, v.Selected.Col)
	}
	if v.Blocked {
		fmt.Fprintf(b, "%s has no legal move\n", v.Turn)
	}
	if len(v.Moves) > 0 {
		moves := make([]string, len(v.Moves))
		for i, m := range v.Moves {
			moves[i] = fmt.Sprintf("(%d,%d)->(%d,%d)", m.From.Row, m.From.Col, m.To.Row, m.To.Col)
		}
		fmt.Fprintf(b, "Legal moves: %s\n", strings.Join(moves, " "))
	}
}

func formatSnake(b *strings.Builder, v *engine.SnakeView) {
	grid := make([][]byte, v.Size)
	for y := range grid {
		grid[y] = bytes.Repeat([]byte{'.'}, v.Size)
	}
	inGrid := func(x, y int) bool { return x >= 0 && x < v.Size && y >= 0 && y < v.Size }
	if inGrid(v.Food.X, v.Food.Y) {
		grid[v.Food.Y][v.Food.X] = '*'
	}
	for i, p := range v.Body {
		if !inGrid(p.X, p.Y) {
			continue
		}
		if i == 0 {
			grid[p.Y][p.X] = '@'
		} else {
			grid[p.Y][p.X] = 'o'
		}
	}
	for _, row := range grid {
		b.Write(row)
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "Score: %d  Length: %d\n", v.Score, len(v.Body))
	switch {
	case v.Won:
		b.WriteString("The snake fills the board\n")
	case v.Over:
		b.WriteString("Game over\n")
	case !v.Started:
		b.WriteString("Send start to begin\n")
	}
}

func formatBlackjack(b *strings.Builder, v *engine.BlackjackView) {
	fmt.Fprintf(b, "Balance: %d  Bet: %d  Phase: %s\n", v.Balance, v.Bet, v.Phase)
	if len(v.Player) > 0 {
		fmt.Fprintf(b, "You: %s (%d)\n", strings.Join(v.Player, " "), v.PlayerValue)
	}
	if len(v.Dealer) > 0 {
		dealer := strings.Join(v.Dealer, " ")
		if v.DealerValue != nil {
			dealer += fmt.Sprintf(" (%d)", *v.DealerValue)
		}
		fmt.Fprintf(b, "Dealer: %s\n", dealer)
	}
	if v.Outcome != "" {
		fmt.Fprintf(b, "Outcome: %s\n", v.Outcome)
	}
	if v.Message != "" {
		fmt.Fprintf(b, "%s\n", v.Message)
	}
	fmt.Fprintf(b, "Cards left: %d\n", v.CardsLeft)
}

func formatMinesweeper(b *strings.Builder, v *engine.MinesweeperView) {
	for r, row := range v.Grid {
		fmt.Fprintf(b, "%2d  %s\n", r, row)
	}
	fmt.Fprintf(b, "Mines: %d  Flags left: %d\n", v.Mines, v.FlagsRemaining)
	switch {
	case v.Won:
		b.WriteString("All safe cells revealed\n")
	case v.Lost:
		b.WriteString("Boom\n")
	}
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Action History (page %d of %d, %d total):\n", history.Page, history.TotalPages, history.TotalActions)
	for _, entry := range history.Actions {
		status := "✓"
		if !entry.Applied {
			status = "✗"
		}
		fmt.Fprintf(&b, "%s #%d %s %s %s\n", status, entry.Seq, entry.Game, entry.Source, describeAction(entry.Action))
	}
	if history.HasNext {
		b.WriteString("More entries on the next page\n")
	}
	return b.String()
}

func describeAction(a engine.Action) string {
	switch a.Type {
	case engine.ActionGuess:
		return fmt.Sprintf("guess %s", a.Letter)
	case engine.ActionPlace:
		return fmt.Sprintf("place %d", a.Cell)
	case engine.ActionTurn:
		return fmt.Sprintf("turn %s", a.Direction)
	case engine.ActionBet:
		return fmt.Sprintf("bet %d", a.Amount)
	case engine.ActionMove:
		return fmt.Sprintf("move (%d,%d)->(%d,%d)", a.Row, a.Col, a.ToRow, a.ToCol)
	case engine.ActionClick, engine.ActionReveal, engine.ActionFlag:
		return fmt.Sprintf("%s (%d,%d)", a.Type, a.Row, a.Col)
	}
	return a.Type
}
