// Package backend is the HTTP client for the padel backend REST API.
// It owns header assembly and response decoding; it does not retry,
// cache, or interpret status codes beyond the success check.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shaONme/padel-admin/models"
)

const (
	headerUserTgID = "X-User-Tg-Id"
	headerChatID   = "X-Chat-Id"
)

// Identity carries the opaque caller identifiers forwarded to the backend.
// Zero values mean "not set" and produce no header.
type Identity struct {
	TgID   int64
	ChatID int64
}

// Client talks to the padel backend over plain REST.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a backend client for the given base URL.
// A nil httpClient falls back to a default with the given timeout.
func NewClient(baseURL string, timeout time.Duration, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// send issues one request against the configured base URL, merging the
// JSON content-type header with the optional identity headers.
func (c *Client) send(ctx context.Context, method, endpoint string, body interface{}, identity Identity) (*http.Response, error) {
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if identity.TgID != 0 {
		req.Header.Set(headerUserTgID, strconv.FormatInt(identity.TgID, 10))
	}
	if identity.ChatID != 0 {
		req.Header.Set(headerChatID, strconv.FormatInt(identity.ChatID, 10))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

// getJSON is send + success check + decode for GET endpoints.
func (c *Client) getJSON(ctx context.Context, endpoint string, identity Identity, dst interface{}) error {
	resp, err := c.send(ctx, http.MethodGet, endpoint, nil, identity)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Health returns the raw backend health payload.
func (c *Client) Health(ctx context.Context) (map[string]interface{}, error) {
	var status map[string]interface{}
	if err := c.getJSON(ctx, "/health", Identity{}, &status); err != nil {
		return nil, err
	}
	return status, nil
}

// RatingModes returns the fixed list of rating modes.
func (c *Client) RatingModes(ctx context.Context) ([]models.RatingMode, error) {
	var modes []models.RatingMode
	if err := c.getJSON(ctx, "/rating/modes", Identity{}, &modes); err != nil {
		return nil, err
	}
	return modes, nil
}

// RatingTable returns the ranked rating rows for one mode.
func (c *Client) RatingTable(ctx context.Context, mode models.RatingModeCode) ([]models.PlayerRatingRow, error) {
	var rows []models.PlayerRatingRow
	if err := c.getJSON(ctx, "/rating/"+url.PathEscape(string(mode)), Identity{}, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// ListPlayers returns the full roster, backend-ordered by rating.
func (c *Client) ListPlayers(ctx context.Context) ([]models.Player, error) {
	var players []models.Player
	if err := c.getJSON(ctx, "/players", Identity{}, &players); err != nil {
		return nil, err
	}
	return players, nil
}

// SearchPlayers returns players matching the query; matching and ranking
// are owned by the backend.
func (c *Client) SearchPlayers(ctx context.Context, identity Identity, query string) ([]models.Player, error) {
	var players []models.Player
	endpoint := "/players/search?q=" + url.QueryEscape(query)
	if err := c.getJSON(ctx, endpoint, identity, &players); err != nil {
		return nil, err
	}
	return players, nil
}

// PlayerByTgID returns one player by telegram id.
func (c *Client) PlayerByTgID(ctx context.Context, tgID int64) (*models.Player, error) {
	var player models.Player
	endpoint := "/players/by_tg/" + strconv.FormatInt(tgID, 10)
	if err := c.getJSON(ctx, endpoint, Identity{}, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// RegisterPlayerInput is the payload for player registration.
type RegisterPlayerInput struct {
	TgID        int64   `json:"tg_id"`
	Username    *string `json:"username,omitempty"`
	DisplayName string  `json:"display_name"`
}

// RegisterPlayer creates or updates a player record on the backend.
func (c *Client) RegisterPlayer(ctx context.Context, input RegisterPlayerInput) (*models.Player, error) {
	var player models.Player
	if err := c.postJSON(ctx, "/players/register", input, Identity{}, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

// ListChats returns the caller's chats; the caller identity header is required.
func (c *Client) ListChats(ctx context.Context, identity Identity, adminOnly bool) ([]models.Chat, error) {
	endpoint := "/chats"
	if adminOnly {
		endpoint += "?admin_only=true"
	}
	var chats []models.Chat
	if err := c.getJSON(ctx, endpoint, identity, &chats); err != nil {
		return nil, err
	}
	return chats, nil
}

// CreateTournamentInput is the POST /tournaments payload. The limit that
// does not match the scoring type must stay nil.
type CreateTournamentInput struct {
	Name         string                `json:"name"`
	Mode         models.RatingModeCode `json:"mode"`
	ScoringType  models.ScoringType    `json:"scoring_type"`
	PointsLimit  *int                  `json:"points_limit"`
	SetsLimit    *int                  `json:"sets_limit"`
	Participants []int                 `json:"participants"`
}

// CreateTournament submits one tournament creation request.
func (c *Client) CreateTournament(ctx context.Context, identity Identity, input CreateTournamentInput) (*models.Tournament, error) {
	var tournament models.Tournament
	if err := c.postJSON(ctx, "/tournaments", input, identity, &tournament); err != nil {
		return nil, err
	}
	return &tournament, nil
}

// CreateMatchInput is the POST /matches payload.
type CreateMatchInput struct {
	TournamentID int                `json:"tournament_id"`
	RoundNumber  *int               `json:"round_number,omitempty"`
	CourtNumber  *int               `json:"court_number,omitempty"`
	Player1ID    int                `json:"player1_id"`
	Player2ID    int                `json:"player2_id"`
	ScoreType    models.ScoringType `json:"score_type"`
	Points1      *int               `json:"points1,omitempty"`
	Points2      *int               `json:"points2,omitempty"`
	Sets1        *int               `json:"sets1,omitempty"`
	Sets2        *int               `json:"sets2,omitempty"`
}

// CreateMatch records one played match.
func (c *Client) CreateMatch(ctx context.Context, identity Identity, input CreateMatchInput) (*models.Match, error) {
	var match models.Match
	if err := c.postJSON(ctx, "/matches", input, identity, &match); err != nil {
		return nil, err
	}
	return &match, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body interface{}, identity Identity, dst interface{}) error {
	resp, err := c.send(ctx, http.MethodPost, endpoint, body, identity)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
