package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"maxconnect4/communication"
	"maxconnect4/game"
)

// Client asks a move server for moves.
type Client struct {
	serverURL  string
	httpClient *http.Client
}

func NewClient(serverURL string) *Client {
	return &Client{
		serverURL:  serverURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// RequestMove posts the board and returns the server's answer. A full board
// yields game.ErrNoLegalMove.
func (c *Client) RequestMove(ctx context.Context, b *game.Board, depth int) (communication.MoveResponse, error) {
	rows, turn := communication.EncodeBoard(b)
	data, err := json.Marshal(communication.MoveRequest{Rows: rows, Turn: turn, Depth: depth})
	if err != nil {
		return communication.MoveResponse{}, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL+"/move", bytes.NewReader(data))
	if err != nil {
		return communication.MoveResponse{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return communication.MoveResponse{}, fmt.Errorf("move request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusConflict:
		return communication.MoveResponse{}, game.ErrNoLegalMove
	default:
		var e communication.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&e); err != nil || e.Error == "" {
			return communication.MoveResponse{}, fmt.Errorf("move server returned %s", resp.Status)
		}
		return communication.MoveResponse{}, fmt.Errorf("move server returned %s: %s", resp.Status, e.Error)
	}

	var move communication.MoveResponse
	if err := json.NewDecoder(resp.Body).Decode(&move); err != nil {
		return communication.MoveResponse{}, fmt.Errorf("failed to decode move: %w", err)
	}
	return move, nil
}
