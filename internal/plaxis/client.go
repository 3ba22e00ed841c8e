package plaxis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
)

// HTTPClient talks to the modeler's remote scripting server over its HTTP
// command endpoint. One request per command; the server serialises execution.
type HTTPClient struct {
	base     string
	password string
	hc       *http.Client
}

// NewHTTPClient builds a client for the scripting server at host:port.
func NewHTTPClient(host string, port int, password string) *HTTPClient {
	return &HTTPClient{
		base:     fmt.Sprintf("http://%s", net.JoinHostPort(host, fmt.Sprint(port))),
		password: password,
		hc:       &http.Client{},
	}
}

type commandRequest struct {
	Command string `json:"command"`
	Args    []any  `json:"args"`
}

type commandResponse struct {
	Result string `json:"result"`
	Error  string `json:"error"`
}

// Exec posts one command and returns the server's textual result.
func (c *HTTPClient) Exec(ctx context.Context, command string, args ...any) (string, error) {
	body, err := json.Marshal(commandRequest{Command: command, Args: args})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/commands", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.password)

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("scripting server returned %s: %s", resp.Status, bytes.TrimSpace(data))
	}

	var cr commandResponse
	if err := json.Unmarshal(data, &cr); err != nil {
		return "", fmt.Errorf("malformed scripting response: %w", err)
	}
	if cr.Error != "" {
		return "", fmt.Errorf("command rejected: %s", cr.Error)
	}
	return cr.Result, nil
}
