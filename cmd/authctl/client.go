package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// client posts action envelopes to a running gateway.
type client struct {
	BaseURL string
	HTTP    *http.Client
}

type envelope struct {
	Action string `json:"action"`
	Data   any    `json:"data,omitempty"`
}

func (c *client) call(ctx context.Context, action string, data any) (int, []byte, error) {
	body, err := json.Marshal(envelope{Action: action, Data: data})
	if err != nil {
		return 0, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.BaseURL, "/")+"/", bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, b, nil
}

// printBody writes the body indented when it is JSON.
func printBody(w io.Writer, body []byte) {
	var v any
	if json.Unmarshal(body, &v) == nil {
		p, _ := json.MarshalIndent(v, "", "  ")
		fmt.Fprintln(w, string(p))
		return
	}
	fmt.Fprintln(w, string(body))
}
