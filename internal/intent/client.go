package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"guardian/internal/domain"
)

// BridgeClient talks to an intent bridge for a single device.
type BridgeClient struct {
	Base   string
	Device string
	HTTP   *http.Client
}

// NewBridgeClient returns a client for device at base. A nil client uses
// http.DefaultClient.
func NewBridgeClient(base, device string, hc *http.Client) *BridgeClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &BridgeClient{Base: base, Device: device, HTTP: hc}
}

// Launch enqueues the intent for the handset.
func (c *BridgeClient) Launch(ctx context.Context, in domain.Intent) error {
	return c.post(ctx, c.path(""), in, nil)
}

// Fetch returns up to limit queued intents; limit <= 0 returns all.
func (c *BridgeClient) Fetch(ctx context.Context, limit int) ([]domain.Intent, error) {
	p := c.path("")
	if limit > 0 {
		p += "?limit=" + strconv.Itoa(limit)
	}
	var out []domain.Intent
	if err := c.getJSON(ctx, p, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Ack drops the first count queued intents.
func (c *BridgeClient) Ack(ctx context.Context, count int) error {
	return c.post(ctx, c.path("/ack"), ackRequest{Count: count}, nil)
}

func (c *BridgeClient) path(suffix string) string {
	return "/devices/" + url.PathEscape(c.Device) + "/intents" + suffix
}

func (c *BridgeClient) post(ctx context.Context, path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("bridge post %s: %s", path, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *BridgeClient) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("bridge get %s: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ domain.IntentLauncher = (*BridgeClient)(nil)
