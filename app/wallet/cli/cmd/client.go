package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ardanlabs/ledger/business/web/errs"
)

// client calls the node's public API.
type client struct {
	url  string
	http *http.Client
}

func newClient(url string) *client {
	return &client{
		url: url,
		http: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

func (c *client) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+path, nil)
	if err != nil {
		return err
	}

	return c.do(req, v)
}

func (c *client) post(ctx context.Context, path string, body any, v any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, v)
}

func (c *client) do(req *http.Request, v any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("unable to connect to the node: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var er errs.Response
		if err := json.NewDecoder(resp.Body).Decode(&er); err != nil || er.Error == "" {
			return fmt.Errorf("node responded with %s", resp.Status)
		}

		if len(er.Fields) > 0 {
			return fmt.Errorf("%s: %v", er.Error, er.Fields)
		}

		return errors.New(er.Error)
	}

	if v == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(v)
}
