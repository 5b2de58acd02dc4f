// Package hubspot implements the record store gateway over the HubSpot
// engagements v1 API. Summary notes are stored as NOTE engagements
// associated with a single configured contact; the note content travels in
// the engagement metadata body.
//
// Every method is a single blocking round trip. Nothing is retried and no
// pagination cursor is followed: ListPage returns at most one page, so only
// the most recent records are ever visible to callers.
package hubspot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/kuitang/crm-notes/internal/config"
	"github.com/kuitang/crm-notes/internal/errs"
	"github.com/kuitang/crm-notes/internal/logutil"
	"github.com/kuitang/crm-notes/internal/obs"
	"github.com/kuitang/crm-notes/internal/summaries"
)

const (
	engagementsPath   = "/engagements/v1/engagements"
	errorBodyLogBytes = 2 * 1024
)

// Client talks to the HubSpot engagements API. It implements
// summaries.Store.
type Client struct {
	baseURL    string
	token      string
	contactID  int64
	httpClient *http.Client
}

// NewClient builds a gateway from the loaded configuration. The association
// target and credentials are fixed here; the client never reads global
// state.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg.HubSpotAccessToken == "" {
		return nil, errs.New(errs.Config, "HubSpot access token is not configured")
	}
	contactID, err := strconv.ParseInt(cfg.HubSpotContactID, 10, 64)
	if err != nil {
		return nil, errs.New(errs.Config, fmt.Sprintf("HUBSPOT_CONTACT_ID must be a numeric contact id, got %q", cfg.HubSpotContactID))
	}
	return &Client{
		baseURL:   cfg.HubSpotBaseURL,
		token:     cfg.HubSpotAccessToken,
		contactID: contactID,
		httpClient: &http.Client{
			Timeout: cfg.HubSpotTimeout,
		},
	}, nil
}

// engagement wraps the subset of the engagements API payload this gateway
// reads and writes.
type engagement struct {
	Engagement struct {
		ID        int64  `json:"id,omitempty"`
		Active    bool   `json:"active,omitempty"`
		Type      string `json:"type,omitempty"`
		CreatedAt int64  `json:"createdAt,omitempty"`
	} `json:"engagement"`
	Associations *struct {
		ContactIDs []int64 `json:"contactIds"`
	} `json:"associations,omitempty"`
	Metadata struct {
		Body string `json:"body"`
	} `json:"metadata"`
}

type pagedResponse struct {
	Results []engagement `json:"results"`
	HasMore bool         `json:"hasMore"`
}

func (e engagement) record() summaries.Record {
	return summaries.Record{
		ID:        strconv.FormatInt(e.Engagement.ID, 10),
		CreatedAt: time.UnixMilli(e.Engagement.CreatedAt),
		Body:      e.Metadata.Body,
	}
}

// ListPage fetches at most one page of engagements.
func (c *Client) ListPage(ctx context.Context, maxCount int) ([]summaries.Record, error) {
	path := fmt.Sprintf("%s/paged?limit=%d", engagementsPath, maxCount)
	var page pagedResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	records := make([]summaries.Record, 0, len(page.Results))
	for _, e := range page.Results {
		records = append(records, e.record())
	}
	return records, nil
}

// GetByID fetches a single engagement.
func (c *Client) GetByID(ctx context.Context, id string) (summaries.Record, error) {
	var e engagement
	if err := c.do(ctx, http.MethodGet, engagementsPath+"/"+id, nil, &e); err != nil {
		return summaries.Record{}, err
	}
	return e.record(), nil
}

// Create persists a NOTE engagement associated with the configured contact
// and returns its assigned identifier.
func (c *Client) Create(ctx context.Context, body string) (string, error) {
	var req engagement
	req.Engagement.Active = true
	req.Engagement.Type = "NOTE"
	req.Associations = &struct {
		ContactIDs []int64 `json:"contactIds"`
	}{ContactIDs: []int64{c.contactID}}
	req.Metadata.Body = body

	var created engagement
	if err := c.do(ctx, http.MethodPost, engagementsPath, req, &created); err != nil {
		return "", err
	}
	return strconv.FormatInt(created.Engagement.ID, 10), nil
}

// UpdateBody replaces the engagement's metadata body.
func (c *Client) UpdateBody(ctx context.Context, id, body string) error {
	req := struct {
		Metadata struct {
			Body string `json:"body"`
		} `json:"metadata"`
	}{}
	req.Metadata.Body = body
	return c.do(ctx, http.MethodPatch, engagementsPath+"/"+id, req, nil)
}

// Delete removes the engagement.
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, engagementsPath+"/"+id, nil, nil)
}

// do performs one round trip and decodes the response into out when it is
// non-nil. Non-success statuses map to the coded error taxonomy.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errs.Wrap(errs.Internal, "failed to encode hubspot request", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errs.Wrap(errs.Internal, "failed to build hubspot request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		obs.From(ctx).Warn("hubspot_request_failed",
			"method", method,
			"path", path,
			"err", err.Error(),
		)
		return errs.Wrap(errs.Upstream, "hubspot request failed", err)
	}
	defer resp.Body.Close()

	obs.From(ctx).Debug("hubspot_request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"dur_ms", float64(time.Since(start).Microseconds())/1000.0,
		"headers", logutil.FormatHeadersForLog(req.Header),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLogBytes))
		message := logutil.TruncateForLog(string(detail), 512)
		if resp.StatusCode == http.StatusNotFound {
			return errs.New(errs.NotFound, fmt.Sprintf("summary note not found (hubspot %s %s)", method, path))
		}
		return errs.NewUpstream(resp.StatusCode, fmt.Sprintf("hubspot %s %s returned %d: %s", method, path, resp.StatusCode, message))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errs.Wrap(errs.Upstream, "failed to decode hubspot response", err)
	}
	return nil
}
