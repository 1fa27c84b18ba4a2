// Package airtable lists records from the tabular-record API.
package airtable

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"

	"github.com/tagumdiocese/directory/internal/config"
	"github.com/tagumdiocese/directory/internal/logger"
	"github.com/tagumdiocese/directory/internal/upstream"
)

// Record is one row of a table. Field values keep their JSON types.
type Record struct {
	ID          string                 `json:"id"`
	Fields      map[string]interface{} `json:"fields"`
	CreatedTime string                 `json:"createdTime"`
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset,omitempty"`
}

// Client reads tables from one base.
type Client struct {
	httpClient *http.Client
	endpoint   string
	baseID     string
	log        *logger.Logger
}

// NewClient creates a Client. Without a token the client is returned anyway
// and every call reports a ConfigurationError.
func NewClient(ctx context.Context, cfg config.AirtableConfig, log *logger.Logger) *Client {
	c := &Client{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		baseID:   cfg.BaseID,
		log:      log.Component(upstream.SourceAirtable),
	}
	if cfg.Token != "" {
		c.httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: cfg.Token,
			TokenType:   "Bearer",
		}))
	}
	return c
}

// Configured reports whether the client holds a token.
func (c *Client) Configured() bool {
	return c.httpClient != nil
}

// ListRecords returns every record of a table, following offset pagination
// until the server stops returning an offset.
func (c *Client) ListRecords(ctx context.Context, tableID string) ([]Record, error) {
	if c.httpClient == nil {
		return nil, &upstream.ConfigurationError{
			Source:      upstream.SourceAirtable,
			Missing:     "AIRTABLE_TOKEN",
			Remediation: "Set AIRTABLE_TOKEN to a personal access token with read access to the base.",
		}
	}

	var records []Record
	offset := ""
	pages := 0
	for {
		page, err := c.listPage(ctx, tableID, offset)
		if err != nil {
			return nil, err
		}
		pages++
		records = append(records, page.Records...)
		if page.Offset == "" {
			break
		}
		if page.Offset == offset {
			return nil, fmt.Errorf("airtable returned the same offset %q twice for table %s", offset, tableID)
		}
		offset = page.Offset
	}

	c.log.Debug("Listed records", map[string]interface{}{
		"table":   tableID,
		"records": len(records),
		"pages":   pages,
	})

	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (c *Client) listPage(ctx context.Context, tableID, offset string) (*listResponse, error) {
	endpoint := fmt.Sprintf("%s/%s/%s", c.endpoint, url.PathEscape(c.baseID), url.PathEscape(tableID))
	if offset != "" {
		endpoint += "?" + url.Values{"offset": {offset}}.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build airtable request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to list table %s: %w", tableID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, readErr := io.ReadAll(resp.Body)
		fields := map[string]interface{}{
			"table":  tableID,
			"status": resp.StatusCode,
			"body":   string(body),
		}
		if readErr != nil {
			fields["read_error"] = readErr.Error()
		}
		c.log.Warn("Airtable API returned an error", fields)
		return nil, &upstream.RemoteError{
			Source: upstream.SourceAirtable,
			Status: resp.StatusCode,
			Body:   string(body),
		}
	}

	var page listResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode table %s: %w", tableID, err)
	}
	return &page, nil
}
