// Package sheets reads value ranges from the directory spreadsheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/tagumdiocese/directory/internal/config"
	"github.com/tagumdiocese/directory/internal/logger"
	"github.com/tagumdiocese/directory/internal/upstream"
)

const missingKeyRemediation = "Set GOOGLE_API_KEY to an API key with the Google Sheets API enabled " +
	"(Google Cloud Console > APIs & Services > Credentials), " +
	"or set GOOGLE_SERVICE_ACCOUNT_KEY_FILE to a service account key with read access to the spreadsheet."

// Fetcher returns the grid for a sheet-qualified range expression such as
// "Schools!A:F" or a bare "A:Z" on the default sheet.
type Fetcher interface {
	FetchRange(ctx context.Context, rangeExpr string) (Grid, error)
}

// Client implements Fetcher over the Google Sheets API. Every call is an
// independent GET; nothing is cached between calls.
type Client struct {
	service       *sheetsapi.Service
	spreadsheetID string
	limiter       *rate.Limiter
	log           *logger.Logger
}

// NewClient creates a Client. A missing credential is not an error here: the
// client is still returned and every FetchRange reports a ConfigurationError,
// so one unconfigured source never prevents the server from starting.
func NewClient(ctx context.Context, cfg config.SheetsConfig, log *logger.Logger) (*Client, error) {
	c := &Client{
		spreadsheetID: cfg.SpreadsheetID,
		limiter:       newLimiter(cfg.RequestsPerSecond),
		log:           log.Component(upstream.SourceSheets),
	}

	if !cfg.HasCredentials() {
		c.log.Warn("No spreadsheet credential configured; sheet reads will fail", nil)
		return c, nil
	}

	opts := []option.ClientOption{option.WithEndpoint(cfg.Endpoint)}
	switch {
	case cfg.ServiceAccountKeyFile != "":
		keyJSON, err := os.ReadFile(cfg.ServiceAccountKeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read service account key file %s: %w", cfg.ServiceAccountKeyFile, err)
		}
		jwtCfg, err := google.JWTConfigFromJSON(keyJSON, sheetsapi.SpreadsheetsReadonlyScope)
		if err != nil {
			return nil, fmt.Errorf("failed to parse service account key: %w", err)
		}
		opts = append(opts, option.WithHTTPClient(jwtCfg.Client(ctx)))
	default:
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}

	srv, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	c.service = srv

	return c, nil
}

// Configured reports whether the client holds a credential.
func (c *Client) Configured() bool {
	return c.service != nil
}

// FetchRange reads one value range. An empty range yields an empty grid.
func (c *Client) FetchRange(ctx context.Context, rangeExpr string) (Grid, error) {
	if c.service == nil {
		return nil, &upstream.ConfigurationError{
			Source:      upstream.SourceSheets,
			Missing:     "GOOGLE_API_KEY",
			Remediation: missingKeyRemediation,
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting to fetch range %s: %w", rangeExpr, err)
	}

	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, rangeExpr).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			c.log.Warn("Spreadsheet API returned an error", map[string]interface{}{
				"range":  rangeExpr,
				"status": apiErr.Code,
				"body":   apiErr.Body,
			})
			return nil, &upstream.RemoteError{
				Source: upstream.SourceSheets,
				Status: apiErr.Code,
				Body:   apiErr.Body,
			}
		}
		return nil, fmt.Errorf("failed to fetch range %s: %w", rangeExpr, err)
	}

	grid := toGrid(resp.Values)
	c.log.Debug("Fetched range", map[string]interface{}{
		"range": rangeExpr,
		"rows":  len(grid),
	})

	return grid, nil
}

func newLimiter(requestsPerSecond float64) *rate.Limiter {
	burst := int(requestsPerSecond)
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}
