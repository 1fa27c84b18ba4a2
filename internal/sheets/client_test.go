package sheets

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagumdiocese/directory/internal/config"
	"github.com/tagumdiocese/directory/internal/logger"
	"github.com/tagumdiocese/directory/internal/upstream"
)

const testSpreadsheetID = "test-sheet"

// fakeSheetsAPI serves value ranges keyed by range expression.
type fakeSheetsAPI struct {
	mu       sync.Mutex
	ranges   map[string]string
	statuses map[string]int
	requests []string
	apiKeys  []string
}

func (f *fakeSheetsAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	prefix := "/v4/spreadsheets/" + testSpreadsheetID + "/values/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.NotFound(w, r)
		return
	}
	rangeExpr := strings.TrimPrefix(r.URL.Path, prefix)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, rangeExpr)
	f.apiKeys = append(f.apiKeys, r.URL.Query().Get("key"))

	w.Header().Set("Content-Type", "application/json")
	if status, ok := f.statuses[rangeExpr]; ok {
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"error":{"code":%d,"message":"Unable to parse range: %s","status":"INVALID_ARGUMENT"}}`, status, rangeExpr)
		return
	}
	body, ok := f.ranges[rangeExpr]
	if !ok {
		body = fmt.Sprintf(`{"range":%q,"majorDimension":"ROWS"}`, rangeExpr)
	}
	fmt.Fprint(w, body)
}

func (f *fakeSheetsAPI) recorded() (ranges, keys []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...), append([]string(nil), f.apiKeys...)
}

func newTestClient(t *testing.T, api http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	client, err := NewClient(context.Background(), config.SheetsConfig{
		APIKey:            "test-key",
		SpreadsheetID:     testSpreadsheetID,
		Endpoint:          srv.URL + "/",
		RequestsPerSecond: 100,
	}, logger.Nop())
	require.NoError(t, err)
	require.True(t, client.Configured())

	return client
}

func TestFetchRange_ReturnsGrid(t *testing.T) {
	api := &fakeSheetsAPI{ranges: map[string]string{
		"Schools!A:F": `{"range":"Schools!A1:F3","majorDimension":"ROWS","values":[
			["School","Location","Contact"],
			["Holy Cross of Tagum","Tagum City"],
			["St. Mary's",""," 0917 "]
		]}`,
	}}
	client := newTestClient(t, api)

	grid, err := client.FetchRange(context.Background(), "Schools!A:F")

	require.NoError(t, err)
	assert.Len(t, grid, 3)
	assert.Equal(t, "Holy Cross of Tagum", grid.Cell(1, 0))
	assert.Equal(t, "", grid.Cell(1, 2), "short rows read as empty")
	assert.Equal(t, "0917", grid.TrimmedCell(2, 2))
	ranges, keys := api.recorded()
	assert.Equal(t, []string{"Schools!A:F"}, ranges)
	assert.Equal(t, []string{"test-key"}, keys)
}

func TestFetchRange_EmptyRangeIsNotAnError(t *testing.T) {
	client := newTestClient(t, &fakeSheetsAPI{})

	grid, err := client.FetchRange(context.Background(), "Videos!A:A")

	require.NoError(t, err)
	assert.Empty(t, grid)
	assert.Equal(t, 0, grid.DataRows())
}

func TestFetchRange_RemoteError(t *testing.T) {
	api := &fakeSheetsAPI{statuses: map[string]int{"Ministry!A:C": http.StatusBadRequest}}
	client := newTestClient(t, api)

	_, err := client.FetchRange(context.Background(), "Ministry!A:C")

	require.Error(t, err)
	var remote *upstream.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusBadRequest, remote.Status)
	assert.Contains(t, remote.Body, "Unable to parse range")
	assert.True(t, upstream.IsClientError(err))
	assert.Equal(t, "sheets API error: 400 Bad Request", err.Error())
}

func TestFetchRange_Forbidden(t *testing.T) {
	api := &fakeSheetsAPI{statuses: map[string]int{"A:Z": http.StatusForbidden}}
	client := newTestClient(t, api)

	_, err := client.FetchRange(context.Background(), "A:Z")

	var remote *upstream.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusForbidden, remote.Status)
	assert.False(t, upstream.IsClientError(err))
}

func TestFetchRange_MissingCredential(t *testing.T) {
	client, err := NewClient(context.Background(), config.SheetsConfig{
		SpreadsheetID:     testSpreadsheetID,
		Endpoint:          "http://127.0.0.1:0/",
		RequestsPerSecond: 1,
	}, logger.Nop())
	require.NoError(t, err)
	assert.False(t, client.Configured())

	_, err = client.FetchRange(context.Background(), "A:Z")

	var cfgErr *upstream.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "GOOGLE_API_KEY", cfgErr.Missing)
	assert.NotEmpty(t, cfgErr.Remediation)
}

func TestFetchRange_CancelledContext(t *testing.T) {
	api := &fakeSheetsAPI{}
	client := newTestClient(t, api)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchRange(ctx, "A:Z")
	assert.ErrorIs(t, err, context.Canceled)
	ranges, _ := api.recorded()
	assert.Empty(t, ranges)
}

func TestNewClient_UnreadableServiceAccountKey(t *testing.T) {
	_, err := NewClient(context.Background(), config.SheetsConfig{
		ServiceAccountKeyFile: t.TempDir() + "/missing.json",
		SpreadsheetID:         testSpreadsheetID,
		Endpoint:              "https://sheets.googleapis.com/",
		RequestsPerSecond:     1,
	}, logger.Nop())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "service account key file")
}

func TestGrid_Cell(t *testing.T) {
	grid := Grid{{"Header"}, {"a", "b"}}

	assert.Equal(t, "b", grid.Cell(1, 1))
	assert.Equal(t, "", grid.Cell(1, 5))
	assert.Equal(t, "", grid.Cell(9, 0))
	assert.Equal(t, "", grid.Cell(-1, 0))
	assert.Equal(t, 1, grid.DataRows())
}

func TestToGrid_ConvertsNonStringCells(t *testing.T) {
	grid := toGrid([][]interface{}{{"name", 42.0, true, nil}})

	assert.Equal(t, Grid{{"name", "42", "true", ""}}, grid)
}
