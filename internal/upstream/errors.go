// Package upstream defines the failure taxonomy shared by the spreadsheet and
// tabular-record data sources.
package upstream

import (
	"errors"
	"fmt"
	"net/http"
)

// Source names used in errors and log fields.
const (
	SourceSheets   = "sheets"
	SourceAirtable = "airtable"
)

// ConfigurationError reports that a data source cannot be used because a
// credential is absent. It is fatal to that source only.
type ConfigurationError struct {
	Source      string
	Missing     string
	Remediation string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s is not configured: %s is missing", e.Source, e.Missing)
}

// RemoteError reports a non-success response from a data source. Body holds
// the raw response text for logging; it is never shown to clients.
type RemoteError struct {
	Source string
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s API error: %d %s", e.Source, e.Status, http.StatusText(e.Status))
}

// IsClientError reports whether err is a RemoteError with status 400. The
// spreadsheet API answers 400 for a range naming a sheet that does not exist.
func IsClientError(err error) bool {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote.Status == http.StatusBadRequest
	}
	return false
}

// IsConfigurationError reports whether err is (or wraps) a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
