package repository

import (
	"context"
	"fmt"

	"github.com/tagumdiocese/directory/internal/airtable"
	"github.com/tagumdiocese/directory/internal/clergy"
	"github.com/tagumdiocese/directory/internal/config"
	"github.com/tagumdiocese/directory/internal/logger"
	"github.com/tagumdiocese/directory/internal/models"
	"github.com/tagumdiocese/directory/internal/normalize"
	"github.com/tagumdiocese/directory/internal/sheets"
	"github.com/tagumdiocese/directory/internal/upstream"
)

// Sheet ranges, one per entity type. The parish list lives on the default
// sheet, addressed without a sheet name.
const (
	RangeParishes         = "A:Z"
	RangeBECs             = "BEC!A:G"
	RangeSchools          = "Schools!A:F"
	RangeMinistries       = "Ministry!A:C"
	RangeMinistriesLegacy = "Ministries!A:C"
	RangeCorporations     = "Corporations!A:E"
	RangeCongregations    = "Congregations!A:E"
	RangeDclaim           = "DCLAIM!A:B"
	RangePriests          = "Priests!A:D"
	RangeSponsors         = "Sponsors!A:A"
	RangeVideos           = "Videos!A:A"
)

// RecordLister reads every record of a table.
type RecordLister interface {
	ListRecords(ctx context.Context, tableID string) ([]airtable.Record, error)
}

// DirectoryRepository loads directory data from the remote sources.
// Every call fetches fresh data; nothing is cached. Empty sheets return
// empty slices, not errors.
type DirectoryRepository interface {
	Parishes(ctx context.Context) ([]models.Parish, error)
	BECs(ctx context.Context) ([]models.BEC, error)
	Schools(ctx context.Context) ([]models.School, error)

	// Ministries falls back to the legacy sheet name once when the current
	// name is rejected with a 400.
	Ministries(ctx context.Context) ([]models.Ministry, error)

	Corporations(ctx context.Context) ([]models.Corporation, error)
	Congregations(ctx context.Context) ([]models.Congregation, error)
	DclaimGroups(ctx context.Context) ([]models.DclaimGroup, error)
	Priests(ctx context.Context) ([]models.Priest, error)
	Sponsors(ctx context.Context) ([]models.Sponsor, error)
	Videos(ctx context.Context) ([]models.Video, error)
}

// Options selects where parishes are read from.
type Options struct {
	ParishSource  string
	ParishTableID string
}

// directoryRepository is the concrete implementation of DirectoryRepository.
type directoryRepository struct {
	sheets  sheets.Fetcher
	records RecordLister
	opts    Options
	log     *logger.Logger
}

// NewDirectoryRepository creates a new instance of DirectoryRepository.
// records may be nil when parishes come from the spreadsheet.
func NewDirectoryRepository(fetcher sheets.Fetcher, records RecordLister, opts Options, log *logger.Logger) DirectoryRepository {
	if opts.ParishSource == "" {
		opts.ParishSource = config.ParishSourceSheets
	}
	return &directoryRepository{
		sheets:  fetcher,
		records: records,
		opts:    opts,
		log:     log.Component("repository"),
	}
}

func (r *directoryRepository) Parishes(ctx context.Context) ([]models.Parish, error) {
	if r.opts.ParishSource == config.ParishSourceAirtable {
		if r.records == nil {
			return nil, fmt.Errorf("parish source %q selected without a record client", r.opts.ParishSource)
		}
		records, err := r.records.ListRecords(ctx, r.opts.ParishTableID)
		if err != nil {
			return nil, fmt.Errorf("failed to list parish records: %w", err)
		}
		return normalize.ParishesFromRecords(records), nil
	}
	return load(ctx, r, RangeParishes, normalize.Parishes)
}

func (r *directoryRepository) BECs(ctx context.Context) ([]models.BEC, error) {
	return load(ctx, r, RangeBECs, normalize.BECs)
}

func (r *directoryRepository) Schools(ctx context.Context) ([]models.School, error) {
	return load(ctx, r, RangeSchools, normalize.Schools)
}

func (r *directoryRepository) Ministries(ctx context.Context) ([]models.Ministry, error) {
	grid, err := r.sheets.FetchRange(ctx, RangeMinistries)
	if upstream.IsClientError(err) {
		r.log.Warn("Ministry range rejected, retrying legacy sheet name", map[string]interface{}{
			"range":    RangeMinistries,
			"fallback": RangeMinistriesLegacy,
		})
		grid, err = r.sheets.FetchRange(ctx, RangeMinistriesLegacy)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch ministries: %w", err)
	}
	return normalize.Ministries(grid), nil
}

func (r *directoryRepository) Corporations(ctx context.Context) ([]models.Corporation, error) {
	return load(ctx, r, RangeCorporations, normalize.Corporations)
}

func (r *directoryRepository) Congregations(ctx context.Context) ([]models.Congregation, error) {
	return load(ctx, r, RangeCongregations, normalize.Congregations)
}

func (r *directoryRepository) DclaimGroups(ctx context.Context) ([]models.DclaimGroup, error) {
	return load(ctx, r, RangeDclaim, normalize.DclaimGroups)
}

func (r *directoryRepository) Priests(ctx context.Context) ([]models.Priest, error) {
	return load(ctx, r, RangePriests, clergy.Segment)
}

func (r *directoryRepository) Sponsors(ctx context.Context) ([]models.Sponsor, error) {
	return load(ctx, r, RangeSponsors, normalize.Sponsors)
}

func (r *directoryRepository) Videos(ctx context.Context) ([]models.Video, error) {
	return load(ctx, r, RangeVideos, normalize.Videos)
}

// load fetches one range and normalizes it.
func load[T any](ctx context.Context, r *directoryRepository, rangeExpr string, normalizeFn func(sheets.Grid) []T) ([]T, error) {
	grid, err := r.sheets.FetchRange(ctx, rangeExpr)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch range %s: %w", rangeExpr, err)
	}
	items := normalizeFn(grid)
	r.log.Debug("Loaded range", map[string]interface{}{
		"range": rangeExpr,
		"rows":  len(grid),
		"items": len(items),
	})
	return items, nil
}
