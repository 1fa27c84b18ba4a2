package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"

	"github.com/tagumdiocese/directory/internal/clergy"
	"github.com/tagumdiocese/directory/internal/logger"
	"github.com/tagumdiocese/directory/internal/models"
	"github.com/tagumdiocese/directory/internal/normalize"
	"github.com/tagumdiocese/directory/internal/repository"
	"github.com/tagumdiocese/directory/internal/search"
)

// Service-level errors
var (
	ErrPositionOutOfRange  = errors.New("no entry at that position")
	ErrLocationUnavailable = errors.New("location not available")
)

// ParishDetail is a parish with its priest cell parsed into entries.
type ParishDetail struct {
	models.Parish
	Priests []models.ParishPriestEntry `json:"priests"`
}

// DirectoryService serves the directory lists and detail records.
// Positions are indexes into the unfiltered list as fetched.
type DirectoryService interface {
	// ListParishes returns parishes whose name contains query. A blank
	// query returns the full list.
	ListParishes(ctx context.Context, query string) ([]models.Parish, error)
	GetParish(ctx context.Context, position int) (*ParishDetail, error)

	// ListBECs filters on BEC name or parish.
	ListBECs(ctx context.Context, query string) ([]models.BEC, error)
	GetBEC(ctx context.Context, position int) (*models.BEC, error)

	ListSchools(ctx context.Context) ([]models.School, error)
	GetSchool(ctx context.Context, position int) (*models.School, error)
	ListMinistries(ctx context.Context) ([]models.Ministry, error)
	GetMinistry(ctx context.Context, position int) (*models.Ministry, error)
	ListCorporations(ctx context.Context) ([]models.Corporation, error)
	GetCorporation(ctx context.Context, position int) (*models.Corporation, error)
	ListCongregations(ctx context.Context) ([]models.Congregation, error)
	GetCongregation(ctx context.Context, position int) (*models.Congregation, error)
	ListDclaimGroups(ctx context.Context) ([]models.DclaimGroup, error)
	GetDclaimGroup(ctx context.Context, position int) (*models.DclaimGroup, error)

	// ListVicariates groups parishes by vicariate, sorted by name. Parishes
	// without a vicariate are left out.
	ListVicariates(ctx context.Context) ([]models.Vicariate, error)

	// ListPriests returns the clergy roster grouped by category in sheet order.
	ListPriests(ctx context.Context) ([]models.CategoryGroup, error)

	// Directions returns a driving-directions link for a parish.
	// Returns ErrLocationUnavailable when the parish has no location.
	Directions(ctx context.Context, position int) (string, error)
}

// directoryService is the concrete implementation of DirectoryService.
type directoryService struct {
	repo repository.DirectoryRepository
	log  *logger.Logger
}

// NewDirectoryService creates a new instance of DirectoryService.
func NewDirectoryService(repo repository.DirectoryRepository, log *logger.Logger) DirectoryService {
	return &directoryService{
		repo: repo,
		log:  log,
	}
}

func (s *directoryService) ListParishes(ctx context.Context, query string) ([]models.Parish, error) {
	parishes, err := s.repo.Parishes(ctx)
	if err != nil {
		s.log.Error("Failed to load parishes", err, nil)
		return nil, fmt.Errorf("failed to load parishes: %w", err)
	}
	return search.FilterParishes(query, parishes), nil
}

func (s *directoryService) GetParish(ctx context.Context, position int) (*ParishDetail, error) {
	parishes, err := s.repo.Parishes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load parishes: %w", err)
	}
	parish, err := at(parishes, position)
	if err != nil {
		return nil, err
	}
	return &ParishDetail{
		Parish:  *parish,
		Priests: normalize.ParishPriests(parish.ParishPriest),
	}, nil
}

func (s *directoryService) ListBECs(ctx context.Context, query string) ([]models.BEC, error) {
	becs, err := s.repo.BECs(ctx)
	if err != nil {
		s.log.Error("Failed to load BECs", err, nil)
		return nil, fmt.Errorf("failed to load BECs: %w", err)
	}
	return search.FilterBECs(query, becs), nil
}

func (s *directoryService) GetBEC(ctx context.Context, position int) (*models.BEC, error) {
	return get(ctx, s.repo.BECs, position)
}

func (s *directoryService) ListSchools(ctx context.Context) ([]models.School, error) {
	return list(ctx, s, "schools", s.repo.Schools)
}

func (s *directoryService) GetSchool(ctx context.Context, position int) (*models.School, error) {
	return get(ctx, s.repo.Schools, position)
}

func (s *directoryService) ListMinistries(ctx context.Context) ([]models.Ministry, error) {
	return list(ctx, s, "ministries", s.repo.Ministries)
}

func (s *directoryService) GetMinistry(ctx context.Context, position int) (*models.Ministry, error) {
	return get(ctx, s.repo.Ministries, position)
}

func (s *directoryService) ListCorporations(ctx context.Context) ([]models.Corporation, error) {
	return list(ctx, s, "corporations", s.repo.Corporations)
}

func (s *directoryService) GetCorporation(ctx context.Context, position int) (*models.Corporation, error) {
	return get(ctx, s.repo.Corporations, position)
}

func (s *directoryService) ListCongregations(ctx context.Context) ([]models.Congregation, error) {
	return list(ctx, s, "congregations", s.repo.Congregations)
}

func (s *directoryService) GetCongregation(ctx context.Context, position int) (*models.Congregation, error) {
	return get(ctx, s.repo.Congregations, position)
}

func (s *directoryService) ListDclaimGroups(ctx context.Context) ([]models.DclaimGroup, error) {
	return list(ctx, s, "dclaim groups", s.repo.DclaimGroups)
}

func (s *directoryService) GetDclaimGroup(ctx context.Context, position int) (*models.DclaimGroup, error) {
	return get(ctx, s.repo.DclaimGroups, position)
}

func (s *directoryService) ListVicariates(ctx context.Context) ([]models.Vicariate, error) {
	parishes, err := s.repo.Parishes(ctx)
	if err != nil {
		s.log.Error("Failed to load parishes for vicariates", err, nil)
		return nil, fmt.Errorf("failed to load parishes: %w", err)
	}
	return GroupVicariates(parishes), nil
}

func (s *directoryService) ListPriests(ctx context.Context) ([]models.CategoryGroup, error) {
	priests, err := s.repo.Priests(ctx)
	if err != nil {
		s.log.Error("Failed to load priests", err, nil)
		return nil, fmt.Errorf("failed to load priests: %w", err)
	}
	groups := clergy.GroupByCategory(priests)
	s.log.Debug("Priests grouped", map[string]interface{}{
		"priests":    len(priests),
		"categories": len(groups),
	})
	return groups, nil
}

func (s *directoryService) Directions(ctx context.Context, position int) (string, error) {
	parishes, err := s.repo.Parishes(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load parishes: %w", err)
	}
	parish, err := at(parishes, position)
	if err != nil {
		return "", err
	}
	link, err := DirectionsURL(*parish)
	if err != nil {
		s.log.Debug("Directions requested for parish without location", map[string]interface{}{
			"parish": parish.Name,
		})
		return "", err
	}
	return link, nil
}

// GroupVicariates groups parishes by vicariate name and sorts the groups by
// name. Parish order inside a group follows the input.
func GroupVicariates(parishes []models.Parish) []models.Vicariate {
	index := make(map[string]int)
	vicariates := []models.Vicariate{}
	for _, p := range parishes {
		if !models.Available(p.Vicariate) {
			continue
		}
		i, ok := index[p.Vicariate]
		if !ok {
			i = len(vicariates)
			index[p.Vicariate] = i
			vicariates = append(vicariates, models.Vicariate{Name: p.Vicariate})
		}
		vicariates[i].Parishes = append(vicariates[i].Parishes, p)
	}
	sort.SliceStable(vicariates, func(a, b int) bool {
		return vicariates[a].Name < vicariates[b].Name
	})
	return vicariates
}

// DirectionsURL builds a maps link that routes from the user's current
// location to "<name>, <location>".
func DirectionsURL(p models.Parish) (string, error) {
	if !models.Available(p.Location) {
		return "", fmt.Errorf("%w: %s", ErrLocationUnavailable, p.Name)
	}
	u := url.URL{
		Scheme: "https",
		Host:   "www.google.com",
		Path:   "/maps/dir/",
		RawQuery: url.Values{
			"api":         {"1"},
			"destination": {p.Name + ", " + p.Location},
			"travelmode":  {"driving"},
		}.Encode(),
	}
	return u.String(), nil
}

func list[T any](ctx context.Context, s *directoryService, name string, load func(context.Context) ([]T, error)) ([]T, error) {
	items, err := load(ctx)
	if err != nil {
		s.log.Error("Failed to load "+name, err, nil)
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return items, nil
}

func get[T any](ctx context.Context, load func(context.Context) ([]T, error), position int) (*T, error) {
	items, err := load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	return at(items, position)
}

func at[T any](items []T, position int) (*T, error) {
	if position < 0 || position >= len(items) {
		return nil, fmt.Errorf("%w: %d of %d", ErrPositionOutOfRange, position, len(items))
	}
	item := items[position]
	return &item, nil
}
