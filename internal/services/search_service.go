package services

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/tagumdiocese/directory/internal/logger"
	"github.com/tagumdiocese/directory/internal/repository"
	"github.com/tagumdiocese/directory/internal/search"
	"github.com/tagumdiocese/directory/internal/upstream"
)

// SearchService runs the global search.
type SearchService interface {
	// Preload fetches the six searchable sources concurrently. A source
	// that fails is logged and left empty; Preload itself never fails.
	Preload(ctx context.Context) search.Corpus

	// Search preloads and matches query. A blank query returns no results
	// without fetching anything.
	Search(ctx context.Context, query string) ([]search.Result, error)
}

// searchService is the concrete implementation of SearchService.
type searchService struct {
	repo repository.DirectoryRepository
	log  *logger.Logger
}

// NewSearchService creates a new instance of SearchService.
func NewSearchService(repo repository.DirectoryRepository, log *logger.Logger) SearchService {
	return &searchService{
		repo: repo,
		log:  log,
	}
}

func (s *searchService) Preload(ctx context.Context) search.Corpus {
	var (
		c search.Corpus
		g errgroup.Group
	)

	g.Go(func() error {
		c.Parishes = settle(ctx, s, "parishes", s.repo.Parishes)
		return nil
	})
	g.Go(func() error {
		c.BECs = settle(ctx, s, "becs", s.repo.BECs)
		return nil
	})
	g.Go(func() error {
		c.Schools = settle(ctx, s, "schools", s.repo.Schools)
		return nil
	})
	g.Go(func() error {
		c.Congregations = settle(ctx, s, "congregations", s.repo.Congregations)
		return nil
	})
	g.Go(func() error {
		c.Corporations = settle(ctx, s, "corporations", s.repo.Corporations)
		return nil
	})
	g.Go(func() error {
		c.DclaimGroups = settle(ctx, s, "dclaim", s.repo.DclaimGroups)
		return nil
	})

	// Every goroutine returns nil; failures live in the Soft values.
	_ = g.Wait()
	return c
}

func (s *searchService) Search(ctx context.Context, query string) ([]search.Result, error) {
	if strings.TrimSpace(query) == "" {
		return []search.Result{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	corpus := s.Preload(ctx)
	results := search.Search(query, corpus)

	s.log.Info("Search completed", map[string]interface{}{
		"query":   query,
		"results": len(results),
	})
	return results, nil
}

func settle[T any](ctx context.Context, s *searchService, source string, load func(context.Context) ([]T, error)) search.Soft[T] {
	items, err := load(ctx)
	soft := search.Settle(items, err)
	if soft.Failed() {
		s.log.Warn("Search source unavailable", map[string]interface{}{
			"source":       source,
			"error":        soft.Err.Error(),
			"unconfigured": upstream.IsConfigurationError(soft.Err),
		})
	}
	return soft
}
