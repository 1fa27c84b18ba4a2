package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tagumdiocese/directory/internal/engagement"
	"github.com/tagumdiocese/directory/internal/logger"
	"github.com/tagumdiocese/directory/internal/models"
	"github.com/tagumdiocese/directory/internal/repository"
	"github.com/tagumdiocese/directory/internal/search"
)

// EngagementSnapshot is a session's trigger state as seen by a client.
type EngagementSnapshot struct {
	Trigger      string           `json:"trigger"`
	State        engagement.State `json:"state"`
	Sponsor      *models.Sponsor  `json:"sponsor,omitempty"`
	Video        *models.Video    `json:"video,omitempty"`
	SponsorCount int              `json:"sponsorCount"`
	VideoCount   int              `json:"videoCount"`
}

// EngagementService drives the tap counter for each client session.
type EngagementService interface {
	// Tap counts one tap. The first tap creates the session and loads its
	// sponsor and video lists; a list that fails to load stays empty.
	Tap(ctx context.Context, sessionID string) (*EngagementSnapshot, error)

	// Snapshot and the dismiss calls never create a session or fetch media.
	// An unknown session reads as a fresh one with no media.
	Snapshot(ctx context.Context, sessionID string) (*EngagementSnapshot, error)
	DismissSponsor(ctx context.Context, sessionID string) (*EngagementSnapshot, error)
	DismissVideo(ctx context.Context, sessionID string) (*EngagementSnapshot, error)
}

// engagementService is the concrete implementation of EngagementService.
type engagementService struct {
	repo  repository.DirectoryRepository
	store *engagement.Store
	log   *logger.Logger
}

// NewEngagementService creates a new instance of EngagementService.
func NewEngagementService(repo repository.DirectoryRepository, store *engagement.Store, log *logger.Logger) EngagementService {
	return &engagementService{
		repo:  repo,
		store: store,
		log:   log,
	}
}

func (s *engagementService) Tap(ctx context.Context, sessionID string) (*EngagementSnapshot, error) {
	s.ensure(ctx, sessionID)
	sess, trigger := s.store.Tap(sessionID)
	if trigger != engagement.TriggerNone {
		s.log.Debug("Engagement trigger fired", map[string]interface{}{
			"session":   sessionID,
			"trigger":   trigger.String(),
			"tap_count": sess.State.TapCount,
		})
	}
	return snapshot(sess, trigger), nil
}

func (s *engagementService) Snapshot(_ context.Context, sessionID string) (*EngagementSnapshot, error) {
	return snapshot(s.store.Snapshot(sessionID), engagement.TriggerNone), nil
}

func (s *engagementService) DismissSponsor(_ context.Context, sessionID string) (*EngagementSnapshot, error) {
	return snapshot(s.store.DismissSponsor(sessionID), engagement.TriggerNone), nil
}

func (s *engagementService) DismissVideo(_ context.Context, sessionID string) (*EngagementSnapshot, error) {
	return snapshot(s.store.DismissVideo(sessionID), engagement.TriggerNone), nil
}

func (s *engagementService) ensure(ctx context.Context, sessionID string) {
	if s.store.Has(sessionID) {
		return
	}
	s.store.Ensure(sessionID, func() engagement.Media {
		return s.loadMedia(ctx)
	})
}

func (s *engagementService) loadMedia(ctx context.Context) engagement.Media {
	var (
		sponsors search.Soft[models.Sponsor]
		videos   search.Soft[models.Video]
		g        errgroup.Group
	)
	g.Go(func() error {
		items, err := s.repo.Sponsors(ctx)
		sponsors = search.Settle(items, err)
		return nil
	})
	g.Go(func() error {
		items, err := s.repo.Videos(ctx)
		videos = search.Settle(items, err)
		return nil
	})
	_ = g.Wait()

	if sponsors.Failed() {
		s.log.Warn("Sponsor images unavailable", map[string]interface{}{"error": sponsors.Err.Error()})
	}
	if videos.Failed() {
		s.log.Warn("Videos unavailable", map[string]interface{}{"error": videos.Err.Error()})
	}
	return engagement.Media{Sponsors: sponsors.Items, Videos: videos.Items}
}

func snapshot(sess engagement.Session, trigger engagement.Trigger) *EngagementSnapshot {
	return &EngagementSnapshot{
		Trigger:      trigger.String(),
		State:        sess.State,
		Sponsor:      sess.CurrentSponsor(),
		Video:        sess.CurrentVideo(),
		SponsorCount: len(sess.Media.Sponsors),
		VideoCount:   len(sess.Media.Videos),
	}
}
