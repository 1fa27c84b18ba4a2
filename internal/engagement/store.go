package engagement

import (
	"container/list"
	"math/rand/v2"
	"sync"

	"github.com/tagumdiocese/directory/internal/models"
)

// Session is one client's trigger state plus the media it loaded.
type Session struct {
	State State `json:"state"`
	Media Media `json:"-"`
}

// CurrentSponsor returns the sponsor on screen, if any.
func (s Session) CurrentSponsor() *models.Sponsor {
	if !s.State.SponsorVisible || s.State.SponsorIndex < 0 || s.State.SponsorIndex >= len(s.Media.Sponsors) {
		return nil
	}
	sp := s.Media.Sponsors[s.State.SponsorIndex]
	return &sp
}

// CurrentVideo returns the video on screen, if any.
func (s Session) CurrentVideo() *models.Video {
	if !s.State.VideoVisible || s.State.VideoIndex < 0 || s.State.VideoIndex >= len(s.Media.Videos) {
		return nil
	}
	v := s.Media.Videos[s.State.VideoIndex]
	return &v
}

// DefaultMaxSessions bounds a store built by NewStore.
const DefaultMaxSessions = 10000

// Store holds client sessions in memory. Only Ensure and Tap create a
// session; once more than the store's limit exist, the oldest is evicted.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*list.Element
	order    *list.List // of *entry, oldest first
	limit    int
	rng      Rand
}

type entry struct {
	id      string
	session *Session
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// NewStore creates an empty store holding up to DefaultMaxSessions. A nil
// rng uses the package-level source of math/rand/v2.
func NewStore(rng Rand) *Store {
	return NewStoreWithLimit(rng, DefaultMaxSessions)
}

// NewStoreWithLimit creates an empty store holding up to limit sessions.
// A limit below 1 is treated as 1.
func NewStoreWithLimit(rng Rand, limit int) *Store {
	if rng == nil {
		rng = globalRand{}
	}
	if limit < 1 {
		limit = 1
	}
	return &Store{
		sessions: make(map[string]*list.Element),
		order:    list.New(),
		limit:    limit,
		rng:      rng,
	}
}

// Has reports whether a session exists.
func (s *Store) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	return ok
}

// Ensure creates the session if it is missing, calling load for its media.
// load runs without the lock held; if two callers race, the first stored
// session wins.
func (s *Store) Ensure(id string, load func() Media) Session {
	s.mu.Lock()
	if sess, ok := s.lookupLocked(id); ok {
		s.mu.Unlock()
		return *sess
	}
	s.mu.Unlock()

	m := load()

	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.sessionLocked(id, m)
}

// Tap applies one tap to the session.
func (s *Store) Tap(id string) (Session, Trigger) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.sessionLocked(id, Media{})
	var trigger Trigger
	sess.State, trigger = Tap(sess.State, sess.Media, s.rng)
	return *sess, trigger
}

// Snapshot returns the session. An unknown id yields a fresh session that
// is not stored.
func (s *Store) Snapshot(id string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.lookupLocked(id); ok {
		return *sess
	}
	return Session{State: NewState(s.rng)}
}

// DismissSponsor hides the session's sponsor image. An unknown id is left
// unknown.
func (s *Store) DismissSponsor(id string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.lookupLocked(id)
	if !ok {
		return Session{State: NewState(s.rng)}
	}
	sess.State = DismissSponsor(sess.State)
	return *sess
}

// DismissVideo hides the session's video. An unknown id is left unknown.
func (s *Store) DismissVideo(id string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.lookupLocked(id)
	if !ok {
		return Session{State: NewState(s.rng)}
	}
	sess.State = DismissVideo(sess.State)
	return *sess
}

// Len returns the number of sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Store) lookupLocked(id string) (*Session, bool) {
	el, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	return el.Value.(*entry).session, true
}

// sessionLocked returns the session for id, creating it with m and evicting
// the oldest sessions past the limit.
func (s *Store) sessionLocked(id string, m Media) *Session {
	if sess, ok := s.lookupLocked(id); ok {
		return sess
	}
	sess := &Session{State: NewState(s.rng), Media: m}
	s.sessions[id] = s.order.PushBack(&entry{id: id, session: sess})

	for s.order.Len() > s.limit {
		oldest := s.order.Front()
		s.order.Remove(oldest)
		delete(s.sessions, oldest.Value.(*entry).id)
	}
	return sess
}
