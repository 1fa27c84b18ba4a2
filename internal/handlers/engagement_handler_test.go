package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tagumdiocese/directory/internal/engagement"
	"github.com/tagumdiocese/directory/internal/middleware"
	"github.com/tagumdiocese/directory/internal/services"
)

const (
	deviceOne = "0b6f3c9e-1d2a-4c8b-9e7f-5a4d3c2b1a01"
	deviceA   = "0b6f3c9e-1d2a-4c8b-9e7f-5a4d3c2b1a0a"
	deviceB   = "0b6f3c9e-1d2a-4c8b-9e7f-5a4d3c2b1a0b"
)

func call(t *testing.T, router *gin.Engine, method, target, session string) (*httptest.ResponseRecorder, services.EngagementSnapshot) {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if session != "" {
		req.Header.Set(middleware.SessionIDHeader, session)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var snap services.EngagementSnapshot
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	}
	return w, snap
}

func TestEngagement_TapSequence(t *testing.T) {
	router := newTestServer(directoryFixture())

	var snap services.EngagementSnapshot
	for i := 1; i <= 4; i++ {
		_, snap = call(t, router, http.MethodPost, "/api/v1/engagement/taps", deviceOne)
		assert.Equal(t, "none", snap.Trigger)
	}

	w, snap := call(t, router, http.MethodPost, "/api/v1/engagement/taps", deviceOne)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sponsor", snap.Trigger)
	assert.True(t, snap.State.SponsorVisible)
	require.NotNil(t, snap.Sponsor)
	assert.Equal(t, "https://drive.google.com/uc?export=view&id=abc", snap.Sponsor.ImageURL)
	assert.Equal(t, 5, snap.State.TapCount)
}

func TestEngagement_SessionsAreIndependent(t *testing.T) {
	router := newTestServer(directoryFixture())

	for i := 0; i < 3; i++ {
		call(t, router, http.MethodPost, "/api/v1/engagement/taps", deviceA)
	}
	_, a := call(t, router, http.MethodGet, "/api/v1/engagement", deviceA)
	_, b := call(t, router, http.MethodGet, "/api/v1/engagement", deviceB)

	assert.Equal(t, 3, a.State.TapCount)
	assert.Equal(t, 0, b.State.TapCount)
}

func TestEngagement_IssuesSessionWhenMissing(t *testing.T) {
	router := newTestServer(directoryFixture())

	w, snap := call(t, router, http.MethodPost, "/api/v1/engagement/taps", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(middleware.SessionIDHeader))
	assert.Equal(t, 1, snap.State.TapCount)
}

func TestEngagement_Dismiss(t *testing.T) {
	router := newTestServer(directoryFixture())
	for i := 0; i < 15; i++ {
		call(t, router, http.MethodPost, "/api/v1/engagement/taps", deviceOne)
	}

	_, snap := call(t, router, http.MethodGet, "/api/v1/engagement", deviceOne)
	require.True(t, snap.State.VideoVisible)
	require.NotNil(t, snap.Video)
	assert.Equal(t, "https://youtu.be/xyz", snap.Video.VideoURL)

	_, snap = call(t, router, http.MethodDelete, "/api/v1/engagement/video", deviceOne)
	assert.False(t, snap.State.VideoVisible)
	assert.Nil(t, snap.Video)

	_, snap = call(t, router, http.MethodDelete, "/api/v1/engagement/sponsor", deviceOne)
	assert.False(t, snap.State.SponsorVisible)
	assert.Equal(t, 15, snap.State.TapCount)
}

func TestEngagementHandler_RequiresSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewEngagementHandler(nil)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.POST("/api/v1/engagement/taps", handler.Tap)

	w, _ := call(t, router, http.MethodPost, "/api/v1/engagement/taps", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEngagement_RejectsMalformedSession(t *testing.T) {
	repo := directoryFixture()
	router := newTestServer(repo)

	for _, id := range []string{"device-1", strings.Repeat("a", 64)} {
		w, _ := call(t, router, http.MethodPost, "/api/v1/engagement/taps", id)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	assert.Zero(t, repo.called("Sponsors"))
	assert.Zero(t, repo.called("Videos"))
}

func TestEngagement_ReadsDoNotCreateSessions(t *testing.T) {
	repo := directoryFixture()
	store := engagement.NewStore(zeroRand{})
	router := newTestServerWithStore(repo, store)

	for i := 0; i < 50; i++ {
		session := ""
		if i%2 == 1 {
			session = uuid.NewString()
		}
		w, snap := call(t, router, http.MethodGet, "/api/v1/engagement", session)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, snap.State.TapCount)
		assert.Equal(t, 5, snap.State.NextThreshold)
	}
	call(t, router, http.MethodDelete, "/api/v1/engagement/sponsor", uuid.NewString())
	call(t, router, http.MethodDelete, "/api/v1/engagement/video", uuid.NewString())

	assert.Zero(t, store.Len())
	assert.Zero(t, repo.called("Sponsors"))
	assert.Zero(t, repo.called("Videos"))
}

func TestEngagement_TapsLoadMediaOncePerSession(t *testing.T) {
	repo := directoryFixture()
	router := newTestServer(repo)

	for i := 0; i < 3; i++ {
		call(t, router, http.MethodPost, "/api/v1/engagement/taps", deviceOne)
	}

	assert.Equal(t, 1, repo.called("Sponsors"))
	assert.Equal(t, 1, repo.called("Videos"))
}

func TestEngagement_StoreIsBounded(t *testing.T) {
	store := engagement.NewStoreWithLimit(zeroRand{}, 3)
	router := newTestServerWithStore(directoryFixture(), store)

	for i := 0; i < 10; i++ {
		w, _ := call(t, router, http.MethodPost, "/api/v1/engagement/taps", uuid.NewString())
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 3, store.Len())
}
