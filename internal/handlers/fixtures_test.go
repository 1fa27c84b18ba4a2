package handlers

import (
	"context"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/tagumdiocese/directory/internal/engagement"
	"github.com/tagumdiocese/directory/internal/logger"
	"github.com/tagumdiocese/directory/internal/middleware"
	"github.com/tagumdiocese/directory/internal/models"
	"github.com/tagumdiocese/directory/internal/services"
)

// fakeRepository serves fixed lists. err, when set, is returned by every
// method; errs overrides it per method name.
type fakeRepository struct {
	mu            sync.Mutex
	calls         map[string]int
	err           error
	errs          map[string]error
	parishes      []models.Parish
	becs          []models.BEC
	schools       []models.School
	ministries    []models.Ministry
	corporations  []models.Corporation
	congregations []models.Congregation
	dclaim        []models.DclaimGroup
	priests       []models.Priest
	sponsors      []models.Sponsor
	videos        []models.Video
}

func (f *fakeRepository) fail(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[name]++
	if err, ok := f.errs[name]; ok {
		return err
	}
	return f.err
}

func (f *fakeRepository) called(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeRepository) Parishes(context.Context) ([]models.Parish, error) {
	return f.parishes, f.fail("Parishes")
}

func (f *fakeRepository) BECs(context.Context) ([]models.BEC, error) {
	return f.becs, f.fail("BECs")
}

func (f *fakeRepository) Schools(context.Context) ([]models.School, error) {
	return f.schools, f.fail("Schools")
}

func (f *fakeRepository) Ministries(context.Context) ([]models.Ministry, error) {
	return f.ministries, f.fail("Ministries")
}

func (f *fakeRepository) Corporations(context.Context) ([]models.Corporation, error) {
	return f.corporations, f.fail("Corporations")
}

func (f *fakeRepository) Congregations(context.Context) ([]models.Congregation, error) {
	return f.congregations, f.fail("Congregations")
}

func (f *fakeRepository) DclaimGroups(context.Context) ([]models.DclaimGroup, error) {
	return f.dclaim, f.fail("DclaimGroups")
}

func (f *fakeRepository) Priests(context.Context) ([]models.Priest, error) {
	return f.priests, f.fail("Priests")
}

func (f *fakeRepository) Sponsors(context.Context) ([]models.Sponsor, error) {
	return f.sponsors, f.fail("Sponsors")
}

func (f *fakeRepository) Videos(context.Context) ([]models.Video, error) {
	return f.videos, f.fail("Videos")
}

// zeroRand always draws 0.
type zeroRand struct{}

func (zeroRand) IntN(int) int { return 0 }

func directoryFixture() *fakeRepository {
	return &fakeRepository{
		parishes: []models.Parish{
			{Name: "St. Joseph", Vicariate: "Vicariate of Mary", Location: "Tagum City", ParishPriest: "Rev. Fr. A\nParish Priest\nSt. Joseph\nTagum"},
			{Name: "Holy Child", Vicariate: "Vicariate of Joseph", Location: models.NotAvailable, ParishPriest: models.NotAvailable},
			{Name: "San Roque", Vicariate: "Vicariate of Mary", Location: "Mawab"},
		},
		becs: []models.BEC{
			{Name: "GKK San Isidro", Parish: "St. Joseph", Location: "Purok 1"},
			{Name: "GKK Sto. Nino", Parish: "Holy Child", Location: "Purok 2"},
		},
		schools:       []models.School{{Name: "Holy Cross of Tagum", Location: "Tagum City"}},
		ministries:    []models.Ministry{{Name: "Youth Ministry", Coordinator: "Sr. B"}},
		corporations:  []models.Corporation{{Name: "Diocesan Foundation", Address: "Apokon"}},
		congregations: []models.Congregation{{Name: "Sisters of Mercy", Address: "Mawab"}},
		dclaim:        []models.DclaimGroup{{Name: "Couples for Christ", Description: "Family renewal"}},
		priests: []models.Priest{
			{Name: "Rev. Fr. A", Category: "Vicariate of Mary"},
			{Name: "Rev. Fr. B", Category: "Retired Priests"},
		},
		sponsors: []models.Sponsor{{ImageURL: "https://drive.google.com/uc?export=view&id=abc"}},
		videos:   []models.Video{{VideoURL: "https://youtu.be/xyz", EmbedURL: "https://www.youtube.com/embed/xyz"}},
	}
}

// newTestServer wires the real services over repo and registers every
// route the way the server does.
func newTestServer(repo *fakeRepository) *gin.Engine {
	return newTestServerWithStore(repo, engagement.NewStore(zeroRand{}))
}

func newTestServerWithStore(repo *fakeRepository, store *engagement.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.Nop()

	directory := NewDirectoryHandler(services.NewDirectoryService(repo, log))
	searchHandler := NewSearchHandler(services.NewSearchService(repo, log))
	engagementHandler := NewEngagementHandler(services.NewEngagementService(repo, store, log))
	video := NewVideoHandler()

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.Session(), middleware.Logger(log), middleware.Recovery(log))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/parishes", directory.ListParishes)
		v1.GET("/parishes/:position", directory.GetParish)
		v1.GET("/parishes/:position/directions", directory.Directions)
		v1.GET("/becs", directory.ListBECs)
		v1.GET("/becs/:position", directory.GetBEC)
		v1.GET("/schools", directory.ListSchools)
		v1.GET("/schools/:position", directory.GetSchool)
		v1.GET("/ministries", directory.ListMinistries)
		v1.GET("/ministries/:position", directory.GetMinistry)
		v1.GET("/corporations", directory.ListCorporations)
		v1.GET("/corporations/:position", directory.GetCorporation)
		v1.GET("/congregations", directory.ListCongregations)
		v1.GET("/congregations/:position", directory.GetCongregation)
		v1.GET("/dclaim", directory.ListDclaimGroups)
		v1.GET("/dclaim/:position", directory.GetDclaimGroup)
		v1.GET("/vicariates", directory.ListVicariates)
		v1.GET("/priests", directory.ListPriests)
		v1.GET("/search", searchHandler.Search)

		v1.GET("/engagement", engagementHandler.Snapshot)
		v1.POST("/engagement/taps", engagementHandler.Tap)
		v1.DELETE("/engagement/sponsor", engagementHandler.DismissSponsor)
		v1.DELETE("/engagement/video", engagementHandler.DismissVideo)

		v1.GET("/videos/embed", video.Embed)
	}

	return router
}
