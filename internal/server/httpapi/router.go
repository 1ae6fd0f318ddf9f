// Package httpapi exposes the site's JSON API and static files over HTTP.
package httpapi

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/labsite/internal/common"
	"github.com/dmitrijs2005/labsite/internal/logging"
	"github.com/dmitrijs2005/labsite/internal/server/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Deps are the collaborators the router needs. Uploads may be nil when
// object storage is not configured; the route then answers 503.
type Deps struct {
	Accounts      AccountService
	HomePage      HomePageService
	Publications  PublicationService
	People        PersonService
	News          NewsService
	ResearchAreas ResearchAreaService
	Uploads       UploadService
	DB            Pinger
	Logger        logging.Logger
	StaticDir     string
	CORSOrigins   []string
	MaxBodyBytes  int64
}

// NewRouter builds the full route tree: /api, /healthz and the static site.
func NewRouter(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = logging.Discard()
	}
	if d.MaxBodyBytes <= 0 {
		d.MaxBodyBytes = 50 << 20
	}
	if d.Uploads == nil {
		d.Uploads = disabledUploads{}
	}

	h := &Handler{
		accounts:      d.Accounts,
		homePage:      d.HomePage,
		publications:  d.Publications,
		people:        d.People,
		news:          d.News,
		researchAreas: d.ResearchAreas,
		uploads:       d.Uploads,
		db:            d.DB,
		logger:        d.Logger.With("module", "http"),
		maxBodyBytes:  d.MaxBodyBytes,
	}

	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))

	gate := Authenticate(d.Accounts, h.logger)

	r.Route(common.APIPrefix, func(r chi.Router) {
		r.Post("/auth/login", h.login)
		r.With(gate).Get("/auth/verify", h.verify)

		r.Get("/homepage", h.getHomePage)
		r.With(gate).Put("/homepage", h.updateHomePage)

		r.Get("/publications", listHandler(h, h.publications.List, publicationMsgs))
		r.With(gate).Post("/publications", createHandler(h, h.publications.Create, publicationMsgs))
		r.With(gate).Delete("/publications/{id}", deleteHandler(h, h.publications.Delete, publicationMsgs))

		r.Get("/people", listHandler(h, h.people.List, personMsgs))
		r.With(gate).Post("/people", createHandler(h, h.people.Create, personMsgs))
		r.With(gate).Delete("/people/{id}", deleteHandler(h, h.people.Delete, personMsgs))

		r.Get("/news", listHandler(h, h.news.List, newsMsgs))
		r.Get("/news/latest", listHandler(h, h.news.Latest, newsMsgs))
		r.With(gate).Post("/news", createHandler(h, h.news.Create, newsMsgs))
		r.With(gate).Delete("/news/{id}", deleteHandler(h, h.news.Delete, newsMsgs))

		r.Get("/research-areas", listHandler(h, h.researchAreas.List, areaMsgs))
		r.With(gate).Post("/research-areas", createHandler(h, h.researchAreas.Create, areaMsgs))
		r.With(gate).Delete("/research-areas/{id}", deleteHandler(h, h.researchAreas.Delete, areaMsgs))

		r.With(gate).Post("/uploads", h.presignUpload)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusNotFound, "Not found")
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		})
	})

	r.Get("/healthz", h.healthz)

	if d.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(d.StaticDir)))
	}

	return r
}

type disabledUploads struct{}

func (disabledUploads) Presign(context.Context, services.UploadInput) (*services.UploadTicket, error) {
	return nil, common.ErrUploadsDisabled
}
