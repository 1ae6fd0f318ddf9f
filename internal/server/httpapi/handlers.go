package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/labsite/internal/common"
	"github.com/dmitrijs2005/labsite/internal/logging"
	"github.com/dmitrijs2005/labsite/internal/server/models"
	"github.com/dmitrijs2005/labsite/internal/server/services"
	"github.com/go-chi/chi/v5"
)

type AccountService interface {
	TokenAuthenticator
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
}

type HomePageService interface {
	Get(ctx context.Context) (*models.HomePage, error)
	Update(ctx context.Context, in services.HomePageInput) (*models.HomePage, error)
}

type PublicationService interface {
	List(ctx context.Context) ([]*models.Publication, error)
	Create(ctx context.Context, in services.PublicationInput) (*models.Publication, error)
	Delete(ctx context.Context, id string) error
}

type PersonService interface {
	List(ctx context.Context) ([]*models.Person, error)
	Create(ctx context.Context, in services.PersonInput) (*models.Person, error)
	Delete(ctx context.Context, id string) error
}

type NewsService interface {
	List(ctx context.Context) ([]*models.NewsItem, error)
	Latest(ctx context.Context) ([]*models.NewsItem, error)
	Create(ctx context.Context, in services.NewsInput) (*models.NewsItem, error)
	Delete(ctx context.Context, id string) error
}

type ResearchAreaService interface {
	List(ctx context.Context) ([]*models.ResearchArea, error)
	Create(ctx context.Context, in services.ResearchAreaInput) (*models.ResearchArea, error)
	Delete(ctx context.Context, id string) error
}

type UploadService interface {
	Presign(ctx context.Context, in services.UploadInput) (*services.UploadTicket, error)
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves the JSON API.
type Handler struct {
	accounts      AccountService
	homePage      HomePageService
	publications  PublicationService
	people        PersonService
	news          NewsService
	researchAreas ResearchAreaService
	uploads       UploadService
	db            Pinger
	logger        logging.Logger
	maxBodyBytes  int64
}

// messages names a resource in user-facing errors.
type messages struct {
	notFound, deleted                string
	fetchFailed, addFailed, delFailed string
}

var (
	publicationMsgs = messages{"Publication not found", "Publication deleted", "Error fetching publications", "Error adding publication", "Error deleting publication"}
	personMsgs      = messages{"Person not found", "Person deleted", "Error fetching people", "Error adding person", "Error deleting person"}
	newsMsgs        = messages{"News not found", "News deleted", "Error fetching news", "Error adding news", "Error deleting news"}
	areaMsgs        = messages{"Research area not found", "Research area deleted", "Error fetching research areas", "Error adding research area", "Error deleting research area"}
)

// fail maps a service error to a response. Validation and not-found
// errors are the caller's fault; anything else is logged and hidden.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, notFound, serverMsg string) {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, services.MsgAllFieldsRequired)
	case errors.Is(err, common.ErrorNotFound) && notFound != "":
		writeError(w, http.StatusNotFound, notFound)
	default:
		h.logger.Error(r.Context(), serverMsg, "error", err, "path", r.URL.Path)
		writeError(w, http.StatusInternalServerError, serverMsg)
	}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := decodeJSON(w, r, h.maxBodyBytes, v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return false
		}
		writeError(w, http.StatusBadRequest, msgInvalidJSON)
		return false
	}
	return true
}

// --- auth ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Success bool               `json:"success"`
	Token   string             `json:"token"`
	Admin   models.AccountView `json:"admin"`
}

type verifyResponse struct {
	Success bool               `json:"success"`
	Admin   models.AccountView `json:"admin"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, &req) {
		return
	}

	res, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.fail(w, r, err, "", "Server error during login")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Success: true, Token: res.Token, Admin: res.Account.View()})
}

func (h *Handler) verify(w http.ResponseWriter, r *http.Request) {
	admin, ok := AdminFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Authentication required")
		return
	}
	writeJSON(w, http.StatusOK, verifyResponse{Success: true, Admin: admin.View()})
}

// --- home page ---

func (h *Handler) getHomePage(w http.ResponseWriter, r *http.Request) {
	hp, err := h.homePage.Get(r.Context())
	if err != nil {
		h.fail(w, r, err, "", "Error fetching home page data")
		return
	}
	writeJSON(w, http.StatusOK, dataBody{Success: true, Data: hp})
}

func (h *Handler) updateHomePage(w http.ResponseWriter, r *http.Request) {
	var in services.HomePageInput
	if !h.decode(w, r, &in) {
		return
	}

	hp, err := h.homePage.Update(r.Context(), in)
	if err != nil {
		h.fail(w, r, err, "", "Error updating home page")
		return
	}
	writeJSON(w, http.StatusOK, dataBody{Success: true, Data: hp})
}

// --- collections ---

func listHandler[T any](h *Handler, list func(context.Context) ([]T, error), msgs messages) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := list(r.Context())
		if err != nil {
			h.fail(w, r, err, "", msgs.fetchFailed)
			return
		}
		if items == nil {
			items = []T{}
		}
		writeJSON(w, http.StatusOK, items)
	}
}

func createHandler[In any, Out any](h *Handler, create func(context.Context, In) (Out, error), msgs messages) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		if !h.decode(w, r, &in) {
			return
		}
		out, err := create(r.Context(), in)
		if err != nil {
			h.fail(w, r, err, "", msgs.addFailed)
			return
		}
		writeJSON(w, http.StatusCreated, out)
	}
}

func deleteHandler(h *Handler, del func(context.Context, string) error, msgs messages) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := del(r.Context(), chi.URLParam(r, "id")); err != nil {
			h.fail(w, r, err, msgs.notFound, msgs.delFailed)
			return
		}
		writeJSON(w, http.StatusOK, ackBody{Success: true, Message: msgs.deleted})
	}
}

// --- uploads ---

type uploadResponse struct {
	Success bool `json:"success"`
	*services.UploadTicket
}

func (h *Handler) presignUpload(w http.ResponseWriter, r *http.Request) {
	var in services.UploadInput
	if !h.decode(w, r, &in) {
		return
	}

	ticket, err := h.uploads.Presign(r.Context(), in)
	if err != nil {
		if errors.Is(err, common.ErrUploadsDisabled) {
			writeError(w, http.StatusServiceUnavailable, "Uploads are not configured")
			return
		}
		h.fail(w, r, err, "", "Error preparing upload")
		return
	}
	writeJSON(w, http.StatusOK, uploadResponse{Success: true, UploadTicket: ticket})
}

// --- health ---

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		h.logger.Warn(r.Context(), "health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}
