// AngelaMos | 2026
// handler.go

package contact

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/gborh1/CRM-real-estate/internal/core"
	"github.com/gborh1/CRM-real-estate/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/contacts", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequirePaid)

		r.Get("/search", h.Search)
		r.Get("/tags", h.ListTags)
		r.Post("/", h.Create)
		r.Get("/{contactID}", h.Get)
		r.Put("/{contactID}", h.Update)
		r.Delete("/{contactID}", h.Delete)
		r.Post("/{contactID}/tags", h.AddTag)
		r.Delete("/{contactID}/tags/{tagID}", h.RemoveTag)
	})
}

// Search serves the contact directory. contact_id names the owning user and
// defaults to the caller; only admins may read another user's directory.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	callerID := middleware.GetUserID(r.Context())

	ownerID := r.URL.Query().Get("contact_id")
	if ownerID == "" {
		ownerID = callerID
	}
	if ownerID != callerID && !middleware.IsAdmin(r.Context()) {
		core.Forbidden(w, "cannot view another user's contacts")
		return
	}

	records, err := h.service.Search(r.Context(), ownerID, r.URL.Query().Get("search"))
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, SearchResponse{Contacts: records})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if !h.decode(w, r, &req) {
		return
	}

	rec, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, rec)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Get(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "contactID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, rec)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if !h.decode(w, r, &req) {
		return
	}

	rec, err := h.service.Update(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "contactID"),
		req,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, rec)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Delete(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "contactID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.ListTags(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, tags)
}

func (h *Handler) AddTag(w http.ResponseWriter, r *http.Request) {
	var req AddTagRequest
	if !h.decode(w, r, &req) {
		return
	}

	tag, err := h.service.AddTag(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "contactID"),
		req.Name,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, tag)
}

func (h *Handler) RemoveTag(w http.ResponseWriter, r *http.Request) {
	err := h.service.RemoveTag(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "contactID"),
		chi.URLParam(r, "tagID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		core.BadRequest(w, "invalid request body")
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return false
	}

	return true
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, err.Error())
	case errors.Is(err, core.ErrForbidden):
		core.Forbidden(w, "contact does not belong to you")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "contact")
	default:
		core.InternalServerError(w, err)
	}
}
