// AngelaMos | 2026
// handler.go

package deal

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
	r.Route("/transactions", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequirePaid)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{transactionID}", h.Get)
		r.Put("/{transactionID}", h.Update)
		r.Post("/{transactionID}/stages", h.AddStage)
		r.Post("/stages/{stageID}/tasks", h.AddTask)
		r.Post("/tasks/{taskID}/toggle", h.ToggleTask)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	out := make([]TransactionResponse, 0, len(list))
	for i := range list {
		out = append(out, ToTransactionResponse(&list[i], nil))
	}
	core.OK(w, out)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTransactionRequest
	if !h.decode(w, r, &req) {
		return
	}

	t, err := h.service.Create(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, ToTransactionResponse(t, nil))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	t, stages, err := h.service.Get(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "transactionID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToTransactionResponse(t, stages))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateTransactionRequest
	if !h.decode(w, r, &req) {
		return
	}

	t, err := h.service.Update(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "transactionID"),
		req,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToTransactionResponse(t, nil))
}

func (h *Handler) AddStage(w http.ResponseWriter, r *http.Request) {
	stage, err := h.service.AddStage(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "transactionID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, ToStageResponse(stage))
}

func (h *Handler) AddTask(w http.ResponseWriter, r *http.Request) {
	var req AddTaskRequest
	if !h.decode(w, r, &req) {
		return
	}

	task, err := h.service.AddTask(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "stageID"),
		req,
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.Created(w, ToTaskResponse(task))
}

func (h *Handler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.service.ToggleTask(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "taskID"),
	)
	if err != nil {
		writeError(w, err)
		return
	}

	core.OK(w, ToTaskResponse(task))
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
		core.Forbidden(w, "transaction does not belong to you")
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "transaction")
	default:
		core.InternalServerError(w, err)
	}
}
