// AngelaMos | 2026
// handler.go

package importer

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gborh1/CRM-real-estate/internal/core"
	"github.com/gborh1/CRM-real-estate/internal/middleware"
)

const (
	SignatureHeader = "Typeform-Signature"
	maxPayloadBytes = 1 << 20
)

type Handler struct {
	pipeline *Pipeline
	secret   string
	logger   *slog.Logger
}

// NewHandler serves the form webhook. An empty secret disables signature
// checks.
func NewHandler(pipeline *Pipeline, secret string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		pipeline: pipeline,
		secret:   secret,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	limiter func(http.Handler) http.Handler,
) {
	r.With(limiter).Post("/webhooks", h.Receive)
}

type ackResponse struct {
	EventID  string `json:"event_id,omitempty"`
	Received bool   `json:"received"`
}

// Receive acknowledges every well-formed delivery with 200. Import failures
// are logged rather than returned so the sender does not retry into a
// duplicate import.
func (h *Handler) Receive(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxPayloadBytes))
	if err != nil {
		core.BadRequest(w, "unreadable request body")
		return
	}

	if h.secret != "" && !core.VerifySignature(body, r.Header.Get(SignatureHeader), h.secret) {
		core.Unauthorized(w, "invalid webhook signature")
		return
	}

	var delivery Delivery
	if err := json.Unmarshal(body, &delivery); err != nil {
		core.BadRequest(w, "invalid webhook payload")
		return
	}

	logger := h.logger.With(
		"event_id", delivery.EventID,
		"request_id", middleware.GetRequestID(r.Context()),
	)

	ctx := context.WithoutCancel(r.Context())
	report, err := h.pipeline.Run(ctx, delivery.FormResponse.Answers)
	if err != nil {
		logger.ErrorContext(ctx, "webhook import failed", "error", err)
	} else {
		logger.InfoContext(ctx, "webhook processed",
			"matched", report.Matched,
			"user_id", report.UserID,
			"contacts_created", report.ContactsCreated,
			"warnings", report.Warnings,
		)
	}

	core.OK(w, ackResponse{EventID: delivery.EventID, Received: true})
}
