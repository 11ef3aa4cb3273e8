package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/example/arena-booking/internal/application"
)

type calendarService interface {
	ListDay(ctx context.Context, principal application.Principal, day time.Time) ([]application.SessionView, error)
}

// CalendarHandler serves the day view.
type CalendarHandler struct {
	service   calendarService
	responder responder
}

// NewCalendarHandler creates a calendar handler.
func NewCalendarHandler(service calendarService, logger *slog.Logger) *CalendarHandler {
	return &CalendarHandler{service: service, responder: newResponder(logger)}
}

// Day lists the sessions starting on the requested date.
func (h *CalendarHandler) Day(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	day, err := time.Parse("2006-01-02", r.URL.Query().Get("date"))
	if err != nil {
		h.responder.writeError(r.Context(), w, http.StatusBadRequest, errInvalidDate)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	views, err := h.service.ListDay(r.Context(), principal, day)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	h.responder.writeJSON(r.Context(), w, http.StatusOK, newSessionResponses(views))
}
