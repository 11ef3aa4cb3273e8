package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/example/arena-booking/internal/application"
)

type resourceService interface {
	ListResources(ctx context.Context, principal application.Principal) ([]application.Resource, error)
}

// ResourceHandler serves the resource listing.
type ResourceHandler struct {
	service   resourceService
	responder responder
}

// NewResourceHandler creates a resource handler.
func NewResourceHandler(service resourceService, logger *slog.Logger) *ResourceHandler {
	return &ResourceHandler{service: service, responder: newResponder(logger)}
}

// List enumerates the resources visible to the principal.
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	principal, _ := PrincipalFromContext(r.Context())

	resources, err := h.service.ListResources(r.Context(), principal)
	if err != nil {
		h.responder.handleServiceError(r.Context(), w, err)
		return
	}

	responses := make([]resourceResponse, 0, len(resources))
	for _, resource := range resources {
		responses = append(responses, newResourceResponse(resource))
	}
	h.responder.writeJSON(r.Context(), w, http.StatusOK, responses)
}
