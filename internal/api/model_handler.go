package api

import (
	"net/http"

	"tenantchat/backend/internal/registry"
)

// ModelHandler exposes the provider registry to the settings UI.
type ModelHandler struct {
	registry *registry.Registry
}

func NewModelHandler(reg *registry.Registry) *ModelHandler {
	return &ModelHandler{registry: reg}
}

// ModelsResponse groups the provider table with the default selection.
type ModelsResponse struct {
	Providers []registry.ProviderEntry `json:"providers"`
	Defaults  registry.Defaults        `json:"defaults"`
}

// HandleListModels godoc
// @Summary      List supported models
// @Description  Returns the provider table with display metadata and the default model selection.
// @Tags         Models
// @Produce      json
// @Success      200  {object}  ModelsResponse
// @Router       /v1/models [get]
func (h *ModelHandler) HandleListModels(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, ModelsResponse{
		Providers: h.registry.Providers(),
		Defaults:  h.registry.Defaults(),
	})
}
