package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/akolanti/DocAgent/internal/api"
)

// HealthHandler godoc
// @Summary      Health check
// @Description  Probes the local model runtime and the vector store. Returns 503 when either dependency is unreachable.
// @Tags         Health
// @Produce      json
// @Success      200  {object}  api.HealthResponse
// @Failure      503  {object}  api.HealthResponse
// @Router       /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	components := map[string]string{
		"model_runtime": "ok",
		"vector_store":  "ok",
	}
	healthy := true

	if err := handlerInstance.llm.Healthy(ctx); err != nil {
		components["model_runtime"] = err.Error()
		healthy = false
	}
	if err := handlerInstance.vectorDB.Healthy(ctx); err != nil {
		components["vector_store"] = err.Error()
		healthy = false
	}

	response := api.HealthResponse{Status: "ok", Components: components}
	code := http.StatusOK
	if !healthy {
		response.Status = "degraded"
		code = http.StatusServiceUnavailable
	}

	writeJsonResponse(w, code, response)
}
