package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akolanti/DocAgent/internal/adapter"
	"github.com/akolanti/DocAgent/internal/api"
)

// ListDocumentsHandler godoc
// @Summary      List ingested documents
// @Description  Returns every document in the registry with its chunk count and ingestion time.
// @Tags         Documents
// @Produce      json
// @Success      200  {object}  api.DocumentListResponse
// @Failure      502  {object}  api.JobResponse "Registry unreachable"
// @Router       /documents [get]
func ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	docs, err := handlerInstance.service.DocumentStore.ListDocuments(r.Context())
	if err != nil {
		logRH.Error("Failed to list documents", "err", err)
		WriteErrorResponse(w, http.StatusBadGateway, "", "Could not read document registry")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToDocumentListResponse(docs))
}

// DeleteDocumentHandler godoc
// @Summary      Delete an ingested document
// @Description  Removes every stored chunk for a source and drops it from the registry. Safe to repeat, deleting an absent document succeeds.
// @Tags         Documents
// @Accept       json
// @Produce      json
// @Param        request  body  api.DeleteDocumentRequest  true  "Source id to delete"
// @Success      204  "Deleted"
// @Failure      400  {object}  api.JobResponse "Missing source id"
// @Failure      502  {object}  api.JobResponse "Vector store unreachable"
// @Router       /documents [delete]
func DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	if !validateContext(r.Context()) {
		return
	}

	var requestData api.DeleteDocumentRequest
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil || requestData.SourceId == "" {
		WriteErrorResponse(w, http.StatusBadRequest, "", "source_id is required")
		return
	}

	// chunks first, then the registry entry, so a half-failed delete never
	// hides chunks behind a missing registry row
	if err := handlerInstance.vectorDB.DeleteSource(r.Context(), requestData.SourceId); err != nil {
		logRH.Error("Failed to delete source chunks", "sourceId", requestData.SourceId, "err", err)
		WriteErrorResponse(w, http.StatusBadGateway, requestData.SourceId, "Could not delete document chunks")
		return
	}

	if err := handlerInstance.service.DocumentStore.RemoveDocument(r.Context(), requestData.SourceId); err != nil {
		logRH.Error("Failed to remove registry entry", "sourceId", requestData.SourceId, "err", err)
		WriteErrorResponse(w, http.StatusBadGateway, requestData.SourceId, "Could not update document registry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
