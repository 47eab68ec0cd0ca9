// internal/canvas/handler.go
package canvas

import (
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "business-canvas/internal/common/errors"
	"business-canvas/internal/common/logger"
	"business-canvas/internal/models"
	"business-canvas/pkg/registry"
)

const (
	basePath = "/api/business/canvas"
	idParam  = "id"
)

type Handler struct {
	service *Service
	errors  *apperrors.ErrorHandler
	logger  logger.Logger
}

func NewHandler(service *Service, log logger.Logger) *Handler {
	log = logger.ForComponent(log, "canvas-handler")
	return &Handler{
		service: service,
		errors:  apperrors.NewErrorHandler(log),
		logger:  log,
	}
}

type route struct {
	method  string
	path    string
	summary string
	handler http.HandlerFunc
}

func (h *Handler) routes() []route {
	return []route{
		{http.MethodPost, basePath + "/generate", "Generate a canvas from a business description", h.handleGenerate},
		{http.MethodGet, basePath, "List all canvases", h.handleList},
		{http.MethodGet, basePath + "/blocks", "Describe the nine canvas blocks", h.handleBlocks},
		{http.MethodGet, basePath + "/{id}", "Get a canvas", h.handleGet},
		{http.MethodPut, basePath + "/{id}", "Update canvas name or blocks", h.handleUpdate},
		{http.MethodDelete, basePath + "/{id}", "Delete a canvas", h.handleDelete},
		{http.MethodPost, basePath + "/{id}/duplicate", "Duplicate a canvas", h.handleDuplicate},
	}
}

// RegisterRoutes mounts the canvas API on mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	for _, rt := range h.routes() {
		mux.HandleFunc(rt.method+" "+rt.path, rt.handler)
	}
}

// Routes lists the mounted routes for the docs endpoint.
func (h *Handler) Routes() []models.RouteDoc {
	rts := h.routes()
	docs := make([]models.RouteDoc, 0, len(rts))
	for _, rt := range rts {
		docs = append(docs, models.RouteDoc{Method: rt.method, Path: rt.path, Summary: rt.summary})
	}
	return docs
}

// handleGenerate handles POST /api/business/canvas/generate. Failures after
// the body was accepted are reported inside a 200 envelope.
func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	defer h.recoverEnvelope(w, r)

	var body interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.errors.HandleHTTPError(w, r, apperrors.NewInvalidRequestError(fmt.Sprintf("decode body: %v", err)))
		return
	}
	req, err := validateGenerate(body)
	if err != nil {
		h.errors.HandleHTTPError(w, r, err)
		return
	}

	c, err := h.service.Generate(r.Context(), req)
	if err != nil {
		h.errors.HandleEnvelopeError(w, r, err)
		return
	}
	apperrors.WriteEnvelope(w, http.StatusOK, models.NewSuccessResponse(MsgGenerated, c))
}

// handleList handles GET /api/business/canvas.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	defer h.recoverEnvelope(w, r)

	canvases, err := h.service.List(r.Context())
	if err != nil {
		h.errors.HandleEnvelopeError(w, r, err)
		return
	}
	apperrors.WriteEnvelope(w, http.StatusOK, models.NewSuccessResponse(MsgListed, canvases))
}

func (h *Handler) handleBlocks(w http.ResponseWriter, r *http.Request) {
	apperrors.WriteEnvelope(w, http.StatusOK, models.NewSuccessResponse(MsgBlocks, registry.Catalog()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Get(r.Context(), r.PathValue(idParam))
	if err != nil {
		h.errors.HandleHTTPError(w, r, err)
		return
	}
	apperrors.WriteEnvelope(w, http.StatusOK, models.NewSuccessResponse(MsgRetrieved, c))
}

// handleUpdate only rejects bodies that are not JSON; the shape is checked by
// Service.Update after the id lookup.
func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var body interface{}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.errors.HandleHTTPError(w, r, apperrors.NewInvalidRequestError(fmt.Sprintf("decode body: %v", err)))
		return
	}

	c, err := h.service.Update(r.Context(), r.PathValue(idParam), body)
	if err != nil {
		h.errors.HandleHTTPError(w, r, err)
		return
	}
	apperrors.WriteEnvelope(w, http.StatusOK, models.NewSuccessResponse(MsgUpdated, c))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue(idParam)); err != nil {
		h.errors.HandleHTTPError(w, r, err)
		return
	}
	apperrors.WriteEnvelope(w, http.StatusOK, models.NewSuccessResponse(MsgDeleted, nil))
}

func (h *Handler) handleDuplicate(w http.ResponseWriter, r *http.Request) {
	c, err := h.service.Duplicate(r.Context(), r.PathValue(idParam))
	if err != nil {
		h.errors.HandleHTTPError(w, r, err)
		return
	}
	apperrors.WriteEnvelope(w, http.StatusOK, models.NewSuccessResponse(MsgDuplicated, c))
}

func (h *Handler) recoverEnvelope(w http.ResponseWriter, r *http.Request) {
	if rec := recover(); rec != nil {
		h.errors.HandleEnvelopeError(w, r, apperrors.NewInternalError(fmt.Errorf("%v", rec)))
	}
}
