package handlers

import (
	"net/http"

	"ecohaven_backend/internal/services"
	"ecohaven_backend/internal/storage"

	"github.com/gin-gonic/gin"
)

// EventHandler serves /api/events.
type EventHandler struct {
	eventService services.EventService
	files        FileResolver
}

func NewEventHandler(es services.EventService, files FileResolver) *EventHandler {
	return &EventHandler{eventService: es, files: files}
}

// GetEvents lists events, optionally filtered by category, search term or upcoming.
func (h *EventHandler) GetEvents(c *gin.Context) {
	var filter services.EventFilter
	if !bindQuery(c, &filter) {
		return
	}
	result, err := h.eventService.GetEvents(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, err, "GetEvents: Error from eventService.GetEvents")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *EventHandler) GetEventByID(c *gin.Context) {
	id, ok := parseID(c, "id", "event")
	if !ok {
		return
	}
	event, err := h.eventService.GetEvent(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "GetEventByID: Error from eventService.GetEvent")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req services.EventRequest
	if !bindJSON(c, &req) {
		return
	}
	event, err := h.eventService.CreateEvent(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "CreateEvent: Error from eventService.CreateEvent")
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, ok := parseID(c, "id", "event")
	if !ok {
		return
	}
	var req services.EventRequest
	if !bindJSON(c, &req) {
		return
	}
	event, err := h.eventService.UpdateEvent(c.Request.Context(), id, req)
	if err != nil {
		respondServiceError(c, err, "UpdateEvent: Error from eventService.UpdateEvent")
		return
	}
	c.JSON(http.StatusOK, event)
}

// DeleteEvent removes the event and orphans its bookings.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := parseID(c, "id", "event")
	if !ok {
		return
	}
	result, err := h.eventService.DeleteEvent(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err, "DeleteEvent: Error from eventService.DeleteEvent")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully", "result": result})
}

// UploadEventImage stores the "image" form field as the event cover.
func (h *EventHandler) UploadEventImage(c *gin.Context) {
	id, ok := parseID(c, "id", "event")
	if !ok {
		return
	}
	fh, ok := uploadedFile(c, "image")
	if !ok {
		return
	}
	event, err := h.eventService.UploadEventImage(c.Request.Context(), id, fh)
	if err != nil {
		respondServiceError(c, err, "UploadEventImage: Error from eventService.UploadEventImage")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) ServeEventImage(c *gin.Context) {
	serveFile(c, h.files, storage.EventImages)
}
