package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskapp/internal/middleware"
	"taskapp/internal/model"
	"taskapp/internal/repository"
	"taskapp/internal/service"
)

type EventHandler struct {
	eventService *service.EventService
}

func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// EventResponse represents an event in API responses
type EventResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
	CreatedBy   string `json:"created_by"`
	CreatorName string `json:"creator_name,omitempty"`
}

// List returns all events, latest date first
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.eventService.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve events"})
		return
	}

	response := make([]EventResponse, len(events))
	for i := range events {
		response[i] = eventResponse(&events[i])
	}
	c.JSON(http.StatusOK, response)
}

// GetByID returns a single event
func (h *EventHandler) GetByID(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID format"})
		return
	}

	event, err := h.eventService.Get(c.Request.Context(), eventID)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, eventResponse(event))
}

// Create creates a new event
func (h *EventHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	var input service.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), user, input)
	if err != nil {
		respondEventError(c, err)
		return
	}

	response := eventResponse(event)
	response.CreatorName = user.Username
	c.JSON(http.StatusCreated, response)
}

// Update replaces the editable fields of an event
func (h *EventHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID format"})
		return
	}

	var input service.EventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), user, eventID, input)
	if err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, eventResponse(event))
}

// Delete removes an event permanently
func (h *EventHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID format"})
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), user, eventID); err != nil {
		respondEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}

func respondEventError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, repository.ErrEventNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to modify this event"})
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "violations": verr.Violations})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process event"})
	}
}

func eventResponse(event *model.Event) EventResponse {
	return EventResponse{
		ID:          event.ID.String(),
		Title:       event.Title,
		Description: event.Description,
		Date:        event.Date.Format(time.RFC3339),
		CreatedBy:   event.CreatedByID.String(),
		CreatorName: event.Creator.Username,
	}
}
