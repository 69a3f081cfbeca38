package transport

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/eventninja/eventninja/internal/entity"
	"github.com/eventninja/eventninja/internal/service"
	"github.com/eventninja/eventninja/internal/transport/middleware"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	eventService service.EventService
	presenter    service.Presenter
}

func NewEventHandler(eventService service.EventService, presenter service.Presenter) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		presenter:    presenter,
	}
}

// ListEvents renders the public event archive.
func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.eventService.GetAllEvents(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "events.html", gin.H{
		"Events": events,
	})
}

// ShowEvent renders a single event page: the stored content with the
// details block and registration form appended by the presenter.
func (h *EventHandler) ShowEvent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.Status(http.StatusNotFound)
		return
	}

	event, err := h.eventService.GetEvent(c.Request.Context(), id)
	if errors.Is(err, entity.ErrEventNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	content, err := h.presenter.RenderContent(
		c.Request.Context(),
		event.Body,
		event.ID,
		middleware.SessionFrom(c),
		c.Query("registered"),
	)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "event.html", gin.H{
		"Title":   event.Title,
		"Content": content,
	})
}
