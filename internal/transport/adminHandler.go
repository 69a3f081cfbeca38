package transport

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/eventninja/eventninja/internal/entity"
	"github.com/eventninja/eventninja/internal/service"
	"github.com/eventninja/eventninja/internal/transport/middleware"
	"github.com/eventninja/eventninja/pkg/nonce"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	eventService        service.EventService
	registrationService service.RegistrationService
	nonces              *nonce.Service
}

func NewAdminHandler(eventService service.EventService, registrationService service.RegistrationService, nonces *nonce.Service) *AdminHandler {
	return &AdminHandler{
		eventService:        eventService,
		registrationService: registrationService,
		nonces:              nonces,
	}
}

func (h *AdminHandler) ListEvents(c *gin.Context) {
	events, err := h.eventService.GetAllEvents(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "admin_events.html", gin.H{
		"Events": events,
	})
}

func (h *AdminHandler) NewEvent(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_event_form.html", gin.H{
		"Action":   "/admin/events",
		"Capacity": "",
		"Nonce":    h.nonces.Create(middleware.SessionFrom(c), nonce.ActionSaveEventMeta),
	})
}

func (h *AdminHandler) CreateEvent(c *gin.Context) {
	if !h.verifyNonce(c) {
		return
	}

	var req service.SaveEventRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	event, err := h.eventService.CreateEvent(c.Request.Context(), &req)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/admin/events/%d/edit?saved=1", event.ID))
}

func (h *AdminHandler) EditEvent(c *gin.Context) {
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

	details, err := h.eventService.GetDetails(c.Request.Context(), id)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	capacity := ""
	if details.Capacity > 0 {
		capacity = strconv.Itoa(details.Capacity)
	}

	c.HTML(http.StatusOK, "admin_event_form.html", gin.H{
		"Action":  fmt.Sprintf("/admin/events/%d", event.ID),
		"Event":   event,
		"Details": details,
		// Capacity renders as text: absence means unlimited.
		"Capacity": capacity,
		"Saved":    c.Query("saved") == "1",
		"Nonce":    h.nonces.Create(middleware.SessionFrom(c), nonce.ActionSaveEventMeta),
	})
}

// SaveEvent is the content-save handler. It is gated by the
// anti-forgery token and the edit-permission middleware; autosave
// submissions never write metadata.
func (h *AdminHandler) SaveEvent(c *gin.Context) {
	if !h.verifyNonce(c) {
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.Status(http.StatusNotFound)
		return
	}

	var req service.SaveEventRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err = h.eventService.SaveEvent(c.Request.Context(), id, &req)
	if errors.Is(err, entity.ErrEventNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/admin/events/%d/edit?saved=1", id))
}

// ListRegistrations renders the read-only registrations table, newest
// first, with a total count footer.
func (h *AdminHandler) ListRegistrations(c *gin.Context) {
	registrations, err := h.registrationService.ListAll(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "admin_registrations.html", gin.H{
		"Registrations": registrations,
		"Total":         len(registrations),
	})
}

// verifyNonce fails closed: a missing or invalid token aborts with a
// bare status before anything is written.
func (h *AdminHandler) verifyNonce(c *gin.Context) bool {
	session := middleware.SessionFrom(c)
	if !h.nonces.Verify(c.PostForm("en_event_nonce"), session, nonce.ActionSaveEventMeta) {
		c.Status(http.StatusForbidden)
		return false
	}
	return true
}
