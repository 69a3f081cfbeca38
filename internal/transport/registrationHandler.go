package transport

import (
	"fmt"
	"net/http"

	"github.com/eventninja/eventninja/internal/service"
	"github.com/eventninja/eventninja/internal/transport/middleware"
	"github.com/eventninja/eventninja/pkg/nonce"

	"github.com/gin-gonic/gin"
)

type RegistrationHandler struct {
	registrationService service.RegistrationService
	nonces              *nonce.Service
}

func NewRegistrationHandler(registrationService service.RegistrationService, nonces *nonce.Service) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		nonces:              nonces,
	}
}

// Register processes a registration form submission and redirects back
// to the event page with the outcome in the "registered" query
// parameter. The redirect always terminates the request so a reload
// never resubmits the form.
func (h *RegistrationHandler) Register(c *gin.Context) {
	if c.PostForm("action") != nonce.ActionRegister {
		c.Status(http.StatusNotFound)
		return
	}

	// Security boundary: a missing or invalid token fails closed with
	// no side effects and no outcome.
	session := middleware.SessionFrom(c)
	if !h.nonces.Verify(c.PostForm("en_register_nonce"), session, nonce.ActionRegister) {
		c.Status(http.StatusForbidden)
		return
	}

	var req service.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	outcome, err := h.registrationService.Register(c.Request.Context(), &req)
	if err != nil {
		// Validation rejection: the submission is dropped without
		// user-visible feedback.
		c.Status(http.StatusBadRequest)
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/events/%d?registered=%s", req.EventID, outcome))
}
