package handlers

import (
	"net/http"

	"heating_quoting/internal/models"

	"github.com/gin-gonic/gin"
)

// LeadPayload is the public site-form contact.
type LeadPayload struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// @Summary      Register a sales lead
// @Tags         leads
// @Accept       json
// @Produce      json
// @Param        body  body  LeadPayload  true  "Contact details"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /leads [post]
func (h *Handler) registerLead(c *gin.Context) {
	var p LeadPayload
	if ok := h.bindJSONOrBadRequest(c, &p); !ok {
		return
	}
	id, err := h.services.Leads.Register(c.Request.Context(), models.Lead{
		Name:    p.Name,
		Phone:   p.Phone,
		Email:   p.Email,
		Comment: p.Comment,
	})
	if err != nil {
		h.respondServiceError(c, "lead_register_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *Handler) listLeads(c *gin.Context) {
	leads, err := h.services.Leads.List(c.Request.Context(), queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		h.respondServiceError(c, "lead_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, leads)
}
