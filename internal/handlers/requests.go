package handlers

import (
	"net/http"

	"heating_quoting/internal/models"
	"heating_quoting/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateRequestPayload creates a heating request for a customer.
type CreateRequestPayload struct {
	CustomerID string           `json:"customer_id,omitempty"`
	PowerKw    *decimal.Decimal `json:"power_kw" binding:"required" example:"500"`
	TSupplyC   *decimal.Decimal `json:"t_supply_c" binding:"required" example:"95"`
	TReturnC   *decimal.Decimal `json:"t_return_c" binding:"required" example:"70"`
	FuelType   string           `json:"fuel_type" binding:"required" example:"gas"`
	Notes      string           `json:"notes,omitempty"`
}

// UpdateRequestPayload patches request parameters; omitted fields keep their
// stored values.
type UpdateRequestPayload struct {
	PowerKw  *decimal.Decimal `json:"power_kw,omitempty"`
	TSupplyC *decimal.Decimal `json:"t_supply_c,omitempty"`
	TReturnC *decimal.Decimal `json:"t_return_c,omitempty"`
	FuelType *string          `json:"fuel_type,omitempty"`
	Notes    *string          `json:"notes,omitempty"`
}

// GenerateCandidatesPayload tunes candidate generation for a stored request.
type GenerateCandidatesPayload struct {
	TopN              *int  `json:"top_n,omitempty" example:"5"`
	IncludeAutomation *bool `json:"include_automation,omitempty" example:"true"`
}

// FixSelectionPayload marks one candidate as the chosen configuration.
type FixSelectionPayload struct {
	CandidateID string `json:"candidate_id" binding:"required"`
}

// @Summary      Create heating request
// @Tags         heating-requests
// @Accept       json
// @Produce      json
// @Param        body  body  CreateRequestPayload  true  "Request parameters"
// @Success      201   {object}  models.HeatingRequest
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/heating-requests [post]
// @Security     BearerAuth
func (h *Handler) createRequest(c *gin.Context) {
	var p CreateRequestPayload
	if ok := h.bindJSONOrBadRequest(c, &p); !ok {
		return
	}

	req, err := h.services.Requests.Create(c.Request.Context(), models.HeatingRequest{
		CustomerID:  p.CustomerID,
		PowerKw:     *p.PowerKw,
		SupplyTempC: *p.TSupplyC,
		ReturnTempC: *p.TReturnC,
		FuelType:    p.FuelType,
		Notes:       p.Notes,
	})
	if err != nil {
		h.respondServiceError(c, "request_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// @Summary      List heating requests
// @Tags         heating-requests
// @Produce      json
// @Param        customer_id  query  string  false  "Filter by customer"
// @Param        status       query  string  false  "created | proposed | selected"
// @Param        fuel_type    query  string  false  "gas | diesel | other"
// @Success      200  {array}  models.HeatingRequest
// @Router       /api/v1/heating-requests [get]
// @Security     BearerAuth
func (h *Handler) listRequests(c *gin.Context) {
	f := models.RequestFilter{
		CustomerID: c.Query("customer_id"),
		Status:     c.Query("status"),
		FuelType:   c.Query("fuel_type"),
		Limit:      queryInt(c, "limit", 50),
		Offset:     queryInt(c, "offset", 0),
	}
	reqs, err := h.services.Requests.List(c.Request.Context(), f)
	if err != nil {
		h.respondServiceError(c, "request_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, reqs)
}

func (h *Handler) getRequest(c *gin.Context) {
	req, err := h.services.Requests.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, "request_get_failed", err, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *Handler) updateRequest(c *gin.Context) {
	var p UpdateRequestPayload
	if ok := h.bindJSONOrBadRequest(c, &p); !ok {
		return
	}
	req, err := h.services.Requests.UpdateParams(c.Request.Context(), c.Param("id"), service.UpdateRequestParams{
		PowerKw:     p.PowerKw,
		SupplyTempC: p.TSupplyC,
		ReturnTempC: p.TReturnC,
		FuelType:    p.FuelType,
		Notes:       p.Notes,
	})
	if err != nil {
		h.respondServiceError(c, "request_update_failed", err, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *Handler) deleteRequest(c *gin.Context) {
	if err := h.services.Requests.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondServiceError(c, "request_delete_failed", err, "id", c.Param("id"))
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      Generate and persist candidates
// @Description  Runs selection for the stored request, atomically replaces the
// @Description  persisted candidate set and returns the stored rows.
// @Tags         heating-requests
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Request id"
// @Param        body  body  GenerateCandidatesPayload  false  "Generation options"
// @Success      200   {array}   models.ConfigCandidate
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/heating-requests/{id}/candidates [post]
// @Security     BearerAuth
func (h *Handler) generateCandidates(c *gin.Context) {
	var p GenerateCandidatesPayload
	if c.Request.ContentLength > 0 {
		if ok := h.bindJSONOrBadRequest(c, &p); !ok {
			return
		}
	}

	topN := 0
	if p.TopN != nil {
		topN = *p.TopN
	}
	includeAutomation := p.IncludeAutomation == nil || *p.IncludeAutomation

	candidates, err := h.services.Candidates.Generate(c.Request.Context(), c.Param("id"), topN, includeAutomation)
	if err != nil {
		h.respondServiceError(c, "candidate_generate_failed", err, "request_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, candidates)
}

// @Summary      List persisted candidates for a request
// @Tags         heating-requests
// @Produce      json
// @Param        id               path   string  true   "Request id"
// @Param        with_components  query  bool    false  "Include component lines (default true)"
// @Success      200  {array}   models.ConfigCandidate
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/heating-requests/{id}/candidates [get]
// @Security     BearerAuth
func (h *Handler) listCandidates(c *gin.Context) {
	withComponents := queryBool(c, "with_components", true)
	candidates, err := h.services.Candidates.FindByRequest(c.Request.Context(), c.Param("id"), withComponents)
	if err != nil {
		h.respondServiceError(c, "candidate_list_failed", err, "request_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, candidates)
}

func (h *Handler) fixSelection(c *gin.Context) {
	var p FixSelectionPayload
	if ok := h.bindJSONOrBadRequest(c, &p); !ok {
		return
	}
	if err := h.services.Requests.FixSelection(c.Request.Context(), c.Param("id"), p.CandidateID); err != nil {
		h.respondServiceError(c, "selection_fix_failed", err, "request_id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "selected", "candidate_id": p.CandidateID})
}
