package handlers

import (
	"net/http"

	"heating_quoting/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// SelectionQuery is the ad-hoc selection payload: a heating spec plus ranking
// options. Temperatures are pointers so a missing field is distinguishable
// from zero.
type SelectionQuery struct {
	PowerKw           *decimal.Decimal `json:"power_kw" binding:"required" example:"500"`
	TSupplyC          *decimal.Decimal `json:"t_supply_c" binding:"required" example:"95"`
	TReturnC          *decimal.Decimal `json:"t_return_c" binding:"required" example:"70"`
	FuelType          string           `json:"fuel_type" binding:"required" example:"gas"`
	TopN              *int             `json:"top_n,omitempty" example:"5"`
	IncludeAutomation *bool            `json:"include_automation,omitempty" example:"true"`
}

func (q SelectionQuery) spec() models.HeatingRequestSpec {
	return models.HeatingRequestSpec{
		PowerKw:     *q.PowerKw,
		SupplyTempC: *q.TSupplyC,
		ReturnTempC: *q.TReturnC,
		FuelType:    q.FuelType,
	}
}

func (q SelectionQuery) topN() int {
	if q.TopN != nil {
		return *q.TopN
	}
	return 0 // service applies its default
}

func (q SelectionQuery) includeAutomation() bool {
	return q.IncludeAutomation == nil || *q.IncludeAutomation
}

// @Summary      Preview equipment configurations
// @Description  Runs selection for an ad-hoc spec without persisting anything.
// @Tags         selection
// @Accept       json
// @Produce      json
// @Param        body  body   SelectionQuery  true  "Heating spec"
// @Success      200   {array}   models.ConfigCandidate
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/selection/configurations [post]
// @Security     BearerAuth
func (h *Handler) previewConfigurations(c *gin.Context) {
	var q SelectionQuery
	if ok := h.bindJSONOrBadRequest(c, &q); !ok {
		return
	}

	candidates, err := h.services.Selection.SelectTopConfigurations(
		c.Request.Context(), q.spec(), q.topN(), q.includeAutomation())
	if err != nil {
		h.respondServiceError(c, "selection_preview_failed", err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}
