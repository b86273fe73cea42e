package handlers

import (
	"net/http"

	"heating_quoting/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// EquipmentPayload creates or fully updates one catalog item.
type EquipmentPayload struct {
	Category      string           `json:"category" binding:"required" example:"boiler"`
	Brand         string           `json:"brand" binding:"required"`
	Model         string           `json:"model" binding:"required"`
	Active        *bool            `json:"active,omitempty"`
	PowerMinKw    *decimal.Decimal `json:"power_min_kw,omitempty"`
	PowerMaxKw    *decimal.Decimal `json:"power_max_kw,omitempty"`
	FlowMinM3h    *decimal.Decimal `json:"flow_min_m3h,omitempty"`
	FlowMaxM3h    *decimal.Decimal `json:"flow_max_m3h,omitempty"`
	DNSize        *int             `json:"dn_size,omitempty"`
	FuelType      string           `json:"fuel_type,omitempty"`
	ConnectionKey string           `json:"connection_key,omitempty"`
	Price         *decimal.Decimal `json:"price" binding:"required"`
	DeliveryDays  int              `json:"delivery_days,omitempty"`
}

func (p EquipmentPayload) toModel(id string) models.Equipment {
	active := true
	if p.Active != nil {
		active = *p.Active
	}
	return models.Equipment{
		ID:            id,
		Category:      p.Category,
		Brand:         p.Brand,
		Model:         p.Model,
		Active:        active,
		PowerMinKw:    toNullDecimal(p.PowerMinKw),
		PowerMaxKw:    toNullDecimal(p.PowerMaxKw),
		FlowMinM3h:    toNullDecimal(p.FlowMinM3h),
		FlowMaxM3h:    toNullDecimal(p.FlowMaxM3h),
		DNSize:        p.DNSize,
		FuelType:      p.FuelType,
		ConnectionKey: p.ConnectionKey,
		Price:         *p.Price,
		DeliveryDays:  p.DeliveryDays,
	}
}

func toNullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// @Summary      List catalog equipment
// @Tags         equipment
// @Produce      json
// @Param        category     query  string  false  "boiler | burner | pump | valve | flowmeter | automation"
// @Param        active_only  query  bool    false  "Only active items (default false)"
// @Success      200  {array}  models.Equipment
// @Router       /api/v1/equipment [get]
// @Security     BearerAuth
func (h *Handler) listEquipment(c *gin.Context) {
	items, err := h.services.Catalog.ListEquipment(
		c.Request.Context(),
		c.Query("category"),
		queryBool(c, "active_only", false),
		queryInt(c, "limit", 50),
		queryInt(c, "offset", 0),
	)
	if err != nil {
		h.respondServiceError(c, "equipment_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// @Summary      Create catalog equipment
// @Tags         equipment
// @Accept       json
// @Produce      json
// @Param        body  body  EquipmentPayload  true  "Equipment attributes"
// @Success      201   {object}  models.Equipment
// @Failure      400   {object}  map[string]string
// @Router       /api/v1/equipment [post]
// @Security     BearerAuth
func (h *Handler) createEquipment(c *gin.Context) {
	var p EquipmentPayload
	if ok := h.bindJSONOrBadRequest(c, &p); !ok {
		return
	}
	item, err := h.services.Catalog.CreateEquipment(c.Request.Context(), p.toModel(""))
	if err != nil {
		h.respondServiceError(c, "equipment_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *Handler) getEquipment(c *gin.Context) {
	item, err := h.services.Catalog.GetEquipment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, "equipment_get_failed", err, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) updateEquipment(c *gin.Context) {
	var p EquipmentPayload
	if ok := h.bindJSONOrBadRequest(c, &p); !ok {
		return
	}
	item, err := h.services.Catalog.UpdateEquipment(c.Request.Context(), p.toModel(c.Param("id")))
	if err != nil {
		h.respondServiceError(c, "equipment_update_failed", err, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) deactivateEquipment(c *gin.Context) {
	if err := h.services.Catalog.DeactivateEquipment(c.Request.Context(), c.Param("id")); err != nil {
		h.respondServiceError(c, "equipment_deactivate_failed", err, "id", c.Param("id"))
		return
	}
	c.Status(http.StatusNoContent)
}
