package handlers

import (
	"heating_quoting/internal/logger"
	"heating_quoting/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	// Public lead capture (site form, no auth)
	router.POST("/leads", h.registerLead)

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerSelectionRoutes(api)
		h.registerRequestRoutes(api)
		h.registerCandidateRoutes(api)
		h.registerCatalogRoutes(api)
		h.registerLeadRoutes(api)
	}
}

func (h *Handler) registerSelectionRoutes(api *gin.RouterGroup) {
	selection := api.Group("/selection")
	{
		// Ad-hoc preview: selection without persisting anything.
		selection.POST("/configurations", h.previewConfigurations)
	}
}

func (h *Handler) registerRequestRoutes(api *gin.RouterGroup) {
	requests := api.Group("/heating-requests")
	{
		requests.POST("", h.createRequest)
		requests.GET("", h.listRequests)
		requests.GET("/:id", h.getRequest)
		requests.PATCH("/:id", h.updateRequest)
		requests.DELETE("/:id", h.deleteRequest)
		requests.POST("/:id/candidates", h.generateCandidates)
		requests.GET("/:id/candidates", h.listCandidates)
		requests.POST("/:id/selection", h.fixSelection)
	}
}

func (h *Handler) registerCandidateRoutes(api *gin.RouterGroup) {
	candidates := api.Group("/candidates")
	{
		candidates.GET("/:id", h.getCandidate)
		candidates.DELETE("/:id", h.deleteCandidate)
		candidates.GET("/:id/components", h.getCandidateComponents)
	}
}

func (h *Handler) registerCatalogRoutes(api *gin.RouterGroup) {
	equipment := api.Group("/equipment")
	{
		equipment.GET("", h.listEquipment)
		equipment.POST("", h.createEquipment)
		equipment.GET("/:id", h.getEquipment)
		equipment.PATCH("/:id", h.updateEquipment)
		equipment.DELETE("/:id", h.deactivateEquipment)
	}
}

func (h *Handler) registerLeadRoutes(api *gin.RouterGroup) {
	leads := api.Group("/leads")
	{
		leads.GET("", h.listLeads)
	}
}
