package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Get one candidate
// @Tags         candidates
// @Produce      json
// @Param        id               path   string  true   "Candidate id"
// @Param        with_components  query  bool    false  "Include component lines (default true)"
// @Success      200  {object}  models.ConfigCandidate
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/candidates/{id} [get]
// @Security     BearerAuth
func (h *Handler) getCandidate(c *gin.Context) {
	withComponents := queryBool(c, "with_components", true)
	cand, err := h.services.Candidates.Get(c.Request.Context(), c.Param("id"), withComponents)
	if err != nil {
		h.respondServiceError(c, "candidate_get_failed", err, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, cand)
}

func (h *Handler) deleteCandidate(c *gin.Context) {
	if err := h.services.Candidates.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondServiceError(c, "candidate_delete_failed", err, "id", c.Param("id"))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) getCandidateComponents(c *gin.Context) {
	comps, err := h.services.Candidates.Components(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondServiceError(c, "candidate_components_failed", err, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, comps)
}
