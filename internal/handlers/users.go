package handlers

import (
	"net/http"

	"todo_service/internal/models"

	"github.com/gin-gonic/gin"
)

// @Summary      Current account
// @Tags         users
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/users/me [get]
// @Security     BearerAuth
func (h *Handler) getMe(c *gin.Context) {
	u, ok := h.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary      Update current account
// @Description  Partial update; only fields present in the body are applied. A non-empty password is re-hashed.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        input  body  models.UserPatch  true  "fields to change"
// @Success      200  {object}  models.User
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/users/me [put]
// @Security     BearerAuth
func (h *Handler) updateMe(c *gin.Context) {
	u, ok := h.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var patch models.UserPatch
	if ok := h.bindJSONOrBadRequest(c, &patch); !ok {
		return
	}

	updated, err := h.services.Users.Update(c.Request.Context(), u.ID, patch)
	if err != nil {
		h.jsonServiceError(c, "user_update_failed", err, "id", u.ID)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary      Delete current account
// @Description  Removes the account and, via cascade, every todo it owns. Outstanding tokens stop working immediately.
// @Tags         users
// @Produce      json
// @Success      200  {object}  models.User
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/users/me [delete]
// @Security     BearerAuth
func (h *Handler) deleteMe(c *gin.Context) {
	u, ok := h.currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	deleted, err := h.services.Users.Delete(c.Request.Context(), u.ID)
	if err != nil {
		h.jsonServiceError(c, "user_delete_failed", err, "id", u.ID)
		return
	}
	c.JSON(http.StatusOK, deleted)
}
