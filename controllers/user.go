package controllers

import (
	"net/http"
	"strconv"

	"github.com/Deinys/SmartHome-Backend/middlewares"
	"github.com/Deinys/SmartHome-Backend/models"
	"github.com/gin-gonic/gin"
)

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": users})
}

func (h *Handler) GetUser(c *gin.Context) {
	id, ok := userIDParam(c)
	if !ok {
		return
	}
	user, err := h.svc.GetUser(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateUser changes the caller's email.
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := h.selfParam(c)
	if !ok {
		return
	}

	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Received an incomplete request."})
		return
	}

	user, err := h.svc.UpdateEmail(c.Request.Context(), id, req.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes the caller's account and revokes the token used to do so.
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := h.selfParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteUser(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	if claims, ok := middlewares.CurrentClaims(c); ok {
		if err := h.revoked.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt); err != nil {
			h.logger.Warn("token revocation failed", "user_id", id, "error", err)
		}
	}
	h.logger.Info("user deleted", "user_id", id)
	c.Status(http.StatusNoContent)
}

func userIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id"})
		return 0, false
	}
	return uint(id), true
}

// selfParam parses the :id parameter and checks it names the caller.
func (h *Handler) selfParam(c *gin.Context) (uint, bool) {
	id, ok := userIDParam(c)
	if !ok {
		return 0, false
	}
	caller, ok := middlewares.CurrentUserID(c)
	if !ok || caller != id {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "You can only modify your own account"})
		return 0, false
	}
	return id, true
}
