package controllers

import (
	"net/http"

	"github.com/Deinys/SmartHome-Backend/middlewares"
	"github.com/Deinys/SmartHome-Backend/models"
	"github.com/gin-gonic/gin"
)

// Signup registers a new user and binds the controller they own.
func (h *Handler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Received an incomplete request."})
		return
	}

	user, ctrl, err := h.svc.Signup(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.logger.Info("user registered", "user_id", user.ID, "controller_sn", ctrl.ControllerSN)
	c.JSON(http.StatusCreated, models.SignupResponse{User: *user, Controller: *ctrl})
}

// Login authenticates a user and returns a JWT token.
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Received an incomplete request."})
		return
	}

	token, user, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.LoginResponse{Token: token, UserID: user.ID, Email: user.Email})
}

// Logout revokes the token used for this request.
func (h *Handler) Logout(c *gin.Context) {
	claims, ok := middlewares.CurrentClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	if err := h.revoked.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt); err != nil {
		h.logger.Error("token revocation failed", "user_id", claims.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to revoke token"})
		return
	}
	c.Status(http.StatusNoContent)
}
