package controllers

import (
	"net/http"

	"github.com/Deinys/SmartHome-Backend/models"
	"github.com/gin-gonic/gin"
)

// POST /populate
func (h *Handler) Populate(c *gin.Context) {
	controllers, err := h.svc.Populate(c.Request.Context(), h.seedCount)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"msg":         "Populated controllers.",
		"controllers": controllers,
	})
}

// POST /validate returns a token for the account owning the controller.
func (h *Handler) Validate(c *gin.Context) {
	var req models.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Received an incomplete request."})
		return
	}

	token, err := h.svc.Validate(c.Request.Context(), req.ControllerSN)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"response": token})
}
