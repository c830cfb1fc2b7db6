package controllers

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/Deinys/SmartHome-Backend/middlewares"
	"github.com/Deinys/SmartHome-Backend/models"
	"github.com/Deinys/SmartHome-Backend/stream"
	"github.com/gin-gonic/gin"
)

// CreateEntry stores a sensor reading. A reading identical to the latest one
// for the same device returns that entry with 200 instead of 201.
func (h *Handler) CreateEntry(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Received an incomplete request."})
		return
	}

	entry, created, err := h.svc.NewEntry(c.Request.Context(), userID, req.DeviceType, req.DeviceData)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !created {
		c.JSON(http.StatusOK, gin.H{"response": entry})
		return
	}

	h.hub.Publish(userID, stream.NewEvent(stream.EventEntryCreated, entry))
	c.JSON(http.StatusCreated, gin.H{"response": entry})
}

// ListEntries serves GET /entries and GET /entries/:device_name.
func (h *Handler) ListEntries(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entries, err := h.svc.ListEntries(c.Request.Context(), userID, c.Param("device_name"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": entries})
}

// ExportEntries sends the caller's entries as a CSV file. The optional
// device query parameter filters by device type.
func (h *Handler) ExportEntries(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entries, err := h.svc.ListEntries(c.Request.Context(), userID, c.Query("device"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", "attachment; filename=entries.csv")
	c.Status(http.StatusOK)
	writer := csv.NewWriter(c.Writer)
	_ = writer.Write([]string{"entry_id", "entry_date", "entry_device", "entry_data"})
	for _, e := range entries {
		_ = writer.Write([]string{
			strconv.FormatUint(uint64(e.ID), 10),
			e.Created.UTC().Format(time.RFC3339),
			string(e.DeviceType),
			e.DeviceData,
		})
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		h.logger.Warn("csv export interrupted", "user_id", userID, "error", err)
	}
}
