package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/roksva123/go-projecthub-backend/internal/model"
	"github.com/roksva123/go-projecthub-backend/internal/store"
)

type AttendanceHandler struct {
	Store  *store.Store
	Logger zerolog.Logger
}

func NewAttendanceHandler(s *store.Store, logger zerolog.Logger) *AttendanceHandler {
	return &AttendanceHandler{Store: s, Logger: logger}
}

func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var req struct {
		UserID    string     `json:"userId" binding:"required"`
		ProjectID string     `json:"projectId" binding:"required"`
		Timestamp *time.Time `json:"timestamp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	ts := time.Now()
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}
	record := h.Store.RecordCheckIn(req.UserID, req.ProjectID, ts)
	c.JSON(http.StatusCreated, model.ResponseApi{ApiMessage: "Checked in", Data: record})
}

func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	var req struct {
		UserID    string     `json:"userId" binding:"required"`
		Timestamp *time.Time `json:"timestamp"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	ts := time.Now()
	if req.Timestamp != nil {
		ts = *req.Timestamp
	}
	closed := h.Store.RecordCheckOut(req.UserID, ts)
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "Checked out", Data: closed})
}
