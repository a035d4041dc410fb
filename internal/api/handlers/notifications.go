package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/roksva123/go-projecthub-backend/internal/model"
	"github.com/roksva123/go-projecthub-backend/internal/store"
)

type NotificationHandler struct {
	Store  *store.Store
	Logger zerolog.Logger
}

func NewNotificationHandler(s *store.Store, logger zerolog.Logger) *NotificationHandler {
	return &NotificationHandler{Store: s, Logger: logger}
}

func (h *NotificationHandler) Send(c *gin.Context) {
	var req model.Notification
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	if req.UserID == "" {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "userId is required"})
		return
	}
	created := h.Store.SendNotificationToUser(req.UserID, req)
	c.JSON(http.StatusCreated, model.ResponseApi{ApiMessage: "Notification sent", Data: created})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	updated := h.Store.MarkNotificationAsRead(c.Param("id"))
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: updated})
}
