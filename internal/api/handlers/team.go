package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/roksva123/go-projecthub-backend/internal/model"
	"github.com/roksva123/go-projecthub-backend/internal/store"
	"github.com/roksva123/go-projecthub-backend/internal/utils"
)

type TeamHandler struct {
	Store  *store.Store
	Logger zerolog.Logger
}

func NewTeamHandler(s *store.Store, logger zerolog.Logger) *TeamHandler {
	return &TeamHandler{Store: s, Logger: logger}
}

func (h *TeamHandler) List(c *gin.Context) {
	if role := c.Query("role"); role != "" {
		members := h.Store.ListUsersByRole(model.Role(role))
		c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: utils.ConvertUsersToResponse(members)})
		return
	}
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: utils.ConvertUsersToResponse(h.Store.ListUsers())})
}

func (h *TeamHandler) Get(c *gin.Context) {
	user := h.Store.GetUserByID(c.Param("id"))
	if user == nil {
		c.JSON(http.StatusNotFound, model.ResponseApi{ApiMessage: "Member not found"})
		return
	}
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: user})
}

func (h *TeamHandler) Create(c *gin.Context) {
	var req model.User
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	created := h.Store.CreateUser(req)
	c.JSON(http.StatusCreated, model.ResponseApi{ApiMessage: "Member created", Data: created})
}

func (h *TeamHandler) Update(c *gin.Context) {
	var patch model.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	updated := h.Store.UpdateUser(c.Param("id"), patch)
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: updated})
}

func (h *TeamHandler) Delete(c *gin.Context) {
	h.Store.DeleteUser(c.Param("id"))
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "Member deleted"})
}

func (h *TeamHandler) AssignRole(c *gin.Context) {
	var req struct {
		Role model.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	updated := h.Store.AssignRole(c.Param("id"), req.Role)
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: updated})
}

func (h *TeamHandler) Notifications(c *gin.Context) {
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: h.Store.GetUserNotifications(c.Param("id"))})
}

func (h *TeamHandler) Attendance(c *gin.Context) {
	userID := c.Param("id")
	if date := c.Query("date"); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid date, want YYYY-MM-DD"})
			return
		}
		c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: h.Store.GetAttendanceByDate(userID, day)})
		return
	}
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: h.Store.ListAttendanceForUser(userID)})
}
