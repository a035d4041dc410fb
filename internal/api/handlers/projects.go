package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/roksva123/go-projecthub-backend/internal/errs"
	"github.com/roksva123/go-projecthub-backend/internal/model"
	"github.com/roksva123/go-projecthub-backend/internal/store"
)

type ProjectHandler struct {
	Store  *store.Store
	Logger zerolog.Logger
}

func NewProjectHandler(s *store.Store, logger zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{Store: s, Logger: logger}
}

func (h *ProjectHandler) List(c *gin.Context) {
	filter := model.ProjectFilter{
		Status: model.ProjectStatus(c.Query("status")),
		TeamID: c.Query("team_id"),
	}
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: h.Store.ListProjects(filter)})
}

func (h *ProjectHandler) Get(c *gin.Context) {
	project := h.Store.GetProjectByID(c.Param("id"))
	if project == nil {
		c.JSON(http.StatusNotFound, model.ResponseApi{ApiMessage: "Project not found"})
		return
	}
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: project})
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req model.Project
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	created := h.Store.AddProject(req)
	c.JSON(http.StatusCreated, model.ResponseApi{ApiMessage: "Project created", Data: created})
}

func (h *ProjectHandler) Update(c *gin.Context) {
	var patch model.ProjectPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	updated := h.Store.UpdateProject(c.Param("id"), patch)
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: updated})
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	h.Store.DeleteProject(c.Param("id"))
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "Project deleted"})
}

func (h *ProjectHandler) AssignUser(c *gin.Context) {
	var req struct {
		UserID string `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	updated := h.Store.AssignUserToProject(c.Param("id"), req.UserID)
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: updated})
}

func (h *ProjectHandler) Progress(c *gin.Context) {
	progress, err := h.Store.GetProjectProgress(c.Param("id"))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			c.JSON(http.StatusNotFound, model.ResponseApi{ApiMessage: "Project not found"})
			return
		}
		h.Logger.Error().Err(err).Msg("progress computation failed")
		c.JSON(http.StatusInternalServerError, model.ResponseApi{ApiMessage: "Internal error"})
		return
	}
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: gin.H{"progress": progress}})
}

func (h *ProjectHandler) Tasks(c *gin.Context) {
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: h.Store.ListTasksByProject(c.Param("id"))})
}

func (h *ProjectHandler) DeadlineReminder(c *gin.Context) {
	h.Store.SendProjectDeadlineReminder(c.Param("id"))
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "Reminders sent"})
}

func (h *ProjectHandler) Attendance(c *gin.Context) {
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: h.Store.ListAttendanceForProject(c.Param("id"))})
}
