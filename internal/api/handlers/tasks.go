package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/roksva123/go-projecthub-backend/internal/model"
	"github.com/roksva123/go-projecthub-backend/internal/store"
)

type TaskHandler struct {
	Store  *store.Store
	Logger zerolog.Logger
}

func NewTaskHandler(s *store.Store, logger zerolog.Logger) *TaskHandler {
	return &TaskHandler{Store: s, Logger: logger}
}

func (h *TaskHandler) Get(c *gin.Context) {
	task := h.Store.GetTaskByID(c.Param("id"))
	if task == nil {
		c.JSON(http.StatusNotFound, model.ResponseApi{ApiMessage: "Task not found"})
		return
	}
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: task})
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req model.Task
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	created := h.Store.AddTask(req)
	c.JSON(http.StatusCreated, model.ResponseApi{ApiMessage: "Task created", Data: created})
}

func (h *TaskHandler) Update(c *gin.Context) {
	var patch model.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	updated := h.Store.UpdateTask(c.Param("id"), patch)
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: updated})
}

func (h *TaskHandler) Delete(c *gin.Context) {
	h.Store.DeleteTask(c.Param("id"))
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "Task deleted"})
}

func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	var req struct {
		Status model.Status `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	updated := h.Store.ChangeTaskStatus(c.Param("id"), req.Status)
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: updated})
}

func (h *TaskHandler) AddLabel(c *gin.Context) {
	var req struct {
		Label string `json:"label" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	updated := h.Store.AddLabelToTask(c.Param("id"), req.Label)
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: updated})
}

func (h *TaskHandler) SetDeadline(c *gin.Context) {
	var req struct {
		DueDate time.Time `json:"dueDate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	updated := h.Store.SetTaskDeadline(c.Param("id"), req.DueDate)
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: updated})
}

func (h *TaskHandler) AttachFile(c *gin.Context) {
	var req model.TaskFile
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	updated := h.Store.AttachFileToTask(c.Param("id"), req)
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: updated})
}

// Overdue and Upcoming operate per project, passed as a query parameter.
func (h *TaskHandler) Overdue(c *gin.Context) {
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: h.Store.ListOverdueTasks(c.Query("project_id"))})
}

func (h *TaskHandler) Upcoming(c *gin.Context) {
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: h.Store.GetUpcomingDeadlines(c.Query("project_id"))})
}

func (h *TaskHandler) ListComments(c *gin.Context) {
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: h.Store.ListComments(c.Param("id"))})
}

func (h *TaskHandler) AddComment(c *gin.Context) {
	var req model.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	created := h.Store.AddCommentToTask(c.Param("id"), req)
	c.JSON(http.StatusCreated, model.ResponseApi{ApiMessage: "Comment added", Data: created})
}

func (h *TaskHandler) DeleteComment(c *gin.Context) {
	h.Store.DeleteComment(c.Param("commentId"))
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "Comment deleted"})
}
