package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/roksva123/go-projecthub-backend/internal/model"
	"github.com/roksva123/go-projecthub-backend/internal/store"
)

// OptionsHandler covers the custom taxonomy records: project statuses,
// task labels, report categories.
type OptionsHandler struct {
	Store  *store.Store
	Logger zerolog.Logger
}

func NewOptionsHandler(s *store.Store, logger zerolog.Logger) *OptionsHandler {
	return &OptionsHandler{Store: s, Logger: logger}
}

func (h *OptionsHandler) List(c *gin.Context) {
	kind := model.CustomOptionKind(c.Param("kind"))
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: h.Store.ListCustomOptions(kind)})
}

func (h *OptionsHandler) CreateStatus(c *gin.Context) {
	var req struct {
		ProjectID string `json:"projectId" binding:"required"`
		Name      string `json:"name" binding:"required"`
		Color     string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	created := h.Store.CreateCustomStatus(req.ProjectID, req.Name, req.Color)
	c.JSON(http.StatusCreated, model.ResponseApi{ApiMessage: "Status created", Data: created})
}

func (h *OptionsHandler) CreateLabel(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Color string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	created := h.Store.AddTaskLabel(req.Name, req.Color)
	c.JSON(http.StatusCreated, model.ResponseApi{ApiMessage: "Label created", Data: created})
}

func (h *OptionsHandler) CreateReportCategory(c *gin.Context) {
	var req struct {
		Name        string   `json:"name" binding:"required"`
		Description string   `json:"description"`
		Metrics     []string `json:"metrics"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	created := h.Store.CreateReportCategory(req.Name, req.Description, req.Metrics)
	c.JSON(http.StatusCreated, model.ResponseApi{ApiMessage: "Category created", Data: created})
}
