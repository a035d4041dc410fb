package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/roksva123/go-projecthub-backend/internal/errs"
	"github.com/roksva123/go-projecthub-backend/internal/model"
	"github.com/roksva123/go-projecthub-backend/internal/store"
)

type ReportHandler struct {
	Store  *store.Store
	Logger zerolog.Logger
}

func NewReportHandler(s *store.Store, logger zerolog.Logger) *ReportHandler {
	return &ReportHandler{Store: s, Logger: logger}
}

func (h *ReportHandler) List(c *gin.Context) {
	filter := model.ReportFilter{
		Type:   c.Query("type"),
		Author: c.Query("author"),
	}
	if tags := c.QueryArray("tag"); len(tags) > 0 {
		filter.Tags = tags
	}
	if v := c.Query("start"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			filter.DateStart = &ts
		}
	}
	if v := c.Query("end"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			filter.DateEnd = &ts
		}
	}
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: h.Store.ListReports(filter)})
}

func (h *ReportHandler) Get(c *gin.Context) {
	report := h.Store.GetReportByID(c.Param("id"))
	if report == nil {
		c.JSON(http.StatusNotFound, model.ResponseApi{ApiMessage: "Report not found"})
		return
	}
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: report})
}

func (h *ReportHandler) Create(c *gin.Context) {
	var req store.ReportData
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	created := h.Store.CreateReport(req)
	c.JSON(http.StatusCreated, model.ResponseApi{ApiMessage: "Report created", Data: created})
}

func (h *ReportHandler) CreateCustom(c *gin.Context) {
	var req store.CustomReportOptions
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	created := h.Store.CreateCustomReport(req)
	c.JSON(http.StatusCreated, model.ResponseApi{ApiMessage: "Report created", Data: created})
}

func (h *ReportHandler) SubmitDaily(c *gin.Context) {
	var req model.DailyReport
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	created := h.Store.SubmitDailyReport(req)
	c.JSON(http.StatusCreated, model.ResponseApi{ApiMessage: "Daily report submitted", Data: created})
}

func (h *ReportHandler) Update(c *gin.Context) {
	var patch model.ReportPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, model.ResponseApi{ApiMessage: "Invalid request: " + err.Error()})
		return
	}
	updated := h.Store.UpdateReport(c.Param("id"), patch)
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: updated})
}

func (h *ReportHandler) Delete(c *gin.Context) {
	h.Store.DeleteReport(c.Param("id"))
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "Report deleted"})
}

// WeeklySummary derives the trailing-week project report.
func (h *ReportHandler) WeeklySummary(c *gin.Context) {
	summary, err := h.Store.GenerateWeeklySummary(c.Query("project_id"))
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			c.JSON(http.StatusNotFound, model.ResponseApi{ApiMessage: "Project not found"})
			return
		}
		h.Logger.Error().Err(err).Msg("weekly summary failed")
		c.JSON(http.StatusInternalServerError, model.ResponseApi{ApiMessage: "Internal error"})
		return
	}
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: summary})
}

// Performance derives the per-user performance report for a period.
func (h *ReportHandler) Performance(c *gin.Context) {
	period := model.ReportPeriod(c.DefaultQuery("period", string(model.PeriodWeekly)))
	report, err := h.Store.GeneratePerformanceReport(c.Query("user_id"), period)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			c.JSON(http.StatusNotFound, model.ResponseApi{ApiMessage: "User not found"})
			return
		}
		h.Logger.Error().Err(err).Msg("performance report failed")
		c.JSON(http.StatusInternalServerError, model.ResponseApi{ApiMessage: "Internal error"})
		return
	}
	c.JSON(http.StatusOK, model.ResponseApi{ApiMessage: "OK", Data: report})
}
