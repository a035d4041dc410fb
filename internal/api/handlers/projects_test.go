package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roksva123/go-projecthub-backend/internal/model"
	"github.com/roksva123/go-projecthub-backend/internal/storage"
	"github.com/roksva123/go-projecthub-backend/internal/store"
)

func testServer() (*gin.Engine, *store.Store) {
	gin.SetMode(gin.TestMode)
	codec := storage.NewCodec(storage.NewMemoryKV(), "test", zerolog.Nop())
	st := store.New(codec, zerolog.Nop())

	projectHandler := NewProjectHandler(st, zerolog.Nop())
	taskHandler := NewTaskHandler(st, zerolog.Nop())
	reportHandler := NewReportHandler(st, zerolog.Nop())

	r := gin.New()
	api := r.Group("/api/v1")
	api.GET("/projects", projectHandler.List)
	api.POST("/projects", projectHandler.Create)
	api.GET("/projects/:id", projectHandler.Get)
	api.DELETE("/projects/:id", projectHandler.Delete)
	api.GET("/projects/:id/progress", projectHandler.Progress)
	api.POST("/tasks", taskHandler.Create)
	api.POST("/tasks/:id/comments", taskHandler.AddComment)
	api.GET("/tasks/:id/comments", taskHandler.ListComments)
	api.GET("/reports/weekly-summary", reportHandler.WeeklySummary)
	return r, st
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetProjectNotFound(t *testing.T) {
	r, _ := testServer()
	w := doJSON(t, r, http.MethodGet, "/api/v1/projects/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateAndGetProject(t *testing.T) {
	r, _ := testServer()

	w := doJSON(t, r, http.MethodPost, "/api/v1/projects", model.Project{Name: "API Gateway"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data model.Project `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.NotEmpty(t, created.Data.ID)

	w = doJSON(t, r, http.MethodGet, "/api/v1/projects/"+created.Data.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "API Gateway")
}

func TestProgressUnknownProjectIs404(t *testing.T) {
	r, _ := testServer()
	w := doJSON(t, r, http.MethodGet, "/api/v1/projects/nope/progress", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProgressOfSeedProject(t *testing.T) {
	r, _ := testServer()
	w := doJSON(t, r, http.MethodGet, "/api/v1/projects/1/progress", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Progress float64 `json:"progress"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.InDelta(t, 50.0, resp.Data.Progress, 0.001)
}

func TestDeleteProjectIsIdempotentOverHTTP(t *testing.T) {
	r, st := testServer()

	w := doJSON(t, r, http.MethodDelete, "/api/v1/projects/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodDelete, "/api/v1/projects/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Empty(t, st.ListTasksByProject("1"))
}

func TestTaskCreateValidation(t *testing.T) {
	r, _ := testServer()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", bytes.NewBufferString("{broken"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommentFlow(t *testing.T) {
	r, st := testServer()

	w := doJSON(t, r, http.MethodPost, "/api/v1/tasks/task-1/comments", model.Comment{
		UserID:  "user-1",
		Content: "ping @mike.johnson",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/tasks/task-1/comments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ping @mike.johnson")

	require.Len(t, st.GetUserNotifications("user-2"), 1)
}

func TestWeeklySummaryUnknownProjectIs404(t *testing.T) {
	r, _ := testServer()
	w := doJSON(t, r, http.MethodGet, "/api/v1/reports/weekly-summary?project_id=nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
