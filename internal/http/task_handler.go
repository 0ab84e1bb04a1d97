package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskdeck/internal/domain"
	"taskdeck/internal/service"
)

const taskTimeLayout = "2006-01-02 15:04:05"

// TaskHandler mantiene dependencias para endpoints de tareas.
// Todas las rutas pasaron por el middleware JWT: la identidad del
// llamador sale de los claims y es la clave de propiedad.
type TaskHandler struct {
	logger   *zap.Logger
	taskServ *service.TaskService
}

func NewTaskHandler(logger *zap.Logger, taskServ *service.TaskService) *TaskHandler {
	return &TaskHandler{
		logger:   logger,
		taskServ: taskServ,
	}
}

func taskView(t domain.Task) gin.H {
	return gin.H{
		"id":          t.ID,
		"title":       t.Title,
		"description": t.Description,
		"isDone":      t.IsDone,
		"createdAt":   t.CreatedAt.Format(taskTimeLayout),
	}
}

func (h *TaskHandler) callerID(c *gin.Context) (string, bool) {
	claims, ok := GetAuthClaims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return "", false
	}
	return claims.UserID, true
}

// Create maneja POST /api/tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create task request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request."})
		return
	}

	_, err := h.taskServ.Create(c.Request.Context(), userID, req.Title, req.Description)
	if err != nil {
		var verrs service.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
			return
		}
		h.logger.Error("create task failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create task."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Task created"})
}

// List maneja GET /api/tasks con paginado por query (?page&limit).
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.taskServ.List(c.Request.Context(), userID, page, limit)
	if err != nil {
		h.logger.Error("list tasks failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list tasks."})
		return
	}

	data := make([]gin.H, 0, len(result.Items))
	for _, t := range result.Items {
		data = append(data, taskView(t))
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  data,
		"total": result.Total,
		"page":  result.Page,
		"pages": result.Pages,
	})
}

// Get maneja GET /api/tasks/:id.
func (h *TaskHandler) Get(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	task, err := h.taskServ.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondTaskError(c, err, "get task failed")
		return
	}
	c.JSON(http.StatusOK, taskView(task))
}

// Update maneja PUT /api/tasks/:id. Los campos ausentes conservan
// el valor actual, de modo que PUT y PATCH comparten semántica.
func (h *TaskHandler) Update(c *gin.Context) {
	h.applyUpdate(c, "Task updated")
}

// Patch maneja PATCH /api/tasks/:id.
func (h *TaskHandler) Patch(c *gin.Context) {
	h.applyUpdate(c, "Task partially updated")
}

func (h *TaskHandler) applyUpdate(c *gin.Context, message string) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		IsDone      *bool   `json:"isDone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update task request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request."})
		return
	}

	_, err := h.taskServ.Update(c.Request.Context(), userID, c.Param("id"), service.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		IsDone:      req.IsDone,
	})
	if err != nil {
		var verrs service.ValidationErrors
		if errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": verrs})
			return
		}
		h.respondTaskError(c, err, "update task failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Delete maneja DELETE /api/tasks/:id.
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	if err := h.taskServ.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.respondTaskError(c, err, "delete task failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

// Complete maneja PATCH /api/tasks/:id/complete.
func (h *TaskHandler) Complete(c *gin.Context) {
	userID, ok := h.callerID(c)
	if !ok {
		return
	}

	if err := h.taskServ.Complete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.respondTaskError(c, err, "complete task failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task marked as completed"})
}

func (h *TaskHandler) respondTaskError(c *gin.Context, err error, logMsg string) {
	if errors.Is(err, service.ErrTaskNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found or access denied"})
		return
	}
	h.logger.Error(logMsg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error."})
}
