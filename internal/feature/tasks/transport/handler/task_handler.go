// Package handler はtasksフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskhub_backend/internal/feature/tasks/domain/entity"
	"taskhub_backend/internal/feature/tasks/transport/http/dto"
	"taskhub_backend/internal/feature/tasks/usecase"
	jwtmw "taskhub_backend/internal/platform/jwt"
)

// TasksUsecase はタスク操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはコンシューマー（handler）が定義します。
type TasksUsecase interface {
	List(ctx context.Context, ownerID uint, filters usecase.ListFilters) ([]entity.Task, error)
	GetByID(ctx context.Context, id, ownerID uint) (*entity.Task, error)
	Create(ctx context.Context, ownerID uint, input usecase.NewTask) (*entity.Task, error)
	Update(ctx context.Context, id, ownerID uint, patch usecase.Patch) (*entity.Task, error)
	Delete(ctx context.Context, id, ownerID uint) error
	Stats(ctx context.Context, ownerID uint) (*usecase.TaskStats, error)
}

// TaskHandler はタスク操作のHTTPリクエストを処理します。
// 全エンドポイントが認証必須で、オーナーはコンテキストのアイデンティティから取得します。
type TaskHandler struct {
	tasks TasksUsecase
}

// NewTaskHandler はTaskHandlerの新しいインスタンスを生成します。
func NewTaskHandler(tasks TasksUsecase) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// ownerFrom は認証ミドルウェアが添付したアイデンティティからオーナーIDを取得します。
func ownerFrom(c *gin.Context) (uint, bool) {
	id, ok := jwtmw.IdentityFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
		return 0, false
	}
	return id.ID, true
}

// taskIDParam はパスパラメータ:idを解析します。
func taskIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		// 解析不能なIDは存在しないIDと同様に404として扱う
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return 0, false
	}
	return uint(id), true
}

// List は GET /tasks を処理します。
// 許可リスト外のソート・フィルタ値は400で拒否されます。
func (h *TaskHandler) List(c *gin.Context) {
	owner, ok := ownerFrom(c)
	if !ok {
		return
	}

	var req dto.ListTasksReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	tasks, err := h.tasks.List(c.Request.Context(), owner, usecase.ListFilters{
		Status:   req.Status,
		Priority: req.Priority,
		Search:   req.Search,
		SortBy:   req.SortBy,
		Order:    req.Order,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameter"})
			return
		}
		slog.Error("task list failed", "error", err, "owner_id", owner)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	items := make([]dto.TaskItem, 0, len(tasks))
	for i := range tasks {
		items = append(items, dto.NewTaskItem(&tasks[i]))
	}
	c.JSON(http.StatusOK, dto.TaskListResp{Count: len(items), Data: items})
}

// Stats は GET /tasks/stats を処理します。
func (h *TaskHandler) Stats(c *gin.Context) {
	owner, ok := ownerFrom(c)
	if !ok {
		return
	}
	stats, err := h.tasks.Stats(c.Request.Context(), owner)
	if err != nil {
		slog.Error("task stats failed", "error", err, "owner_id", owner)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetByID は GET /tasks/:id を処理します。
// 存在しないIDと他オーナーのIDは同一の404を返します。
func (h *TaskHandler) GetByID(c *gin.Context) {
	owner, ok := ownerFrom(c)
	if !ok {
		return
	}
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), id, owner)
	if err != nil {
		if errors.Is(err, usecase.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		slog.Error("task get failed", "error", err, "owner_id", owner, "task_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskItem(task))
}

// Create は POST /tasks を処理します。
// ペイロードにオーナーは存在せず、認証済みアイデンティティが強制設定されます。
func (h *TaskHandler) Create(c *gin.Context) {
	owner, ok := ownerFrom(c)
	if !ok {
		return
	}

	var req dto.CreateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), owner, usecase.NewTask{
		Title:       req.Title,
		Description: req.Description,
		Status:      entity.Status(req.Status),
		Priority:    entity.Priority(req.Priority),
		DueDate:     req.DueDate,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidQuery) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		slog.Error("task create failed", "error", err, "owner_id", owner)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	slog.Info("task created", "owner_id", owner, "task_id", task.ID)
	c.JSON(http.StatusCreated, dto.NewTaskItem(task))
}

// Update は PUT /tasks/:id を処理します。
func (h *TaskHandler) Update(c *gin.Context) {
	owner, ok := ownerFrom(c)
	if !ok {
		return
	}
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	patch := usecase.Patch{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		s := entity.Status(*req.Status)
		patch.Status = &s
	}
	if req.Priority != nil {
		p := entity.Priority(*req.Priority)
		patch.Priority = &p
	}

	task, err := h.tasks.Update(c.Request.Context(), id, owner, patch)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		case errors.Is(err, usecase.ErrEmptyPatch), errors.Is(err, usecase.ErrInvalidQuery):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		default:
			slog.Error("task update failed", "error", err, "owner_id", owner, "task_id", id)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	c.JSON(http.StatusOK, dto.NewTaskItem(task))
}

// Delete は DELETE /tasks/:id を処理します。
func (h *TaskHandler) Delete(c *gin.Context) {
	owner, ok := ownerFrom(c)
	if !ok {
		return
	}
	id, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), id, owner); err != nil {
		if errors.Is(err, usecase.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		slog.Error("task delete failed", "error", err, "owner_id", owner, "task_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	slog.Info("task deleted", "owner_id", owner, "task_id", id)
	c.JSON(http.StatusOK, gin.H{"message": "task deleted successfully"})
}
