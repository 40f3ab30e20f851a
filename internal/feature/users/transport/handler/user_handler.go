// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub_backend/internal/feature/auth/domain/entity"
	authdto "taskhub_backend/internal/feature/auth/transport/http/dto"
	"taskhub_backend/internal/feature/users/transport/http/dto"
	"taskhub_backend/internal/feature/users/usecase"
	jwtmw "taskhub_backend/internal/platform/jwt"
)

// UserUsecase はプロフィール管理のユースケースを定義します。
// Goの慣例に従い、インターフェースはコンシューマー（handler）が定義します。
type UserUsecase interface {
	GetProfile(ctx context.Context, id uint) (*entity.User, error)
	UpdateProfile(ctx context.Context, id uint, patch usecase.ProfilePatch) (*entity.User, error)
	ChangePassword(ctx context.Context, id uint, current, newPassword string) error
	DeactivateAccount(ctx context.Context, id uint) error
	ListUsers(ctx context.Context) ([]entity.User, error)
}

// UserHandler はプロフィール管理のHTTPリクエストを処理します。
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler はUserHandlerの新しいインスタンスを生成します。
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

func callerID(c *gin.Context) (uint, bool) {
	id, ok := jwtmw.IdentityFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
		return 0, false
	}
	return id.ID, true
}

// GetProfile は GET /users/profile を処理します。
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}
	user, err := h.users.GetProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.Error("get profile failed", "error", err, "user_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, authdto.NewUserItem(user))
}

// UpdateProfile は PUT /users/profile を処理します。
// メールアドレス変更が他アカウントと衝突する場合は409を返します。
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), id, usecase.ProfilePatch{
		Name:   req.Name,
		Email:  req.Email,
		Avatar: req.Avatar,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmailAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
		case errors.Is(err, usecase.ErrEmptyPatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		case errors.Is(err, usecase.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			slog.Error("update profile failed", "error", err, "user_id", id)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		return
	}
	slog.Info("profile updated", "user_id", id)
	c.JSON(http.StatusOK, authdto.NewUserItem(user))
}

// ChangePassword は PUT /users/change-password を処理します。
// 現在のパスワードが一致しない場合は401を返します。
func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	err := h.users.ChangePassword(c.Request.Context(), id, req.CurrentPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, usecase.ErrWrongPassword) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "current password is incorrect"})
			return
		}
		slog.Error("change password failed", "error", err, "user_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	slog.Info("password changed", "user_id", id)
	c.JSON(http.StatusOK, gin.H{"message": "password updated successfully"})
}

// DeleteAccount は DELETE /users/account を処理します（ソフト削除）。
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	id, ok := callerID(c)
	if !ok {
		return
	}
	if err := h.users.DeactivateAccount(c.Request.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		slog.Error("deactivate account failed", "error", err, "user_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	slog.Info("account deactivated", "user_id", id)
	c.JSON(http.StatusOK, gin.H{"message": "account deactivated successfully"})
}

// List は GET /users を処理します。管理者ロール専用です。
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		slog.Error("list users failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	out := make([]authdto.UserItem, 0, len(users))
	for i := range users {
		out = append(out, authdto.NewUserItem(&users[i]))
	}
	c.JSON(http.StatusOK, out)
}
