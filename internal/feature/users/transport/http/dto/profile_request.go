// Package dto はusersフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// UpdateProfileReq は PUT /users/profile のリクエストボディです。
// nilのフィールドは変更されません。
type UpdateProfileReq struct {
	Name   *string `json:"name" binding:"omitempty,min=2,max=50"`
	Email  *string `json:"email" binding:"omitempty,email"`
	Avatar *string `json:"avatar" binding:"omitempty,max=512"`
}

// ChangePasswordReq は PUT /users/change-password のリクエストボディです。
type ChangePasswordReq struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}
