// Package dto はtasksフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import "time"

// CreateTaskReq は POST /tasks のリクエストボディです。
// オーナーを示すフィールドは存在しません。オーナーは常に認証済み
// アイデンティティから設定されます。
type CreateTaskReq struct {
	Title       string     `json:"title" binding:"required,min=3,max=100"`
	Description string     `json:"description" binding:"omitempty,max=500"`
	Status      string     `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTaskReq は PUT /tasks/:id のリクエストボディです。
// nilのフィールドは変更されません。
type UpdateTaskReq struct {
	Title       *string    `json:"title" binding:"omitempty,min=3,max=100"`
	Description *string    `json:"description" binding:"omitempty,max=500"`
	Status      *string    `json:"status" binding:"omitempty,oneof=pending in-progress completed"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
}

// ListTasksReq は GET /tasks のクエリパラメータです。
// 値の検証（enumメンバーシップ・ソート許可リスト）はクエリエンジン側で行われます。
type ListTasksReq struct {
	Status   string `form:"status"`
	Priority string `form:"priority"`
	Search   string `form:"search"`
	SortBy   string `form:"sortBy"`
	Order    string `form:"order"`
}
