// Package usecase はタスクのオーナースコープ付きクエリエンジンを実装します。
package usecase

import (
	"context"
	"strings"
	"time"

	"taskhub_backend/internal/feature/tasks/domain/entity"
)

// ListFilters は信頼できないクエリパラメータをそのまま受け取ります。
// 検証はList内で行われ、許可リスト外の値はErrInvalidQueryで拒否されます。
type ListFilters struct {
	Status   string // 完全一致フィルタ（任意）
	Priority string // 完全一致フィルタ（任意）
	Search   string // タイトル・説明に対する大文字小文字を区別しない部分一致（任意）
	SortBy   string // 許可リスト内のソートフィールド（任意、デフォルトcreatedAt）
	Order    string // "asc" または "desc"（任意、デフォルトdesc）
}

// Query は検証済みのクエリ仕様です。リポジトリはこれをそのまま実行できます。
// OrderColumnは許可リスト由来のカラム名のみを取ります。
type Query struct {
	Status      entity.Status
	Priority    entity.Priority
	Search      string
	OrderColumn string
	Desc        bool
}

// NewTask はタスク作成の入力です。オーナーはペイロードに含まれず、
// 認証済みアイデンティティから別引数で渡されます。
type NewTask struct {
	Title       string
	Description string
	Status      entity.Status
	Priority    entity.Priority
	DueDate     *time.Time
}

// Patch はタスクの部分更新です。nilのフィールドは変更されません。
// ステータスは自由なenumであり、任意の値から任意の値へ遷移できます。
type Patch struct {
	Title       *string
	Description *string
	Status      *entity.Status
	Priority    *entity.Priority
	DueDate     *time.Time
}

// TaskStats はオーナー単位のステータス別集計です。
// タスクが0件のステータスも常にキーとして存在します。
type TaskStats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	InProgress int64 `json:"in-progress"`
	Completed  int64 `json:"completed"`
}

// TaskRepository はタスクの永続化層を抽象化します。
// 全メソッドがオーナーIDを別引数で受け取るため、ペイロード経由の
// オーナー上書きは構造的に不可能です。
// Goの慣例に従い、インターフェースはコンシューマー（usecase）が定義します。
type TaskRepository interface {
	// Find は owner_id = ownerID を基底述語としてタスクを検索します。
	Find(ctx context.Context, ownerID uint, q Query) ([]entity.Task, error)

	// FindOne は {id, owner} の複合述語で1件を原子的に取得します。
	// 不一致（存在しない・他オーナー所有の区別なし）はErrTaskNotFoundです。
	FindOne(ctx context.Context, id, ownerID uint) (*entity.Task, error)

	// Create はタスクを永続化します。
	Create(ctx context.Context, t *entity.Task) error

	// UpdateFields は複合述語付きの単一UPDATE文で指定フィールドを更新します。
	// 一致行が0件の場合はErrTaskNotFoundを返します。
	UpdateFields(ctx context.Context, id, ownerID uint, fields map[string]any) error

	// Delete は複合述語付きの単一DELETE文で削除します。
	// 一致行が0件の場合はErrTaskNotFoundを返します。
	Delete(ctx context.Context, id, ownerID uint) error

	// CountByStatus はオーナーのタスクをステータス別に集計します。
	CountByStatus(ctx context.Context, ownerID uint) (map[entity.Status]int64, error)
}

// sortColumns はソート可能フィールドの許可リストとカラム名への対応です。
// ここに無いフィールドの指定はErrInvalidQueryで拒否されます。
var sortColumns = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"status":    "status",
	"priority":  "priority",
	"dueDate":   "due_date",
}

// tasksUsecase はタスク操作のユースケースを実装します。
type tasksUsecase struct {
	tasks TaskRepository
}

// NewTasksUsecase はtasksUsecaseの新しいインスタンスを生成します。
func NewTasksUsecase(tasks TaskRepository) *tasksUsecase {
	return &tasksUsecase{tasks: tasks}
}

// buildQuery は信頼できないフィルタを検証済みのQueryへ変換します。
// 許可リスト外のソートフィールド・方向・enum外のフィルタ値は
// デフォルトへの黙殺ではなくErrInvalidQueryで拒否します。
func buildQuery(f ListFilters) (Query, error) {
	q := Query{
		OrderColumn: sortColumns["createdAt"],
		Desc:        true,
		Search:      strings.TrimSpace(f.Search),
	}

	if f.Status != "" {
		s := entity.Status(f.Status)
		if !s.Valid() {
			return Query{}, ErrInvalidQuery
		}
		q.Status = s
	}

	if f.Priority != "" {
		p := entity.Priority(f.Priority)
		if !p.Valid() {
			return Query{}, ErrInvalidQuery
		}
		q.Priority = p
	}

	if f.SortBy != "" {
		col, ok := sortColumns[f.SortBy]
		if !ok {
			return Query{}, ErrInvalidQuery
		}
		q.OrderColumn = col
	}

	switch f.Order {
	case "":
		// デフォルトは降順（新しい順）
	case "asc":
		q.Desc = false
	case "desc":
		q.Desc = true
	default:
		return Query{}, ErrInvalidQuery
	}

	return q, nil
}

// List はオーナーのタスクをフィルタ・ソート付きで取得します。
// owner述語は常に適用され、呼び出し側の入力で上書きできません。
func (u *tasksUsecase) List(ctx context.Context, ownerID uint, filters ListFilters) ([]entity.Task, error) {
	q, err := buildQuery(filters)
	if err != nil {
		return nil, err
	}
	return u.tasks.Find(ctx, ownerID, q)
}

// GetByID は複合述語 {id, owner} で1件を取得します。
func (u *tasksUsecase) GetByID(ctx context.Context, id, ownerID uint) (*entity.Task, error) {
	return u.tasks.FindOne(ctx, id, ownerID)
}

// Create は認証済みオーナーのタスクを作成します。
// オーナーは常にownerID引数から設定され、入力に含まれていても無視されます。
// 未指定のステータス・優先度にはデフォルト値を適用します。
func (u *tasksUsecase) Create(ctx context.Context, ownerID uint, input NewTask) (*entity.Task, error) {
	status := input.Status
	if status == "" {
		status = entity.StatusPending
	}
	if !status.Valid() {
		return nil, ErrInvalidQuery
	}

	priority := input.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidQuery
	}

	task := &entity.Task{
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		Priority:    priority,
		DueDate:     input.DueDate,
		OwnerID:     ownerID,
	}
	if err := u.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update は複合述語付きの原子的な更新を行い、更新後のタスクを返します。
// 所有権チェックと更新の間に読み書きの競合ウィンドウはありません。
func (u *tasksUsecase) Update(ctx context.Context, id, ownerID uint, patch Patch) (*entity.Task, error) {
	fields := map[string]any{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Description != nil {
		fields["description"] = *patch.Description
	}
	if patch.Status != nil {
		if !patch.Status.Valid() {
			return nil, ErrInvalidQuery
		}
		fields["status"] = *patch.Status
	}
	if patch.Priority != nil {
		if !patch.Priority.Valid() {
			return nil, ErrInvalidQuery
		}
		fields["priority"] = *patch.Priority
	}
	if patch.DueDate != nil {
		fields["due_date"] = *patch.DueDate
	}
	if len(fields) == 0 {
		return nil, ErrEmptyPatch
	}

	if err := u.tasks.UpdateFields(ctx, id, ownerID, fields); err != nil {
		return nil, err
	}
	return u.tasks.FindOne(ctx, id, ownerID)
}

// Delete は複合述語付きの原子的な削除を行います。
func (u *tasksUsecase) Delete(ctx context.Context, id, ownerID uint) error {
	return u.tasks.Delete(ctx, id, ownerID)
}

// Stats はオーナーのステータス別集計を返します。
// 4つのキーはタスクが0件でも常に揃っています。
func (u *tasksUsecase) Stats(ctx context.Context, ownerID uint) (*TaskStats, error) {
	counts, err := u.tasks.CountByStatus(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	stats := &TaskStats{
		Pending:    counts[entity.StatusPending],
		InProgress: counts[entity.StatusInProgress],
		Completed:  counts[entity.StatusCompleted],
	}
	// Total は全行の件数。既知の3ステータス以外がストアに紛れ込んでも
	// 合計から漏れないよう、マップの全エントリを足し込む。
	for _, n := range counts {
		stats.Total += n
	}
	return stats, nil
}
