// Package adapters はtasksフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"taskhub_backend/internal/feature/tasks/domain/entity"
	"taskhub_backend/internal/feature/tasks/usecase"
)

type taskPostgres struct {
	db *gorm.DB
}

var _ usecase.TaskRepository = (*taskPostgres)(nil)

// NewTaskPostgres は指定されたgorm.DB接続でtaskPostgresの新しいインスタンスを生成します。
func NewTaskPostgres(db *gorm.DB) *taskPostgres {
	return &taskPostgres{db: db}
}

// TaskModel はtasksテーブルの行表現です。
type TaskModel struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:100;not null"`
	Description string `gorm:"size:500"`

	Status   string `gorm:"size:16;not null;default:pending;index:task_owner_status,priority:2"`
	Priority string `gorm:"size:16;not null;default:medium"`

	DueDate *time.Time

	// OwnerID は作成後に変更されません。全クエリの基底述語です。
	OwnerID uint `gorm:"not null;index:task_owner_status,priority:1;index:task_owner_created,priority:1"`

	CreatedAt time.Time `gorm:"index:task_owner_created,priority:2"`
	UpdatedAt time.Time
}

func (TaskModel) TableName() string {
	return "tasks"
}

func toModel(e *entity.Task) TaskModel {
	return TaskModel{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		Status:      string(e.Status),
		Priority:    string(e.Priority),
		DueDate:     e.DueDate,
		OwnerID:     e.OwnerID,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func toEntity(m TaskModel) entity.Task {
	return entity.Task{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Status:      entity.Status(m.Status),
		Priority:    entity.Priority(m.Priority),
		DueDate:     m.DueDate,
		OwnerID:     m.OwnerID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// Find は owner_id = ownerID を基底述語として検証済みクエリを実行します。
// 同値のソートキーはidで二次ソートされ、結果順序は常に決定的です。
func (r *taskPostgres) Find(ctx context.Context, ownerID uint, q usecase.Query) ([]entity.Task, error) {
	tx := r.db.WithContext(ctx).Model(&TaskModel{}).Where("owner_id = ?", ownerID)

	if q.Status != "" {
		tx = tx.Where("status = ?", string(q.Status))
	}
	if q.Priority != "" {
		tx = tx.Where("priority = ?", string(q.Priority))
	}
	if q.Search != "" {
		pattern := "%" + strings.ToLower(q.Search) + "%"
		tx = tx.Where(
			r.db.Where("LOWER(title) LIKE ?", pattern).Or("LOWER(description) LIKE ?", pattern),
		)
	}

	// OrderColumnは許可リスト由来のカラム名のみが渡されます
	dir := "ASC"
	if q.Desc {
		dir = "DESC"
	}
	tx = tx.Order(q.OrderColumn + " " + dir).Order("id ASC")

	var rows []TaskModel
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Task, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// FindOne は {id, owner} の複合述語による単一クエリで取得します。
// idのみで取得してから所有者を確認する二段構えは行いません。
func (r *taskPostgres) FindOne(ctx context.Context, id, ownerID uint) (*entity.Task, error) {
	var m TaskModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTaskNotFound
		}
		return nil, err
	}
	t := toEntity(m)
	return &t, nil
}

// Create はタスクを永続化し、生成されたID・タイムスタンプをエンティティへ書き戻します。
func (r *taskPostgres) Create(ctx context.Context, t *entity.Task) error {
	m := toModel(t)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*t = toEntity(m)
	return nil
}

// UpdateFields は複合述語付きの単一UPDATE文で更新します。
// 一致行が0件（存在しない・他オーナー所有）の場合はErrTaskNotFoundです。
func (r *taskPostgres) UpdateFields(ctx context.Context, id, ownerID uint, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&TaskModel{}).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTaskNotFound
	}
	return nil
}

// Delete は複合述語付きの単一DELETE文で削除します。
func (r *taskPostgres) Delete(ctx context.Context, id, ownerID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&TaskModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrTaskNotFound
	}
	return nil
}

// statusCount はGROUP BY集計の走査先です。
type statusCount struct {
	Status string
	Count  int64
}

// CountByStatus はオーナーのタスクをステータス別にGROUP BYで集計します。
func (r *taskPostgres) CountByStatus(ctx context.Context, ownerID uint) (map[entity.Status]int64, error) {
	var rows []statusCount
	err := r.db.WithContext(ctx).Model(&TaskModel{}).
		Select("status, COUNT(*) AS count").
		Where("owner_id = ?", ownerID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entity.Status]int64, len(rows))
	for _, row := range rows {
		counts[entity.Status(row.Status)] = row.Count
	}
	return counts, nil
}
