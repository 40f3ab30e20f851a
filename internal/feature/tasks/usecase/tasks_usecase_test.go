package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskhub_backend/internal/feature/tasks/domain/entity"
)

// mockTaskRepository is a mock implementation of the TaskRepository interface.
type mockTaskRepository struct {
	FindFunc          func(ownerID uint, q Query) ([]entity.Task, error)
	FindOneFunc       func(id, ownerID uint) (*entity.Task, error)
	CreateFunc        func(t *entity.Task) error
	UpdateFieldsFunc  func(id, ownerID uint, fields map[string]any) error
	DeleteFunc        func(id, ownerID uint) error
	CountByStatusFunc func(ownerID uint) (map[entity.Status]int64, error)
}

func (m *mockTaskRepository) Find(ctx context.Context, ownerID uint, q Query) ([]entity.Task, error) {
	if m.FindFunc != nil {
		return m.FindFunc(ownerID, q)
	}
	return nil, nil
}

func (m *mockTaskRepository) FindOne(ctx context.Context, id, ownerID uint) (*entity.Task, error) {
	if m.FindOneFunc != nil {
		return m.FindOneFunc(id, ownerID)
	}
	return nil, ErrTaskNotFound
}

func (m *mockTaskRepository) Create(ctx context.Context, t *entity.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(t)
	}
	return nil
}

func (m *mockTaskRepository) UpdateFields(ctx context.Context, id, ownerID uint, fields map[string]any) error {
	if m.UpdateFieldsFunc != nil {
		return m.UpdateFieldsFunc(id, ownerID, fields)
	}
	return nil
}

func (m *mockTaskRepository) Delete(ctx context.Context, id, ownerID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id, ownerID)
	}
	return nil
}

func (m *mockTaskRepository) CountByStatus(ctx context.Context, ownerID uint) (map[entity.Status]int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ownerID)
	}
	return map[entity.Status]int64{}, nil
}

func TestTasksUsecase_List(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to created_at descending", func(t *testing.T) {
		var captured Query
		mockRepo := &mockTaskRepository{
			FindFunc: func(ownerID uint, q Query) ([]entity.Task, error) {
				captured = q
				return []entity.Task{}, nil
			},
		}

		uc := NewTasksUsecase(mockRepo)
		_, err := uc.List(ctx, 1, ListFilters{})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if captured.OrderColumn != "created_at" {
			t.Errorf("expected order column 'created_at', got %q", captured.OrderColumn)
		}
		if !captured.Desc {
			t.Error("expected descending order by default")
		}
	})

	t.Run("owner ID is forwarded unchanged", func(t *testing.T) {
		var capturedOwner uint
		mockRepo := &mockTaskRepository{
			FindFunc: func(ownerID uint, q Query) ([]entity.Task, error) {
				capturedOwner = ownerID
				return nil, nil
			},
		}

		uc := NewTasksUsecase(mockRepo)
		_, err := uc.List(ctx, 42, ListFilters{})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if capturedOwner != 42 {
			t.Errorf("expected owner 42, got %d", capturedOwner)
		}
	})

	t.Run("valid filters map to a validated query", func(t *testing.T) {
		var captured Query
		mockRepo := &mockTaskRepository{
			FindFunc: func(ownerID uint, q Query) ([]entity.Task, error) {
				captured = q
				return nil, nil
			},
		}

		uc := NewTasksUsecase(mockRepo)
		_, err := uc.List(ctx, 1, ListFilters{
			Status:   "pending",
			Priority: "high",
			Search:   "  milk  ",
			SortBy:   "dueDate",
			Order:    "asc",
		})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if captured.Status != entity.StatusPending {
			t.Errorf("expected status %q, got %q", entity.StatusPending, captured.Status)
		}
		if captured.Priority != entity.PriorityHigh {
			t.Errorf("expected priority %q, got %q", entity.PriorityHigh, captured.Priority)
		}
		if captured.Search != "milk" {
			t.Errorf("expected trimmed search 'milk', got %q", captured.Search)
		}
		if captured.OrderColumn != "due_date" {
			t.Errorf("expected order column 'due_date', got %q", captured.OrderColumn)
		}
		if captured.Desc {
			t.Error("expected ascending order")
		}
	})

	t.Run("invalid filters are rejected, not silently defaulted", func(t *testing.T) {
		// 許可リスト外の値はErrInvalidQueryで拒否される
		cases := []struct {
			name    string
			filters ListFilters
		}{
			{"unknown status", ListFilters{Status: "done"}},
			{"unknown priority", ListFilters{Priority: "urgent"}},
			{"unknown sort field", ListFilters{SortBy: "ownerId"}},
			{"sort field probing object internals", ListFilters{SortBy: "__proto__"}},
			{"raw column name instead of API name", ListFilters{SortBy: "created_at"}},
			{"unknown order direction", ListFilters{Order: "sideways"}},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				mockRepo := &mockTaskRepository{
					FindFunc: func(ownerID uint, q Query) ([]entity.Task, error) {
						t.Error("repository should not be called for invalid filters")
						return nil, nil
					},
				}

				uc := NewTasksUsecase(mockRepo)
				_, err := uc.List(ctx, 1, tc.filters)

				if !errors.Is(err, ErrInvalidQuery) {
					t.Errorf("expected ErrInvalidQuery, got: %v", err)
				}
			})
		}
	})
}

func TestTasksUsecase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("applies defaults and sets owner", func(t *testing.T) {
		var created *entity.Task
		mockRepo := &mockTaskRepository{
			CreateFunc: func(task *entity.Task) error {
				created = task
				task.ID = 10
				return nil
			},
		}

		uc := NewTasksUsecase(mockRepo)
		task, err := uc.Create(ctx, 7, NewTask{Title: "Buy milk"})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if task.ID != 10 {
			t.Errorf("expected ID 10, got %d", task.ID)
		}
		if created.Status != entity.StatusPending {
			t.Errorf("expected default status %q, got %q", entity.StatusPending, created.Status)
		}
		if created.Priority != entity.PriorityMedium {
			t.Errorf("expected default priority %q, got %q", entity.PriorityMedium, created.Priority)
		}
		if created.OwnerID != 7 {
			t.Errorf("expected owner 7, got %d", created.OwnerID)
		}
	})

	t.Run("explicit values are kept", func(t *testing.T) {
		due := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
		var created *entity.Task
		mockRepo := &mockTaskRepository{
			CreateFunc: func(task *entity.Task) error {
				created = task
				return nil
			},
		}

		uc := NewTasksUsecase(mockRepo)
		_, err := uc.Create(ctx, 1, NewTask{
			Title:    "Ship release",
			Status:   entity.StatusInProgress,
			Priority: entity.PriorityHigh,
			DueDate:  &due,
		})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if created.Status != entity.StatusInProgress {
			t.Errorf("expected status %q, got %q", entity.StatusInProgress, created.Status)
		}
		if created.Priority != entity.PriorityHigh {
			t.Errorf("expected priority %q, got %q", entity.PriorityHigh, created.Priority)
		}
		if created.DueDate == nil || !created.DueDate.Equal(due) {
			t.Errorf("expected due date %v, got %v", due, created.DueDate)
		}
	})

	t.Run("invalid enum values are rejected", func(t *testing.T) {
		mockRepo := &mockTaskRepository{
			CreateFunc: func(task *entity.Task) error {
				t.Error("repository should not be called")
				return nil
			},
		}

		uc := NewTasksUsecase(mockRepo)

		if _, err := uc.Create(ctx, 1, NewTask{Title: "x", Status: "done"}); !errors.Is(err, ErrInvalidQuery) {
			t.Errorf("expected ErrInvalidQuery for bad status, got: %v", err)
		}
		if _, err := uc.Create(ctx, 1, NewTask{Title: "x", Priority: "urgent"}); !errors.Is(err, ErrInvalidQuery) {
			t.Errorf("expected ErrInvalidQuery for bad priority, got: %v", err)
		}
	})
}

func TestTasksUsecase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("only patched fields are written", func(t *testing.T) {
		var capturedFields map[string]any
		mockRepo := &mockTaskRepository{
			UpdateFieldsFunc: func(id, ownerID uint, fields map[string]any) error {
				capturedFields = fields
				return nil
			},
			FindOneFunc: func(id, ownerID uint) (*entity.Task, error) {
				return &entity.Task{ID: id, OwnerID: ownerID, Title: "Renamed"}, nil
			},
		}

		status := entity.StatusCompleted
		title := "Renamed"
		uc := NewTasksUsecase(mockRepo)
		task, err := uc.Update(ctx, 5, 1, Patch{Title: &title, Status: &status})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(capturedFields) != 2 {
			t.Errorf("expected 2 fields, got %d: %v", len(capturedFields), capturedFields)
		}
		if capturedFields["title"] != "Renamed" {
			t.Errorf("unexpected title field: %v", capturedFields["title"])
		}
		if capturedFields["status"] != entity.StatusCompleted {
			t.Errorf("unexpected status field: %v", capturedFields["status"])
		}
		if task.Title != "Renamed" {
			t.Errorf("expected updated task to be returned, got %+v", task)
		}
	})

	t.Run("empty patch is rejected", func(t *testing.T) {
		mockRepo := &mockTaskRepository{
			UpdateFieldsFunc: func(id, ownerID uint, fields map[string]any) error {
				t.Error("repository should not be called")
				return nil
			},
		}

		uc := NewTasksUsecase(mockRepo)
		_, err := uc.Update(ctx, 5, 1, Patch{})

		if !errors.Is(err, ErrEmptyPatch) {
			t.Errorf("expected ErrEmptyPatch, got: %v", err)
		}
	})

	t.Run("invalid status in patch is rejected", func(t *testing.T) {
		bad := entity.Status("archived")
		mockRepo := &mockTaskRepository{}

		uc := NewTasksUsecase(mockRepo)
		_, err := uc.Update(ctx, 5, 1, Patch{Status: &bad})

		if !errors.Is(err, ErrInvalidQuery) {
			t.Errorf("expected ErrInvalidQuery, got: %v", err)
		}
	})

	t.Run("not found passes through", func(t *testing.T) {
		mockRepo := &mockTaskRepository{
			UpdateFieldsFunc: func(id, ownerID uint, fields map[string]any) error {
				return ErrTaskNotFound
			},
		}

		title := "ghost"
		uc := NewTasksUsecase(mockRepo)
		_, err := uc.Update(ctx, 99, 1, Patch{Title: &title})

		if !errors.Is(err, ErrTaskNotFound) {
			t.Errorf("expected ErrTaskNotFound, got: %v", err)
		}
	})
}

func TestTasksUsecase_Stats(t *testing.T) {
	ctx := context.Background()

	t.Run("all status keys are present even when zero", func(t *testing.T) {
		mockRepo := &mockTaskRepository{
			CountByStatusFunc: func(ownerID uint) (map[entity.Status]int64, error) {
				// オーナーにタスクが1件もない場合
				return map[entity.Status]int64{}, nil
			},
		}

		uc := NewTasksUsecase(mockRepo)
		stats, err := uc.Stats(ctx, 1)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.Total != 0 || stats.Pending != 0 || stats.InProgress != 0 || stats.Completed != 0 {
			t.Errorf("expected zeroed stats, got %+v", stats)
		}
	})

	t.Run("total is the sum of per-status counts", func(t *testing.T) {
		mockRepo := &mockTaskRepository{
			CountByStatusFunc: func(ownerID uint) (map[entity.Status]int64, error) {
				return map[entity.Status]int64{
					entity.StatusPending:    2,
					entity.StatusInProgress: 1,
					entity.StatusCompleted:  3,
				}, nil
			},
		}

		uc := NewTasksUsecase(mockRepo)
		stats, err := uc.Stats(ctx, 1)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.Total != 6 {
			t.Errorf("expected total 6, got %d", stats.Total)
		}
		if stats.Pending != 2 || stats.InProgress != 1 || stats.Completed != 3 {
			t.Errorf("unexpected per-status counts: %+v", stats)
		}
	})

	t.Run("unknown statuses still count toward the total", func(t *testing.T) {
		// ストアに想定外のステータス値が入っていても合計から漏らさない
		mockRepo := &mockTaskRepository{
			CountByStatusFunc: func(ownerID uint) (map[entity.Status]int64, error) {
				return map[entity.Status]int64{
					entity.StatusPending:      2,
					entity.StatusCompleted:    1,
					entity.Status("archived"): 4,
				}, nil
			},
		}

		uc := NewTasksUsecase(mockRepo)
		stats, err := uc.Stats(ctx, 1)

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stats.Total != 7 {
			t.Errorf("expected total 7, got %d", stats.Total)
		}
		if stats.Pending != 2 || stats.InProgress != 0 || stats.Completed != 1 {
			t.Errorf("unexpected per-status counts: %+v", stats)
		}
	})

	t.Run("repository error passes through", func(t *testing.T) {
		mockRepo := &mockTaskRepository{
			CountByStatusFunc: func(ownerID uint) (map[entity.Status]int64, error) {
				return nil, errors.New("connection lost")
			},
		}

		uc := NewTasksUsecase(mockRepo)
		_, err := uc.Stats(ctx, 1)

		if err == nil {
			t.Fatal("expected error but got nil")
		}
	})
}
