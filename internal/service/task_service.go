package service

import (
	"context"
	"time"

	"farmatrack/internal/domain"
	"farmatrack/internal/repository"
)

// TaskInput поля задачи от клиента. Status учитывается только при обновлении.
type TaskInput struct {
	Title       string
	Type        string
	AssignedTo  string
	Priority    string
	Status      string
	DueDate     string
	Location    string
	Description string
}

// apply never touches ID or CreatedDate
func (in TaskInput) apply(t *domain.Task) {
	t.Title = in.Title
	t.Type = in.Type
	t.AssignedTo = in.AssignedTo
	t.Priority = in.Priority
	t.Status = in.Status
	t.DueDate = in.DueDate
	t.Location = in.Location
	t.Description = in.Description
}

type TaskService struct {
	crud crud[domain.Task]
	now  func() time.Time
}

func NewTaskService(repo repository.TaskRepository) *TaskService {
	return &TaskService{
		crud: crud[domain.Task]{repo: repo, entity: "Task", order: domain.TasksMostRecentFirst},
		now:  time.Now,
	}
}

// List свежие задачи сверху
func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	return s.crud.list(ctx)
}

func (s *TaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	return s.crud.get(ctx, id)
}

// Create статус всегда pending, дата создания сегодняшняя
func (s *TaskService) Create(ctx context.Context, in TaskInput) (*domain.Task, error) {
	var t domain.Task
	in.apply(&t)
	t.Status = domain.TaskStatusPending
	t.CreatedDate = s.now().Format(domain.DateLayout)
	return s.crud.create(ctx, &t)
}

func (s *TaskService) Update(ctx context.Context, id int64, in TaskInput) (*domain.Task, error) {
	return s.crud.update(ctx, id, in.apply)
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.crud.delete(ctx, id)
}
