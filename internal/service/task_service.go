package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"taskapp/internal/authz"
	"taskapp/internal/model"
	"taskapp/internal/repository"
	"taskapp/internal/storage"
)

const dueDateLayout = "2006-01-02"

type TaskService struct {
	tasks    repository.TaskRepositoryInterface
	users    repository.UserRepositoryInterface
	docs     storage.DocumentStore
	validate *validator.Validate
}

func NewTaskService(
	tasks repository.TaskRepositoryInterface,
	users repository.UserRepositoryInterface,
	docs storage.DocumentStore,
) *TaskService {
	return &TaskService{
		tasks:    tasks,
		users:    users,
		docs:     docs,
		validate: newValidator(),
	}
}

// DocumentUpload is an attachment supplied with a task create or update.
type DocumentUpload struct {
	Filename string
	Content  io.Reader
}

// TaskInput carries the user-suppliable task fields. CreatedBy and CreatedAt
// are never taken from input.
type TaskInput struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	AssignedTo  string `json:"assigned_to" validate:"required,uuid"`
	DueDate     string `json:"due_date"`
	Document    *DocumentUpload
}

// ListAll returns every task, newest first.
func (s *TaskService) ListAll(ctx context.Context) ([]model.Task, error) {
	return s.tasks.ListAll(ctx)
}

// ListMine returns the tasks assigned to the user, by due date descending.
// Assigned, not created: "my tasks" has always meant the assignment inbox.
func (s *TaskService) ListMine(ctx context.Context, user *model.User) ([]model.Task, error) {
	return s.tasks.ListAssignedTo(ctx, user.ID)
}

// Get returns a single task or repository.ErrTaskNotFound.
func (s *TaskService) Get(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	return s.tasks.GetByID(ctx, id)
}

// Create validates the input, stores an attached document if present and
// persists the task with the caller as creator. On validation failure nothing
// is persisted and every violation is reported.
func (s *TaskService) Create(ctx context.Context, user *model.User, in TaskInput) (*model.Task, error) {
	assignee, dueDate, verr := s.checkInput(ctx, in)
	if verr != nil {
		return nil, verr
	}

	task := &model.Task{
		Title:        in.Title,
		Description:  in.Description,
		AssignedToID: assignee.ID,
		DueDate:      dueDate,
		CreatedByID:  user.ID,
	}

	if in.Document != nil {
		docPath, err := s.saveDocument(in.Document)
		if err != nil {
			return nil, err
		}
		task.Document = docPath
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update replaces the editable fields of a task. The forbidden check runs
// before validation so an unauthorized caller can never touch the record.
func (s *TaskService) Update(ctx context.Context, user *model.User, id uuid.UUID, in TaskInput) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanModify(user, task.CreatedByID) {
		return nil, ErrForbidden
	}

	assignee, dueDate, verr := s.checkInput(ctx, in)
	if verr != nil {
		return nil, verr
	}

	task.Title = in.Title
	task.Description = in.Description
	task.AssignedToID = assignee.ID
	task.DueDate = dueDate

	if in.Document != nil {
		docPath, err := s.saveDocument(in.Document)
		if err != nil {
			return nil, err
		}
		task.Document = docPath
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete permanently removes a task and, best effort, its attached document.
func (s *TaskService) Delete(ctx context.Context, user *model.User, id uuid.UUID) error {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !authz.CanModify(user, task.CreatedByID) {
		return ErrForbidden
	}

	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	if task.Document != "" {
		if err := s.docs.Delete(task.Document); err != nil {
			log.Printf("⚠️  Failed to delete document %s: %v", task.Document, err)
		}
	}
	return nil
}

// SetCompleted marks a task as done or reopens it.
func (s *TaskService) SetCompleted(ctx context.Context, user *model.User, id uuid.UUID, done bool) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !authz.CanModify(user, task.CreatedByID) {
		return nil, ErrForbidden
	}

	task.IsCompleted = done
	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// checkInput collects every violation in the input and resolves the assignee
// and due date when they are well formed.
func (s *TaskService) checkInput(ctx context.Context, in TaskInput) (*model.User, *time.Time, *ValidationError) {
	verr := &ValidationError{}

	if err := s.validate.Struct(in); err != nil {
		collectViolations(err, verr)
	}

	var dueDate *time.Time
	if in.DueDate != "" {
		parsed, err := time.Parse(dueDateLayout, in.DueDate)
		if err != nil {
			verr.add("due_date", "must be formatted as YYYY-MM-DD")
		} else {
			dueDate = &parsed
		}
	}

	var assignee *model.User
	if assigneeID, err := uuid.Parse(in.AssignedTo); err == nil {
		assignee, err = s.users.GetByID(ctx, assigneeID)
		if err != nil {
			verr.add("assigned_to", "could not be verified")
		} else if assignee == nil {
			verr.add("assigned_to", "does not exist")
		} else if assignee.IsStaff || assignee.IsSuperuser {
			verr.add("assigned_to", "must be a regular member")
		}
	}

	if verr.hasAny() {
		return nil, nil, verr
	}
	return assignee, dueDate, nil
}

func (s *TaskService) saveDocument(doc *DocumentUpload) (string, error) {
	docPath := storage.DocumentPrefix + path.Base(doc.Filename)
	if err := s.docs.Save(docPath, doc.Content); err != nil {
		return "", fmt.Errorf("failed to store document: %w", err)
	}
	return docPath, nil
}
