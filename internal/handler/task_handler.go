package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"taskapp/internal/middleware"
	"taskapp/internal/model"
	"taskapp/internal/repository"
	"taskapp/internal/service"
)

type TaskHandler struct {
	taskService *service.TaskService
	userRepo    repository.UserRepositoryInterface
}

func NewTaskHandler(taskService *service.TaskService, userRepo repository.UserRepositoryInterface) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		userRepo:    userRepo,
	}
}

// TaskResponse represents a task in API responses
type TaskResponse struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Document     string  `json:"document,omitempty"`
	DueDate      *string `json:"due_date,omitempty"`
	CreatedAt    string  `json:"created_at"`
	CreatedBy    string  `json:"created_by"`
	CreatorName  string  `json:"creator_name,omitempty"`
	AssignedTo   string  `json:"assigned_to"`
	AssigneeName string  `json:"assignee_name,omitempty"`
	IsCompleted  bool    `json:"is_completed"`
}

// TaskCompleteRequest toggles the completion flag of a task
type TaskCompleteRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// List returns all tasks, newest first
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.taskService.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := make([]TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = taskResponse(&tasks[i])
	}
	c.JSON(http.StatusOK, response)
}

// Mine returns the tasks assigned to the authenticated user
func (h *TaskHandler) Mine(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	tasks, err := h.taskService.ListMine(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	response := make([]TaskResponse, len(tasks))
	for i := range tasks {
		response[i] = taskResponse(&tasks[i])
		response[i].AssigneeName = user.Username
	}
	c.JSON(http.StatusOK, response)
}

// GetByID returns a single task
func (h *TaskHandler) GetByID(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	task, err := h.taskService.Get(c.Request.Context(), taskID)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	response := taskResponse(task)
	h.resolveNames(c, task, &response)
	c.JSON(http.StatusOK, response)
}

// Create creates a new task from a multipart form, with an optional document
// attachment
func (h *TaskHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	input, cleanup, err := taskInputFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	defer cleanup()

	task, err := h.taskService.Create(c.Request.Context(), user, input)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	response := taskResponse(task)
	response.CreatorName = user.Username
	h.resolveAssignee(c, task, &response)
	c.JSON(http.StatusCreated, response)
}

// Update replaces the editable fields of a task
func (h *TaskHandler) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	input, cleanup, err := taskInputFromForm(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	defer cleanup()

	task, err := h.taskService.Update(c.Request.Context(), user, taskID, input)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	response := taskResponse(task)
	h.resolveNames(c, task, &response)
	c.JSON(http.StatusOK, response)
}

// Delete removes a task permanently
func (h *TaskHandler) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), user, taskID); err != nil {
		h.respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// Complete marks a task as done or reopens it
func (h *TaskHandler) Complete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return
	}

	var req TaskCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.taskService.SetCompleted(c.Request.Context(), user, taskID, *req.Completed)
	if err != nil {
		h.respondTaskError(c, err)
		return
	}

	response := taskResponse(task)
	h.resolveNames(c, task, &response)
	c.JSON(http.StatusOK, response)
}

// taskInputFromForm reads the task fields and the optional document from a
// multipart form. The returned cleanup closes the uploaded file.
func taskInputFromForm(c *gin.Context) (service.TaskInput, func(), error) {
	input := service.TaskInput{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		AssignedTo:  c.PostForm("assigned_to"),
		DueDate:     c.PostForm("due_date"),
	}
	cleanup := func() {}

	fileHeader, err := c.FormFile("document")
	if err == http.ErrMissingFile || fileHeader == nil {
		return input, cleanup, nil
	}
	if err != nil {
		return input, cleanup, err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return input, cleanup, err
	}

	input.Document = &service.DocumentUpload{
		Filename: fileHeader.Filename,
		Content:  file,
	}
	return input, func() { file.Close() }, nil
}

func (h *TaskHandler) respondTaskError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, repository.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to modify this task"})
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "violations": verr.Violations})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process task"})
	}
}

// resolveNames fills in creator and assignee usernames for a task fetched
// without preloads
func (h *TaskHandler) resolveNames(c *gin.Context, task *model.Task, response *TaskResponse) {
	if creator, err := h.userRepo.GetByID(c.Request.Context(), task.CreatedByID); err == nil && creator != nil {
		response.CreatorName = creator.Username
	}
	h.resolveAssignee(c, task, response)
}

func (h *TaskHandler) resolveAssignee(c *gin.Context, task *model.Task, response *TaskResponse) {
	if assignee, err := h.userRepo.GetByID(c.Request.Context(), task.AssignedToID); err == nil && assignee != nil {
		response.AssigneeName = assignee.Username
	}
}

func taskResponse(task *model.Task) TaskResponse {
	response := TaskResponse{
		ID:           task.ID.String(),
		Title:        task.Title,
		Description:  task.Description,
		Document:     task.Document,
		CreatedAt:    task.CreatedAt.Format(time.RFC3339),
		CreatedBy:    task.CreatedByID.String(),
		CreatorName:  task.Creator.Username,
		AssignedTo:   task.AssignedToID.String(),
		AssigneeName: task.Assignee.Username,
		IsCompleted:  task.IsCompleted,
	}

	if task.DueDate != nil {
		dueDate := task.DueDate.Format("2006-01-02")
		response.DueDate = &dueDate
	}
	return response
}
