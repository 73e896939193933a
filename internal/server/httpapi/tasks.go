package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskhub/internal/apierrors"
	"github.com/dmitrijs2005/taskhub/internal/server/models"
	"github.com/dmitrijs2005/taskhub/internal/server/taskquery"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type taskPayload struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description *string          `json:"description"`
	DueDate     *time.Time       `json:"dueDate"`
	Status      models.Status    `json:"status"`
	Priority    *models.Priority `json:"priority"`
	ListID      *string          `json:"listId"`
	ProjectID   *string          `json:"projectId"`
}

// validRefs reports whether listId and projectId, when set, are uuids.
func (p taskPayload) validRefs() bool {
	for _, id := range []*string{p.ListID, p.ProjectID} {
		if id != nil && *id != "" && uuid.Validate(*id) != nil {
			return false
		}
	}
	return true
}

func (p taskPayload) toModel() *models.Task {
	return &models.Task{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		DueDate:     p.DueDate,
		Status:      p.Status,
		Priority:    p.Priority,
		ListID:      optionalID(p.ListID),
		ProjectID:   optionalID(p.ProjectID),
	}
}

// optionalID maps an empty id to nil.
func optionalID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

type subtaskPayload struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

func (p subtaskPayload) toModel() *models.Subtask {
	return &models.Subtask{ID: p.ID, Title: p.Title, Description: p.Description, Completed: p.Completed}
}

type messageResponse struct {
	Message string `json:"message"`
}

type TaskHandler struct {
	responder
	tasks    TaskService
	subtasks SubtaskService
}

func NewTaskHandler(tasks TaskService, subtasks SubtaskService, r responder) *TaskHandler {
	return &TaskHandler{responder: r, tasks: tasks, subtasks: subtasks}
}

// pathID reads a uuid path parameter, answering 400 when it is malformed.
func (r responder) pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if err := uuid.Validate(id); err != nil {
		r.abort(c, http.StatusBadRequest, apierrors.MsgInvalidPayload, nil)
		return "", false
	}
	return id, true
}

func (h *TaskHandler) List(c *gin.Context) {
	f, err := taskquery.ParseQuery(c.Request.URL.Query())
	if err != nil {
		h.fail(c, err)
		return
	}
	f.OwnerID = UserID(c)

	tasks, err := h.tasks.List(c.Request.Context(), f)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	task, err := h.tasks.Get(c.Request.Context(), UserID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Create(c *gin.Context) {
	var p taskPayload
	if err := c.ShouldBindJSON(&p); err != nil || !p.validRefs() {
		h.abort(c, http.StatusBadRequest, apierrors.MsgInvalidPayload, nil)
		return
	}
	task, err := h.tasks.Create(c.Request.Context(), UserID(c), p.toModel())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Location", "/api/Tasks/"+task.ID)
	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var p taskPayload
	if err := c.ShouldBindJSON(&p); err != nil || !p.validRefs() {
		h.abort(c, http.StatusBadRequest, apierrors.MsgInvalidPayload, nil)
		return
	}
	task, err := h.tasks.Update(c.Request.Context(), UserID(c), id, p.toModel())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	if err := h.tasks.Delete(c.Request.Context(), UserID(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) AddLabel(c *gin.Context) {
	taskID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	labelID, ok := h.pathID(c, "labelId")
	if !ok {
		return
	}
	if err := h.tasks.AddLabel(c.Request.Context(), UserID(c), taskID, labelID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, messageResponse{Message: "Label added to the task successfully."})
}

func (h *TaskHandler) RemoveLabel(c *gin.Context) {
	taskID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	labelID, ok := h.pathID(c, "labelId")
	if !ok {
		return
	}
	if err := h.tasks.RemoveLabel(c.Request.Context(), UserID(c), taskID, labelID); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TaskHandler) CreateSubtask(c *gin.Context) {
	taskID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var p subtaskPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		h.abort(c, http.StatusBadRequest, apierrors.MsgInvalidPayload, nil)
		return
	}
	sub, err := h.subtasks.Create(c.Request.Context(), UserID(c), taskID, p.toModel())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Location", "/api/Subtasks/"+sub.ID)
	c.JSON(http.StatusCreated, sub)
}
