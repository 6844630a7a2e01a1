package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/taskboard/taskboard/internal/modules/serializer"
	"github.com/taskboard/taskboard/internal/modules/service"
)

type TaskHandler struct {
	svc service.TaskService
}

func NewTaskHandler(s service.TaskService) *TaskHandler {
	return &TaskHandler{svc: s}
}

type CreateTaskReq struct {
	Project        uuid.UUID        `json:"project" binding:"required" swaggertype:"string" format:"uuid"`
	Name           string           `json:"name" binding:"required,max=200" example:"Draft landing page"`
	Description    string           `json:"description"`
	StartDate      *string          `json:"start_date" example:"2024-01-02"`
	DueDate        *string          `json:"due_date" example:"2024-01-09"`
	Priority       string           `json:"priority" enums:"low,medium,high,urgent" example:"high"`
	Status         string           `json:"status" enums:"todo,in_progress,review,completed,cancelled" example:"todo"`
	EstimatedHours *decimal.Decimal `json:"estimated_hours" swaggertype:"string" example:"8.00"`
	ActualHours    *decimal.Decimal `json:"actual_hours" swaggertype:"string" example:"0.00"`
	Progress       *int             `json:"progress" example:"0"`
}

// CreateTask godoc
//
//	@Summary		Create task
//	@Description	Create a task inside one of the current user's projects
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateTaskReq	true	"CreateTask payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.TaskView}
//	@Failure		400	{object}	serializer.Response
//	@Failure		403	{object}	serializer.Response
//	@Failure		409	{object}	serializer.Response
//	@Router			/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, ok := withUser(c)
	if !ok {
		return
	}
	req := CreateTaskReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	start, due, ok := parseDates(c, req.StartDate, req.DueDate)
	if !ok {
		return
	}

	v, err := h.svc.Create(c.Request.Context(), user, service.CreateTaskInput{
		ProjectID:      req.Project,
		Name:           req.Name,
		Description:    req.Description,
		StartDate:      start,
		DueDate:        due,
		Priority:       req.Priority,
		Status:         req.Status,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
		Progress:       req.Progress,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: v})
}

type ListTasksReq struct {
	Project  string `form:"project" json:"project" example:"123e4567-e89b-12d3-a456-426614174000"`
	Status   string `form:"status" json:"status" example:"in_progress"`
	Priority string `form:"priority" json:"priority" example:"urgent"`
	Search   string `form:"search" json:"search"`
	Overdue  bool   `form:"overdue,default=false" json:"overdue" example:"false"`
	Limit    int    `form:"limit,default=20" json:"limit" binding:"omitempty,min=1,max=200" example:"20"`
	Cursor   string `form:"cursor" json:"cursor"`
}

func (r ListTasksReq) input(project *uuid.UUID) service.ListTasksInput {
	return service.ListTasksInput{
		ProjectID: project,
		Status:    r.Status,
		Priority:  r.Priority,
		Search:    r.Search,
		Overdue:   r.Overdue,
		Cursor:    r.Cursor,
		Limit:     r.Limit,
	}
}

// ListTasks godoc
//
//	@Summary		List tasks
//	@Description	List active tasks in the current user's projects, newest first
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			project		query	string	false	"Filter by project ID"	Format(uuid)
//	@Param			status		query	string	false	"Filter by status"
//	@Param			priority	query	string	false	"Filter by priority"
//	@Param			search		query	string	false	"Substring of name or description"
//	@Param			overdue		query	boolean	false	"Only overdue tasks"
//	@Param			limit		query	integer	false	"Limit of tasks to return, default 20. Max 200."
//	@Param			cursor		query	string	false	"Cursor for pagination. Use the cursor from the previous response to get the next page."
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ListTasksOutput}
//	@Router			/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	user, ok := withUser(c)
	if !ok {
		return
	}
	req := ListTasksReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	project, ok := optUUID(c, "project", req.Project)
	if !ok {
		return
	}

	out, err := h.svc.List(c.Request.Context(), user, req.input(project))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// OverdueTasks godoc
//
//	@Summary		Overdue tasks
//	@Description	Tasks past their due date that are neither completed nor cancelled
//	@Tags			task
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ListTasksOutput}
//	@Router			/tasks/overdue [get]
func (h *TaskHandler) OverdueTasks(c *gin.Context) {
	user, ok := withUser(c)
	if !ok {
		return
	}

	out, err := h.svc.Overdue(c.Request.Context(), user)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// DueTodayTasks godoc
//
//	@Summary		Tasks due today
//	@Tags			task
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ListTasksOutput}
//	@Router			/tasks/due-today [get]
func (h *TaskHandler) DueTodayTasks(c *gin.Context) {
	user, ok := withUser(c)
	if !ok {
		return
	}

	out, err := h.svc.DueToday(c.Request.Context(), user)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// GetTask godoc
//
//	@Summary		Get task
//	@Tags			task
//	@Produce		json
//	@Param			id	path	string	true	"Task ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.TaskView}
//	@Failure		404	{object}	serializer.Response
//	@Router			/tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	user, ok := withUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	v, err := h.svc.Get(c.Request.Context(), user, id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: v})
}

type UpdateTaskReq struct {
	Project        *uuid.UUID                `json:"project" swaggertype:"string" format:"uuid"`
	Name           *string                   `json:"name" binding:"omitempty,max=200"`
	Description    *string                   `json:"description"`
	StartDate      Nullable[string]          `json:"start_date" swaggertype:"string" example:"2024-01-02"`
	DueDate        Nullable[string]          `json:"due_date" swaggertype:"string" example:"2024-01-09"`
	Priority       *string                   `json:"priority" enums:"low,medium,high,urgent"`
	Status         *string                   `json:"status" enums:"todo,in_progress,review,completed,cancelled"`
	EstimatedHours Nullable[decimal.Decimal] `json:"estimated_hours" swaggertype:"string"`
	ActualHours    Nullable[decimal.Decimal] `json:"actual_hours" swaggertype:"string"`
	Progress       *int                      `json:"progress"`
}

// UpdateTask godoc
//
//	@Summary		Update task
//	@Description	Partially update a task; null clears start_date, due_date and the hours. Setting status to completed forces progress to 100, cancelled forces 0.
//	@Tags			task
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string					true	"Task ID"	Format(uuid)
//	@Param			payload	body	handler.UpdateTaskReq	true	"UpdateTask payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.TaskView}
//	@Router			/tasks/{id} [patch]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	user, ok := withUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req := UpdateTaskReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	start, due, ok := parseDates(c, req.StartDate.Ptr(), req.DueDate.Ptr())
	if !ok {
		return
	}

	v, err := h.svc.Update(c.Request.Context(), user, id, service.UpdateTaskInput{
		ProjectID:           req.Project,
		Name:                req.Name,
		Description:         req.Description,
		StartDate:           start,
		DueDate:             due,
		Priority:            req.Priority,
		Status:              req.Status,
		EstimatedHours:      req.EstimatedHours.Ptr(),
		ActualHours:         req.ActualHours.Ptr(),
		Progress:            req.Progress,
		ClearStartDate:      req.StartDate.Cleared(),
		ClearDueDate:        req.DueDate.Cleared(),
		ClearEstimatedHours: req.EstimatedHours.Cleared(),
		ClearActualHours:    req.ActualHours.Cleared(),
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: v})
}

// DeleteTask godoc
//
//	@Summary		Delete task
//	@Tags			task
//	@Produce		json
//	@Param			id	path	string	true	"Task ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	user, ok := withUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), user, id); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}
