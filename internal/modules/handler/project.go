package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/modules/serializer"
	"github.com/taskboard/taskboard/internal/modules/service"
)

type ProjectHandler struct {
	svc       service.ProjectService
	dashboard service.DashboardService
}

func NewProjectHandler(s service.ProjectService, d service.DashboardService) *ProjectHandler {
	return &ProjectHandler{svc: s, dashboard: d}
}

type CreateProjectReq struct {
	Name        string     `json:"name" binding:"required,max=100" example:"Website relaunch"`
	Description *string    `json:"description"`
	Category    *uuid.UUID `json:"category" swaggertype:"string" format:"uuid"`
	StartDate   *string    `json:"start_date" example:"2024-01-01"`
	DueDate     *string    `json:"due_date" example:"2024-03-31"`
	Priority    string     `json:"priority" enums:"low,medium,high,urgent" example:"medium"`
	Status      string     `json:"status" enums:"planning,active,on_hold,completed,cancelled" example:"planning"`
}

// CreateProject godoc
//
//	@Summary		Create project
//	@Description	Create a project, optionally inside one of the current user's categories
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateProjectReq	true	"CreateProject payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.ProjectView}
//	@Failure		400	{object}	serializer.Response
//	@Failure		409	{object}	serializer.Response
//	@Router			/projects [post]
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	user, ok := withUser(c)
	if !ok {
		return
	}
	req := CreateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	start, due, ok := parseDates(c, req.StartDate, req.DueDate)
	if !ok {
		return
	}

	v, err := h.svc.Create(c.Request.Context(), user, service.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.Category,
		StartDate:   start,
		DueDate:     due,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: v})
}

type ListProjectsReq struct {
	Status   string `form:"status" json:"status" example:"active"`
	Priority string `form:"priority" json:"priority" example:"high"`
	Category string `form:"category" json:"category" example:"123e4567-e89b-12d3-a456-426614174000"`
	Search   string `form:"search" json:"search" example:"launch"`
	Limit    int    `form:"limit,default=20" json:"limit" binding:"omitempty,min=1,max=200" example:"20"`
	Cursor   string `form:"cursor" json:"cursor"`
}

func (r ListProjectsReq) input(category *uuid.UUID) service.ListProjectsInput {
	return service.ListProjectsInput{
		Status:     r.Status,
		Priority:   r.Priority,
		CategoryID: category,
		Search:     r.Search,
		Cursor:     r.Cursor,
		Limit:      r.Limit,
	}
}

// ListProjects godoc
//
//	@Summary		List projects
//	@Description	List the current user's active projects, newest first
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			status		query	string	false	"Filter by status"
//	@Param			priority	query	string	false	"Filter by priority"
//	@Param			category	query	string	false	"Filter by category ID"	Format(uuid)
//	@Param			search		query	string	false	"Substring of name or description"
//	@Param			limit		query	integer	false	"Limit of projects to return, default 20. Max 200."
//	@Param			cursor		query	string	false	"Cursor for pagination. Use the cursor from the previous response to get the next page."
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ListProjectsOutput}
//	@Router			/projects [get]
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	user, ok := withUser(c)
	if !ok {
		return
	}
	req := ListProjectsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	category, ok := optUUID(c, "category", req.Category)
	if !ok {
		return
	}

	out, err := h.svc.List(c.Request.Context(), user, req.input(category))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// GetProject godoc
//
//	@Summary		Get project
//	@Tags			project
//	@Produce		json
//	@Param			id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.ProjectView}
//	@Failure		404	{object}	serializer.Response
//	@Router			/projects/{id} [get]
func (h *ProjectHandler) GetProject(c *gin.Context) {
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

type UpdateProjectReq struct {
	Name        *string             `json:"name" binding:"omitempty,max=100"`
	Description Nullable[string]    `json:"description" swaggertype:"string"`
	Category    Nullable[uuid.UUID] `json:"category" swaggertype:"string" format:"uuid"`
	StartDate   Nullable[string]    `json:"start_date" swaggertype:"string" example:"2024-01-01"`
	DueDate     Nullable[string]    `json:"due_date" swaggertype:"string" example:"2024-03-31"`
	Priority    *string             `json:"priority" enums:"low,medium,high,urgent"`
	Status      *string             `json:"status" enums:"planning,active,on_hold,completed,cancelled"`
}

// UpdateProject godoc
//
//	@Summary		Update project
//	@Description	Partially update a project; omitted fields are left unchanged, null clears description, category, start_date and due_date
//	@Tags			project
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string						true	"Project ID"	Format(uuid)
//	@Param			payload	body	handler.UpdateProjectReq	true	"UpdateProject payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.ProjectView}
//	@Router			/projects/{id} [patch]
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	user, ok := withUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req := UpdateProjectReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}
	start, due, ok := parseDates(c, req.StartDate.Ptr(), req.DueDate.Ptr())
	if !ok {
		return
	}

	v, err := h.svc.Update(c.Request.Context(), user, id, service.UpdateProjectInput{
		Name:             req.Name,
		Description:      req.Description.Ptr(),
		CategoryID:       req.Category.Ptr(),
		StartDate:        start,
		DueDate:          due,
		Priority:         req.Priority,
		Status:           req.Status,
		ClearDescription: req.Description.Cleared(),
		ClearCategory:    req.Category.Cleared(),
		ClearStartDate:   req.StartDate.Cleared(),
		ClearDueDate:     req.DueDate.Cleared(),
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: v})
}

// DeleteProject godoc
//
//	@Summary		Delete project
//	@Description	Delete a project and its tasks
//	@Tags			project
//	@Produce		json
//	@Param			id	path	string	true	"Project ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/projects/{id} [delete]
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
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

// ListProjectTasks godoc
//
//	@Summary		List project tasks
//	@Tags			project
//	@Produce		json
//	@Param			id		path	string	true	"Project ID"	Format(uuid)
//	@Param			status	query	string	false	"Filter by status"
//	@Param			limit	query	integer	false	"Limit of tasks to return, default 20. Max 200."
//	@Param			cursor	query	string	false	"Cursor for pagination"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ListTasksOutput}
//	@Router			/projects/{id}/tasks [get]
func (h *ProjectHandler) ListProjectTasks(c *gin.Context) {
	user, ok := withUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req := ListTasksReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.ListTasks(c.Request.Context(), user, id, req.input(nil))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// Dashboard godoc
//
//	@Summary		Dashboard
//	@Description	Project, task and category counts for the current user taken from one snapshot
//	@Tags			project
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.Dashboard}
//	@Router			/projects/dashboard [get]
func (h *ProjectHandler) Dashboard(c *gin.Context) {
	user, ok := withUser(c)
	if !ok {
		return
	}

	d, err := h.dashboard.Summarize(c.Request.Context(), user)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: d})
}
