package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskboard/taskboard/internal/modules/serializer"
	"github.com/taskboard/taskboard/internal/modules/service"
)

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(s service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: s}
}

type CreateCategoryReq struct {
	Name        string  `json:"name" binding:"required,max=100" example:"Work"`
	Description *string `json:"description" example:"Everything for the day job"`
	Color       string  `json:"color" example:"#3B82F6"`
}

// CreateCategory godoc
//
//	@Summary		Create category
//	@Description	Create a category owned by the current user. Names are unique per user.
//	@Tags			category
//	@Accept			json
//	@Produce		json
//	@Param			payload	body	handler.CreateCategoryReq	true	"CreateCategory payload"
//	@Security		BearerAuth
//	@Success		201	{object}	serializer.Response{data=model.CategoryView}
//	@Failure		409	{object}	serializer.Response
//	@Router			/categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	user, ok := withUser(c)
	if !ok {
		return
	}
	req := CreateCategoryReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	v, err := h.svc.Create(c.Request.Context(), user, service.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: v})
}

type ListCategoriesReq struct {
	Search string `form:"search" json:"search" example:"wor"`
}

// ListCategories godoc
//
//	@Summary		List categories
//	@Description	List the current user's active categories ordered by name, with project and task counts
//	@Tags			category
//	@Accept			json
//	@Produce		json
//	@Param			search	query	string	false	"Case-insensitive name filter"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ListCategoriesOutput}
//	@Router			/categories [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	user, ok := withUser(c)
	if !ok {
		return
	}
	req := ListCategoriesReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.List(c.Request.Context(), user, service.ListCategoriesInput{Search: req.Search})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// GetCategory godoc
//
//	@Summary		Get category
//	@Tags			category
//	@Produce		json
//	@Param			id	path	string	true	"Category ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.CategoryView}
//	@Failure		404	{object}	serializer.Response
//	@Router			/categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
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

type UpdateCategoryReq struct {
	Name        *string          `json:"name" binding:"omitempty,max=100" example:"Work"`
	Description Nullable[string] `json:"description" swaggertype:"string"`
	Color       *string          `json:"color" example:"#10B981"`
}

// UpdateCategory godoc
//
//	@Summary		Update category
//	@Description	Partially update a category; omitted fields are left unchanged, null clears description
//	@Tags			category
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string						true	"Category ID"	Format(uuid)
//	@Param			payload	body	handler.UpdateCategoryReq	true	"UpdateCategory payload"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=model.CategoryView}
//	@Router			/categories/{id} [patch]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	user, ok := withUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req := UpdateCategoryReq{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	v, err := h.svc.Update(c.Request.Context(), user, id, service.UpdateCategoryInput{
		Name:             req.Name,
		Description:      req.Description.Ptr(),
		Color:            req.Color,
		ClearDescription: req.Description.Cleared(),
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: v})
}

// DeleteCategory godoc
//
//	@Summary		Delete category
//	@Description	Delete a category together with its projects and their tasks
//	@Tags			category
//	@Produce		json
//	@Param			id	path	string	true	"Category ID"	Format(uuid)
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{}
//	@Router			/categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
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

// ListCategoryProjects godoc
//
//	@Summary		List category projects
//	@Tags			category
//	@Produce		json
//	@Param			id		path	string	true	"Category ID"	Format(uuid)
//	@Param			limit	query	integer	false	"Limit of projects to return, default 20. Max 200."
//	@Param			cursor	query	string	false	"Cursor for pagination"
//	@Security		BearerAuth
//	@Success		200	{object}	serializer.Response{data=service.ListProjectsOutput}
//	@Router			/categories/{id}/projects [get]
func (h *CategoryHandler) ListCategoryProjects(c *gin.Context) {
	user, ok := withUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	req := ListProjectsReq{}
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.ListProjects(c.Request.Context(), user, id, req.input(nil))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}
