package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/modules/model"
	"github.com/taskboard/taskboard/internal/modules/serializer"
	"gorm.io/datatypes"
)

func currentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get("user")
	if !ok {
		return nil, false
	}
	u, ok := v.(*model.User)
	return u, ok && u != nil
}

// withUser resolves the authenticated user or writes a 401.
func withUser(c *gin.Context) (*model.User, bool) {
	u, ok := currentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.CheckLogin())
	}
	return u, ok
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid "+name, err))
		return uuid.Nil, false
	}
	return id, true
}

func fail(c *gin.Context, err error) {
	status, res := serializer.FromError(err)
	c.JSON(status, res)
}

func parseOptDate(s *string) (*datatypes.Date, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := model.ParseDate(*s)
	if err != nil {
		return nil, errors.New("dates must be formatted as YYYY-MM-DD")
	}
	return &d, nil
}

// parseDates parses an optional start/due pair, writing a 400 on bad input.
func parseDates(c *gin.Context, start, due *string) (*datatypes.Date, *datatypes.Date, bool) {
	s, err := parseOptDate(start)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid start_date", err))
		return nil, nil, false
	}
	d, err := parseOptDate(due)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid due_date", err))
		return nil, nil, false
	}
	return s, d, true
}

func optUUID(c *gin.Context, name, raw string) (*uuid.UUID, bool) {
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("invalid "+name, err))
		return nil, false
	}
	return &id, true
}
