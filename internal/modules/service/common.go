package service

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/taskboard/taskboard/internal/modules/model"
	"github.com/taskboard/taskboard/internal/pkg/errs"
	"github.com/taskboard/taskboard/internal/pkg/paging"
)

var colorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

func ownerOf(u *model.User) error {
	if u == nil || !u.IsActive {
		return errs.ErrUnauthorized
	}
	return nil
}

func cleanName(name string, max int) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errs.Invalid("name is required")
	}
	if utf8.RuneCountInString(name) > max {
		return "", errs.Invalid("name must be at most %d characters", max)
	}
	return name, nil
}

func parsePriority(s string) (model.Priority, error) {
	if s == "" {
		return model.PriorityMedium, nil
	}
	p := model.Priority(strings.ToLower(s))
	if !p.Valid() {
		return "", errs.Invalid("unknown priority %q", s)
	}
	return p, nil
}

func parseProjectStatus(s string) (model.ProjectStatus, error) {
	if s == "" {
		return model.ProjectPlanning, nil
	}
	st, ok := model.ParseProjectStatus(s)
	if !ok {
		return "", errs.Invalid("unknown project status %q", s)
	}
	return st, nil
}

func parseTaskStatus(s string) (model.TaskStatus, error) {
	if s == "" {
		return model.TaskTodo, nil
	}
	st := model.TaskStatus(strings.ToLower(s))
	if !st.Valid() {
		return "", errs.Invalid("unknown task status %q", s)
	}
	return st, nil
}

func window(cursor string, limit int) (paging.Window, error) {
	w, err := paging.NewWindow(cursor, limit)
	if err != nil {
		return paging.Window{}, errs.Invalid("invalid cursor")
	}
	return w, nil
}

// page trims the extra row fetched to detect has_more and builds the next cursor.
func page[T any](rows []T, limit int, pos func(T) (time.Time, uuid.UUID)) ([]T, string, bool) {
	if len(rows) <= limit {
		return rows, "", false
	}
	rows = rows[:limit]
	t, id := pos(rows[len(rows)-1])
	return rows, paging.EncodeCursor(t, id), true
}

// patched applies one nullable PATCH field: clear wins, then a sent value, else cur.
func patched[T any](cur, next *T, clear bool) *T {
	if clear {
		return nil
	}
	if next != nil {
		return next
	}
	return cur
}
