package paging

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrBadCursor = errors.New("invalid cursor")

// EncodeCursor packs the (created_at, id) position of the last returned row.
func EncodeCursor(t time.Time, id uuid.UUID) string {
	raw := t.UTC().Format(time.RFC3339Nano) + "|" + id.String()
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func DecodeCursor(c string) (time.Time, uuid.UUID, error) {
	b, err := base64.RawURLEncoding.DecodeString(c)
	if err != nil {
		return time.Time{}, uuid.Nil, ErrBadCursor
	}
	ts, idStr, ok := strings.Cut(string(b), "|")
	if !ok {
		return time.Time{}, uuid.Nil, ErrBadCursor
	}
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return time.Time{}, uuid.Nil, ErrBadCursor
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return time.Time{}, uuid.Nil, ErrBadCursor
	}
	return t, id, nil
}

// Window is the normalized page request handed to repositories.
type Window struct {
	AfterCreatedAt time.Time
	AfterID        uuid.UUID
	Limit          int
}

const (
	DefaultLimit = 20
	MaxLimit     = 200
)

// NewWindow decodes cursor and clamps limit. The repo is asked for Limit+1 rows
// so that HasMore can be decided without a count query.
func NewWindow(cursor string, limit int) (Window, error) {
	w := Window{Limit: limit}
	if w.Limit <= 0 {
		w.Limit = DefaultLimit
	}
	if w.Limit > MaxLimit {
		w.Limit = MaxLimit
	}
	if cursor != "" {
		t, id, err := DecodeCursor(cursor)
		if err != nil {
			return Window{}, err
		}
		w.AfterCreatedAt, w.AfterID = t, id
	}
	return w, nil
}

func (w Window) HasCursor() bool {
	return !w.AfterCreatedAt.IsZero() && w.AfterID != uuid.Nil
}
