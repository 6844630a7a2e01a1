package repo

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/taskboard/taskboard/internal/pkg/errs"
	"gorm.io/gorm"
)

// translate maps store errors onto the domain taxonomy. dup is returned for
// unique-index violations, which are the authoritative uniqueness check.
func translate(err error, dup error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return dup
	}
	return err
}

// taken reports whether any row of m matches the query.
func taken(tx *gorm.DB, m any, query string, args ...any) (bool, error) {
	var n int64
	if err := tx.Model(m).Where(query, args...).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func likePattern(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

// snapshotTx returns options for a read-only snapshot where the dialect supports it.
func snapshotTx(db *gorm.DB) []*sql.TxOptions {
	if db.Dialector.Name() == "postgres" {
		return []*sql.TxOptions{{Isolation: sql.LevelRepeatableRead, ReadOnly: true}}
	}
	return nil
}
