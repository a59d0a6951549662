// Package iostore implements store.Store with SQL over PostgreSQL or
// SQLite. Queries are built with go-sqlbuilder in the flavor of the
// connected backend, so both backends share the same code.
package iostore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/gntag/pkg/db"
	"github.com/gnames/gntag/pkg/store"
	"github.com/huandu/go-sqlbuilder"
)

// batchSize limits the number of rows in one INSERT statement.
const batchSize = 500

type sqlStore struct {
	db     *sql.DB
	flavor sqlbuilder.Flavor
	enc    gnfmt.GNjson

	mu   sync.Mutex
	last time.Time
}

// New creates a store over a connected database operator.
func New(op db.Operator) (store.Store, error) {
	if op.DB() == nil {
		return nil, NotConnectedError()
	}
	res := sqlStore{
		db:     op.DB(),
		flavor: op.Flavor(),
	}
	return &res, nil
}

// Ping checks that the database answers.
func (s *sqlStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return UnavailableError("ping", err)
	}
	return nil
}

// now returns current time in the precision both backends keep.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// stamp reserves n consecutive creation times, one microsecond apart,
// that are later than any time reserved before.
func (s *sqlStore) stamp(n int) time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := now()
	if !res.After(s.last) {
		res = s.last.Add(time.Microsecond)
	}
	s.last = res.Add(time.Duration(max(n-1, 0)) * time.Microsecond)
	return res
}

// timeLayouts are formats SQLite uses for TIMESTAMP values kept as text.
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
}

// nullTime scans TIMESTAMP columns returned either as time.Time or
// as text.
type nullTime struct {
	Time time.Time
}

func (n *nullTime) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		n.Time = time.Time{}
		return nil
	case time.Time:
		n.Time = v.UTC()
		return nil
	case []byte:
		return n.parse(string(v))
	case string:
		return n.parse(v)
	}
	return fmt.Errorf("cannot scan %T into time", value)
}

func (n *nullTime) parse(s string) error {
	s = strings.TrimSpace(s)
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			n.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("cannot parse time %q", s)
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}
