package iostore

import (
	"context"

	"github.com/gnames/gntag/pkg/schema"
	"github.com/gnames/gntag/pkg/tag"
	"github.com/google/uuid"
)

var eventsTable = schema.ManagementEvent{}.TableName()

var eventColumns = schema.Columns(schema.ManagementEvent{})

// AppendEvent stores a curation event. Events are never updated.
func (s *sqlStore) AppendEvent(
	ctx context.Context,
	e tag.Event,
) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.stamp(1)
	}
	if e.Tags == nil {
		e.Tags = []tag.InvolvedTag{}
	}
	if e.Decision == nil {
		e.Decision = map[string]any{}
	}

	tags, err := s.enc.Encode(e.Tags)
	if err != nil {
		return "", WriteError("encode event tags", err)
	}
	decision, err := s.enc.Encode(e.Decision)
	if err != nil {
		return "", WriteError("encode event decision", err)
	}

	ib := s.flavor.NewInsertBuilder()
	ib.InsertInto(eventsTable).Cols(eventColumns...)
	ib.Values(
		e.ID, e.CreatedAt.UTC(), string(e.Action), string(tags),
		string(decision), e.Rationale, e.DecisionMS,
	)

	query, args := ib.Build()
	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		return "", WriteError("append event", err)
	}
	return e.ID, nil
}

// Events returns the latest events first. Non-positive limit returns
// all of them.
func (s *sqlStore) Events(ctx context.Context, limit int) ([]tag.Event, error) {
	sb := s.flavor.NewSelectBuilder()
	sb.Select(eventColumns...).From(eventsTable)
	sb.OrderBy("created_at").Desc()
	if limit > 0 {
		sb.Limit(limit)
	}

	query, args := sb.Build()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, QueryError("select events", err)
	}
	defer rows.Close()

	res := make([]tag.Event, 0)
	for rows.Next() {
		var e tag.Event
		var action, tags, decision string
		var rationale *string
		var created nullTime
		err = rows.Scan(
			&e.ID, &created, &action, &tags, &decision, &rationale,
			&e.DecisionMS,
		)
		if err != nil {
			return nil, QueryError("scan event", err)
		}
		e.CreatedAt = created.Time
		e.Action = tag.Action(action)
		if rationale != nil {
			e.Rationale = *rationale
		}
		if err = s.enc.Decode([]byte(tags), &e.Tags); err != nil {
			return nil, QueryError("decode event tags", err)
		}
		if err = s.enc.Decode([]byte(decision), &e.Decision); err != nil {
			return nil, QueryError("decode event decision", err)
		}
		res = append(res, e)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError("select events", err)
	}
	return res, nil
}
