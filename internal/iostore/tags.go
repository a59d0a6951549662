package iostore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gnames/gntag/pkg/schema"
	"github.com/gnames/gntag/pkg/store"
	"github.com/gnames/gntag/pkg/tag"
	"github.com/google/uuid"
	"github.com/huandu/go-sqlbuilder"
)

var tagsTable = schema.Tag{}.TableName()

var tagColumns = schema.Columns(schema.Tag{})

// errEmptyFilter protects the relation from an accidental full delete.
var errEmptyFilter = errors.New("empty filter would delete every tag")

// conditions converts a filter to WHERE expressions of a builder.
func conditions(c *sqlbuilder.Cond, f store.Filter) []string {
	var res []string
	if len(f.IDs) > 0 {
		res = append(res, c.In("id", sqlbuilder.Flatten(f.IDs)...))
	}
	if len(f.Names) > 0 {
		res = append(res, c.In("name", sqlbuilder.Flatten(f.Names)...))
	}
	if f.Type != "" {
		res = append(res, c.Equal("type", string(f.Type)))
	}
	if len(f.ParentIDs) > 0 {
		res = append(res,
			c.In("parent_id", sqlbuilder.Flatten(f.ParentIDs)...))
	}
	if f.Orphaned {
		res = append(res,
			c.Equal("type", string(tag.Child)),
			c.Or(
				c.IsNull("parent_id"),
				"parent_id NOT IN (SELECT id FROM "+tagsTable+
					" WHERE type = "+c.Var(string(tag.Parent))+")",
			),
		)
	}
	return res
}

// Tags returns rows selected by the filter in the order of creation.
func (s *sqlStore) Tags(
	ctx context.Context,
	f store.Filter,
) ([]tag.Tag, error) {
	sb := s.flavor.NewSelectBuilder()
	sb.Select(tagColumns...).From(tagsTable)
	if cond := conditions(&sb.Cond, f); len(cond) > 0 {
		sb.Where(cond...)
	}
	sb.OrderBy("created_at", "id")

	query, args := sb.Build()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, QueryError("select tags", err)
	}
	defer rows.Close()

	res := make([]tag.Tag, 0)
	for rows.Next() {
		t, err := s.scanTag(rows)
		if err != nil {
			return nil, QueryError("scan tag", err)
		}
		res = append(res, t)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError("select tags", err)
	}
	return res, nil
}

func (s *sqlStore) scanTag(rows *sql.Rows) (tag.Tag, error) {
	var res tag.Tag
	var typ, source, synonyms string
	var confidence sql.NullFloat64
	var parentID sql.NullString
	var created nullTime

	err := rows.Scan(
		&res.ID, &res.Name, &typ, &confidence, &source,
		&res.DocumentID, &parentID, &synonyms, &created,
	)
	if err != nil {
		return res, err
	}

	res.Type = tag.Type(typ)
	res.Source = tag.Source(source)
	res.CreatedAt = created.Time
	if confidence.Valid {
		res.Confidence = &confidence.Float64
	}
	if parentID.Valid {
		res.ParentID = &parentID.String
	}
	if synonyms != "" {
		if err = s.enc.Decode([]byte(synonyms), &res.Synonyms); err != nil {
			return res, err
		}
	}
	return res, nil
}

// InsertTags adds tags in batches. Empty ids get random UUIDs, zero
// creation times get the current time keeping the order of the input.
func (s *sqlStore) InsertTags(ctx context.Context, tags []tag.Tag) error {
	ts := s.stamp(len(tags))
	for i := 0; i < len(tags); i += batchSize {
		end := min(i+batchSize, len(tags))

		ib := s.flavor.NewInsertBuilder()
		ib.InsertInto(tagsTable).Cols(tagColumns...)
		for j := i; j < end; j++ {
			t := tags[j]
			if t.ID == "" {
				t.ID = uuid.NewString()
			}
			if t.CreatedAt.IsZero() {
				t.CreatedAt = ts.Add(time.Duration(j) * time.Microsecond)
			}
			if t.Source == "" {
				t.Source = tag.Auto
			}
			syn, err := s.synonyms(t.Synonyms)
			if err != nil {
				return WriteError("encode synonyms", err)
			}
			ib.Values(
				t.ID, t.Name, string(t.Type), nullable(t.Confidence),
				string(t.Source), t.DocumentID, nullable(t.ParentID), syn,
				t.CreatedAt.UTC(),
			)
		}

		query, args := ib.Build()
		if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
			return WriteError("insert tags", err)
		}
	}
	return nil
}

// nullable converts a pointer to a value or NULL.
func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

func (s *sqlStore) synonyms(syn []string) (string, error) {
	if len(syn) == 0 {
		return "[]", nil
	}
	bs, err := s.enc.Encode(syn)
	if err != nil {
		return "", err
	}
	return string(bs), nil
}

// UpdateTag changes fields of one tag.
func (s *sqlStore) UpdateTag(
	ctx context.Context,
	id string,
	upd store.TagUpdate,
) error {
	ub := s.flavor.NewUpdateBuilder()
	ub.Update(tagsTable)

	var set []string
	if upd.Name != nil {
		set = append(set, ub.Assign("name", *upd.Name))
	}
	if upd.Type != nil {
		set = append(set, ub.Assign("type", string(*upd.Type)))
	}
	if upd.Synonyms != nil {
		syn, err := s.synonyms(*upd.Synonyms)
		if err != nil {
			return WriteError("encode synonyms", err)
		}
		set = append(set, ub.Assign("synonyms", syn))
	}
	if upd.SetParent {
		set = append(set, assignParent(ub, upd.ParentID))
	}
	if len(set) == 0 {
		return nil
	}
	ub.Set(set...)
	ub.Where(ub.Equal("id", id))

	query, args := ub.Build()
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return WriteError("update tag", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return WriteError("update tag", err)
	}
	if n == 0 {
		return NotFoundError(id)
	}
	return nil
}

func assignParent(ub *sqlbuilder.UpdateBuilder, parentID *string) string {
	if parentID == nil {
		return "parent_id = NULL"
	}
	return ub.Assign("parent_id", *parentID)
}

// SetParent points all selected rows to parentID, nil orphans them.
func (s *sqlStore) SetParent(
	ctx context.Context,
	f store.Filter,
	parentID *string,
) (int, error) {
	if f.IsEmpty() {
		return 0, WriteError("set parent", errEmptyFilter)
	}

	ub := s.flavor.NewUpdateBuilder()
	ub.Update(tagsTable)
	ub.Set(assignParent(ub, parentID))
	ub.Where(conditions(&ub.Cond, f)...)

	query, args := ub.Build()
	return s.exec(ctx, "set parent", query, args)
}

// DeleteTags removes selected rows, an empty filter is refused.
func (s *sqlStore) DeleteTags(
	ctx context.Context,
	f store.Filter,
) (int, error) {
	if f.IsEmpty() {
		return 0, WriteError("delete tags", errEmptyFilter)
	}

	dlb := s.flavor.NewDeleteBuilder()
	dlb.DeleteFrom(tagsTable)
	dlb.Where(conditions(&dlb.Cond, f)...)

	query, args := dlb.Build()
	return s.exec(ctx, "delete tags", query, args)
}

// CountTags returns the number of selected rows.
func (s *sqlStore) CountTags(
	ctx context.Context,
	f store.Filter,
) (int, error) {
	sb := s.flavor.NewSelectBuilder()
	sb.Select("COUNT(*)").From(tagsTable)
	if cond := conditions(&sb.Cond, f); len(cond) > 0 {
		sb.Where(cond...)
	}

	query, args := sb.Build()
	var res int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&res); err != nil {
		return 0, QueryError("count tags", err)
	}
	return res, nil
}

// DeleteAllTags empties the tags relation.
func (s *sqlStore) DeleteAllTags(ctx context.Context) error {
	dlb := s.flavor.NewDeleteBuilder()
	dlb.DeleteFrom(tagsTable)

	query, args := dlb.Build()
	_, err := s.exec(ctx, "delete all tags", query, args)
	return err
}

func (s *sqlStore) exec(
	ctx context.Context,
	op, query string,
	args []any,
) (int, error) {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, WriteError(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, WriteError(op, err)
	}
	return int(n), nil
}
