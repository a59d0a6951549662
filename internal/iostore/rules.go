package iostore

import (
	"context"

	"github.com/gnames/gntag/pkg/schema"
	"github.com/gnames/gntag/pkg/tag"
	"github.com/gnames/gnuuid"
)

var rulesTable = schema.MergeRule{}.TableName()

var ruleColumns = schema.Columns(schema.MergeRule{})

// RuleID returns the deterministic id of a rule for a source name
// within a scope.
func RuleID(scope, sourceName string) string {
	return gnuuid.New(scope + "|" + sourceName).String()
}

// UpsertRule creates a rule or increments the usage count of the
// existing rule for the same source name and scope in one statement.
func (s *sqlStore) UpsertRule(
	ctx context.Context,
	r tag.MergeRule,
) (tag.MergeRule, error) {
	onConflict := " ON CONFLICT (source_name, scope) DO UPDATE SET " +
		"canonical_name = excluded.canonical_name, " +
		"usage_count = " + rulesTable + ".usage_count + 1"
	return s.writeRule(ctx, "upsert rule", r, 1, onConflict)
}

// PutRule writes a rule keeping its usage count.
func (s *sqlStore) PutRule(ctx context.Context, r tag.MergeRule) error {
	if r.UsageCount < 1 {
		r.UsageCount = 1
	}
	onConflict := " ON CONFLICT (source_name, scope) DO UPDATE SET " +
		"canonical_name = excluded.canonical_name, " +
		"usage_count = excluded.usage_count"
	_, err := s.writeRule(ctx, "put rule", r, r.UsageCount, onConflict)
	return err
}

func (s *sqlStore) writeRule(
	ctx context.Context,
	op string,
	r tag.MergeRule,
	count int,
	onConflict string,
) (tag.MergeRule, error) {
	r.ID = RuleID(r.Scope, r.SourceName)
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now()
	}

	ib := s.flavor.NewInsertBuilder()
	ib.InsertInto(rulesTable).Cols(ruleColumns...)
	ib.Values(
		r.ID, r.SourceName, r.CanonicalName, r.Scope, count,
		r.CreatedBy, r.CreatedAt.UTC(),
	)
	query, args := ib.Build()
	query += onConflict + " RETURNING " + joinColumns(ruleColumns)

	res, err := scanRule(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return res, WriteError(op, err)
	}
	return res, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRule(row rowScanner) (tag.MergeRule, error) {
	var res tag.MergeRule
	var created nullTime
	err := row.Scan(
		&res.ID, &res.SourceName, &res.CanonicalName, &res.Scope,
		&res.UsageCount, &res.CreatedBy, &created,
	)
	res.CreatedAt = created.Time
	return res, err
}

// Rules returns all rules ordered by scope and source name.
func (s *sqlStore) Rules(ctx context.Context) ([]tag.MergeRule, error) {
	sb := s.flavor.NewSelectBuilder()
	sb.Select(ruleColumns...).From(rulesTable)
	sb.OrderBy("scope", "source_name")

	query, args := sb.Build()
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, QueryError("select rules", err)
	}
	defer rows.Close()

	res := make([]tag.MergeRule, 0)
	for rows.Next() {
		r, err := scanRule(rows)
		if err != nil {
			return nil, QueryError("scan rule", err)
		}
		res = append(res, r)
	}
	if err = rows.Err(); err != nil {
		return nil, QueryError("select rules", err)
	}
	return res, nil
}

// DeleteRule removes a rule by its id.
func (s *sqlStore) DeleteRule(ctx context.Context, id string) (bool, error) {
	dlb := s.flavor.NewDeleteBuilder()
	dlb.DeleteFrom(rulesTable)
	dlb.Where(dlb.Equal("id", id))

	query, args := dlb.Build()
	n, err := s.exec(ctx, "delete rule", query, args)
	return n > 0, err
}
