package iostore_test

import (
	"context"
	"testing"
	"time"

	"github.com/gnames/gntag/internal/iodb"
	"github.com/gnames/gntag/internal/iostore"
	"github.com/gnames/gntag/internal/iotesting"
	"github.com/gnames/gntag/pkg/store"
	"github.com/gnames/gntag/pkg/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFamily(t *testing.T, s store.Store) {
	conf := 0.9
	p1 := iotesting.Parent("p1", "Saúde", "d1")
	p1.Confidence = &conf
	p1.Synonyms = []string{"Saude", "Health"}
	iotesting.Seed(t, s,
		p1,
		iotesting.Parent("p2", "saude", "d2"),
		iotesting.Child("c1", "Hospital", "d1", "p1"),
		iotesting.Child("c2", "Vacina", "d2", "p2"),
		iotesting.Child("c3", "Posto", "d2", "ghost"),
		iotesting.Child("c4", "Clínica", "d3", ""),
	)
}

func TestNew_NotConnected(t *testing.T) {
	_, err := iostore.New(iodb.NewSQLiteOperator())
	assert.Error(t, err)
}

func TestTags(t *testing.T) {
	ctx := context.Background()
	s := iotesting.NewStore(t)
	seedFamily(t, s)

	all, err := s.Tags(ctx, store.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 6)

	ids := make([]string, len(all))
	for i := range all {
		ids[i] = all[i].ID
	}
	assert.Equal(t, []string{"p1", "p2", "c1", "c2", "c3", "c4"}, ids,
		"order of creation is kept")

	p1 := all[0]
	assert.Equal(t, "Saúde", p1.Name)
	assert.Equal(t, tag.Parent, p1.Type)
	assert.Equal(t, tag.Auto, p1.Source)
	require.NotNil(t, p1.Confidence)
	assert.InDelta(t, 0.9, *p1.Confidence, 0.0001)
	assert.Equal(t, []string{"Saude", "Health"}, p1.Synonyms)
	assert.False(t, p1.CreatedAt.IsZero())
	assert.Nil(t, p1.ParentID)
	assert.Nil(t, all[1].Confidence)

	require.NotNil(t, all[2].ParentID)
	assert.Equal(t, "p1", *all[2].ParentID)
	assert.Nil(t, all[5].ParentID)
}

func TestTags_Filter(t *testing.T) {
	ctx := context.Background()
	s := iotesting.NewStore(t)
	seedFamily(t, s)

	tests := []struct {
		msg    string
		filter store.Filter
		ids    []string
	}{
		{"ids", store.Filter{IDs: []string{"c2", "p1"}}, []string{"p1", "c2"}},
		{"names", store.Filter{Names: []string{"saude"}}, []string{"p2"}},
		{"type", store.Filter{Type: tag.Parent}, []string{"p1", "p2"}},
		{"parents", store.Filter{ParentIDs: []string{"p1", "p2"}}, []string{"c1", "c2"}},
		{"orphaned", store.Filter{Orphaned: true}, []string{"c3", "c4"}},
		{"and", store.Filter{Names: []string{"Saúde", "saude"}, Type: tag.Child}, nil},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res, err := s.Tags(ctx, v.filter)
			require.NoError(t, err)
			var ids []string
			for _, tg := range res {
				ids = append(ids, tg.ID)
			}
			assert.Equal(t, v.ids, ids)

			count, err := s.CountTags(ctx, v.filter)
			require.NoError(t, err)
			assert.Equal(t, len(v.ids), count)
		})
	}
}

func TestUpdateTag(t *testing.T) {
	ctx := context.Background()
	s := iotesting.NewStore(t)
	seedFamily(t, s)

	name := "Saúde Pública"
	syn := []string{"SP"}
	parent := "p2"
	err := s.UpdateTag(ctx, "c1", store.TagUpdate{
		Name:      &name,
		Synonyms:  &syn,
		ParentID:  &parent,
		SetParent: true,
	})
	require.NoError(t, err)

	res, err := s.Tags(ctx, store.Filter{IDs: []string{"c1"}})
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, name, res[0].Name)
	assert.Equal(t, syn, res[0].Synonyms)
	assert.Equal(t, "p2", *res[0].ParentID)

	err = s.UpdateTag(ctx, "c1", store.TagUpdate{SetParent: true})
	require.NoError(t, err)
	res, err = s.Tags(ctx, store.Filter{IDs: []string{"c1"}})
	require.NoError(t, err)
	assert.Nil(t, res[0].ParentID)

	err = s.UpdateTag(ctx, "missing", store.TagUpdate{Name: &name})
	assert.True(t, store.IsNotFound(err))

	assert.NoError(t, s.UpdateTag(ctx, "missing", store.TagUpdate{}),
		"empty update does nothing")
}

func TestSetParentDelete(t *testing.T) {
	ctx := context.Background()
	s := iotesting.NewStore(t)
	seedFamily(t, s)

	n, err := s.SetParent(ctx, store.Filter{ParentIDs: []string{"p2"}}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	master := "p1"
	n, err = s.SetParent(ctx, store.Filter{IDs: []string{"c2", "c4"}}, &master)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	kids, err := s.Tags(ctx, store.Filter{ParentIDs: []string{"p1"}})
	require.NoError(t, err)
	assert.Len(t, kids, 3)

	_, err = s.SetParent(ctx, store.Filter{}, nil)
	assert.Error(t, err, "empty filter is refused")
	_, err = s.DeleteTags(ctx, store.Filter{})
	assert.Error(t, err, "empty filter is refused")

	n, err = s.DeleteTags(ctx, store.Filter{Names: []string{"saude"}})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.CountTags(ctx, store.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	require.NoError(t, s.DeleteAllTags(ctx))
	n, err = s.CountTags(ctx, store.Filter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestInsertTags_Batches(t *testing.T) {
	ctx := context.Background()
	s := iotesting.NewStore(t)

	tags := make([]tag.Tag, 1205)
	for i := range tags {
		tags[i] = tag.Tag{Name: "Tag", Type: tag.Parent, DocumentID: "d"}
	}
	require.NoError(t, s.InsertTags(ctx, tags))

	n, err := s.CountTags(ctx, store.Filter{Names: []string{"Tag"}})
	require.NoError(t, err)
	assert.Equal(t, 1205, n)
}

func TestRules(t *testing.T) {
	ctx := context.Background()
	s := iotesting.NewStore(t)

	r := tag.MergeRule{
		SourceName:    "saude",
		CanonicalName: "Saúde",
		Scope:         "default",
		CreatedBy:     "tester",
	}
	res, err := s.UpsertRule(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, 1, res.UsageCount)
	assert.Equal(t, iostore.RuleID("default", "saude"), res.ID)
	assert.Equal(t, "tester", res.CreatedBy)

	r.CanonicalName = "SAÚDE"
	res, err = s.UpsertRule(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, 2, res.UsageCount)
	assert.Equal(t, "SAÚDE", res.CanonicalName)

	// same source in another scope is a separate rule
	r.Scope = "assistant"
	_, err = s.UpsertRule(ctx, r)
	require.NoError(t, err)

	err = s.PutRule(ctx, tag.MergeRule{
		SourceName: "saude", CanonicalName: "Saúde", Scope: "default",
		UsageCount: 7,
	})
	require.NoError(t, err)

	rules, err := s.Rules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 2)
	assert.Equal(t, "assistant", rules[0].Scope)
	assert.Equal(t, 1, rules[0].UsageCount)
	assert.Equal(t, "default", rules[1].Scope)
	assert.Equal(t, 7, rules[1].UsageCount)
	assert.Equal(t, "Saúde", rules[1].CanonicalName)

	ok, err := s.DeleteRule(ctx, rules[0].ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = s.DeleteRule(ctx, rules[0].ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEvents(t *testing.T) {
	ctx := context.Background()
	s := iotesting.NewStore(t)

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, a := range []tag.Action{tag.ActionMergeParent, tag.ActionDeleteTag} {
		id, err := s.AppendEvent(ctx, tag.Event{
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
			Action:     a,
			Tags:       []tag.InvolvedTag{{ID: "p1", Name: "Saúde", Type: tag.Parent}},
			Decision:   map[string]any{"candidates": []string{"saude"}},
			Rationale:  "same topic",
			DecisionMS: 1500,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, id)
	}

	evs, err := s.Events(ctx, 0)
	require.NoError(t, err)
	require.Len(t, evs, 2)
	assert.Equal(t, tag.ActionDeleteTag, evs[0].Action, "newest first")
	assert.True(t, base.Add(time.Minute).Equal(evs[0].CreatedAt))
	assert.Equal(t, "Saúde", evs[1].Tags[0].Name)
	assert.Equal(t, []any{"saude"}, evs[1].Decision["candidates"])
	assert.Equal(t, "same topic", evs[1].Rationale)
	assert.Equal(t, int64(1500), evs[1].DecisionMS)

	evs, err = s.Events(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, evs, 1)
}

func TestPing(t *testing.T) {
	ctx := context.Background()
	op := iotesting.ConnectSQLite(t)
	s, err := iostore.New(op)
	require.NoError(t, err)
	require.NoError(t, s.Ping(ctx))

	require.NoError(t, op.DB().Close())
	err = s.Ping(ctx)
	require.Error(t, err)
	assert.True(t, store.IsUnavailable(err))

	_, err = s.Tags(ctx, store.Filter{})
	assert.True(t, store.IsUnavailable(err))
}
