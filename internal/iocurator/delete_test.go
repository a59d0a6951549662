package iocurator_test

import (
	"context"
	"testing"

	"github.com/gnames/gntag/internal/iocurator"
	"github.com/gnames/gntag/internal/iotesting"
	"github.com/gnames/gntag/pkg/curator"
	"github.com/gnames/gntag/pkg/errcode"
	"github.com/gnames/gntag/pkg/store"
	"github.com/gnames/gntag/pkg/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cardiology() []tag.Tag {
	return []tag.Tag{
		iotesting.Parent("p1", "Cardiologia", "d1"),
		iotesting.Parent("p2", "Cardiologia", "d2"),
		iotesting.Child("c1", "Arritmia", "d1", "p1"),
		iotesting.Child("c2", "Infarto", "d2", "p2"),
	}
}

func TestDelete_ScenarioB(t *testing.T) {
	ctx := context.Background()
	c, s := setup(t,
		iotesting.Parent("p1", "Cardiologia", "d1"),
		iotesting.Child("c1", "Arritmia", "d1", "p1"),
		iotesting.Child("c2", "Infarto", "d1", "p1"),
	)

	res, err := c.Delete(ctx, curator.DeleteInput{
		TagIDs:     []string{"p1"},
		Scope:      tag.ScopeAll,
		Reasons:    []tag.Reason{tag.ReasonGenericTerm},
		Note:       "too broad",
		DecisionMS: 800,
	})
	require.NoError(t, err)
	assert.Equal(t, tag.ActionDeleteAll, res.Action)
	assert.Equal(t, tag.Succeeded, res.Status)
	assert.Equal(t, 1, res.Succeeded)

	assert.Nil(t, parentOf(t, s, "c1"))
	assert.Nil(t, parentOf(t, s, "c2"))

	orphans, err := c.ListOrphans(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1", "c2"}, tagIDs(orphans))

	evs := events(t, s)
	require.Len(t, evs, 1)
	assert.Equal(t, tag.ActionDeleteAll, evs[0].Action)
	assert.Equal(t, []any{"generic-term"}, evs[0].Decision["reasons"])
	assert.EqualValues(t, 2, evs[0].Decision["orphaned"])
	assert.Equal(t, "too broad", evs[0].Rationale)
}

func TestDelete_Scope(t *testing.T) {
	ctx := context.Background()

	t.Run("single", func(t *testing.T) {
		c, s := setup(t, cardiology()...)
		res, err := c.Delete(ctx, curator.DeleteInput{
			TagIDs:  []string{"p1"},
			Reasons: []tag.Reason{tag.ReasonOutOfDomain},
		})
		require.NoError(t, err)
		assert.Equal(t, tag.ActionDeleteTag, res.Action)
		assert.Equal(t, 1, res.Documents)

		left, err := s.Tags(ctx, store.Filter{Names: []string{"Cardiologia"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"p2"}, tagIDs(left))
		assert.Nil(t, parentOf(t, s, "c1"))
		assert.Equal(t, "p2", *parentOf(t, s, "c2"), "other rows are kept")

		evs := events(t, s)
		require.Len(t, evs, 1)
		assert.Equal(t, tag.ActionDeleteTag, evs[0].Action)
	})

	t.Run("all", func(t *testing.T) {
		c, s := setup(t, cardiology()...)
		res, err := c.Delete(ctx, curator.DeleteInput{
			TagIDs:  []string{"p1"},
			Scope:   tag.ScopeAll,
			Reasons: []tag.Reason{tag.ReasonOutOfDomain},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, res.Documents)

		n, err := s.CountTags(ctx, store.Filter{Names: []string{"Cardiologia"}})
		require.NoError(t, err)
		assert.Zero(t, n)
		assert.Nil(t, parentOf(t, s, "c1"))
		assert.Nil(t, parentOf(t, s, "c2"))

		evs := events(t, s)
		require.Len(t, evs, 1)
		assert.Len(t, evs[0].Tags, 2)
	})
}

func TestDelete_Refused(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		msg string
		inp curator.DeleteInput
	}{
		{"no ids", curator.DeleteInput{
			Reasons: []tag.Reason{tag.ReasonMisspelling},
		}},
		{"no reasons", curator.DeleteInput{TagIDs: []string{"p1"}}},
		{"unknown reason", curator.DeleteInput{
			TagIDs:  []string{"p1"},
			Reasons: []tag.Reason{tag.ReasonMisspelling, "boring"},
		}},
		{"unknown scope", curator.DeleteInput{
			TagIDs:  []string{"p1"},
			Scope:   "some",
			Reasons: []tag.Reason{tag.ReasonMisspelling},
		}},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			c, s := setup(t, cardiology()...)
			res, err := c.Delete(ctx, v.inp)
			assertCode(t, err, errcode.CurateValidationError)
			assert.Equal(t, tag.Failed, res.Status)
			assert.Empty(t, events(t, s))

			n, err := s.CountTags(ctx, store.Filter{})
			require.NoError(t, err)
			assert.Equal(t, 4, n)
		})
	}
}

func TestDelete_Partial(t *testing.T) {
	ctx := context.Background()
	c, s := setup(t, cardiology()...)

	res, err := c.Delete(ctx, curator.DeleteInput{
		TagIDs:  []string{"c1", "missing", "c1"},
		Reasons: []tag.Reason{tag.ReasonIsolatedVerb},
	})
	assertCode(t, err, errcode.CurateItemError)
	assert.Equal(t, tag.Partial, res.Status)
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, []string{"missing"}, res.FailedItems)
	assert.NotEmpty(t, res.EventID)
	assert.Len(t, events(t, s), 1)
}

func TestDelete_Unavailable(t *testing.T) {
	ctx := context.Background()
	s := iotesting.NewStore(t)
	iotesting.Seed(t, s, cardiology()...)
	flaky := newFlaky(s)
	flaky.deletesLeft = 0
	c := iocurator.New(iotesting.GetTestConfig(t), flaky, nil)

	res, err := c.Delete(ctx, curator.DeleteInput{
		TagIDs:  []string{"c1", "c2"},
		Reasons: []tag.Reason{tag.ReasonTemporalValue},
	})
	assert.True(t, store.IsUnavailable(err))
	assert.Equal(t, tag.Failed, res.Status)
	assert.Equal(t, 2, res.Failed)
	assert.Empty(t, events(t, s))
}
