package iocurator_test

import (
	"context"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/internal/iotesting"
	"github.com/gnames/gntag/pkg/errcode"
	"github.com/gnames/gntag/pkg/store"
	"github.com/gnames/gntag/pkg/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withOrphans() []tag.Tag {
	return []tag.Tag{
		iotesting.Parent("p1", "Saúde", "d1"),
		iotesting.Parent("p2", "Cultura", "d1"),
		iotesting.Child("c1", "Hospital", "d1", "p1"),
		iotesting.Child("c3", "Posto", "d2", "ghost"),
		iotesting.Child("c4", "Clínica", "d3", ""),
	}
}

func TestAdoptOrphan(t *testing.T) {
	ctx := context.Background()
	c, s := setup(t, withOrphans()...)

	res, err := c.AdoptOrphan(ctx, "c3", "p2", "fits culture")
	require.NoError(t, err)
	assert.Equal(t, tag.ActionAdoptOrphan, res.Action)
	assert.Equal(t, tag.Succeeded, res.Status)
	assert.Equal(t, "p2", *parentOf(t, s, "c3"))

	orphans, err := c.ListOrphans(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"c4"}, tagIDs(orphans))

	evs := events(t, s)
	require.Len(t, evs, 1)
	assert.Equal(t, tag.ActionAdoptOrphan, evs[0].Action)
	assert.Equal(t, "ghost", evs[0].Decision["previous_parent_id"])
	assert.Equal(t, "fits culture", evs[0].Rationale)

	res, err = c.AdoptOrphan(ctx, "c4", "p1", "")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Succeeded)
}

func TestAdoptOrphan_Refused(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		msg      string
		orphanID string
		parentID string
		code     gn.ErrorCode
	}{
		{"empty", "", "p1", errcode.CurateValidationError},
		{"not an orphan", "c1", "p2", errcode.CurateValidationError},
		{"parent is a child", "c3", "c1", errcode.CurateValidationError},
		{"missing orphan", "nope", "p1", errcode.CurateTagNotFoundError},
		{"missing parent", "c3", "nope", errcode.CurateTagNotFoundError},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			c, s := setup(t, withOrphans()...)
			res, err := c.AdoptOrphan(ctx, v.orphanID, v.parentID, "")
			assertCode(t, err, v.code)
			assert.Equal(t, tag.Failed, res.Status)
			assert.Empty(t, events(t, s))
		})
	}
}

func TestDeleteOrphans(t *testing.T) {
	ctx := context.Background()

	t.Run("one", func(t *testing.T) {
		c, s := setup(t, withOrphans()...)
		res, err := c.DeleteOrphans(ctx, []string{"c4"}, "noise")
		require.NoError(t, err)
		assert.Equal(t, tag.ActionDeleteOrphan, res.Action)

		n, err := s.CountTags(ctx, store.Filter{IDs: []string{"c4"}})
		require.NoError(t, err)
		assert.Zero(t, n)

		evs := events(t, s)
		require.Len(t, evs, 1)
		assert.Equal(t, tag.ActionDeleteOrphan, evs[0].Action)
	})

	t.Run("bulk", func(t *testing.T) {
		c, s := setup(t, withOrphans()...)
		res, err := c.DeleteOrphans(ctx, []string{"c3", "c1", "c4"}, "")
		assertCode(t, err, errcode.CurateItemError)
		assert.Equal(t, tag.ActionBulkDeleteOrphans, res.Action)
		assert.Equal(t, tag.Partial, res.Status)
		assert.Equal(t, 2, res.Succeeded)
		assert.Equal(t, []string{"c1"}, res.FailedItems)
		assert.Equal(t, 2, res.Documents)

		left, err := s.Tags(ctx, store.Filter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"p1", "p2", "c1"}, tagIDs(left))

		evs := events(t, s)
		require.Len(t, evs, 1)
		assert.Equal(t, tag.ActionBulkDeleteOrphans, evs[0].Action)
	})

	t.Run("empty", func(t *testing.T) {
		c, s := setup(t, withOrphans()...)
		_, err := c.DeleteOrphans(ctx, nil, "")
		assertCode(t, err, errcode.CurateValidationError)
		assert.Empty(t, events(t, s))
	})
}
