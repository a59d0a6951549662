package iooptimize_test

import (
	"context"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/internal/iodb"
	"github.com/gnames/gntag/internal/iooptimize"
	"github.com/gnames/gntag/internal/ioschema"
	"github.com/gnames/gntag/internal/iostore"
	"github.com/gnames/gntag/internal/iotesting"
	"github.com/gnames/gntag/pkg/errcode"
	"github.com/gnames/gntag/pkg/store"
	"github.com/gnames/gntag/pkg/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimize_NotConnected(t *testing.T) {
	o := iooptimize.NewOptimizer(iodb.NewSQLiteOperator(), nil)
	_, err := o.Optimize(context.Background())
	require.Error(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.OptimizeNotConnectedError, gnErr.Code)
}

func TestOptimize(t *testing.T) {
	ctx := context.Background()
	op := iotesting.ConnectSQLite(t)
	require.NoError(t, ioschema.NewManager(op).Create(ctx))
	s, err := iostore.New(op)
	require.NoError(t, err)

	iotesting.Seed(t, s,
		iotesting.Parent("p1", "Saúde", "d1"),
		iotesting.Parent("p2", "Cultura", "d1"),
		iotesting.Child("c1", "Vacina", "d1", "p1"),
		iotesting.Child("c2", "Teatro", "d1", "p2"),
	)
	_, err = s.DeleteTags(ctx, store.Filter{IDs: []string{"p2"}})
	require.NoError(t, err)

	res, err := iooptimize.NewOptimizer(op, s).Optimize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Tags)
	assert.Equal(t, 1, res.Orphans)

	tags, err := s.Tags(ctx, store.Filter{Type: tag.Child})
	require.NoError(t, err)
	assert.Len(t, tags, 2, "orphans are kept")
}
