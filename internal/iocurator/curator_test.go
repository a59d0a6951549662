package iocurator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gntag/internal/iocurator"
	"github.com/gnames/gntag/internal/iostore"
	"github.com/gnames/gntag/internal/iotesting"
	"github.com/gnames/gntag/pkg/clusters"
	"github.com/gnames/gntag/pkg/curator"
	"github.com/gnames/gntag/pkg/duplicates"
	"github.com/gnames/gntag/pkg/store"
	"github.com/gnames/gntag/pkg/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docID = "0b6a3a40-3f55-4c3c-9a3c-2a5f0c4e2a11"

func setup(t *testing.T, tags ...tag.Tag) (curator.Curator, store.Store) {
	t.Helper()
	s := iotesting.NewStore(t)
	iotesting.Seed(t, s, tags...)
	return iocurator.New(iotesting.GetTestConfig(t), s, nil), s
}

// flakyStore fails chosen calls of a real store.
type flakyStore struct {
	store.Store

	// failRule makes UpsertRule fail for this source name.
	failRule string

	// deletesLeft is the number of DeleteTags calls that work before
	// the store goes down. Negative value means it never goes down.
	deletesLeft int

	down bool
}

func newFlaky(s store.Store) *flakyStore {
	return &flakyStore{Store: s, deletesLeft: -1}
}

func unavailable() error {
	return iostore.UnavailableError("test", errors.New("connection refused"))
}

func (f *flakyStore) Ping(ctx context.Context) error {
	if f.down {
		return unavailable()
	}
	return f.Store.Ping(ctx)
}

func (f *flakyStore) UpsertRule(
	ctx context.Context,
	r tag.MergeRule,
) (tag.MergeRule, error) {
	if r.SourceName == f.failRule {
		return tag.MergeRule{}, errors.New("rule is locked")
	}
	return f.Store.UpsertRule(ctx, r)
}

func (f *flakyStore) DeleteTags(ctx context.Context, fl store.Filter) (int, error) {
	if f.deletesLeft == 0 {
		return 0, unavailable()
	}
	if f.deletesLeft > 0 {
		f.deletesLeft--
	}
	return f.Store.DeleteTags(ctx, fl)
}

func assertCode(t *testing.T, err error, code gn.ErrorCode) {
	t.Helper()
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "%T is not *gn.Error", err)
	assert.Equal(t, code, gnErr.Code)
}

func events(t *testing.T, s store.Store) []tag.Event {
	t.Helper()
	res, err := s.Events(context.Background(), 0)
	require.NoError(t, err)
	return res
}

func parentOf(t *testing.T, s store.Store, id string) *string {
	t.Helper()
	res, err := s.Tags(context.Background(), store.Filter{IDs: []string{id}})
	require.NoError(t, err)
	require.Len(t, res, 1, id)
	return res[0].ParentID
}

func tagIDs(tags []tag.Tag) []string {
	var res []string
	for _, t := range tags {
		res = append(res, t.ID)
	}
	return res
}

// scenarioA has three rows of "Saúde" and one row of "saude".
func scenarioA() []tag.Tag {
	return []tag.Tag{
		iotesting.Parent("p1", "Saúde", "d1"),
		iotesting.Parent("p2", "Saúde", "d2"),
		iotesting.Parent("p3", "Saúde", "d3"),
		iotesting.Parent("p4", "saude", "d4"),
		iotesting.Child("c1", "Vacina", "d4", "p4"),
	}
}

func TestListDuplicates(t *testing.T) {
	c, _ := setup(t, scenarioA()...)

	rep, err := c.ListDuplicates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []duplicates.ExactGroup{
		{Name: "Saúde", Count: 3, IDs: []string{"p1", "p2", "p3"}},
	}, rep.ExactGroups)

	require.Len(t, rep.ParentPairs, 1)
	pair := rep.ParentPairs[0]
	assert.Equal(t, "Saúde", pair.NameA)
	assert.Equal(t, "saude", pair.NameB)
	assert.GreaterOrEqual(t, pair.Score, 0.7)
	assert.Less(t, pair.Score, 1.0)
	assert.Equal(t, []string{"p1", "p2", "p3", "p4"}, pair.IDs)
}

func TestListDuplicates_Cancelled(t *testing.T) {
	c, _ := setup(t, scenarioA()...)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListDuplicates(ctx)
	assert.Error(t, err)
}

func TestBuildClusters(t *testing.T) {
	c, _ := setup(t, scenarioA()...)

	res, err := c.BuildClusters(context.Background())
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Saúde", res[0].Master)
	assert.Equal(t, 3, res[0].MasterDocuments)
	require.Len(t, res[0].Candidates, 1)
	assert.Equal(t, "saude", res[0].Candidates[0].Name)
	assert.Equal(t, 1, res[0].Candidates[0].Documents)
	assert.Equal(t, clusters.ReasonAccent, res[0].Candidates[0].Reason)
}

func TestListOrphans(t *testing.T) {
	c, _ := setup(t,
		iotesting.Parent("p1", "Saúde", "d1"),
		iotesting.Child("c1", "Hospital", "d1", "p1"),
		iotesting.Child("c2", "Posto", "d1", "ghost"),
		iotesting.Child("c3", "Leito", "d1", "c1"),
		iotesting.Child("c4", "Clínica", "d1", ""),
	)

	res, err := c.ListOrphans(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"c2", "c3", "c4"}, tagIDs(res))
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	c, s := setup(t, scenarioA()...)

	doc, err := c.ExportTaxonomy(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Parents, 4)
	evs := events(t, s)
	require.Len(t, evs, 1)
	assert.Equal(t, tag.ActionExportTaxonomy, evs[0].Action)
	assert.EqualValues(t, 4, evs[0].Decision["parents"])

	data := []byte(`{"version": "v0.1.0", "parents": [{"name": "Nutrição"}]}`)
	rep, err := c.ImportTaxonomy(ctx, curator.ImportInput{
		Data:       data,
		DocumentID: docID,
		DryRun:     true,
	})
	require.NoError(t, err)
	assert.Nil(t, rep.Result)
	assert.Len(t, events(t, s), 1, "dry run is not recorded")

	_, err = c.ImportTaxonomy(ctx, curator.ImportInput{
		Data:       []byte(`{"parents": []}`),
		DocumentID: docID,
	})
	assert.Error(t, err)
	assert.Len(t, events(t, s), 1, "refused import is not recorded")

	rep, err = c.ImportTaxonomy(ctx, curator.ImportInput{
		Data:       data,
		Mode:       curator.ImportMerge,
		DocumentID: docID,
	})
	require.NoError(t, err)
	require.NotNil(t, rep.Result)
	assert.NotEmpty(t, rep.Result.EventID)

	evs = events(t, s)
	require.Len(t, evs, 2)
	assert.Equal(t, tag.ActionImportTaxonomy, evs[0].Action)
	assert.Equal(t, "merge", evs[0].Decision["mode"])
	assert.Equal(t, docID, evs[0].Decision["document_id"])
}
