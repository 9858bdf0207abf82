package sequence

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/updseq/internal/group"
	"github.com/roach88/updseq/internal/testutil"
	"github.com/roach88/updseq/internal/update"
)

func TestScenarioA_PrimaryAndSecondary(t *testing.T) {
	del := testutil.Delete(100, 1, 1)
	msg := testutil.NewMessage(101, 1, 7)
	enc := testutil.Encrypted(5)

	groups := group.Classify([]update.Record{msg, del, enc}, update.References{}, 1000, nil)

	primary := ExtractPrimary(groups)
	require.Len(t, primary, 2)
	assert.Equal(t, int32(100), primary[0].Range.Start)
	assert.Equal(t, int32(101), primary[1].Range.Start)
	assert.Equal(t, update.Record(del), primary[0].Record)

	secondary := ExtractSecondary(groups)
	require.Len(t, secondary, 1)
	assert.Equal(t, update.CounterRange{Start: 5, Count: 1}, secondary[0].Range)
	assert.Equal(t, update.Record(enc), secondary[0].Record)
}

func TestScenarioB_SessionCarriesOnlyUntagged(t *testing.T) {
	typing := testutil.Typing(3)
	records := []update.Record{testutil.Delete(100, 1), testutil.NewMessage(101, 1, 7), testutil.Encrypted(5), typing}

	groups := group.Classify(records, update.References{}, 1000, &group.SeqRange{Start: 50, End: 52})
	require.Len(t, groups, 3)

	sessions := ExtractSession(groups)
	require.Len(t, sessions, 1)
	assert.Equal(t, group.SeqRange{Start: 50, End: 52}, sessions[0].Seq)
	assert.Equal(t, []update.Record{typing}, sessions[0].Records)
	assert.Equal(t, int32(1000), sessions[0].Date)
}

func TestScenarioC_CounterAdvanceSortsWithRecords(t *testing.T) {
	rec := testutil.NewMessage(150, 1, 7)
	groups := []group.Group{
		group.CounterAdvance{Counter: 200, Count: 3},
		group.PrimaryBatch{Records: []update.Record{rec}},
	}

	primary := ExtractPrimary(groups)

	require.Len(t, primary, 2)
	assert.Equal(t, int32(150), primary[0].Range.Start)
	assert.Equal(t, update.Record(rec), primary[0].Record)
	assert.Equal(t, update.CounterRange{Start: 200, Count: 3}, primary[1].Range)
	assert.Nil(t, primary[1].Record)
	assert.True(t, primary[1].Refs.IsEmpty())
}

func TestExtractPrimary_SortedAcrossInterleavedGroups(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 100; i++ {
		groups := randomGroups(rng, 1+rng.Intn(8))

		primary := ExtractPrimary(groups)
		for j := 1; j < len(primary); j++ {
			assert.LessOrEqual(t, primary[j-1].Range.Start, primary[j].Range.Start)
		}

		secondary := ExtractSecondary(groups)
		for j := 1; j < len(secondary); j++ {
			assert.LessOrEqual(t, secondary[j-1].Range.Start, secondary[j].Range.Start)
		}
	}
}

func TestExtractPrimary_TiesKeepArrivalOrder(t *testing.T) {
	first := testutil.Delete(100, 1, 1)
	second := testutil.Delete(100, 1, 2)
	groups := []group.Group{
		group.PrimaryBatch{Records: []update.Record{testutil.Delete(120, 1), first}},
		group.PrimaryBatch{Records: []update.Record{second}},
	}

	primary := ExtractPrimary(groups)

	require.Len(t, primary, 3)
	assert.Equal(t, update.Record(first), primary[0].Record)
	assert.Equal(t, update.Record(second), primary[1].Record)
}

func TestExtractPrimary_PairsItemsWithBatchRefs(t *testing.T) {
	refsA := testutil.Refs(1, 10)
	refsB := testutil.Refs(2, 20)
	groups := []group.Group{
		group.PrimaryBatch{Records: []update.Record{testutil.Delete(110, 1)}, Refs: refsA},
		group.PrimaryBatch{Records: []update.Record{testutil.Delete(105, 1)}, Refs: refsB},
	}

	primary := ExtractPrimary(groups)

	require.Len(t, primary, 2)
	assert.Equal(t, refsB, primary[0].Refs)
	assert.Equal(t, refsA, primary[1].Refs)
}

func TestExtractSession_PreservesArrivalOrder(t *testing.T) {
	groups := []group.Group{
		group.SessionBatch{Seq: group.SeqRange{Start: 9, End: 9}, Date: 3},
		group.TimestampBatch{Date: 99},
		group.SessionBatch{Seq: group.SeqRange{Start: 2, End: 4}, Date: 1},
		group.SessionBatch{Seq: group.SeqRange{Start: 5, End: 5}, Date: 2},
	}

	sessions := ExtractSession(groups)

	require.Len(t, sessions, 3)
	assert.Equal(t, int32(9), sessions[0].Seq.Start)
	assert.Equal(t, int32(2), sessions[1].Seq.Start)
	assert.Equal(t, int32(5), sessions[2].Seq.Start)
}

func TestExtractTimestamp_FiltersAndPreservesOrder(t *testing.T) {
	late := group.TimestampBatch{Date: 2000}
	early := group.TimestampBatch{Date: 1000, Records: []update.Record{testutil.Typing(1)}}
	groups := []group.Group{
		late,
		group.PrimaryBatch{Records: []update.Record{testutil.Delete(1, 1)}},
		group.Reset{},
		early,
		group.SessionBatch{},
	}

	assert.Equal(t, []group.Group{late, early}, ExtractTimestamp(groups))
}

func TestExtractors_IgnoreUnrelatedVariants(t *testing.T) {
	groups := []group.Group{group.Reset{}, group.TimestampBatch{Date: 1}, group.SessionBatch{}}

	assert.Empty(t, ExtractPrimary(groups))
	assert.Empty(t, ExtractSecondary(groups))
}

func TestExtractors_Idempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	groups := randomGroups(rng, 10)

	assert.Equal(t, ExtractPrimary(groups), ExtractPrimary(groups))
	assert.Equal(t, ExtractSecondary(groups), ExtractSecondary(groups))
	assert.Equal(t, ExtractSession(groups), ExtractSession(groups))
	assert.Equal(t, ExtractTimestamp(groups), ExtractTimestamp(groups))
	assert.Equal(t, Extract(groups), Extract(groups))
}

func TestExtractors_DoNotMutateInput(t *testing.T) {
	groups := []group.Group{
		group.PrimaryBatch{Records: []update.Record{testutil.Delete(120, 1), testutil.Delete(100, 1)}},
		group.CounterAdvance{Counter: 90, Count: 1},
	}
	before := group.Describe(groups[0])

	_ = ExtractPrimary(groups)

	assert.Equal(t, before, group.Describe(groups[0]))
	assert.Equal(t, group.CounterAdvance{Counter: 90, Count: 1}, groups[1])
}

func TestExtract_BundlesAllViews(t *testing.T) {
	groups := []group.Group{
		group.PrimaryBatch{Records: []update.Record{testutil.Delete(100, 1)}},
		group.SecondaryBatch{Records: []update.Record{testutil.Encrypted(5)}},
		group.SessionBatch{Seq: group.SeqRange{Start: 1, End: 1}},
		group.TimestampBatch{Date: 7},
		group.Reset{},
	}

	views := Extract(groups)

	assert.Len(t, views.Primary, 1)
	assert.Len(t, views.Secondary, 1)
	assert.Len(t, views.Session, 1)
	assert.Len(t, views.Timestamp, 1)
	assert.True(t, views.HasReset)
	assert.False(t, Extract(groups[:4]).HasReset)
}

// randomGroups classifies n random frames and sprinkles in counter advances.
func randomGroups(rng *rand.Rand, n int) []group.Group {
	var groups []group.Group
	for i := 0; i < n; i++ {
		if rng.Intn(5) == 0 {
			groups = append(groups, group.CounterAdvance{Counter: rng.Int31n(1000), Count: 1 + rng.Int31n(3)})
			continue
		}
		records := make([]update.Record, rng.Intn(6))
		for j := range records {
			switch rng.Intn(3) {
			case 0:
				records[j] = testutil.Delete(rng.Int31n(1000), 1)
			case 1:
				records[j] = testutil.Encrypted(rng.Int31n(1000))
			default:
				records[j] = testutil.Typing(rng.Int63n(10))
			}
		}
		var seq *group.SeqRange
		if rng.Intn(2) == 0 {
			seq = &group.SeqRange{Start: int32(i), End: int32(i)}
		}
		groups = append(groups, group.Classify(records, update.References{}, int32(i), seq)...)
	}
	return groups
}
