package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithGolden_Scenarios(t *testing.T) {
	for _, name := range []string{"counter_ordering", "gap_and_reset", "session_gap"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario("testdata/scenarios/" + name + ".yaml")
			require.NoError(t, err)

			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass)
		})
	}
}

func TestSnapshot_Deterministic(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/counter_ordering.yaml")
	require.NoError(t, err)

	first, err := Run(s)
	require.NoError(t, err)
	second, err := Run(s)
	require.NoError(t, err)

	a, err := NewSnapshot(s.Name, first).Marshal()
	require.NoError(t, err)
	b, err := NewSnapshot(s.Name, second).Marshal()
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	ha, err := NewSnapshot(s.Name, first).Hash()
	require.NoError(t, err)
	hb, err := NewSnapshot(s.Name, second).Hash()
	require.NoError(t, err)
	assert.Equal(t, ha, hb)
	assert.Len(t, ha, 64)
}

func TestSnapshot_ExcludesPassAndErrors(t *testing.T) {
	result := NewResult()
	result.AddError("boom")

	data, err := NewSnapshot("x", result).Marshal()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "boom")
	assert.NotContains(t, string(data), `"pass"`)
}
