package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeneratorRejectsEmptyMix(t *testing.T) {
	_, err := NewGenerator(Params{NumLogicalPages: 10})
	assert.Error(t, err)
}

func TestNewGeneratorRejectsBadSkewWidth(t *testing.T) {
	_, err := NewGenerator(Params{
		NumLogicalPages: 10,
		Mix:             Mix{ReadPercent: 100},
		SkewWidth:       20,
	})
	assert.Error(t, err)
}

func TestSameSeedProducesIdenticalStream(t *testing.T) {
	p := Params{
		NumLogicalPages: 64,
		Mix:             Mix{ReadPercent: 40, WritePercent: 40, TrimPercent: 15, UpkeepPercent: 5},
		SkewPercent:     30,
		SkewWidth:       8,
		Seed:            42,
	}
	g1, err := NewGenerator(p)
	require.NoError(t, err)
	g2, err := NewGenerator(p)
	require.NoError(t, err)

	assert.Equal(t, g1.NextN(200), g2.NextN(200))
}

func TestDifferentSeedsEventuallyDiverge(t *testing.T) {
	base := Params{
		NumLogicalPages: 64,
		Mix:             Mix{ReadPercent: 100},
	}
	base.Seed = 1
	g1, err := NewGenerator(base)
	require.NoError(t, err)
	base.Seed = 2
	g2, err := NewGenerator(base)
	require.NoError(t, err)

	assert.NotEqual(t, g1.NextN(100), g2.NextN(100))
}

func TestOnlyConfiguredKindsAreProduced(t *testing.T) {
	p := Params{
		NumLogicalPages: 10,
		Mix:             Mix{WritePercent: 100},
		Seed:            7,
	}
	g, err := NewGenerator(p)
	require.NoError(t, err)
	for _, c := range g.NextN(50) {
		assert.Equal(t, KindWrite, c.Kind)
	}
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("trim")
	require.NoError(t, err)
	assert.Equal(t, KindTrim, k)

	_, err = ParseKind("bogus")
	assert.Error(t, err)
}

func TestLoadProfileDefaultsCommands(t *testing.T) {
	toml := []byte(`
name = "smoke"
num_logical_pages = 128
read_percent = 50
write_percent = 40
trim_percent = 10
seed = 99
`)
	p, err := LoadProfile(toml)
	require.NoError(t, err)
	assert.Equal(t, "smoke", p.Name)
	assert.Equal(t, 1000, p.Commands)

	params := p.Params()
	assert.Equal(t, 128, params.NumLogicalPages)
	assert.Equal(t, int64(99), params.Seed)
}

func TestLoadProfileRejectsMalformedToml(t *testing.T) {
	_, err := LoadProfile([]byte("not = [valid"))
	assert.Error(t, err)
}
