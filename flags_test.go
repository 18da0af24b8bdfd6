package dimuplot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatArrayFlags(t *testing.T) {
	var f FloatArrayFlags

	require.NoError(t, f.Set("1.5"))
	require.NoError(t, f.Set("-2"))
	assert.Equal(t, []float64{1.5, -2}, f.Array)

	assert.Error(t, f.Set("nope"))
}

func TestFloatArrayFlags_SetClearsDefault(t *testing.T) {
	f := FloatArrayFlags{Array: []float64{3.1, 9.5}}

	require.NoError(t, f.Set("91.2"))
	assert.Equal(t, []float64{91.2}, f.Array)
}

func TestStringArrayFlags(t *testing.T) {
	f := StringArrayFlags{Array: []string{"default.png"}}

	require.NoError(t, f.Set("a.png"))
	require.NoError(t, f.Set("b.png"))
	assert.Equal(t, []string{"a.png", "b.png"}, f.Array)
}

func TestWindowFlags(t *testing.T) {
	var f WindowFlags

	require.NoError(t, f.Set("jpsi:2.9:3.3:80"))
	require.NoError(t, f.Set("z:80:100:40"))
	assert.Equal(t, []Window{
		{Name: "jpsi", Min: 2.9, Max: 3.3, Bins: 80},
		{Name: "z", Min: 80, Max: 100, Bins: 40},
	}, f.Windows)
}

func TestWindowFlags_Invalid(t *testing.T) {
	for _, s := range []string{
		"jpsi:2.9:3.3",      // missing bins
		"jpsi:a:3.3:80",     // non-numeric min
		"jpsi:2.9:b:80",     // non-numeric max
		"jpsi:2.9:3.3:many", // non-numeric bins
		"jpsi:3.3:2.9:80",   // inverted range
		"jpsi:2.9:3.3:0",    // no bins
	} {
		var f WindowFlags
		assert.Error(t, f.Set(s), "input %q", s)
	}
}
