package dimuon

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cartesianHeader = "Run,Event,E1,px1,py1,pz1,Q1,E2,px2,py2,pz2,Q2,M,Type"

func TestLoader_CartesianRows(t *testing.T) {
	in := cartesianHeader + "\n" +
		"165617,74601703,9.7,-9.5,0.36,1.1,1,9.76,7.33,-1.15,6.35,-1,17.49,GG\n" +
		"165617,75100943,6.2,-4.2,0.14,4.5,-1,9.67,7.27,-1.06,6.31,1,11.55,GT\n"

	l, err := NewLoader(strings.NewReader(in), DefaultConfig().Columns)
	require.NoError(t, err)

	ev, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(165617), ev.Run)
	assert.Equal(t, int64(74601703), ev.ID)
	assert.Equal(t, 17.49, ev.M)
	assert.True(t, ev.Mu[0].Cartesian)
	assert.Equal(t, -9.5, ev.Mu[0].Px)
	assert.Equal(t, 1, ev.Mu[0].Charge)
	assert.Equal(t, -1, ev.Mu[1].Charge)
	assert.Equal(t, 6.35, ev.Mu[1].Pz)

	// Input order is preserved.
	ev, err = l.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(75100943), ev.ID)

	_, err = l.Next()
	assert.Equal(t, io.EOF, err)
	assert.NoError(t, l.Close())
}

func TestLoader_PolarRows(t *testing.T) {
	in := "pt1,eta1,phi1,Q1,pt2,eta2,phi2,Q2,M\n" +
		"4.5,0.8,1.2,1,5.1,-0.3,-2.0,-1,9.46\n"

	cols := Columns{
		Mass: "M",
		Muons: [2]MuonColumns{
			{Pt: "pt1", Eta: "eta1", Phi: "phi1", Charge: "Q1"},
			{Pt: "pt2", Eta: "eta2", Phi: "phi2", Charge: "Q2"},
		},
	}
	l, err := NewLoader(strings.NewReader(in), cols)
	require.NoError(t, err)

	ev, err := l.Next()
	require.NoError(t, err)
	assert.False(t, ev.Mu[0].Cartesian)
	assert.Equal(t, 4.5, ev.Mu[0].Pt)
	assert.Equal(t, 0.8, ev.Mu[0].Eta)
	assert.Equal(t, -2.0, ev.Mu[1].Phi)
}

func TestLoader_CartesianWinsWhenBothResolve(t *testing.T) {
	in := "px1,py1,pz1,pt1,eta1,phi1,Q1,px2,py2,pz2,pt2,eta2,phi2,Q2,M\n" +
		"1,2,3,99,99,99,1,4,5,6,99,99,99,-1,3.1\n"

	cols := Columns{
		Mass: "M",
		Muons: [2]MuonColumns{
			{Px: "px1", Py: "py1", Pz: "pz1", Pt: "pt1", Eta: "eta1", Phi: "phi1", Charge: "Q1"},
			{Px: "px2", Py: "py2", Pz: "pz2", Pt: "pt2", Eta: "eta2", Phi: "phi2", Charge: "Q2"},
		},
	}
	l, err := NewLoader(strings.NewReader(in), cols)
	require.NoError(t, err)

	ev, err := l.Next()
	require.NoError(t, err)
	assert.True(t, ev.Mu[0].Cartesian)
	assert.Equal(t, 1.0, ev.Mu[0].Px)
	assert.Equal(t, 6.0, ev.Mu[1].Pz)
}

func TestLoader_UnknownColumnsIgnored(t *testing.T) {
	in := cartesianHeader + ",ExtraJunk\n" +
		"1,1,9.7,-9.5,0.36,1.1,1,9.76,7.33,-1.15,6.35,-1,17.49,GG,whatever\n"

	l, err := NewLoader(strings.NewReader(in), DefaultConfig().Columns)
	require.NoError(t, err)

	_, err = l.Next()
	assert.NoError(t, err)
}

func TestLoader_MalformedRows(t *testing.T) {
	for _, tc := range []struct {
		name   string
		row    string
		column string
	}{
		{"non-numeric momentum", "1,1,9.7,oops,0.36,1.1,1,9.76,7.33,-1.15,6.35,-1,17.49,GG", "px"},
		{"charge out of domain", "1,1,9.7,-9.5,0.36,1.1,2,9.76,7.33,-1.15,6.35,-1,17.49,GG", "charge"},
		{"charge zero", "1,1,9.7,-9.5,0.36,1.1,0,9.76,7.33,-1.15,6.35,-1,17.49,GG", "charge"},
		{"missing fields", "1,1,9.7,-9.5", "mass"},
		{"non-numeric mass", "1,1,9.7,-9.5,0.36,1.1,1,9.76,7.33,-1.15,6.35,-1,nope,GG", "mass"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			l, err := NewLoader(strings.NewReader(cartesianHeader+"\n"+tc.row+"\n"), DefaultConfig().Columns)
			require.NoError(t, err)

			_, err = l.Next()
			var merr *MalformedInputError
			require.ErrorAs(t, err, &merr)
			assert.Equal(t, int64(1), merr.Row)
			assert.Equal(t, tc.column, merr.Column)
		})
	}
}

func TestLoader_ContinuesAfterMalformedRow(t *testing.T) {
	in := cartesianHeader + "\n" +
		"1,1,9.7,bad,0.36,1.1,1,9.76,7.33,-1.15,6.35,-1,17.49,GG\n" +
		"1,2,9.7,-9.5,0.36,1.1,1,9.76,7.33,-1.15,6.35,-1,17.49,GG\n"

	l, err := NewLoader(strings.NewReader(in), DefaultConfig().Columns)
	require.NoError(t, err)

	_, err = l.Next()
	var merr *MalformedInputError
	require.ErrorAs(t, err, &merr)

	ev, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, int64(2), ev.ID)
}

func TestLoader_HeaderErrors(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		_, err := NewLoader(strings.NewReader(""), DefaultConfig().Columns)
		var merr *MalformedInputError
		require.ErrorAs(t, err, &merr)
	})

	t.Run("missing mass column", func(t *testing.T) {
		in := "Run,Event,E1,px1,py1,pz1,Q1,E2,px2,py2,pz2,Q2\n"
		_, err := NewLoader(strings.NewReader(in), DefaultConfig().Columns)
		var merr *MalformedInputError
		require.ErrorAs(t, err, &merr)
		assert.Equal(t, int64(0), merr.Row)
	})

	t.Run("missing kinematic columns", func(t *testing.T) {
		in := "Run,Event,Q1,Q2,M\n"
		_, err := NewLoader(strings.NewReader(in), DefaultConfig().Columns)
		var merr *MalformedInputError
		require.ErrorAs(t, err, &merr)
	})
}
