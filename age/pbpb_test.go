package age_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uyouii/geochron/age"
	"github.com/uyouii/geochron/common"
	"github.com/uyouii/geochron/decay"
	"github.com/uyouii/geochron/model"
	"github.com/uyouii/geochron/uncertain"
)

func TestRatioPbPb(t *testing.T) {
	l235, l238 := decay.Lambda235Schoene.Mean, decay.Lambda238Jaffey.Mean
	assert.InDelta(t, 0.07262955282533368, age.RatioPbPb(1000, l235, l238), 1e-12)

	// the t -> 0 limit is finite
	assert.InDelta(t, age.RatioPbPb(1e-6, l235, l238), age.RatioPbPb(0, l235, l238), 1e-9)

	prev := 0.0
	for _, tt := range []float64{0, 100, 1000, 2000, 3000, 4500} {
		r := age.RatioPbPb(tt, l235, l238)
		assert.Greater(t, r, prev)
		prev = r
	}
}

func TestAge76_RoundTrip(t *testing.T) {
	l235, l238 := decay.Lambda235Schoene.Mean, decay.Lambda238Jaffey.Mean
	for _, want := range []float64{50, 500, 1850, 3400, 4400} {
		d, err := model.NewPbPbAnalysis(0.3, 0.001, age.RatioPbPb(want, l235, l238), 0.0005, 0.1)
		require.NoError(t, err)
		got, err := age.Age76(d, 0, 4570)
		require.NoError(t, err)
		assert.InDelta(t, want, got, 1e-6)
	}
}

func TestAge76_Errors(t *testing.T) {
	d, err := model.NewPbPbAnalysis(0.3, 0.001, 0.0726, 0.0005, 0.1)
	require.NoError(t, err)

	_, err = age.Age76(d, 2000, 4000)
	assert.ErrorIs(t, err, common.ErrorNoConvergence)

	_, err = age.Age76(d, 4000, 2000)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)

	nan, err := model.NewPbPbAnalysis(0.3, 0.001, math.NaN(), 0.0005, 0.1)
	require.NoError(t, err)
	_, err = age.Age76(nan, 0, 4570)
	assert.ErrorIs(t, err, common.ErrorInvalidValue)
}

func TestStaceyKramers(t *testing.T) {
	r64, r74 := age.StaceyKramers(0)
	assert.Equal(t, 18.7, r64)
	assert.Equal(t, 15.628, r74)

	r64, r74 = age.StaceyKramers(1000)
	assert.InDelta(t, 17.06558974641326, r64, 1e-9)
	assert.InDelta(t, 15.509293514148855, r74, 1e-9)

	r64, r74 = age.StaceyKramers(3700)
	assert.Equal(t, 11.152, r64)
	assert.Equal(t, 12.998, r74)

	// the two stages nearly join at 3700 Myr
	b64, b74 := age.StaceyKramers(3699.999)
	assert.InDelta(t, r64, b64, 0.02)
	assert.InDelta(t, r74, b74, 0.02)

	for _, tt := range []float64{4570, 5000, math.NaN()} {
		r64, r74 = age.StaceyKramers(tt)
		assert.True(t, math.IsNaN(r64), "t=%v", tt)
		assert.True(t, math.IsNaN(r74), "t=%v", tt)
		_, ok := age.StaceyKramersPoint(tt)
		assert.False(t, ok)
	}

	p, ok := age.StaceyKramersPoint(4000)
	require.True(t, ok)
	assert.InDelta(t, 10.54394149757904, p.R64, 1e-9)
	assert.InDelta(t, 12.30939102227753, p.R74, 1e-9)
}

func TestStaceyKramersCurve(t *testing.T) {
	curve := age.StaceyKramersCurve(0, 5000, 11)
	// 4500 is the last sampled time inside the model
	require.Len(t, curve, 10)
	assert.Equal(t, 0.0, curve[0].T)
	assert.Equal(t, 4500.0, curve[9].T)
	for i := 1; i < len(curve); i++ {
		assert.Less(t, curve[i].R64, curve[i-1].R64)
	}
}

func TestStaceyKramers_CustomConstants(t *testing.T) {
	c := age.Constants{Lambda238: uncertain.New(1.6e-4, 0), Lambda235: age.DefaultConstants.Lambda235}

	p, ok := c.StaceyKramersPoint(1000)
	require.True(t, ok)
	r64, r74 := c.StaceyKramers(1000)
	assert.Equal(t, model.CommonLead{T: 1000, R64: r64, R74: r74}, p)

	def, ok := age.StaceyKramersPoint(1000)
	require.True(t, ok)
	assert.NotEqual(t, def.R64, p.R64)
	assert.Equal(t, def.R74, p.R74)

	curve := c.StaceyKramersCurve(1000, 1000, 1)
	require.Len(t, curve, 1)
	assert.Equal(t, p, curve[0])
}
