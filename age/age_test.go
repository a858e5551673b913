package age_test

import (
	"context"
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

func mustUPb(t *testing.T, r75, s75, r68, s68, rho float64) model.UPbAnalysis {
	t.Helper()
	d, err := model.NewUPbAnalysis(r75, s75, r68, s68, rho)
	require.NoError(t, err)
	return d
}

func TestAge68Age75(t *testing.T) {
	d := mustUPb(t, 22.6602, 0.0175, 0.40864, 0.00017, 0.83183)

	a68, err := age.Age68(d, decay.Default238)
	require.NoError(t, err)
	assert.InDelta(t, 2208.700724679485, a68.Mean, 1e-8)
	assert.InDelta(t, 1.4387310136084952, a68.Sigma, 1e-8)

	a75, err := age.Age75(d, decay.Default235)
	require.NoError(t, err)
	assert.InDelta(t, 3209.725483265418, a75.Mean, 1e-8)
	assert.InDelta(t, 1.9418205184732507, a75.Sigma, 1e-8)

	pair75, pair68, err := age.Age(d)
	require.NoError(t, err)
	assert.Equal(t, a75, pair75)
	assert.Equal(t, a68, pair68)

	disc, err := age.Discordance(d)
	require.NoError(t, err)
	assert.InDelta(t, 31.187239027293362, disc, 1e-8)
}

func TestAge68_PbPbUsesFirstComponent(t *testing.T) {
	u := mustUPb(t, 5, 0.01, 0.3, 0.001, 0)
	p, err := model.NewPbPbAnalysis(0.3, 0.001, 0.1, 0.001, 0)
	require.NoError(t, err)

	au, err := age.Age68(u, decay.Default238)
	require.NoError(t, err)
	ap, err := age.Age68(p, decay.Default238)
	require.NoError(t, err)
	assert.Equal(t, au, ap)
}

func TestAge68_MonotonicInRatioAndLambda(t *testing.T) {
	prev := math.Inf(-1)
	for _, r := range []float64{0.01, 0.05, 0.1, 0.3, 0.6, 1.0} {
		d := mustUPb(t, 1, 0.01, r, 0.001, 0)
		a, err := age.Age68(d, decay.Default238)
		require.NoError(t, err)
		assert.Greater(t, a.Mean, prev)
		prev = a.Mean
	}

	d := mustUPb(t, 10, 0.01, 0.4, 0.001, 0)
	prev = math.Inf(1)
	for _, l := range []float64{1e-4, 1.5e-4, 2e-4, 9.8e-4} {
		a68, err := age.Age68(d, decay.Literal(l, 0))
		require.NoError(t, err)
		assert.Less(t, a68.Mean, prev)
		prev = a68.Mean

		a75, err := age.Age75(d, decay.Literal(l, 0))
		require.NoError(t, err)
		assert.Greater(t, a75.Mean, 0.0)
	}
}

func TestAge_InvalidSelector(t *testing.T) {
	d := mustUPb(t, 1, 0.01, 0.1, 0.001, 0)
	_, err := age.Age68(d, decay.Named("unknown"))
	assert.ErrorIs(t, err, common.ErrorInvalidSelector)

	_, err = age.NewConstants(decay.Default238, decay.Named("jaffey-236"))
	assert.ErrorIs(t, err, common.ErrorInvalidSelector)
}

func TestAge_DomainError(t *testing.T) {
	d := mustUPb(t, -1.5, 0.01, 0.1, 0.001, 0)
	_, _, err := age.Age(d)
	assert.ErrorIs(t, err, common.ErrorDomain)
}

func TestDiscordance_Concordant(t *testing.T) {
	lambda := uncertain.New(5e-4, 1e-7)
	c := age.Constants{Lambda238: lambda, Lambda235: lambda}
	d := mustUPb(t, 0.7, 0.01, 0.7, 0.01, 0.5)
	disc, err := c.Discordance(d)
	require.NoError(t, err)
	assert.Equal(t, 0.0, disc)

	// a point on the concordia is concordant with the default constants
	r75, r68 := age.DefaultConstants.Concordia(1200)
	disc, err = age.Discordance(mustUPb(t, r75, 0.01, r68, 0.001, 0.9))
	require.NoError(t, err)
	assert.InDelta(t, 0, disc, 1e-9)
}

func TestNewConstants(t *testing.T) {
	c, err := age.NewConstants(decay.Default238, decay.Named(decay.LabelJaffey235))
	require.NoError(t, err)
	assert.Equal(t, decay.Lambda238Jaffey, c.Lambda238)
	assert.Equal(t, decay.Lambda235Jaffey, c.Lambda235)
}

func TestCalculateSampleAges(t *testing.T) {
	analyses := []model.UPbAnalysis{
		mustUPb(t, 22.6602, 0.0175, 0.40864, 0.00017, 0.83183),
		mustUPb(t, -2, 0.01, 0.1, 0.001, 0), // 1+r75 < 0, skipped
		mustUPb(t, 0.9937, 0.01, 0.1147, 0.001, 0.5),
		mustUPb(t, 0.9937, math.NaN(), 0.1147, 0.001, 0.5), // missing sigma, skipped
	}
	ages := age.CalculateSampleAges(context.Background(), analyses, age.DefaultConstants)
	require.Len(t, ages, 2)
	assert.Equal(t, 0, ages[0].Index)
	assert.Equal(t, 2, ages[1].Index)
	assert.InDelta(t, 31.187239027293362, ages[0].Discordance, 1e-8)

	concordant := age.FilterConcordant(ages, 10)
	require.Len(t, concordant, 1)
	assert.Equal(t, 2, concordant[0].Index)
}
