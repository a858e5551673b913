package decay_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uyouii/geochron/common"
	"github.com/uyouii/geochron/decay"
)

func TestLookup(t *testing.T) {
	for _, label := range []string{"jaffey-238", "schoene-235", "schoene-235-internal", "jaffey-235"} {
		c, err := decay.Lookup(label)
		require.NoError(t, err, label)
		assert.Equal(t, label, c.Label)
		assert.Positive(t, c.Value.Mean)
		assert.Positive(t, c.Value.Sigma)
	}
	assert.Len(t, decay.Labels(), 4)
}

func TestLookup_Unknown(t *testing.T) {
	_, err := decay.Lookup("steiger-238")
	require.True(t, errors.Is(err, common.ErrorInvalidSelector))
	assert.Contains(t, err.Error(), "steiger-238")
}

func TestSelector_Resolve(t *testing.T) {
	v, err := decay.Default238.Resolve()
	require.NoError(t, err)
	assert.Equal(t, decay.Lambda238Jaffey, v)

	v, err = decay.Literal(1.5e-4, 1e-7).Resolve()
	require.NoError(t, err)
	assert.Equal(t, 1.5e-4, v.Mean)
	assert.Equal(t, 1e-7, v.Sigma)

	_, err = decay.Named("nope").Resolve()
	assert.ErrorIs(t, err, common.ErrorInvalidSelector)

	_, err = decay.Literal(-1, 0).Resolve()
	assert.ErrorIs(t, err, common.ErrorInvalidSelector)
}

func TestParseSelector(t *testing.T) {
	s := decay.ParseSelector(" 9.8569e-4 ")
	require.True(t, s.IsLiteral())
	v, err := s.Resolve()
	require.NoError(t, err)
	assert.Equal(t, 9.8569e-4, v.Mean)
	assert.Zero(t, v.Sigma)

	s = decay.ParseSelector("schoene-235-internal")
	assert.False(t, s.IsLiteral())
	assert.Equal(t, "schoene-235-internal", s.String())
}
