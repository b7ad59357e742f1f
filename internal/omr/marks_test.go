package omr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDensity(t *testing.T) {
	require.Equal(t, 0.25, Density(25, 100))
	require.Equal(t, 0.0, Density(10, 0))
	require.Equal(t, 0.0, Density(10, -4))
}

func TestMarkedChoices_ThresholdIsStrict(t *testing.T) {
	cases := []struct {
		name      string
		densities []float64
		want      []int
	}{
		{"all blank", []float64{0.01, 0.05, 0, 0.1, 0.02}, []int{}},
		{"exactly threshold", []float64{0.20, 0.1, 0.1, 0.1, 0.1}, []int{}},
		{"just below", []float64{0.1999, 0, 0, 0, 0}, []int{}},
		{"just above", []float64{0.2001, 0, 0, 0, 0}, []int{1}},
		{"single mark", []float64{0.05, 0.05, 0.7, 0.05, 0.05}, []int{3}},
		{"every mark above threshold is kept", []float64{0.05, 0.6, 0.9, 0.05, 0.3}, []int{2, 3, 5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, MarkedChoices(tc.densities, 0.20))
		})
	}
}

func TestMarkedDigit(t *testing.T) {
	_, ok := MarkedDigit([]float64{0.1, 0.2, 0.15}, 0.20)
	require.False(t, ok, "maximum exactly at threshold is unmarked")

	d, ok := MarkedDigit([]float64{0.1, 0.2001, 0.15}, 0.20)
	require.True(t, ok)
	require.Equal(t, 1, d)

	d, ok = MarkedDigit([]float64{0, 0, 0.25, 0.1, 0.25, 0, 0, 0, 0, 0}, 0.20)
	require.True(t, ok)
	require.Equal(t, 2, d, "ties resolve to the lowest index")

	d, ok = MarkedDigit([]float64{0.3, 0, 0, 0, 0, 0, 0, 0, 0, 0.8}, 0.20)
	require.True(t, ok)
	require.Equal(t, 9, d)

	_, ok = MarkedDigit(nil, 0.20)
	require.False(t, ok)
}
