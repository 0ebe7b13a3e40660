package shielding

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Dosewatch/internal/dose"
)

func TestTransmission_NoneIsOne(t *testing.T) {
	for _, th := range []float64{0, 0.1, 5, 20} {
		got, err := Transmission(MaterialNone, th)
		require.NoError(t, err)
		assert.Equal(t, 1.0, got)
	}
}

func TestTransmission_ZeroThicknessIsOne(t *testing.T) {
	got, err := Transmission(MaterialAluminum, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = Transmission(MaterialPolyethylene, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)
}

func TestTransmission_Aluminum(t *testing.T) {
	got, err := Transmission(MaterialAluminum, 10)
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-3.6), got, 1e-12)
	assert.InDelta(t, 0.0273, got, 1e-4)

	got, err = Transmission(MaterialAluminum, 5)
	require.NoError(t, err)
	assert.InDelta(t, 0.1653, got, 1e-4)
}

func TestTransmission_Polyethylene(t *testing.T) {
	got, err := Transmission(MaterialPolyethylene, 2)
	require.NoError(t, err)
	assert.Equal(t, math.Exp(-0.69*2), got)
}

func TestTransmission_Range(t *testing.T) {
	for _, m := range []Material{MaterialAluminum, MaterialPolyethylene} {
		for th := 0.0; th <= 20; th += 0.1 {
			got, err := Transmission(m, th)
			require.NoError(t, err)
			if got <= 0 || got > 1 {
				t.Fatalf("%s at %v cm: transmission %v outside (0,1]", m, th, got)
			}
		}
	}
}

func TestTransmission_Rejects(t *testing.T) {
	_, err := Transmission(MaterialAluminum, -1)
	assert.ErrorIs(t, err, dose.ErrInvalidInput)

	_, err = Transmission(Material("lead"), 1)
	assert.ErrorIs(t, err, dose.ErrInvalidInput)
}

func TestParseMaterial(t *testing.T) {
	m, err := ParseMaterial("Aluminum")
	require.NoError(t, err)
	assert.Equal(t, MaterialAluminum, m)

	m, err = ParseMaterial("")
	require.NoError(t, err)
	assert.Equal(t, MaterialNone, m)

	m, err = ParseMaterial("POLYETHYLENE")
	require.NoError(t, err)
	assert.Equal(t, MaterialPolyethylene, m)

	_, err = ParseMaterial("lead")
	assert.ErrorIs(t, err, dose.ErrInvalidInput)
}
