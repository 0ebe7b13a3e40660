package assessment

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Dosewatch/internal/config"
	"github.com/MikeSquared-Agency/Dosewatch/internal/dose"
	"github.com/MikeSquared-Agency/Dosewatch/internal/risk"
	"github.com/MikeSquared-Agency/Dosewatch/internal/shielding"
)

func testEngine() *Engine {
	return New(risk.DefaultTables(), shielding.DefaultCoefficients(), DefaultRates())
}

func TestCompute_ChildFemaleAcute(t *testing.T) {
	res, err := testEngine().Compute(Request{
		Profile:  dose.Profile{Age: 5, Gender: dose.GenderFemale},
		Exposure: dose.SingleDose(200),
	})
	require.NoError(t, err)

	assert.Equal(t, risk.ModeAcute, res.Mode)
	assert.Equal(t, 200.0, res.RawDose)
	assert.Equal(t, 1.4, res.Modifiers.Age)
	assert.Equal(t, 1.1, res.Modifiers.Gender)
	assert.InDelta(t, 308.0, res.AdjustedDose, 1e-9)
	assert.Equal(t, 1, res.Classification.TierIndex)
	assert.Equal(t, "Minor biological impact", res.Classification.Effect)
	assert.Equal(t, risk.AssetMinor, res.Classification.Asset)
	assert.Equal(t, 1.0, res.Transmission)
	assert.Nil(t, res.DailyRate)
	assert.Len(t, res.Notes, 2)
	require.Len(t, res.Chart.Markers, 2)
	assert.Equal(t, 200.0, res.Chart.Markers[0].Value)
}

func TestCompute_OlderAdultCanLowerTier(t *testing.T) {
	res, err := testEngine().Compute(Request{
		Profile:  dose.Profile{Age: 70, Gender: dose.GenderMale},
		Exposure: dose.SingleDose(105),
	})
	require.NoError(t, err)
	assert.InDelta(t, 94.5, res.AdjustedDose, 1e-9)
	assert.Equal(t, 0, res.Classification.TierIndex)
}

func TestCompute_ZeroDose(t *testing.T) {
	res, err := testEngine().Compute(Request{
		Profile:  dose.Profile{Age: 3, Gender: dose.GenderFemale},
		Exposure: dose.SingleDose(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.AdjustedDose)
	assert.Equal(t, "No observable effects", res.Classification.Effect)
}

func TestCompute_AccumulatedDefaultsToCumulative(t *testing.T) {
	res, err := testEngine().Compute(Request{
		Profile:  dose.Profile{Age: 30, Gender: dose.GenderMale},
		Exposure: dose.Accumulated(0.5, 10),
	})
	require.NoError(t, err)
	assert.Equal(t, risk.ModeCumulative, res.Mode)
	assert.Equal(t, 5.0, res.RawDose)
	assert.Equal(t, 5.0, res.AdjustedDose)
	assert.Equal(t, "Mild ARS possible", res.Classification.Effect)
	require.NotNil(t, res.DailyRate)
	assert.Equal(t, 0.5, *res.DailyRate)
}

func TestCompute_BaseRateWithShielding(t *testing.T) {
	days := 365.0
	res, err := testEngine().Compute(Request{
		Profile:   dose.Profile{Age: 40, Gender: dose.GenderUnspecified},
		Exposure:  dose.Exposure{DurationDays: &days},
		Shielding: &shielding.Config{Material: shielding.MaterialPolyethylene, ThicknessCM: 1},
	})
	require.NoError(t, err)

	wantRate := 0.00104 * math.Exp(-0.69)
	assert.InDelta(t, math.Exp(-0.69), res.Transmission, 1e-12)
	require.NotNil(t, res.DailyRate)
	assert.InDelta(t, wantRate, *res.DailyRate, 1e-15)
	assert.InDelta(t, wantRate*365, res.RawDose, 1e-12)
	assert.Equal(t, 0, res.Classification.TierIndex)
}

func TestCompute_ExplicitModeOverride(t *testing.T) {
	res, err := testEngine().Compute(Request{
		Profile:  dose.Profile{Age: 30, Gender: dose.GenderMale},
		Exposure: dose.SingleDose(20),
		Mode:     risk.ModeCumulative,
	})
	require.NoError(t, err)
	assert.Equal(t, risk.ModeCumulative, res.Mode)
	assert.Equal(t, "Severe ARS symptoms", res.Classification.Effect)
}

func TestCompute_InvalidInput(t *testing.T) {
	e := testEngine()
	cases := []Request{
		{Profile: dose.Profile{Age: -1}, Exposure: dose.SingleDose(10)},
		{Profile: dose.Profile{Age: 30}, Exposure: dose.SingleDose(-10)},
		{Profile: dose.Profile{Age: 30}, Exposure: dose.Accumulated(1, -2)},
		{Profile: dose.Profile{Age: 30}, Exposure: dose.Exposure{}},
		{Profile: dose.Profile{Age: 30}, Exposure: dose.SingleDose(10), Mode: risk.Mode("chronic")},
		{Profile: dose.Profile{Age: 30}, Exposure: dose.SingleDose(10), Shielding: &shielding.Config{Material: shielding.MaterialAluminum, ThicknessCM: 1}},
		{Profile: dose.Profile{Age: 30}, Exposure: dose.Accumulated(1, 2), Shielding: &shielding.Config{Material: shielding.MaterialAluminum, ThicknessCM: -1}},
	}
	for i, req := range cases {
		_, err := e.Compute(req)
		assert.ErrorIs(t, err, dose.ErrInvalidInput, "case %d", i)
	}
}

func TestCompute_EmptyGenderIsUnspecified(t *testing.T) {
	res, err := testEngine().Compute(Request{
		Profile:  dose.Profile{Age: 30},
		Exposure: dose.SingleDose(50),
	})
	require.NoError(t, err)
	assert.Equal(t, dose.GenderUnspecified, res.Profile.Gender)
	assert.Equal(t, 1.0, res.Modifiers.Gender)
}

func TestMission_AluminumFiveCM(t *testing.T) {
	res, err := testEngine().Mission(MissionRequest{
		Flux:        100,
		Shielding:   shielding.Config{Material: shielding.MaterialAluminum, ThicknessCM: 5},
		MissionDays: 180,
	})
	require.NoError(t, err)

	assert.InDelta(t, math.Exp(-1.8), res.Transmission, 1e-12)
	assert.InDelta(t, 0.1653, res.Transmission, 1e-4)
	assert.InDelta(t, 100*0.00005*math.Exp(-1.8), res.DailyDose, 1e-15)
	assert.InDelta(t, 0.000827, res.DailyDose, 1e-6)
	assert.InDelta(t, 0.1488, res.TotalDose, 1e-4)
	assert.InDelta(t, 0.000744, res.RiskPercent, 1e-6)
	assert.Equal(t, res.TotalDose/1000*5, res.RiskPercent)
	assert.Equal(t, 0, res.Classification.TierIndex)
}

func TestMission_Unshielded(t *testing.T) {
	res, err := testEngine().Mission(MissionRequest{Flux: 1e5, MissionDays: 30})
	require.NoError(t, err)
	assert.Equal(t, 1.0, res.Transmission)
	assert.InDelta(t, 5.0, res.DailyDose, 1e-9)
	assert.InDelta(t, 150.0, res.TotalDose, 1e-9)
	assert.Equal(t, "Potentially life-threatening", res.Classification.Effect)
}

func TestMission_Invalid(t *testing.T) {
	e := testEngine()
	_, err := e.Mission(MissionRequest{Flux: -1, MissionDays: 10})
	assert.ErrorIs(t, err, dose.ErrInvalidInput)
	_, err = e.Mission(MissionRequest{Flux: 1, MissionDays: -10})
	assert.ErrorIs(t, err, dose.ErrInvalidInput)
	_, err = e.Mission(MissionRequest{Flux: 1, MissionDays: 10, Shielding: shielding.Config{Material: "lead", ThicknessCM: 1}})
	assert.ErrorIs(t, err, dose.ErrInvalidInput)
}

func TestMission_RejectsOverflow(t *testing.T) {
	e := testEngine()
	_, err := e.Mission(MissionRequest{Flux: 1e300, MissionDays: 1e300})
	assert.ErrorIs(t, err, dose.ErrInvalidInput)
	_, err = e.Mission(MissionRequest{Flux: math.MaxFloat64 / 2, MissionDays: 1e10})
	assert.ErrorIs(t, err, dose.ErrInvalidInput)
}

func TestCompute_RejectsOverflow(t *testing.T) {
	e := testEngine()
	_, err := e.Compute(Request{
		Profile:  dose.Profile{Age: 30, Gender: dose.GenderMale},
		Exposure: dose.Accumulated(1e200, 1e200),
	})
	assert.ErrorIs(t, err, dose.ErrInvalidInput)
}

func TestNewFromConfig(t *testing.T) {
	cfg := &config.Config{
		Dose: config.DoseConfig{FluxToDailyDose: 0.001, BaseDailyRateMSv: 0.002},
		Shielding: config.ShieldingConfig{
			Coefficients: map[string]float64{"aluminum": 1.0},
		},
	}
	e, err := NewFromConfig(cfg)
	require.NoError(t, err)

	tr, err := e.Transmission(shielding.Config{Material: shielding.MaterialAluminum, ThicknessCM: 1})
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-1), tr, 1e-12)

	tr, err = e.Transmission(shielding.Config{Material: shielding.MaterialPolyethylene, ThicknessCM: 1})
	require.NoError(t, err)
	assert.InDelta(t, math.Exp(-0.69), tr, 1e-12)

	assert.Equal(t, 0.002, e.DailyRate(1))

	res, err := e.Mission(MissionRequest{Flux: 10, MissionDays: 1})
	require.NoError(t, err)
	assert.InDelta(t, 0.01, res.DailyDose, 1e-12)
}

func TestNewFromConfig_BadMaterial(t *testing.T) {
	cfg := &config.Config{Shielding: config.ShieldingConfig{Coefficients: map[string]float64{"lead": 2}}}
	_, err := NewFromConfig(cfg)
	assert.Error(t, err)
}
