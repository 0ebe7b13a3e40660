package dose

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAgeModifier_Bands(t *testing.T) {
	cases := []struct {
		age  int
		want float64
	}{
		{0, 1.4},
		{9, 1.4},
		{10, 1.2},
		{19, 1.2},
		{20, 1.0},
		{45, 1.0},
		{60, 1.0},
		{61, 0.9},
		{100, 0.9},
	}
	for _, c := range cases {
		if got := AgeModifier(c.age); got != c.want {
			t.Errorf("AgeModifier(%d) = %v, want %v", c.age, got, c.want)
		}
	}
}

func TestGenderModifier(t *testing.T) {
	assert.Equal(t, 1.1, GenderModifier(GenderFemale))
	assert.Equal(t, 1.0, GenderModifier(GenderMale))
	assert.Equal(t, 1.0, GenderModifier(GenderUnspecified))
	assert.Equal(t, 1.0, GenderModifier(Gender("other")))
}

func TestParseGender(t *testing.T) {
	assert.Equal(t, GenderMale, ParseGender("Male"))
	assert.Equal(t, GenderFemale, ParseGender(" female "))
	assert.Equal(t, GenderUnspecified, ParseGender("Prefer not to say"))
	assert.Equal(t, GenderUnspecified, ParseGender(""))
}

func TestAdjust_ZeroDose(t *testing.T) {
	for _, age := range []int{0, 15, 30, 80} {
		for _, g := range []Gender{GenderMale, GenderFemale, GenderUnspecified} {
			got, err := Adjust(0, age, g)
			require.NoError(t, err)
			assert.Equal(t, 0.0, got)
		}
	}
}

func TestAdjust_ExactProduct(t *testing.T) {
	for _, raw := range []float64{0.5, 1, 37.3, 200, 9999} {
		for _, age := range []int{3, 12, 40, 70} {
			for _, g := range []Gender{GenderMale, GenderFemale, GenderUnspecified} {
				got, err := Adjust(raw, age, g)
				require.NoError(t, err)
				assert.Equal(t, raw*AgeModifier(age)*GenderModifier(g), got)
			}
		}
	}
}

func TestAdjust_ChildFemale(t *testing.T) {
	got, err := Adjust(200, 5, GenderFemale)
	require.NoError(t, err)
	assert.InDelta(t, 308.0, got, 1e-9)
}

func TestAdjust_RejectsNegatives(t *testing.T) {
	_, err := Adjust(-1, 30, GenderMale)
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Adjust(10, -1, GenderMale)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestAccumulate(t *testing.T) {
	got, err := Accumulate(0.5, 10)
	require.NoError(t, err)
	assert.Equal(t, 5.0, got)

	_, err = Accumulate(-0.1, 10)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = Accumulate(0.1, -10)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAccumulate_RejectsOverflow(t *testing.T) {
	_, err := Accumulate(1e200, 1e200)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Accumulated(math.MaxFloat64, 2).Raw()
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAdjust_RejectsOverflow(t *testing.T) {
	_, err := Adjust(math.MaxFloat64, 5, GenderFemale)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExposure_Raw(t *testing.T) {
	raw, err := SingleDose(200).Raw()
	require.NoError(t, err)
	assert.Equal(t, 200.0, raw)

	e := Accumulated(0.25, 8)
	assert.True(t, e.IsAccumulated())
	raw, err = e.Raw()
	require.NoError(t, err)
	assert.Equal(t, 2.0, raw)

	_, err = Exposure{}.Raw()
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = SingleDose(-5).Raw()
	assert.ErrorIs(t, err, ErrInvalidInput)

	d, days := 1.0, 2.0
	_, err = Exposure{DoseMSv: &d, DurationDays: &days}.Raw()
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProfileValidate(t *testing.T) {
	assert.NoError(t, Profile{Age: 0, Gender: GenderMale}.Validate())
	assert.ErrorIs(t, Profile{Age: -3}.Validate(), ErrInvalidInput)
}

func TestNotes(t *testing.T) {
	notes := Notes(Profile{Age: 5, Gender: GenderFemale})
	require.Len(t, notes, 2)
	assert.Equal(t, NoteWarning, notes[0].Level)
	assert.Equal(t, "age", notes[0].Topic)
	assert.Equal(t, "gender", notes[1].Topic)

	notes = Notes(Profile{Age: 30, Gender: GenderMale})
	require.Len(t, notes, 1)
	assert.Equal(t, "gender", notes[0].Topic)

	notes = Notes(Profile{Age: 30, Gender: GenderUnspecified})
	require.Len(t, notes, 1)
	assert.Contains(t, notes[0].Text, "can vary")

	notes = Notes(Profile{Age: 75, Gender: GenderMale})
	require.Len(t, notes, 2)
	assert.Contains(t, notes[0].Text, "older adults")
}
