package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Dosewatch/internal/config"
	"github.com/MikeSquared-Agency/Dosewatch/internal/dose"
)

func float64Ptr(v float64) *float64 { return &v }

func classifyIndex(t *testing.T, table Table, d float64) int {
	t.Helper()
	c, err := table.Classify(d)
	require.NoError(t, err)
	return c.TierIndex
}

func TestDefaultTablesValid(t *testing.T) {
	require.NoError(t, AcuteTable().Validate())
	require.NoError(t, CumulativeTable().Validate())
}

func TestAcuteTable_Boundaries(t *testing.T) {
	table := AcuteTable()
	cases := []struct {
		dose float64
		want int
	}{
		{0, 0},
		{99.99, 0},
		{100, 1},
		{499.9, 1},
		{500, 2},
		{1000, 3},
		{2999, 3},
		{3000, 4},
		{6000, 5},
		{10000, 5},
		{1e9, 5},
	}
	for _, c := range cases {
		if got := classifyIndex(t, table, c.dose); got != c.want {
			t.Errorf("acute Classify(%v) = tier %d, want %d", c.dose, got, c.want)
		}
	}
}

func TestAcuteTable_Effects(t *testing.T) {
	c, err := AcuteTable().Classify(100)
	require.NoError(t, err)
	assert.Equal(t, "Minor biological impact", c.Effect)
	assert.Equal(t, AssetMinor, c.Asset)
	assert.Equal(t, "acute", c.Table)

	c, err = AcuteTable().Classify(10000)
	require.NoError(t, err)
	assert.Equal(t, "Fatal in most cases", c.Effect)
	assert.Equal(t, AssetCritical, c.Asset)
}

func TestCumulativeTable_Boundaries(t *testing.T) {
	table := CumulativeTable()
	assert.Equal(t, 0, classifyIndex(t, table, 0.99))
	assert.Equal(t, 1, classifyIndex(t, table, 1))
	assert.Equal(t, 2, classifyIndex(t, table, 5))
	assert.Equal(t, 3, classifyIndex(t, table, 15))
	assert.Equal(t, 4, classifyIndex(t, table, 30))
	assert.Equal(t, 4, classifyIndex(t, table, 100))

	c, err := table.Classify(100)
	require.NoError(t, err)
	assert.Equal(t, "Potentially life-threatening", c.Effect)
}

func TestClassify_Monotonic(t *testing.T) {
	for _, table := range []Table{AcuteTable(), CumulativeTable()} {
		prev := 0
		for d := 0.0; d <= 12000; d += 0.5 {
			idx := classifyIndex(t, table, d)
			if idx < prev {
				t.Fatalf("%s: tier decreased from %d to %d at %v", table.Name, prev, idx, d)
			}
			prev = idx
		}
	}
}

func TestClassify_RejectsNegativeAndNaN(t *testing.T) {
	_, err := AcuteTable().Classify(-0.1)
	assert.ErrorIs(t, err, dose.ErrInvalidInput)
	_, err = AcuteTable().Classify(math.NaN())
	assert.ErrorIs(t, err, dose.ErrInvalidInput)
}

func TestValidate_Rejects(t *testing.T) {
	assert.Error(t, Table{Name: "empty"}.Validate())

	bounded := Table{Name: "bounded", Tiers: []Tier{{Threshold: 10, Asset: "a"}}}
	assert.Error(t, bounded.Validate())

	unordered := Table{Name: "unordered", ChartCap: 100, Tiers: []Tier{
		{Threshold: 10, Asset: "a"},
		{Threshold: 5, Asset: "b"},
		{Threshold: math.Inf(1), Asset: "c"},
	}}
	assert.Error(t, unordered.Validate())

	noAsset := Table{Name: "no-asset", ChartCap: 100, Tiers: []Tier{
		{Threshold: 10},
		{Threshold: math.Inf(1), Asset: "c"},
	}}
	assert.Error(t, noAsset.Validate())
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeAcute, m)

	m, err = ParseMode("Cumulative")
	require.NoError(t, err)
	assert.Equal(t, ModeCumulative, m)

	_, err = ParseMode("chronic")
	assert.ErrorIs(t, err, dose.ErrInvalidInput)
}

func TestTablesFor(t *testing.T) {
	ts := DefaultTables()
	table, err := ts.For(ModeCumulative)
	require.NoError(t, err)
	assert.Equal(t, "cumulative", table.Name)

	_, err = ts.For(Mode("bogus"))
	assert.Error(t, err)
}

func TestRiskPercent(t *testing.T) {
	assert.InDelta(t, 5.0, RiskPercent(1000), 1e-12)
	assert.Equal(t, 0.0, RiskPercent(0))
}

func TestChart_Acute(t *testing.T) {
	c := AcuteTable().Chart(200, 308)
	assert.Equal(t, []float64{0, 100, 500, 1000, 3000, 6000, 10000}, c.Breakpoints)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, c.Levels)
	assert.Len(t, c.Labels, 7)
	require.Len(t, c.Markers, 2)
	assert.Equal(t, 200.0, c.Markers[0].Value)
	assert.Equal(t, 308.0, c.Markers[1].Value)
}

func TestDescribe_FinalTierUnbounded(t *testing.T) {
	infos := CumulativeTable().Describe()
	require.Len(t, infos, 5)
	require.NotNil(t, infos[0].UpperMSv)
	assert.Equal(t, 1.0, *infos[0].UpperMSv)
	assert.Nil(t, infos[4].UpperMSv)
}

func TestTablesFromConfig_Override(t *testing.T) {
	cfg := config.ClassificationConfig{
		Cumulative: config.TableConfig{
			ChartCap: 20,
			Tiers: []config.TierConfig{
				{UpperMSv: float64Ptr(2), Effect: "Low", Asset: AssetHealthy},
				{UpperMSv: float64Ptr(10), Effect: "Medium", Asset: AssetModerate},
				{Effect: "High", Asset: AssetCritical},
			},
		},
	}
	ts, err := TablesFromConfig(cfg)
	require.NoError(t, err)
	assert.Len(t, ts.Cumulative.Tiers, 3)
	assert.Len(t, ts.Acute.Tiers, 6)

	c, err := ts.Cumulative.Classify(2)
	require.NoError(t, err)
	assert.Equal(t, "Medium", c.Effect)
}

func TestTablesFromConfig_Invalid(t *testing.T) {
	cfg := config.ClassificationConfig{
		Acute: config.TableConfig{
			Tiers: []config.TierConfig{
				{UpperMSv: float64Ptr(2), Effect: "Only", Asset: AssetHealthy},
			},
		},
	}
	_, err := TablesFromConfig(cfg)
	assert.Error(t, err)
}

func TestOrganEffects(t *testing.T) {
	organs := OrganEffects()
	require.Len(t, organs, 5)
	assert.Equal(t, "Bone Marrow", organs[0].Organ)
	assert.Equal(t, "Sterility", organs[4].Effect)
}
