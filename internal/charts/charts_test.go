package charts

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/j-veylop/covid-dashboard/internal/config"
	"github.com/j-veylop/covid-dashboard/internal/dataset"
	"github.com/j-veylop/covid-dashboard/internal/db"
	"github.com/j-veylop/covid-dashboard/internal/models"
)

// fixtureSource returns a store seeded with the dataset package's CSV fixtures.
func fixtureSource(t *testing.T) *db.DB {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = filepath.Join("..", "dataset", "testdata")
	ds, err := dataset.Load(cfg)
	require.NoError(t, err)
	return newSource(t, ds)
}

func newSource(t *testing.T, ds *dataset.Dataset) *db.DB {
	t.Helper()
	store, err := db.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.Ingest(ds))
	return store
}

func encode(t *testing.T, fig *Figure) gjson.Result {
	t.Helper()
	b, err := fig.JSON()
	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(b))
	return gjson.ParseBytes(b)
}

// assertToggle checks the measure menu of a toggle document: one button per
// measure, each mask showing exactly the traces of its own group.
func assertToggle(t *testing.T, fig *Figure, groups int, perGroup int) {
	t.Helper()
	doc := encode(t, fig)

	require.Equal(t, int64(groups*perGroup), doc.Get("data.#").Int())
	buttons := doc.Get("layout.updatemenus.0.buttons").Array()
	require.Len(t, buttons, groups)

	for i, b := range buttons {
		assert.Equal(t, "update", b.Get("method").String())
		mask := b.Get("args.0.visible").Array()
		require.Len(t, mask, groups*perGroup)
		for j, v := range mask {
			assert.Equal(t, j/perGroup == i, v.Bool(), "button %d trace %d", i, j)
		}
	}

	for j, tr := range doc.Get("data").Array() {
		assert.Equal(t, j < perGroup, tr.Get("visible").Bool(), "trace %d default visibility", j)
	}
}

func TestTreemap(t *testing.T) {
	fig, err := Treemap(fixtureSource(t))
	require.NoError(t, err)

	assertToggle(t, fig, len(TreemapMeasures), 1)

	doc := encode(t, fig)
	confirmed := doc.Get("data.0")
	assert.Equal(t, "treemap", confirmed.Get("type").String())
	assert.Equal(t, int64(7), confirmed.Get("labels.#").Int())
	assert.Equal(t, "", confirmed.Get("parents.0").String())
	assert.Equal(t, treemapRoot, confirmed.Get("parents.1").String())

	// Greenland has no deaths reported.
	deaths := doc.Get("data.2")
	assert.Equal(t, int64(6), deaths.Get("labels.#").Int())
	assert.NotContains(t, deaths.Get("labels").String(), "Greenland")

	assert.Contains(t, fig.TitleText(), "2021.01.01 ~ 2021.01.03")
	assert.Contains(t, fig.TitleText(), bold(models.MeasureTotalConfirmed.Label))
	assert.Equal(t, bold(models.MeasureTotalDeaths.Label),
		doc.Get("layout.updatemenus.0.buttons.2.args.1.title").String())
}

func TestGeoAnimation(t *testing.T) {
	fig, err := GeoAnimation(fixtureSource(t))
	require.NoError(t, err)
	doc := encode(t, fig)

	var names []string
	for _, n := range doc.Get("frames.#.name").Array() {
		names = append(names, n.String())
	}
	assert.Equal(t, []string{"2021-01-01", "2021-01-02", "2021-01-03"}, names)

	steps := doc.Get("layout.sliders.0.steps.#.label").Array()
	require.Len(t, steps, 3)
	for i, s := range steps {
		assert.Equal(t, names[i], s.String())
	}

	// Korea has no case count on the last day.
	last := doc.Get("frames.2.data.0")
	assert.Equal(t, `["USA"]`, last.Get("locations").Raw)
	assert.Equal(t, "country names", last.Get("locationmode").String())

	first := doc.Get("data.0")
	assert.Equal(t, "choropleth", first.Get("type").String())
	assert.Equal(t, int64(2), first.Get("locations.#").Int())

	assert.Equal(t, 820.0, doc.Get("layout.coloraxis.cmin").Float())
	assert.Equal(t, 210000.0, doc.Get("layout.coloraxis.cmax").Float())
	assert.Len(t, doc.Get("layout.coloraxis.colorscale").Array(), len(matterScale))
	assert.Equal(t, "animate", doc.Get("layout.updatemenus.0.buttons.0.method").String())
}

func TestGeoAnimation_Empty(t *testing.T) {
	fig, err := GeoAnimation(newSource(t, &dataset.Dataset{}))
	require.NoError(t, err)

	assert.Empty(t, fig.Frames)
	require.Len(t, fig.Data, 1)
	assert.Empty(t, fig.Data[0].Locations)
}

func TestRankedBar(t *testing.T) {
	fig, err := RankedBar(fixtureSource(t), 3)
	require.NoError(t, err)

	assertToggle(t, fig, len(VaccinationMeasures), 1)

	assert.Equal(t, []string{"USA", "India", "Brazil"}, fig.Data[0].X)
	assert.Equal(t, []string{"USA", "France", "Brazil"}, fig.Data[1].X)
	assert.Equal(t, []string{"USA", "France", "Brazil"}, fig.Data[2].X)

	for _, tr := range fig.Data {
		for i := 1; i < len(tr.Y); i++ {
			assert.GreaterOrEqual(t, tr.Y[i-1], tr.Y[i], "%s not descending", tr.Name)
		}
	}

	doc := encode(t, fig)
	assert.Equal(t, transparent, doc.Get("layout.plot_bgcolor").String())
	assert.Equal(t, "x", doc.Get("layout.hovermode").String())
}

func TestRankedBar_LengthIsMinOfNAndPresentRows(t *testing.T) {
	fig, err := RankedBar(fixtureSource(t), 20)
	require.NoError(t, err)

	// Greenland is missing every vaccination measure.
	for _, tr := range fig.Data {
		assert.Len(t, tr.X, 5, tr.Name)
		assert.Len(t, tr.Y, 5, tr.Name)
	}
}

func TestRankedBar_InvalidTopN(t *testing.T) {
	_, err := RankedBar(fixtureSource(t), 0)
	assert.ErrorIs(t, err, ErrInvalidTopN)
}

func TestCaseVsVaccination(t *testing.T) {
	fig, err := CaseVsVaccination(fixtureSource(t), "USA")
	require.NoError(t, err)
	doc := encode(t, fig)

	require.Len(t, fig.Data, 2)
	assert.Equal(t, "New Cases", fig.Data[0].Name)
	assert.Equal(t, "crimson", fig.Data[0].Marker.Color)
	assert.Equal(t, "Vaccinated", fig.Data[1].Name)
	assert.Equal(t, "lightseagreen", fig.Data[1].Marker.Color)

	assert.Equal(t, []string{"2021-01-02"}, fig.Data[0].X)
	assert.Equal(t, fig.Data[0].X, fig.Data[1].X)
	assert.Equal(t, []float64{190000}, fig.Data[0].Y)
	assert.Equal(t, []float64{300000}, fig.Data[1].Y)

	assert.Equal(t, "stack", doc.Get("layout.barmode").String())
	assert.False(t, doc.Get("layout.updatemenus").Exists())
}

func TestCaseVsVaccination_OtherCountry(t *testing.T) {
	fig, err := CaseVsVaccination(fixtureSource(t), "Korea")
	require.NoError(t, err)

	assert.Equal(t, []string{"2021-01-02"}, fig.Data[0].X)
	assert.Equal(t, []float64{0}, fig.Data[1].Y)
	assert.Contains(t, fig.TitleText(), "Korea")
}

func TestScatterGeo(t *testing.T) {
	fig, err := ScatterGeo(fixtureSource(t))
	require.NoError(t, err)

	// North America, Asia, South America, Europe.
	assertToggle(t, fig, len(ScatterMeasures), 4)

	assert.Equal(t, "North America", fig.Data[0].Name)
	assert.Equal(t, "Asia", fig.Data[1].Name)
	assert.Equal(t, []string{"India", "Korea"}, fig.Data[1].Locations)
	assert.Equal(t, continentPalette[0], fig.Data[0].Marker.Color)
	assert.Equal(t, fig.Data[0].Marker.Color, fig.Data[4].Marker.Color)

	for _, tr := range fig.Data {
		assert.NotContains(t, tr.Locations, "Greenland")
		assert.Len(t, tr.Marker.Size, len(tr.Locations))
	}

	doc := encode(t, fig)
	assert.Equal(t, "natural earth", doc.Get("layout.geo.projection.type").String())
	assert.Equal(t, 0.45, doc.Get("layout.title.x").Float())
	assert.Equal(t, "area", doc.Get("data.0.marker.sizemode").String())
}

func TestScatterGeo_DropsIncompleteRows(t *testing.T) {
	full := func(f float64) models.Float { return models.Some(f) }
	a := models.CountrySummary{
		Country:               "A",
		Continent:             "Europe",
		TotalConfirmed:        full(10),
		ConfirmedPerMillion:   full(100000),
		TotalDeaths:           full(1),
		DeathsPerMillion:      full(10000),
		Population:            full(100),
		TotalVaccinations:     full(50),
		PeopleFullyVaccinated: full(20),
		PercentageVaccinated:  full(50),
	}
	b := models.CountrySummary{
		Country:               "B",
		Continent:             "Europe",
		ConfirmedPerMillion:   full(0),
		TotalDeaths:           full(0),
		DeathsPerMillion:      full(0),
		Population:            full(200),
		TotalVaccinations:     full(10),
		PeopleFullyVaccinated: full(5),
		PercentageVaccinated:  full(5),
	}
	a.Derive()
	b.Derive()

	fig, err := ScatterGeo(newSource(t, &dataset.Dataset{Summaries: []models.CountrySummary{a, b}}))
	require.NoError(t, err)

	require.Len(t, fig.Data, len(ScatterMeasures))
	confirmedRate := fig.Data[0]
	assert.Equal(t, []string{"A"}, confirmedRate.Locations)
	assert.Equal(t, []float64{10}, confirmedRate.Marker.Size)
}

func TestScatterGeo_ButtonPerMeasure(t *testing.T) {
	fig, err := ScatterGeo(fixtureSource(t))
	require.NoError(t, err)

	buttons := fig.MeasureButtons()
	require.Len(t, buttons, len(ScatterMeasures))

	continents := len(fig.Data) / len(ScatterMeasures)
	for i, m := range ScatterMeasures {
		assert.Equal(t, m.Label, buttons[i].Label)

		applied := fig.Apply(buttons[i])
		want := make([]int, continents)
		for j := range want {
			want[j] = i*continents + j
		}
		assert.Equal(t, want, applied.VisibleTraces(), m.Label)
		assert.Equal(t, m.Label, applied.TitleText())
	}
}

func TestFigure_Apply(t *testing.T) {
	fig, err := RankedBar(fixtureSource(t), 3)
	require.NoError(t, err)

	buttons := fig.MeasureButtons()
	require.Len(t, buttons, 3)

	applied := fig.Apply(buttons[2])
	assert.Equal(t, []int{2}, applied.VisibleTraces())
	assert.Equal(t, bold(models.MeasureFullyVaccinatedRate.Label+" top 3 countries"), applied.TitleText())

	assert.Equal(t, []int{0}, fig.VisibleTraces(), "receiver must not change")
}

func TestFigure_ApplyNonToggle(t *testing.T) {
	fig := &Figure{Data: []Trace{{Type: "bar"}}}
	assert.Nil(t, fig.MeasureButtons())
	assert.Same(t, fig, fig.Apply(Button{Method: "animate"}))
	assert.Equal(t, []int{0}, fig.VisibleTraces())
}
