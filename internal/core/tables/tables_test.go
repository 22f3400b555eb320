package tables

import (
	"strings"
	"testing"

	"github.com/JonMunkholm/vaxecon/internal/core"
)

// fakeResolver resolves from a fixed map; everything else is unresolved.
type fakeResolver map[string]string

func (f fakeResolver) Resolve(name string) (string, bool) {
	iso, ok := f[name]
	return iso, ok
}

// rawTable builds an all-text table the way the loader would.
func rawTable(t *testing.T, header []string, rows ...[]string) *core.Table {
	t.Helper()
	tbl := core.NewTable("raw", header)
	for _, r := range rows {
		row := make(core.Row, len(r))
		for i, c := range r {
			row[i] = core.TextValue(c)
		}
		if err := tbl.Append(row); err != nil {
			t.Fatal(err)
		}
	}
	return tbl
}

func clean(t *testing.T, key string, raw *core.Table, env core.CleanEnv) *core.Table {
	t.Helper()
	def, err := core.MustGet(key)
	if err != nil {
		t.Fatal(err)
	}
	tbl, err := core.Select(raw, def)
	if err != nil {
		t.Fatalf("Select(%s) error = %v", key, err)
	}
	if def.Clean == nil {
		return tbl
	}
	tbl, err = def.Clean(tbl, env)
	if err != nil {
		t.Fatalf("Clean(%s) error = %v", key, err)
	}
	return tbl
}

func TestRegisteredSources(t *testing.T) {
	want := map[string]int{
		Vaccination: 0,
		Covid:       0,
		Country:     0,
		GDP:         0,
		HDI:         0,
		Population:  4,
	}
	if core.SourceCount() != len(want) {
		t.Fatalf("SourceCount() = %d, want %d", core.SourceCount(), len(want))
	}
	for key, offset := range want {
		def, ok := core.Get(key)
		if !ok {
			t.Errorf("source %q not registered", key)
			continue
		}
		if def.Info.HeaderOffset != offset {
			t.Errorf("%s HeaderOffset = %d, want %d", key, def.Info.HeaderOffset, offset)
		}
		if def.Info.File == "" {
			t.Errorf("%s has no default file name", key)
		}
	}
}

func TestWorldBankColumns(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{Country, "ISO3,ShortName,TableName,LongName,ISO2,Region,IncomeGroup"},
		{GDP, "Country3,ISO3,GDP2019,GDP2020"},
		{Population, "Country4,ISO3,Pop2019,Pop2020"},
	}
	for _, tt := range tests {
		def, _ := core.Get(tt.key)
		if got := strings.Join(def.Columns(), ","); got != tt.want {
			t.Errorf("%s columns = %s, want %s", tt.key, got, tt.want)
		}
	}
}

func TestVaccination_MissingHeader(t *testing.T) {
	def, _ := core.Get(Vaccination)
	raw := rawTable(t, []string{"COUNTRY", "ISO3"})

	_, err := core.Select(raw, def)
	if err == nil {
		t.Fatal("expected missing column error")
	}
	if !strings.Contains(err.Error(), "PERSONS_FULLY_VACCINATED_PER100") {
		t.Errorf("error should name the missing column: %v", err)
	}
}

func TestHDI_FilterOrder(t *testing.T) {
	header := []string{"HDI rank", "Country", "Human Development Index (HDI) Value", "Life expectancy"}
	raw := rawTable(t, header,
		[]string{"", "VERY HIGH HUMAN DEVELOPMENT", "", ""},
		[]string{"1", "Norway", "0.957", "82.4"},
		[]string{"", "Korea (Democratic People's Rep. of)", "..", "72.3"},
		[]string{"2", "Ireland", "0.955", "82.3"},
		[]string{"", "Regions", "", ""},
		[]string{"", "Somalia", "..", "57.4"},
		[]string{"", "World", "0.737", "72.8"},
	)
	resolver := fakeResolver{
		"Norway":                              "NOR",
		"Ireland":                             "IRL",
		"Korea (Democratic People's Rep. of)": "PRK",
	}

	got := clean(t, HDI, raw, core.CleanEnv{Resolver: resolver})

	wantCountries := []string{"Norway", "Ireland", "Korea (Democratic People's Rep. of)", "Somalia"}
	if got.Len() != len(wantCountries) {
		t.Fatalf("Len() = %d, want %d", got.Len(), len(wantCountries))
	}
	for i, want := range wantCountries {
		if name, _ := got.Text(got.Rows[i], "HDICountry"); name != want {
			t.Errorf("row %d = %q, want %q", i, name, want)
		}
	}

	if v, ok := got.Float(got.Rows[0], "HDIValue"); !ok || v != 0.957 {
		t.Errorf("Norway HDIValue = %v,%v, want 0.957", v, ok)
	}
	if got.Get(got.Rows[2], "HDIValue").Valid() {
		t.Error("placeholder HDIValue should be missing")
	}

	if iso, _ := got.Text(got.Rows[2], "HDIISO3"); iso != "PRK" {
		t.Errorf("HDIISO3 = %q, want PRK", iso)
	}
	// Unresolved names never abort the run.
	if got.Get(got.Rows[3], "HDIISO3").Valid() {
		t.Error("unresolved country should have missing HDIISO3")
	}
}

func TestHDI_RequiresResolver(t *testing.T) {
	def, _ := core.Get(HDI)
	tbl := core.NewTable(HDI, def.Columns())
	if _, err := def.Clean(tbl, core.CleanEnv{}); err == nil {
		t.Error("expected error without a resolver")
	}
}

func TestCovid_Aggregate(t *testing.T) {
	header := []string{"Date_reported", "Country_code", "Country", "WHO_region",
		"New_cases", "Cumulative_cases", "New_deaths", "Cumulative_deaths"}
	raw := rawTable(t, header,
		[]string{"2020-01-03", "US", "United States of America", "AMRO", "0", "0", "0", "0"},
		[]string{"2020-01-20", "US", "United States of America", "AMRO", "10", "10", "0", "0"},
		[]string{"2020-02-29", "US", "United States of America", "AMRO", "40", "50", "1", "1"},
		[]string{"2020-03-01", "US", "United States of America", "AMRO", "-20", "30", "0", "1"},
		[]string{"2020-01-03", "NA", "Namibia", "AFRO", "0", "0", "0", "0"},
		[]string{"2020-03-14", "NA", "Namibia", "AFRO", "2", "2", "0", "0"},
		[]string{"2020-01-03", " ", "Other", "Other", "0", "0", "0", "0"},
	)

	got := clean(t, Covid, raw, core.CleanEnv{})

	if strings.Join(got.Columns, ",") != strings.Join(CovidColumns, ",") {
		t.Fatalf("Columns = %v, want %v", got.Columns, CovidColumns)
	}
	if got.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (rows without a code are skipped)", got.Len())
	}

	// Sorted by ISO2; "NA" is Namibia, not a missing value.
	na, us := got.Rows[0], got.Rows[1]
	if code, _ := got.Text(na, "ISO2"); code != "NA" {
		t.Errorf("first ISO2 = %q, want NA", code)
	}
	if v, _ := got.Float(us, "CasesCum"); v != 50 {
		t.Errorf("US CasesCum = %v, want max 50", v)
	}
	if v, _ := got.Float(us, "DeathsCum"); v != 1 {
		t.Errorf("US DeathsCum = %v, want 1", v)
	}
	if d := got.Get(us, "FirstCaseDate").String(); d != "2020-01-20" {
		t.Errorf("US FirstCaseDate = %q, want 2020-01-20", d)
	}
	if d := got.Get(us, "FirstDeathDate").String(); d != "2020-02-29" {
		t.Errorf("US FirstDeathDate = %q, want 2020-02-29", d)
	}
	if got.Get(na, "FirstDeathDate").Valid() {
		t.Error("Namibia FirstDeathDate should be missing with no deaths")
	}
}

func TestNormalizers(t *testing.T) {
	if got := NormalizeCode(" ken "); got != "KEN" {
		t.Errorf("NormalizeCode = %q, want KEN", got)
	}
	if got := NormalizeName("Bolivia  (Plurinational\tState of)"); got != "Bolivia (Plurinational State of)" {
		t.Errorf("NormalizeName = %q", got)
	}
}
