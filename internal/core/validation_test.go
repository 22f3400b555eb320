package core

import (
	"errors"
	"strings"
	"testing"
)

func testDefinition() SourceDefinition {
	return SourceDefinition{
		Info: SourceInfo{Key: "gdp"},
		FieldSpecs: []FieldSpec{
			{Name: "Country Code", Column: "ISO3", Type: FieldText, Normalizer: strings.ToUpper},
			{Name: "2020 [YR2020]", Column: "GDP2020", Type: FieldNumeric},
		},
	}
}

func TestValidateHeaders(t *testing.T) {
	specs := testDefinition().FieldSpecs

	tests := []struct {
		name        string
		headers     []string
		wantMissing []string
	}{
		{
			name:    "all present",
			headers: []string{"Country Name", "Country Code", "2019 [YR2019]", "2020 [YR2020]"},
		},
		{
			name:    "case insensitive",
			headers: []string{"COUNTRY CODE", "2020 [yr2020]"},
		},
		{
			name:        "one missing",
			headers:     []string{"Country Code", "2020"},
			wantMissing: []string{"2020 [YR2020]"},
		},
		{
			name:        "all missing",
			headers:     []string{"a", "b"},
			wantMissing: []string{"Country Code", "2020 [YR2020]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateHeaders("gdp", tt.headers, specs)
			if len(tt.wantMissing) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var mc *MissingColumnsError
			if !errors.As(err, &mc) {
				t.Fatalf("error = %v, want *MissingColumnsError", err)
			}
			if strings.Join(mc.Missing, "|") != strings.Join(tt.wantMissing, "|") {
				t.Errorf("Missing = %v, want %v", mc.Missing, tt.wantMissing)
			}
			for _, name := range tt.wantMissing {
				if !strings.Contains(err.Error(), name) {
					t.Errorf("error %q should name %q", err.Error(), name)
				}
			}
		})
	}
}

func TestSelect(t *testing.T) {
	raw := NewTable("raw", []string{"2020 [YR2020]", "Country Name", "Country Code"})
	raw.Rows = []Row{
		{TextValue("1,500.5"), TextValue("Kenya"), TextValue("ken")},
		{TextValue(".."), TextValue("Eritrea"), TextValue("ERI")},
		{TextValue("12")}, // short row
	}

	got, err := Select(raw, testDefinition())
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	if strings.Join(got.Columns, ",") != "ISO3,GDP2020" {
		t.Errorf("Columns = %v, want [ISO3 GDP2020]", got.Columns)
	}
	if got.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", got.Len())
	}

	if iso, _ := got.Text(got.Rows[0], "ISO3"); iso != "KEN" {
		t.Errorf("ISO3 = %q, want normalized KEN", iso)
	}
	if v, ok := got.Float(got.Rows[0], "GDP2020"); !ok || v != 1500.5 {
		t.Errorf("GDP2020 = %v,%v, want 1500.5", v, ok)
	}
	if _, ok := got.Float(got.Rows[1], "GDP2020"); ok {
		t.Error("placeholder GDP should be missing")
	}
	if got.Get(got.Rows[2], "ISO3").Valid() {
		t.Error("absent cell should be missing")
	}
}

func TestSelect_MissingColumn(t *testing.T) {
	raw := NewTable("raw", []string{"Country Code"})

	_, err := Select(raw, testDefinition())
	var mc *MissingColumnsError
	if !errors.As(err, &mc) {
		t.Fatalf("error = %v, want *MissingColumnsError", err)
	}
	if mc.Source != "gdp" {
		t.Errorf("Source = %q, want gdp", mc.Source)
	}
}

func TestFieldTypeString(t *testing.T) {
	tests := map[FieldType]string{
		FieldText:     "text",
		FieldNumeric:  "numeric",
		FieldDate:     "date",
		FieldType(99): "value",
	}
	for ft, want := range tests {
		if got := ft.String(); got != want {
			t.Errorf("FieldType(%d).String() = %q, want %q", int(ft), got, want)
		}
	}
}
