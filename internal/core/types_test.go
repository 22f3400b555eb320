package core

import (
	"math"
	"strings"
	"testing"
)

func sampleTable() *Table {
	t := NewTable("sample", []string{"ISO3", "ISO2", "Pop"})
	t.Rows = []Row{
		{TextValue("KEN"), TextValue("KE"), NumberValue(50)},
		{TextValue("USA"), TextValue("US"), MissingNumber()},
	}
	return t
}

func TestNumberValue_NonFinite(t *testing.T) {
	for _, f := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if NumberValue(f).Valid() {
			t.Errorf("NumberValue(%v) should be missing", f)
		}
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{name: "shortest float", v: NumberValue(1.0 / 3), want: "0.3333333333333333"},
		{name: "integral float", v: NumberValue(331002647), want: "331002647"},
		{name: "small float", v: NumberValue(1e-7), want: "0.0000001"},
		{name: "date", v: Coerce("2020-12-08", FieldDate), want: "2020-12-08"},
		{name: "missing number", v: MissingNumber(), want: ""},
		{name: "missing text", v: MissingText(), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTable_Accessors(t *testing.T) {
	tbl := sampleTable()

	if got := tbl.Index("Pop"); got != 2 {
		t.Errorf("Index(Pop) = %d, want 2", got)
	}
	if tbl.Has("GDP") {
		t.Error("Has(GDP) = true, want false")
	}
	if v, ok := tbl.Float(tbl.Rows[0], "Pop"); !ok || v != 50 {
		t.Errorf("Float = %v,%v, want 50,true", v, ok)
	}
	if _, ok := tbl.Float(tbl.Rows[1], "Pop"); ok {
		t.Error("missing Pop should report !ok")
	}
	if _, ok := tbl.Text(tbl.Rows[0], "nope"); ok {
		t.Error("unknown column should report !ok")
	}
}

func TestTable_Append(t *testing.T) {
	tbl := sampleTable()
	if err := tbl.Append(Row{TextValue("X")}); err == nil {
		t.Error("Append with wrong width should fail")
	}
	if err := tbl.Append(Row{TextValue("FRA"), TextValue("FR"), NumberValue(1)}); err != nil {
		t.Errorf("Append() error = %v", err)
	}
	if tbl.Len() != 3 {
		t.Errorf("Len() = %d, want 3", tbl.Len())
	}
}

func TestTable_AddColumn(t *testing.T) {
	tbl := sampleTable()

	err := tbl.AddColumn("Double", func(r Row) Value {
		v, ok := tbl.Float(r, "Pop")
		if !ok {
			return MissingNumber()
		}
		return NumberValue(v * 2)
	})
	if err != nil {
		t.Fatalf("AddColumn() error = %v", err)
	}
	if v, _ := tbl.Float(tbl.Rows[0], "Double"); v != 100 {
		t.Errorf("Double = %v, want 100", v)
	}
	if tbl.Get(tbl.Rows[1], "Double").Valid() {
		t.Error("Double should be missing when Pop is missing")
	}

	if err := tbl.AddColumn("Pop", func(Row) Value { return MissingNumber() }); err == nil {
		t.Error("AddColumn on existing name should fail")
	}
}

func TestTable_SetColumn(t *testing.T) {
	tbl := sampleTable()
	if err := tbl.SetColumn("ISO2", func(Row) Value { return TextValue("ZZ") }); err != nil {
		t.Fatalf("SetColumn() error = %v", err)
	}
	if got, _ := tbl.Text(tbl.Rows[1], "ISO2"); got != "ZZ" {
		t.Errorf("ISO2 = %q, want ZZ", got)
	}
	if err := tbl.SetColumn("nope", func(Row) Value { return MissingText() }); err == nil {
		t.Error("SetColumn on unknown column should fail")
	}
}

func TestTable_DropAndMove(t *testing.T) {
	tbl := sampleTable()

	tbl.DropColumns("ISO3", "unknown")
	if strings.Join(tbl.Columns, ",") != "ISO2,Pop" {
		t.Fatalf("Columns after drop = %v", tbl.Columns)
	}
	if got, _ := tbl.Text(tbl.Rows[0], "ISO2"); got != "KE" {
		t.Errorf("ISO2 = %q after drop, want KE", got)
	}

	tbl.MoveToFront("Pop", "missing", "Pop")
	if strings.Join(tbl.Columns, ",") != "Pop,ISO2" {
		t.Fatalf("Columns after move = %v", tbl.Columns)
	}
	if v, _ := tbl.Float(tbl.Rows[0], "Pop"); v != 50 {
		t.Errorf("Pop = %v after move, want 50", v)
	}
}

func TestTable_Filter(t *testing.T) {
	tbl := sampleTable()
	tbl.Filter(func(r Row) bool {
		_, ok := tbl.Float(r, "Pop")
		return ok
	})
	if tbl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tbl.Len())
	}
	if got, _ := tbl.Text(tbl.Rows[0], "ISO3"); got != "KEN" {
		t.Errorf("kept %q, want KEN", got)
	}
}

func TestSourceDefinition_Columns(t *testing.T) {
	def := SourceDefinition{FieldSpecs: []FieldSpec{
		{Name: "a", Column: "A"},
		{Name: "b", Column: "B"},
	}}
	if got := strings.Join(def.Columns(), ","); got != "A,B" {
		t.Errorf("Columns() = %q, want A,B", got)
	}
}
