package registry

import (
	"errors"
	"reflect"
	"testing"

	"github.com/EliasGomez98/PDF-Scrapping/constants"
	"github.com/EliasGomez98/PDF-Scrapping/internal/common"
)

func TestDefault_SchemaOrder(t *testing.T) {
	reg := Default()
	if got := reg.Fields(); !reflect.DeepEqual(got, constants.FieldNames) {
		t.Fatalf("Fields() = %v, want schema order %v", got, constants.FieldNames)
	}
	if reg.Len() != 14 {
		t.Fatalf("Len() = %d, want 14", reg.Len())
	}
}

func TestDefault_RulesHaveOneCaptureGroup(t *testing.T) {
	reg := Default()
	for _, name := range reg.Fields() {
		re, err := reg.Rule(name)
		if err != nil {
			t.Fatalf("Rule(%s): %v", name, err)
		}
		if re.NumSubexp() != 1 {
			t.Errorf("field %s: %d capture groups, want 1", name, re.NumSubexp())
		}
	}
}

func TestRule_UnknownField(t *testing.T) {
	_, err := Default().Rule("NOPE")
	var uf *UnknownFieldError
	if !errors.As(err, &uf) {
		t.Fatalf("expected *UnknownFieldError, got %v", err)
	}
	if uf.Name != "NOPE" {
		t.Errorf("Name = %q", uf.Name)
	}
}

func TestNew_Validation(t *testing.T) {
	cases := []struct {
		name string
		defs []Definition
	}{
		{"empty set", nil},
		{"blank name", []Definition{{Name: "", Pattern: `X(\d+)`}}},
		{"duplicate name", []Definition{
			{Name: "A", Pattern: `A(\d+)`},
			{Name: "A", Pattern: `B(\d+)`},
		}},
		{"invalid pattern", []Definition{{Name: "A", Pattern: `A(\d+`}}},
		{"no capture group", []Definition{{Name: "A", Pattern: `A\d+`}}},
		{"two capture groups", []Definition{{Name: "A", Pattern: `A(\d+)(\d+)`}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := New(c.defs); err == nil {
				t.Fatalf("expected error for %s", c.name)
			}
		})
	}
}

func TestNew_NonCapturingGroupsAllowed(t *testing.T) {
	reg, err := New([]Definition{{Name: "A", Pattern: `(?:FOO|BAR)\s*(\d+)`}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("Len() = %d", reg.Len())
	}
}

func TestSubset(t *testing.T) {
	sub, err := Default().Subset("NUM_POL", "FEC_NAC", "TASA_VENTA", "P_UNICA")
	if err != nil {
		t.Fatalf("Subset: %v", err)
	}
	want := []string{"NUM_POL", "FEC_NAC", "TASA_VENTA", "P_UNICA"}
	if got := sub.Fields(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Fields() = %v, want %v", got, want)
	}

	if _, err := Default().Subset("NUM_POL", "NOPE"); err == nil {
		t.Fatal("expected error for unknown subset name")
	}
}

func TestFromConfig_Full(t *testing.T) {
	reg, err := FromConfig(common.RegistryConfig{})
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if !reflect.DeepEqual(reg.Fields(), constants.FieldNames) {
		t.Fatalf("empty config must yield the full schema")
	}
}

func TestFromConfig_SubsetAndOverride(t *testing.T) {
	cfg := common.RegistryConfig{
		Fields: []string{"NUM_POL", "TASA_VENTA"},
		Patterns: map[string]string{
			"NUM_POL": `POLIZA\s+N[°º]?\s*([A-Z0-9\/\.\-]+)`,
		},
	}
	reg, err := FromConfig(cfg)
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if reg.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", reg.Len())
	}
	re, err := reg.Rule("NUM_POL")
	if err != nil {
		t.Fatal(err)
	}
	m := re.FindStringSubmatch("POLIZA N 12345")
	if m == nil || m[1] != "12345" {
		t.Fatalf("override pattern not applied, match = %v", m)
	}
}

func TestFromConfig_Unknown(t *testing.T) {
	var uf *UnknownFieldError

	_, err := FromConfig(common.RegistryConfig{Fields: []string{"NOPE"}})
	if !errors.As(err, &uf) {
		t.Fatalf("unknown field selection: expected *UnknownFieldError, got %v", err)
	}

	_, err = FromConfig(common.RegistryConfig{Patterns: map[string]string{"NOPE": `(\d+)`}})
	if !errors.As(err, &uf) {
		t.Fatalf("unknown pattern override: expected *UnknownFieldError, got %v", err)
	}
}

func TestFields_ReturnsCopy(t *testing.T) {
	reg := Default()
	fields := reg.Fields()
	fields[0] = "MUTATED"
	if reg.Fields()[0] == "MUTATED" {
		t.Fatal("Fields() must not expose internal order slice")
	}
}
