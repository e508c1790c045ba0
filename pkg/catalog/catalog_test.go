package catalog

import (
	"strings"
	"testing"

	"github.com/cdmlens/cdmlens/pkg/errors"
)

func sampleObject() Object {
	return Object{
		ID:   "obj-1",
		Name: "Customer",
		Ontology: Ontology{
			Being:  "Person",
			Avatar: "Legal Person",
		},
		Drivers: []Driver{
			{Kind: DriverSector, Value: "Retail"},
			{Kind: DriverSector, Value: "Banking"},
			{Kind: DriverCountry, Value: "DE"},
		},
		Identifiers: Identifiers{
			Unique: []string{"CUST-001"},
			Composite: []CompositeKey{
				{Part: "core", Section: "s1", Group: "g1", Variable: "v1"},
			},
		},
		Variants: []string{"Client", "Buyer"},
	}
}

func TestObjectValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Object)
		wantErr bool
	}{
		{"Valid", func(o *Object) {}, false},
		{"NoID", func(o *Object) { o.ID = "" }, true},
		{"NoName", func(o *Object) { o.Name = "" }, true},
		{"UnknownDriverKind", func(o *Object) {
			o.Drivers = append(o.Drivers, Driver{Kind: "flavor", Value: "x"})
		}, true},
		{"EmptyDriverValue", func(o *Object) {
			o.Drivers = append(o.Drivers, Driver{Kind: DriverDomain})
		}, true},
		{"KeyWithoutPart", func(o *Object) {
			o.Identifiers.Composite = append(o.Identifiers.Composite, CompositeKey{Group: "g"})
		}, true},
		{"IncompleteRelationship", func(o *Object) {
			o.Relationships = append(o.Relationships, Relationship{Role: "owns"})
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := sampleObject()
			tt.mutate(&o)
			err := o.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidObject) {
				t.Errorf("Validate() code = %s, want INVALID_OBJECT", errors.GetCode(err))
			}
		})
	}
}

func TestCompositeKeyRoundTrip(t *testing.T) {
	tests := []struct {
		key  CompositeKey
		want string
	}{
		{CompositeKey{Part: "core"}, "core"},
		{CompositeKey{Part: "core", Section: "s1"}, "core|s1"},
		{CompositeKey{Part: "core", Group: "g1"}, "core||g1"},
		{CompositeKey{Part: "core", Section: "s1", Group: "g1", Variable: "v1"}, "core|s1|g1|v1"},
	}

	for _, tt := range tests {
		got := tt.key.String()
		if got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
		back, err := ParseCompositeKey(got)
		if err != nil {
			t.Fatalf("ParseCompositeKey(%q): %v", got, err)
		}
		if back != tt.key {
			t.Errorf("round trip %q → %+v, want %+v", got, back, tt.key)
		}
	}
}

func TestParseCompositeKeyErrors(t *testing.T) {
	for _, s := range []string{"", "|s1", "a|b|c|d|e"} {
		if _, err := ParseCompositeKey(s); err == nil {
			t.Errorf("ParseCompositeKey(%q) accepted invalid key", s)
		}
	}
}

func TestDriverValues(t *testing.T) {
	o := sampleObject()
	got := o.DriverValues(DriverSector)
	if strings.Join(got, ",") != "Retail,Banking" {
		t.Errorf("DriverValues(sector) = %v", got)
	}
	if vals := o.DriverValues(DriverDomain); vals != nil {
		t.Errorf("DriverValues(domain) = %v, want nil", vals)
	}
}
