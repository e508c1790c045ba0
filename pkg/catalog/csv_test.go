package catalog

import (
	"bytes"
	"reflect"
	"strings"
	"testing"
)

func TestCSVRoundTrip(t *testing.T) {
	objects := []Object{
		sampleObject(),
		{
			ID:   "obj-2",
			Name: "Account",
			Relationships: []Relationship{
				{Role: "owned_by", TargetID: "obj-1"},
			},
		},
	}

	var buf bytes.Buffer
	if err := WriteCSV(objects, &buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	back, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if !reflect.DeepEqual(back, objects) {
		t.Errorf("round trip mismatch:\ngot:  %+v\nwant: %+v", back, objects)
	}
}

func TestReadCSVHeaderDriven(t *testing.T) {
	// Columns reordered, extra working column, mixed-case header.
	in := strings.Join([]string{
		"Name,notes,ID,sector",
		"Customer,wip,obj-1,Retail;Banking",
	}, "\n")

	objects, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if len(objects) != 1 {
		t.Fatalf("got %d objects, want 1", len(objects))
	}
	o := objects[0]
	if o.ID != "obj-1" || o.Name != "Customer" {
		t.Errorf("object = %+v", o)
	}
	if !reflect.DeepEqual(o.DriverValues(DriverSector), []string{"Retail", "Banking"}) {
		t.Errorf("sectors = %v", o.DriverValues(DriverSector))
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"Empty", ""},
		{"MissingIDColumn", "name\nCustomer"},
		{"MissingName", "id,name\nobj-1,"},
		{"BadRelationship", "id,name,relationships\nobj-1,Customer,owns"},
		{"BadKey", "id,name,keys\nobj-1,Customer,|nopart"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadCSV(strings.NewReader(tt.in)); err == nil {
				t.Error("ReadCSV accepted invalid input")
			}
		})
	}
}

func TestReadCSVReportsRowNumber(t *testing.T) {
	in := "id,name\nobj-1,Customer\n,Missing"
	_, err := ReadCSV(strings.NewReader(in))
	if err == nil || !strings.Contains(err.Error(), "row 3") {
		t.Errorf("error = %v, want row 3 reference", err)
	}
}
