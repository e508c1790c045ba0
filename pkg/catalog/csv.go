package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/cdmlens/cdmlens/pkg/errors"
)

// CSV column names, in export order. Import is header-driven: columns may
// appear in any order and unknown columns are ignored, so a bulk-edit
// spreadsheet can carry extra working columns without breaking the round
// trip.
var csvColumns = []string{
	"id", "name", "being", "avatar",
	"sector", "domain", "country", "clarifier",
	"identifiers", "keys", "relationships", "variants",
}

// relationshipSep separates role from target in a relationship cell.
const relationshipSep = ">"

// WriteCSV writes objects as CSV, one row per object, in input order.
//
// Multi-valued cells (drivers, identifiers, keys, relationships, variants)
// join their values with ";". Composite keys use the [CompositeKey.String]
// encoding and relationships encode as "role>target".
func WriteCSV(objects []Object, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := range objects {
		o := &objects[i]
		keys := make([]string, len(o.Identifiers.Composite))
		for j, k := range o.Identifiers.Composite {
			keys[j] = k.String()
		}
		rels := make([]string, len(o.Relationships))
		for j, r := range o.Relationships {
			rels[j] = r.Role + relationshipSep + r.TargetID
		}

		row := []string{
			o.ID,
			o.Name,
			o.Ontology.Being,
			o.Ontology.Avatar,
			strings.Join(o.DriverValues(DriverSector), multiValueSep),
			strings.Join(o.DriverValues(DriverDomain), multiValueSep),
			strings.Join(o.DriverValues(DriverCountry), multiValueSep),
			strings.Join(o.DriverValues(DriverClarifier), multiValueSep),
			strings.Join(o.Identifiers.Unique, multiValueSep),
			strings.Join(keys, multiValueSep),
			strings.Join(rels, multiValueSep),
			strings.Join(o.Variants, multiValueSep),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write object %s: %w", o.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses objects from CSV written by [WriteCSV] or edited in a
// spreadsheet. The first record must be a header containing at least the
// "id" and "name" columns. Each object is validated; errors report the
// offending row number.
func ReadCSV(r io.Reader) ([]Object, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidCSV, "empty input")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCSV, err, "read header")
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"id", "name"} {
		if _, ok := col[required]; !ok {
			return nil, errors.New(errors.ErrCodeInvalidCSV, "missing column %q", required)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var objects []Object
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCSV, err, "row %d", line)
		}

		o := Object{
			ID:   cell(row, "id"),
			Name: cell(row, "name"),
			Ontology: Ontology{
				Being:  cell(row, "being"),
				Avatar: cell(row, "avatar"),
			},
			Variants: splitCell(cell(row, "variants")),
		}
		o.Identifiers.Unique = splitCell(cell(row, "identifiers"))

		for _, kind := range []DriverKind{DriverSector, DriverDomain, DriverCountry, DriverClarifier} {
			for _, v := range splitCell(cell(row, string(kind))) {
				o.Drivers = append(o.Drivers, Driver{Kind: kind, Value: v})
			}
		}

		for _, s := range splitCell(cell(row, "keys")) {
			k, err := ParseCompositeKey(s)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidCSV, err, "row %d", line)
			}
			o.Identifiers.Composite = append(o.Identifiers.Composite, k)
		}

		for _, s := range splitCell(cell(row, "relationships")) {
			role, target, ok := strings.Cut(s, relationshipSep)
			if !ok || role == "" || target == "" {
				return nil, errors.New(errors.ErrCodeInvalidCSV,
					"row %d: relationship %q is not role%starget", line, s, relationshipSep)
			}
			o.Relationships = append(o.Relationships, Relationship{
				Role:     strings.TrimSpace(role),
				TargetID: strings.TrimSpace(target),
			})
		}

		if err := o.Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCSV, err, "row %d", line)
		}
		objects = append(objects, o)
	}

	return objects, nil
}

// splitCell splits a multi-valued cell on ";" and drops empty entries.
func splitCell(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, multiValueSep) {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
