package catalog

import (
	"strings"

	"github.com/cdmlens/cdmlens/pkg/errors"
)

// =============================================================================
// Drivers
// =============================================================================

// DriverKind is a classification axis for driver tags.
type DriverKind string

// Driver kinds.
const (
	DriverSector    DriverKind = "sector"
	DriverDomain    DriverKind = "domain"
	DriverCountry   DriverKind = "country"
	DriverClarifier DriverKind = "clarifier"
)

// ValidDriverKinds is the set of recognized driver kinds.
var ValidDriverKinds = map[DriverKind]bool{
	DriverSector:    true,
	DriverDomain:    true,
	DriverCountry:   true,
	DriverClarifier: true,
}

// Driver is a classification tag attached to an Object or List.
type Driver struct {
	Kind  DriverKind `json:"kind" bson:"kind"`
	Value string     `json:"value" bson:"value"`
}

// =============================================================================
// Ontology
// =============================================================================

// Ontology is the two-level Being/Avatar classification of an Object.
// Avatar is a refinement of Being; either may be empty.
type Ontology struct {
	Being  string `json:"being,omitempty" bson:"being,omitempty"`
	Avatar string `json:"avatar,omitempty" bson:"avatar,omitempty"`
}

// =============================================================================
// Identifiers
// =============================================================================

// CompositeKey identifies an object by a combination of selectors.
// Part is required; the remaining selectors narrow the key.
type CompositeKey struct {
	Part     string `json:"part" bson:"part"`
	Section  string `json:"section,omitempty" bson:"section,omitempty"`
	Group    string `json:"group,omitempty" bson:"group,omitempty"`
	Variable string `json:"variable,omitempty" bson:"variable,omitempty"`
}

// String encodes the key as "part|section|group|variable" with trailing
// empty selectors trimmed. This is also the CSV cell encoding.
func (k CompositeKey) String() string {
	parts := []string{k.Part, k.Section, k.Group, k.Variable}
	last := len(parts)
	for last > 1 && parts[last-1] == "" {
		last--
	}
	return strings.Join(parts[:last], "|")
}

// ParseCompositeKey decodes the String encoding.
func ParseCompositeKey(s string) (CompositeKey, error) {
	fields := strings.Split(s, "|")
	if len(fields) > 4 {
		return CompositeKey{}, errors.New(errors.ErrCodeInvalidInput,
			"composite key %q has more than four selectors", s)
	}
	var k CompositeKey
	selectors := []*string{&k.Part, &k.Section, &k.Group, &k.Variable}
	for i, f := range fields {
		*selectors[i] = strings.TrimSpace(f)
	}
	if k.Part == "" {
		return CompositeKey{}, errors.New(errors.ErrCodeInvalidInput,
			"composite key %q has no part selector", s)
	}
	return k, nil
}

// Identifiers groups an object's unique identifiers and composite keys.
type Identifiers struct {
	Unique    []string       `json:"unique,omitempty" bson:"unique,omitempty"`
	Composite []CompositeKey `json:"composite,omitempty" bson:"composite,omitempty"`
}

// =============================================================================
// Relationships & Objects
// =============================================================================

// Relationship links an object to another object under a role. Several
// relationships may share the same target, and an object may relate to
// itself.
type Relationship struct {
	Role     string `json:"role" bson:"role"`
	TargetID string `json:"target_id" bson:"target_id"`
}

// Object is a cataloged entity.
type Object struct {
	ID            string         `json:"id" bson:"_id"`
	Name          string         `json:"name" bson:"name"`
	Ontology      Ontology       `json:"ontology,omitempty" bson:"ontology,omitempty"`
	Drivers       []Driver       `json:"drivers,omitempty" bson:"drivers,omitempty"`
	Identifiers   Identifiers    `json:"identifiers,omitempty" bson:"identifiers,omitempty"`
	Relationships []Relationship `json:"relationships,omitempty" bson:"relationships,omitempty"`
	Variants      []string       `json:"variants,omitempty" bson:"variants,omitempty"`
}

// List is a named collection of objects.
type List struct {
	ID        string   `json:"id" bson:"_id"`
	Name      string   `json:"name" bson:"name"`
	Drivers   []Driver `json:"drivers,omitempty" bson:"drivers,omitempty"`
	MemberIDs []string `json:"member_ids,omitempty" bson:"member_ids,omitempty"`
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks the object's intrinsic fields. Cross-object integrity
// (relationship targets) is checked at graph-build time, when the full
// catalog is available.
func (o *Object) Validate() error {
	if o.ID == "" {
		return errors.New(errors.ErrCodeInvalidObject, "object has no id")
	}
	if o.Name == "" {
		return errors.New(errors.ErrCodeInvalidObject, "object %s has no name", o.ID)
	}
	for _, d := range o.Drivers {
		if !ValidDriverKinds[d.Kind] {
			return errors.New(errors.ErrCodeInvalidObject,
				"object %s has unknown driver kind %q", o.ID, d.Kind)
		}
		if d.Value == "" {
			return errors.New(errors.ErrCodeInvalidObject,
				"object %s has empty %s driver", o.ID, d.Kind)
		}
	}
	for _, k := range o.Identifiers.Composite {
		if k.Part == "" {
			return errors.New(errors.ErrCodeInvalidObject,
				"object %s has composite key without part selector", o.ID)
		}
	}
	for _, r := range o.Relationships {
		if r.Role == "" || r.TargetID == "" {
			return errors.New(errors.ErrCodeInvalidObject,
				"object %s has incomplete relationship %q → %q", o.ID, r.Role, r.TargetID)
		}
	}
	return nil
}

// Validate checks the list's intrinsic fields.
func (l *List) Validate() error {
	if l.ID == "" {
		return errors.New(errors.ErrCodeInvalidObject, "list has no id")
	}
	if l.Name == "" {
		return errors.New(errors.ErrCodeInvalidObject, "list %s has no name", l.ID)
	}
	for _, d := range l.Drivers {
		if !ValidDriverKinds[d.Kind] {
			return errors.New(errors.ErrCodeInvalidObject,
				"list %s has unknown driver kind %q", l.ID, d.Kind)
		}
	}
	return nil
}

// DriverValues returns the values of the object's drivers of one kind, in
// declaration order.
func (o *Object) DriverValues(kind DriverKind) []string {
	var out []string
	for _, d := range o.Drivers {
		if d.Kind == kind {
			out = append(out, d.Value)
		}
	}
	return out
}
