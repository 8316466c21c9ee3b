package resources

import (
	"fmt"
	"slices"

	"github.com/agentstation/goseed/internal/utils/ptr"
)

// Mapping describes how one column of an imported file lands in the
// service's schema.
type Mapping struct {
	FromField   string  `json:"from_field" yaml:"from_field"`
	FromUnits   *string `json:"from_units" yaml:"from_units,omitempty"`
	ToTableName string  `json:"to_table_name" yaml:"to_table_name"`
	ToField     string  `json:"to_field" yaml:"to_field"`
}

// Key identifies a mapping by its source column and target field.
// Units are metadata and do not take part in identity.
func (m Mapping) Key() string {
	return fmt.Sprintf("%s->%s.%s", m.FromField, m.ToTableName, m.ToField)
}

// Units returns the source units, or "" when none are set.
func (m Mapping) Units() string {
	return ptr.Deref(m.FromUnits)
}

// Equal reports whether m and o describe the same mapping including units.
func (m Mapping) Equal(o Mapping) bool {
	return m.Key() == o.Key() && m.Units() == o.Units()
}

// ColumnMappingProfile is a named, ordered list of mappings.
type ColumnMappingProfile struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	ProfileType string    `json:"profile_type,omitempty"`
	Mappings    []Mapping `json:"mappings"`
}

// ProfilesResponse is the envelope of a profile listing.
type ProfilesResponse struct {
	Status string                 `json:"status,omitempty"`
	Data   []ColumnMappingProfile `json:"data"`
}

// ProfileResponse is the envelope of a single profile.
type ProfileResponse struct {
	Status string               `json:"status,omitempty"`
	Data   ColumnMappingProfile `json:"data"`
}

// ProfilePayload is the body sent to create a profile.
type ProfilePayload struct {
	Name        string    `json:"name"`
	ProfileType string    `json:"profile_type"`
	Mappings    []Mapping `json:"mappings"`
}

// ProfileMappingsPayload is the body sent to replace a profile's mappings.
type ProfileMappingsPayload struct {
	Mappings []Mapping `json:"mappings"`
}

// ProfileFilter is the body of a profile listing request.
type ProfileFilter struct {
	ProfileType []string `json:"profile_type,omitempty"`
}

// EqualMappings reports whether a and b hold the same mappings in the same order.
func EqualMappings(a, b []Mapping) bool {
	return slices.EqualFunc(a, b, Mapping.Equal)
}

// SameEntries reports whether a and b hold the same mapping identities,
// regardless of position.
func SameEntries(a, b []Mapping) bool {
	if len(a) != len(b) {
		return false
	}
	counts := make(map[string]int, len(a))
	for _, m := range a {
		counts[m.Key()]++
	}
	for _, m := range b {
		counts[m.Key()]--
		if counts[m.Key()] < 0 {
			return false
		}
	}
	return true
}

// DuplicateKeys returns the keys that appear more than once in mappings,
// in order of first repetition.
func DuplicateKeys(mappings []Mapping) []string {
	seen := make(map[string]int, len(mappings))
	var dups []string
	for _, m := range mappings {
		seen[m.Key()]++
		if seen[m.Key()] == 2 {
			dups = append(dups, m.Key())
		}
	}
	return dups
}
