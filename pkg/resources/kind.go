// Package resources defines the records the remote data-management service
// stores for an organization and the response envelopes it wraps them in.
//
// The service keys collections under pluralized names (a cycles listing lives
// under "cycles", a created cycle too); callers depend on that shape, so the
// envelopes here mirror it rather than flattening it.
package resources

import "net/http"

// Kind describes one resource collection exposed by the service.
type Kind struct {
	// Name is the collection path segment, e.g. "cycles".
	Name string

	// Singular is a human-readable name used in errors and logs.
	Singular string

	// ListMethod is the HTTP method used to enumerate the collection.
	ListMethod string

	// ListSuffix is appended to the collection path when listing.
	ListSuffix string
}

// String returns the collection name.
func (k Kind) String() string {
	return k.Name
}

// Resource kinds served by the service.
var (
	KindCycles = Kind{
		Name:       "cycles",
		Singular:   "cycle",
		ListMethod: http.MethodGet,
	}
	KindDatasets = Kind{
		Name:       "datasets",
		Singular:   "dataset",
		ListMethod: http.MethodGet,
	}
	// Profiles are enumerated through a filter endpoint that takes a POST body.
	KindColumnMappingProfiles = Kind{
		Name:       "column_mapping_profiles",
		Singular:   "column mapping profile",
		ListMethod: http.MethodPost,
		ListSuffix: "filter/",
	}
	KindLabels = Kind{
		Name:       "labels",
		Singular:   "label",
		ListMethod: http.MethodGet,
	}
)

// Kinds returns every known resource kind.
func Kinds() []Kind {
	return []Kind{KindCycles, KindDatasets, KindColumnMappingProfiles, KindLabels}
}
