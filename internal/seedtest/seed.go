package seedtest

import (
	"github.com/agentstation/goseed/pkg/resources"
)

// DefaultLabels are the labels a new organization starts with.
var DefaultLabels = []struct {
	Name       string
	Color      string
	ShowInList bool
}{
	{"Residential", "light blue", false},
	{"Non-Residential", "light blue", false},
	{"Violation", "red", true},
	{"Compliant", "green", true},
	{"Missing Data", "orange", true},
	{"Questionable Report", "orange", true},
	{"Update Bldg Info", "orange", true},
	{"Call", "blue", false},
	{"Email", "blue", false},
	{"High EUI", "red", true},
	{"Low EUI", "green", true},
	{"Exempted", "gray", false},
	{"Extension", "gray", false},
	{"Change of Ownership", "gray", false},
	{"Verified", "green", false},
}

// DefaultCycleName is the cycle a new organization starts with.
const DefaultCycleName = "2020 Calendar Year"

// DefaultProfileNames are the mapping profiles a new organization starts
// with.
var DefaultProfileNames = []string{"Portfolio Manager Defaults", "BuildingSync Default"}

// SeedOrganization gives org the default cycle, labels and mapping profiles.
func (s *Server) SeedOrganization(orgID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.org(orgID)
	o.cycles = append(o.cycles, resources.Cycle{
		ID:             s.id(),
		Name:           DefaultCycleName,
		Start:          resources.NewDate(2020, 1, 1),
		End:            resources.NewDate(2020, 12, 31),
		OrganizationID: orgID,
	})
	for _, l := range DefaultLabels {
		o.labels = append(o.labels, resources.Label{
			ID:                s.id(),
			Name:              l.Name,
			Color:             l.Color,
			ShowInList:        l.ShowInList,
			SuperOrganization: orgID,
		})
	}

	o.profiles = append(o.profiles,
		resources.ColumnMappingProfile{
			ID:          s.id(),
			Name:        DefaultProfileNames[0],
			ProfileType: "Normal",
			Mappings: []resources.Mapping{
				{FromField: "Property Id", ToTableName: "PropertyState", ToField: "pm_property_id"},
				{FromField: "Property Name", ToTableName: "PropertyState", ToField: "property_name"},
				{FromField: "Address 1", ToTableName: "PropertyState", ToField: "address_line_1"},
				{FromField: "City", ToTableName: "PropertyState", ToField: "city"},
				{FromField: "Year Built", ToTableName: "PropertyState", ToField: "year_built"},
			},
		},
		resources.ColumnMappingProfile{
			ID:          s.id(),
			Name:        DefaultProfileNames[1],
			ProfileType: "BuildingSync Default",
			Mappings: []resources.Mapping{
				{FromField: "/auc:BuildingSync/auc:Facilities/auc:Facility/auc:Sites/auc:Site/auc:Buildings/auc:Building/auc:PremisesName", ToTableName: "PropertyState", ToField: "property_name"},
				{FromField: "/auc:BuildingSync/auc:Facilities/auc:Facility/auc:Sites/auc:Site/auc:Buildings/auc:Building/auc:YearOfConstruction", ToTableName: "PropertyState", ToField: "year_built"},
			},
		},
	)
}

// AddCycle stores a cycle directly, bypassing the API.
func (s *Server) AddCycle(orgID int, name string, start, end resources.Date) resources.Cycle {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := resources.Cycle{ID: s.id(), Name: name, Start: start, End: end, OrganizationID: orgID}
	o := s.org(orgID)
	o.cycles = append(o.cycles, c)
	return c
}

// AddDataset stores a dataset directly, bypassing the API.
func (s *Server) AddDataset(orgID int, name string) resources.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := resources.Dataset{ID: s.id(), Name: name, SuperOrganization: orgID}
	o := s.org(orgID)
	o.datasets = append(o.datasets, d)
	return d
}

// AddProfile stores a mapping profile directly, bypassing the API.
func (s *Server) AddProfile(orgID int, name string, mappings []resources.Mapping) resources.ColumnMappingProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := resources.ColumnMappingProfile{ID: s.id(), Name: name, ProfileType: "Normal", Mappings: append([]resources.Mapping{}, mappings...)}
	o := s.org(orgID)
	o.profiles = append(o.profiles, p)
	return cloneProfile(p)
}

// Cycles returns the stored cycles of org.
func (s *Server) Cycles(orgID int) []resources.Cycle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]resources.Cycle{}, s.org(orgID).cycles...)
}

// Datasets returns the stored datasets of org.
func (s *Server) Datasets(orgID int) []resources.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]resources.Dataset{}, s.org(orgID).datasets...)
}

// CyclesNamed returns the stored cycles of org called name.
func (s *Server) CyclesNamed(orgID int, name string) []resources.Cycle {
	var out []resources.Cycle
	for _, c := range s.Cycles(orgID) {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Profiles returns the stored mapping profiles of org.
func (s *Server) Profiles(orgID int) []resources.ColumnMappingProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]resources.ColumnMappingProfile, 0, len(s.org(orgID).profiles))
	for _, p := range s.org(orgID).profiles {
		out = append(out, cloneProfile(p))
	}
	return out
}
