package seedtest

import (
	"net/http"
	"slices"
	"strings"

	"github.com/agentstation/goseed/pkg/resources"
)

func (s *Server) listCycles(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	cycles := append([]resources.Cycle{}, s.org(orgID(r)).cycles...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resources.CyclesResponse{Status: "success", Cycles: cycles})
}

func (s *Server) createCycle(w http.ResponseWriter, r *http.Request) {
	var p resources.CyclePayload
	if err := decode(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(p.Name) == "" || p.Start.IsZero() || p.End.IsZero() {
		writeError(w, http.StatusBadRequest, "name, start and end are required")
		return
	}

	s.mu.Lock()
	id := orgID(r)
	c := resources.Cycle{ID: s.id(), Name: p.Name, Start: p.Start, End: p.End, OrganizationID: id}
	o := s.org(id)
	o.cycles = append(o.cycles, c)
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, resources.CycleResponse{Status: "success", Cycles: c})
}

func (s *Server) deleteCycle(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	s.mu.Lock()
	o := s.org(orgID(r))
	n := len(o.cycles)
	o.cycles = slices.DeleteFunc(o.cycles, func(c resources.Cycle) bool { return c.ID == id })
	removed := len(o.cycles) != n
	s.mu.Unlock()

	if !removed {
		writeError(w, http.StatusNotFound, "Cycle not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listDatasets(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	datasets := append([]resources.Dataset{}, s.org(orgID(r)).datasets...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resources.DatasetsResponse{Status: "success", Datasets: datasets})
}

func (s *Server) createDataset(w http.ResponseWriter, r *http.Request) {
	var p resources.DatasetPayload
	if err := decode(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(p.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	s.mu.Lock()
	id := orgID(r)
	d := resources.Dataset{ID: s.id(), Name: p.Name, SuperOrganization: id}
	o := s.org(id)
	o.datasets = append(o.datasets, d)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resources.DatasetResponse{Status: "success", Dataset: d})
}

func (s *Server) listProfiles(w http.ResponseWriter, r *http.Request) {
	var f resources.ProfileFilter
	if r.ContentLength != 0 {
		if err := decode(r, &f); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	s.mu.Lock()
	var out []resources.ColumnMappingProfile
	for _, p := range s.org(orgID(r)).profiles {
		if len(f.ProfileType) > 0 && !slices.Contains(f.ProfileType, p.ProfileType) {
			continue
		}
		out = append(out, cloneProfile(p))
	}
	s.mu.Unlock()
	if out == nil {
		out = []resources.ColumnMappingProfile{}
	}
	writeJSON(w, http.StatusOK, resources.ProfilesResponse{Status: "success", Data: out})
}

func (s *Server) createProfile(w http.ResponseWriter, r *http.Request) {
	var p resources.ProfilePayload
	if err := decode(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(p.Name) == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	if p.ProfileType == "" {
		p.ProfileType = "Normal"
	}

	s.mu.Lock()
	profile := resources.ColumnMappingProfile{
		ID:          s.id(),
		Name:        p.Name,
		ProfileType: p.ProfileType,
		Mappings:    append([]resources.Mapping{}, p.Mappings...),
	}
	o := s.org(orgID(r))
	o.profiles = append(o.profiles, profile)
	out := cloneProfile(profile)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, resources.ProfileResponse{Status: "success", Data: out})
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var p resources.ProfileMappingsPayload
	if err := decode(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	o := s.org(orgID(r))
	i := slices.IndexFunc(o.profiles, func(p resources.ColumnMappingProfile) bool { return p.ID == id })
	if i < 0 {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	mappings := append([]resources.Mapping{}, p.Mappings...)
	if s.DropMappingsOnUpdate >= 0 && s.DropMappingsOnUpdate < len(mappings) {
		mappings = mappings[:s.DropMappingsOnUpdate]
	}
	o.profiles[i].Mappings = mappings
	writeJSON(w, http.StatusOK, resources.ProfileResponse{Status: "success", Data: cloneProfile(o.profiles[i])})
}

func (s *Server) deleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	s.mu.Lock()
	o := s.org(orgID(r))
	n := len(o.profiles)
	o.profiles = slices.DeleteFunc(o.profiles, func(p resources.ColumnMappingProfile) bool { return p.ID == id })
	removed := len(o.profiles) != n
	s.mu.Unlock()

	if !removed {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "data": "Successfully deleted"})
}

func (s *Server) listLabels(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	labels := append([]resources.Label{}, s.org(orgID(r)).labels...)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, labels)
}

func cloneProfile(p resources.ColumnMappingProfile) resources.ColumnMappingProfile {
	p.Mappings = append([]resources.Mapping{}, p.Mappings...)
	return p
}
