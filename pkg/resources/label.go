package resources

// Label is a named tag that can be attached to properties and tax lots.
type Label struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Color             string `json:"color,omitempty"`
	ShowInList        bool   `json:"show_in_list"`
	SuperOrganization int    `json:"super_organization,omitempty"`
}

// FilterLabels returns the labels whose name is one of names, keeping the
// listing order. An empty names list returns labels unchanged.
func FilterLabels(labels []Label, names ...string) []Label {
	if len(names) == 0 {
		return labels
	}
	wanted := make(map[string]struct{}, len(names))
	for _, n := range names {
		wanted[n] = struct{}{}
	}
	filtered := make([]Label, 0, len(names))
	for _, l := range labels {
		if _, ok := wanted[l.Name]; ok {
			filtered = append(filtered, l)
		}
	}
	return filtered
}
