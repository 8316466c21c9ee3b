package resources

// Cycle is a named, date-bounded reporting period.
// Names are not unique: the service happily stores several cycles with the
// same name, so lookups by name must be prepared for more than one match.
type Cycle struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Start          Date   `json:"start"`
	End            Date   `json:"end"`
	OrganizationID int    `json:"organization,omitempty"`
}

// CyclesResponse is the envelope of a cycle listing.
type CyclesResponse struct {
	Status string  `json:"status,omitempty"`
	Cycles []Cycle `json:"cycles"`
}

// CycleResponse is the envelope of a single cycle. The service keeps the
// plural key even for one record.
type CycleResponse struct {
	Status string `json:"status,omitempty"`
	Cycles Cycle  `json:"cycles"`
}

// CyclePayload is the body sent to create a cycle.
type CyclePayload struct {
	Name  string `json:"name"`
	Start Date   `json:"start"`
	End   Date   `json:"end"`
}

// FilterByName returns the cycles whose name equals name, in listing order.
func (r *CyclesResponse) FilterByName(name string) []Cycle {
	var matches []Cycle
	for _, c := range r.Cycles {
		if c.Name == name {
			matches = append(matches, c)
		}
	}
	return matches
}
