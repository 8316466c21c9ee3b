package resources

// Dataset groups imported files. The service calls these import records.
type Dataset struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	SuperOrganization int    `json:"super_organization"`
}

// DatasetsResponse is the envelope of a dataset listing.
type DatasetsResponse struct {
	Status   string    `json:"status,omitempty"`
	Datasets []Dataset `json:"datasets"`
}

// DatasetResponse is returned when a dataset is created: the record's fields
// sit next to the status rather than under a key.
type DatasetResponse struct {
	Status string `json:"status,omitempty"`
	Dataset
}

// DatasetPayload is the body sent to create a dataset.
type DatasetPayload struct {
	Name string `json:"name"`
}
