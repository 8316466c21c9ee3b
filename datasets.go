package goseed

import (
	"context"

	"github.com/agentstation/goseed/pkg/resources"
)

// Datasets manages import records.
type Datasets interface {
	GetDatasets(ctx context.Context) ([]resources.Dataset, error)
	GetOrCreateDataset(ctx context.Context, name string) (*resources.Dataset, error)
}

// GetDatasets lists every dataset of the organization.
func (c *client) GetDatasets(ctx context.Context) ([]resources.Dataset, error) {
	var resp resources.DatasetsResponse
	if err := c.gateway.List(ctx, resources.KindDatasets, c.orgID, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Datasets, nil
}

// GetOrCreateDataset returns the dataset named name, creating it when none
// exists.
func (c *client) GetOrCreateDataset(ctx context.Context, name string) (*resources.Dataset, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	ctx, log := c.scope(ctx, "get_or_create_dataset")

	datasets, err := c.GetDatasets(ctx)
	if err != nil {
		return nil, err
	}
	var matches []resources.Dataset
	for _, d := range datasets {
		if d.Name == name {
			matches = append(matches, d)
		}
	}
	if d, ok := pickFirst(c, resources.KindDatasets, name, matches, func(d resources.Dataset) int { return d.ID }); ok {
		log.Debug().Int("dataset_id", d.ID).Str("name", name).Msg("Using existing dataset")
		return &d, nil
	}

	var resp resources.DatasetResponse
	if err := c.gateway.Create(ctx, resources.KindDatasets, c.orgID, resources.DatasetPayload{Name: name}, &resp); err != nil {
		return nil, err
	}
	log.Debug().Int("dataset_id", resp.ID).Str("name", name).Msg("Dataset created")
	return &resp.Dataset, nil
}
