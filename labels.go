package goseed

import (
	"context"

	"github.com/agentstation/goseed/pkg/resources"
)

// Labels queries labels.
type Labels interface {
	GetLabels(ctx context.Context, filterByName ...string) ([]resources.Label, error)
}

// GetLabels lists the organization's labels. With names given, only labels
// whose name is one of them are returned; names that match nothing are not
// an error.
func (c *client) GetLabels(ctx context.Context, filterByName ...string) ([]resources.Label, error) {
	var labels []resources.Label
	if err := c.gateway.List(ctx, resources.KindLabels, c.orgID, nil, &labels); err != nil {
		return nil, err
	}
	if labels == nil {
		labels = []resources.Label{}
	}
	return resources.FilterLabels(labels, filterByName...), nil
}
