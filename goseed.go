// Package goseed reconciles building-energy resources against a SEED
// data-management service.
//
// The service has no upsert and lets several records share a name, so the
// client offers get-or-create and create-or-update operations built from
// plain list, create, update and delete calls. Every call is an independent
// best-effort sequence; nothing is transactional.
//
// Example usage:
//
//	conn, err := goseed.LoadConnection("seed-config.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	client, err := goseed.New(1, goseed.WithConnection(*conn))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Find or create the 2024 reporting cycle and make it active
//	start, end := resources.NewDate(2024, 1, 1), resources.NewDate(2024, 12, 31)
//	cycle, err := client.GetOrCreateCycle(ctx, "2024 Benchmarking", &start, &end, goseed.SetActive())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Replace the mappings of an import profile with the contents of a file
//	profile, err := client.CreateOrUpdateColumnMappingProfileFromFile(ctx, "City Import", "mappings.csv")
package goseed

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/agentstation/goseed/pkg/errors"
	"github.com/agentstation/goseed/pkg/logging"
	"github.com/agentstation/goseed/pkg/resources"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Gateway performs the remote calls. Every operation is scoped to an
// organization and decodes the response envelope into out.
type Gateway interface {
	List(ctx context.Context, kind resources.Kind, orgID int, query url.Values, out any) error
	Create(ctx context.Context, kind resources.Kind, orgID int, payload, out any) error
	Update(ctx context.Context, kind resources.Kind, orgID int, id int, payload, out any) error
	Delete(ctx context.Context, kind resources.Kind, orgID int, id int) error
}

// Client reconciles resources for a single organization.
type Client interface {

	// Cycles manages reporting periods
	Cycles

	// Datasets manages import records
	Datasets

	// Profiles manages column mapping profiles
	Profiles

	// Labels queries labels
	Labels

	// ActiveCycle exposes the cached active cycle id
	ActiveCycle

	// Hooks provides access to event callback registration
	Hooks

	// OrganizationID returns the organization every call is scoped to.
	OrganizationID() int
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options

	orgID   int
	gateway Gateway
	logger  *zerolog.Logger
	cache   *Cache
	hooks   *hooks
}

// New creates a Client bound to orgID. A gateway is required, either
// directly with WithGateway or built from WithConnection.
func New(orgID int, opts ...Option) (Client, error) {
	if orgID <= 0 {
		return nil, errors.NewValidationError("organization_id", orgID, "must be a positive integer")
	}

	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}
	if o.gateway == nil {
		return nil, errors.NewValidationError("gateway", nil, "a gateway or connection is required")
	}

	_, logger := logging.Scope(context.Background(), o.logger, logging.Organization(orgID))
	c := &client{
		options: o,
		orgID:   orgID,
		gateway: o.gateway,
		logger:  logger,
		cache:   NewCache(),
		hooks:   newHooks(),
	}
	for _, fn := range o.ambiguousMatchHooks {
		c.hooks.OnAmbiguousMatch(fn)
	}

	c.logger.Debug().Msg("Client created")
	return c, nil
}

// OrganizationID returns the organization every call is scoped to.
func (c *client) OrganizationID() int {
	return c.orgID
}
