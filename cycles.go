package goseed

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/agentstation/goseed/pkg/errors"
	"github.com/agentstation/goseed/pkg/logging"
	"github.com/agentstation/goseed/pkg/resources"
)

// Cycles manages reporting periods.
type Cycles interface {
	GetCycles(ctx context.Context) (*resources.CyclesResponse, error)
	CreateCycle(ctx context.Context, name string, start, end resources.Date) (*resources.CycleResponse, error)
	GetOrCreateCycle(ctx context.Context, name string, start, end *resources.Date, opts ...CycleOption) (*resources.CycleResponse, error)
	GetCycleByName(ctx context.Context, name string, opts ...CycleOption) (*resources.CycleResponse, error)
	DeleteCycle(ctx context.Context, id int) error
}

// CycleOption adjusts a cycle lookup.
type CycleOption func(*cycleOptions)

type cycleOptions struct {
	setActive bool
}

// SetActive stores the resolved cycle id as the client's active cycle,
// replacing any previous value.
func SetActive() CycleOption {
	return func(o *cycleOptions) {
		o.setActive = true
	}
}

func applyCycleOptions(opts []CycleOption) cycleOptions {
	var o cycleOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// GetCycles lists every cycle of the organization.
func (c *client) GetCycles(ctx context.Context) (*resources.CyclesResponse, error) {
	var resp resources.CyclesResponse
	if err := c.gateway.List(ctx, resources.KindCycles, c.orgID, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateCycle creates a cycle even when one with the same name exists.
func (c *client) CreateCycle(ctx context.Context, name string, start, end resources.Date) (*resources.CycleResponse, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validateDates(&start, &end); err != nil {
		return nil, err
	}

	ctx, log := c.scope(ctx, "create_cycle")

	var resp resources.CycleResponse
	payload := resources.CyclePayload{Name: name, Start: start, End: end}
	if err := c.gateway.Create(ctx, resources.KindCycles, c.orgID, payload, &resp); err != nil {
		return nil, err
	}
	log.Debug().
		Int("cycle_id", resp.Cycles.ID).
		Str("name", name).
		Msg("Cycle created")
	return &resp, nil
}

// GetOrCreateCycle returns the cycle named name, creating it from start and
// end when none exists. The dates are ignored when a cycle is found. When
// several cycles share the name the first listed one is used. An empty name
// resolves the active cycle instead, when one is set.
func (c *client) GetOrCreateCycle(ctx context.Context, name string, start, end *resources.Date, opts ...CycleOption) (*resources.CycleResponse, error) {
	activeID, useActive := c.CycleID()
	useActive = useActive && strings.TrimSpace(name) == ""
	if !useActive {
		if err := validateName(name); err != nil {
			return nil, err
		}
	}
	o := applyCycleOptions(opts)
	ctx, log := c.scope(ctx, "get_or_create_cycle")

	if useActive {
		cycle, err := c.findCycleByID(ctx, activeID)
		if err != nil {
			return nil, err
		}
		log.Debug().Int("cycle_id", cycle.ID).Msg("Using active cycle")
		return c.resolved(cycle, o), nil
	}

	cycle, found, err := c.findCycle(ctx, name)
	if err != nil {
		return nil, err
	}

	var resp *resources.CycleResponse
	if found {
		log.Debug().Int("cycle_id", cycle.ID).Str("name", name).Msg("Using existing cycle")
		resp = &resources.CycleResponse{Status: "success", Cycles: cycle}
	} else {
		if err := validateDates(start, end); err != nil {
			return nil, err
		}
		if resp, err = c.CreateCycle(ctx, name, *start, *end); err != nil {
			return nil, err
		}
	}

	if o.setActive {
		c.SetCycleID(resp.Cycles.ID)
		log.Debug().Int("cycle_id", resp.Cycles.ID).Msg("Active cycle set")
	}
	return resp, nil
}

// GetCycleByName returns the cycle named name without creating one.
func (c *client) GetCycleByName(ctx context.Context, name string, opts ...CycleOption) (*resources.CycleResponse, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	o := applyCycleOptions(opts)

	cycle, found, err := c.findCycle(ctx, name)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, errors.NewNotFoundError(resources.KindCycles.Singular, strconv.Quote(name))
	}
	return c.resolved(cycle, o), nil
}

// DeleteCycle removes the cycle with id. A missing cycle is reported by the
// service and satisfies errors.IsNotFound.
func (c *client) DeleteCycle(ctx context.Context, id int) error {
	if id <= 0 {
		return errors.NewValidationError("id", id, "must be a positive integer")
	}
	ctx, log := c.scope(ctx, "delete_cycle")
	if err := c.gateway.Delete(ctx, resources.KindCycles, c.orgID, id); err != nil {
		return err
	}
	log.Debug().Int("cycle_id", id).Msg("Cycle deleted")
	return nil
}

// findCycleByID looks id up in the listing. A cached id the service no
// longer knows is reported as not found.
func (c *client) findCycleByID(ctx context.Context, id int) (resources.Cycle, error) {
	list, err := c.GetCycles(ctx)
	if err != nil {
		return resources.Cycle{}, err
	}
	for _, cycle := range list.Cycles {
		if cycle.ID == id {
			return cycle, nil
		}
	}
	return resources.Cycle{}, errors.NewNotFoundError(resources.KindCycles.Singular, strconv.Itoa(id))
}

// resolved wraps cycle in a response and overwrites the active cycle when
// SetActive was given.
func (c *client) resolved(cycle resources.Cycle, o cycleOptions) *resources.CycleResponse {
	if o.setActive {
		c.SetCycleID(cycle.ID)
	}
	return &resources.CycleResponse{Status: "success", Cycles: cycle}
}

func (c *client) findCycle(ctx context.Context, name string) (resources.Cycle, bool, error) {
	list, err := c.GetCycles(ctx)
	if err != nil {
		return resources.Cycle{}, false, err
	}
	cycle, found := pickFirst(c, resources.KindCycles, name, list.FilterByName(name), func(c resources.Cycle) int { return c.ID })
	return cycle, found, nil
}

// scope derives an operation logger and carries it in ctx so gateway
// request logs share the operation field.
func (c *client) scope(ctx context.Context, operation string) (context.Context, *zerolog.Logger) {
	return logging.Scope(ctx, c.logger, logging.Operation(operation))
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewValidationError("name", name, "is required")
	}
	return nil
}

func validateDates(start, end *resources.Date) error {
	if start == nil || start.IsZero() {
		return errors.NewValidationError("start", nil, "is required to create a cycle")
	}
	if end == nil || end.IsZero() {
		return errors.NewValidationError("end", nil, "is required to create a cycle")
	}
	if end.Before(start.Time) {
		return errors.NewValidationError("end", end.String(), "must not be before start")
	}
	return nil
}
