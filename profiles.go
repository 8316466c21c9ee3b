package goseed

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/agentstation/goseed/pkg/constants"
	"github.com/agentstation/goseed/pkg/errors"
	"github.com/agentstation/goseed/pkg/mappingfile"
	"github.com/agentstation/goseed/pkg/resources"
)

// Profiles manages column mapping profiles.
type Profiles interface {
	GetColumnMappingProfiles(ctx context.Context, nameFilter ...string) ([]resources.ColumnMappingProfile, error)
	GetColumnMappingProfile(ctx context.Context, name string) (*resources.ColumnMappingProfile, error)
	CreateOrUpdateColumnMappingProfile(ctx context.Context, name string, mappings []resources.Mapping) (*resources.ColumnMappingProfile, error)
	CreateOrUpdateColumnMappingProfileFromFile(ctx context.Context, name, path string) (*resources.ColumnMappingProfile, error)
	DeleteColumnMappingProfile(ctx context.Context, id int) error
}

// GetColumnMappingProfiles lists the organization's profiles. With names
// given, only profiles carrying one of those names are returned. Profiles
// sharing a name are all returned.
func (c *client) GetColumnMappingProfiles(ctx context.Context, nameFilter ...string) ([]resources.ColumnMappingProfile, error) {
	var resp resources.ProfilesResponse
	if err := c.gateway.List(ctx, resources.KindColumnMappingProfiles, c.orgID, nil, &resp); err != nil {
		return nil, err
	}
	profiles := resp.Data
	if profiles == nil {
		profiles = []resources.ColumnMappingProfile{}
	}
	for i := range profiles {
		if profiles[i].Mappings == nil {
			profiles[i].Mappings = []resources.Mapping{}
		}
	}

	names := slices.DeleteFunc(slices.Clone(nameFilter), func(n string) bool { return n == "" })
	if len(names) == 0 {
		return profiles, nil
	}
	return slices.DeleteFunc(profiles, func(p resources.ColumnMappingProfile) bool {
		return !slices.Contains(names, p.Name)
	}), nil
}

// GetColumnMappingProfile returns the profile named name, or nil when there
// is none. Absence is not an error.
func (c *client) GetColumnMappingProfile(ctx context.Context, name string) (*resources.ColumnMappingProfile, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	profiles, err := c.GetColumnMappingProfiles(ctx, name)
	if err != nil {
		return nil, err
	}
	p, ok := pickFirst(c, resources.KindColumnMappingProfiles, name, profiles, func(p resources.ColumnMappingProfile) int { return p.ID })
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// CreateOrUpdateColumnMappingProfile makes the profile named name hold
// exactly mappings. An existing profile keeps its id and has its whole
// mapping list replaced; otherwise a new profile is created.
//
// Two mappings with the same from_field, to_table_name and to_field are
// rejected with a ValidationError before any remote call, since the service
// would store only one of them. Units do not count toward that identity.
func (c *client) CreateOrUpdateColumnMappingProfile(ctx context.Context, name string, mappings []resources.Mapping) (*resources.ColumnMappingProfile, error) {
	if err := validateProfile(name, mappings); err != nil {
		return nil, err
	}
	if mappings == nil {
		mappings = []resources.Mapping{}
	}
	ctx, log := c.scope(ctx, "create_or_update_column_mapping_profile")

	existing, err := c.GetColumnMappingProfile(ctx, name)
	if err != nil {
		return nil, err
	}

	var resp resources.ProfileResponse
	switch {
	case existing == nil:
		payload := resources.ProfilePayload{Name: name, ProfileType: constants.ProfileTypeNormal, Mappings: mappings}
		if err := c.gateway.Create(ctx, resources.KindColumnMappingProfiles, c.orgID, payload, &resp); err != nil {
			return nil, err
		}
		log.Debug().Int("profile_id", resp.Data.ID).Int("mappings", len(mappings)).Msg("Profile created")

	case resources.EqualMappings(existing.Mappings, mappings):
		log.Debug().Int("profile_id", existing.ID).Msg("Profile already up to date")
		return existing, nil

	default:
		payload := resources.ProfileMappingsPayload{Mappings: mappings}
		if err := c.gateway.Update(ctx, resources.KindColumnMappingProfiles, c.orgID, existing.ID, payload, &resp); err != nil {
			return nil, err
		}
		log.Debug().
			Int("profile_id", existing.ID).
			Int("previous", len(existing.Mappings)).
			Int("mappings", len(mappings)).
			Msg("Profile mappings replaced")
		if resp.Data.ID == 0 {
			resp.Data.ID = existing.ID
		}
	}

	profile := resp.Data
	if profile.Mappings == nil {
		profile.Mappings = []resources.Mapping{}
	}
	switch {
	case len(profile.Mappings) != len(mappings):
		return nil, errors.NewResourceError("update", resources.KindColumnMappingProfiles.Singular, strconv.Itoa(profile.ID),
			fmt.Errorf("service stored %d mappings, expected %d", len(profile.Mappings), len(mappings)))
	case !resources.SameEntries(profile.Mappings, mappings):
		return nil, errors.NewResourceError("update", resources.KindColumnMappingProfiles.Singular, strconv.Itoa(profile.ID),
			errors.New("service stored mappings that differ from the request"))
	}
	return &profile, nil
}

// CreateOrUpdateColumnMappingProfileFromFile reads mappings from a CSV or
// YAML file and applies them like CreateOrUpdateColumnMappingProfile. A file
// that cannot be read or parsed fails before any remote call.
func (c *client) CreateOrUpdateColumnMappingProfileFromFile(ctx context.Context, name, path string) (*resources.ColumnMappingProfile, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	mappings, err := mappingfile.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.CreateOrUpdateColumnMappingProfile(ctx, name, mappings)
}

// DeleteColumnMappingProfile removes the profile with id.
func (c *client) DeleteColumnMappingProfile(ctx context.Context, id int) error {
	if id <= 0 {
		return errors.NewValidationError("id", id, "must be a positive integer")
	}
	ctx, log := c.scope(ctx, "delete_column_mapping_profile")
	if err := c.gateway.Delete(ctx, resources.KindColumnMappingProfiles, c.orgID, id); err != nil {
		return err
	}
	log.Debug().Int("profile_id", id).Msg("Profile deleted")
	return nil
}

func validateProfile(name string, mappings []resources.Mapping) error {
	if err := validateName(name); err != nil {
		return err
	}
	for i, m := range mappings {
		if strings.TrimSpace(m.FromField) == "" {
			return errors.NewValidationError(fmt.Sprintf("mappings[%d].from_field", i), m.FromField, "is required")
		}
		if strings.TrimSpace(m.ToField) == "" {
			return errors.NewValidationError(fmt.Sprintf("mappings[%d].to_field", i), m.ToField, "is required")
		}
	}
	if dups := resources.DuplicateKeys(mappings); len(dups) > 0 {
		return errors.NewValidationError("mappings", dups, "duplicate mappings: "+strings.Join(dups, ", "))
	}
	return nil
}
