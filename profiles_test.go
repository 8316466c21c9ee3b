package goseed

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/goseed/internal/seedtest"
	"github.com/agentstation/goseed/internal/utils/ptr"
	"github.com/agentstation/goseed/pkg/constants"
	"github.com/agentstation/goseed/pkg/errors"
	"github.com/agentstation/goseed/pkg/mappingfile"
	"github.com/agentstation/goseed/pkg/resources"
)

const mappingsCSV = "pkg/mappingfile/testdata/test-seed-data-mappings.csv"

func TestGetColumnMappingProfiles(t *testing.T) {
	ctx := t.Context()
	c, srv := newTestClient(t)

	all, err := c.GetColumnMappingProfiles(ctx)
	require.NoError(t, err)
	var names []string
	for _, p := range all {
		names = append(names, p.Name)
	}
	assert.Subset(t, names, seedtest.DefaultProfileNames)

	srv.AddProfile(testOrgID, "BuildingSync Default", nil)
	dups, err := c.GetColumnMappingProfiles(ctx, "BuildingSync Default")
	require.NoError(t, err)
	assert.Len(t, dups, 2, "duplicates are returned, not collapsed")
	for _, p := range dups {
		assert.NotNil(t, p.Mappings)
	}

	none, err := c.GetColumnMappingProfiles(ctx, "does not exist")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetColumnMappingProfile(t *testing.T) {
	ctx := t.Context()
	c, _ := newTestClient(t)

	for _, name := range seedtest.DefaultProfileNames {
		p, err := c.GetColumnMappingProfile(ctx, name)
		require.NoError(t, err)
		require.NotNil(t, p, name)
		assert.Equal(t, name, p.Name)
		assert.NotEmpty(t, p.Mappings)
	}

	p, err := c.GetColumnMappingProfile(ctx, "does not exist")
	require.NoError(t, err, "absence is not an error")
	assert.Nil(t, p)
}

func TestCreateOrUpdateColumnMappingProfileConverges(t *testing.T) {
	ctx := t.Context()
	c, srv := newTestClient(t)
	name := uniqueName("profile")

	full, err := mappingfile.ReadFile(mappingsCSV)
	require.NoError(t, err)
	require.Len(t, full, 14)

	created, err := c.CreateOrUpdateColumnMappingProfileFromFile(ctx, name, mappingsCSV)
	require.NoError(t, err)
	assert.Len(t, created.Mappings, 14)
	assert.Equal(t, constants.ProfileTypeNormal, created.ProfileType)

	shrunk, err := c.CreateOrUpdateColumnMappingProfile(ctx, name, full[:9])
	require.NoError(t, err)
	assert.Equal(t, created.ID, shrunk.ID, "update keeps the id")
	assert.Len(t, shrunk.Mappings, 9)

	grown, err := c.CreateOrUpdateColumnMappingProfileFromFile(ctx, name, mappingsCSV)
	require.NoError(t, err)
	assert.Equal(t, created.ID, grown.ID)
	assert.Len(t, grown.Mappings, 14)
	assert.True(t, resources.EqualMappings(full, grown.Mappings))

	stored, err := c.GetColumnMappingProfile(ctx, name)
	require.NoError(t, err)
	assert.True(t, resources.EqualMappings(full, stored.Mappings))

	assert.Equal(t, 1, srv.CountRequests(http.MethodPost, "/api/v3/column_mapping_profiles/"))
	assert.Equal(t, 2, srv.CountCalls(http.MethodPut))
}

func TestCreateOrUpdateColumnMappingProfileUnchanged(t *testing.T) {
	ctx := t.Context()
	c, srv := newTestClient(t)
	name := uniqueName("profile")
	mappings := []resources.Mapping{
		{FromField: "Address", ToTableName: "PropertyState", ToField: "address_line_1"},
		{FromField: "GFA", FromUnits: ptr.To("ft**2"), ToTableName: "PropertyState", ToField: "gross_floor_area"},
	}
	srv.AddProfile(testOrgID, name, mappings)

	p, err := c.CreateOrUpdateColumnMappingProfile(ctx, name, mappings)
	require.NoError(t, err)
	assert.Len(t, p.Mappings, 2)
	assert.Zero(t, srv.CountCalls(http.MethodPut))

	// a change of units alone is an update
	mappings[1].FromUnits = ptr.To("m**2")
	p, err = c.CreateOrUpdateColumnMappingProfile(ctx, name, mappings)
	require.NoError(t, err)
	assert.Equal(t, "m**2", p.Mappings[1].Units())
	assert.Equal(t, 1, srv.CountCalls(http.MethodPut))
}

func TestCreateOrUpdateColumnMappingProfileValidation(t *testing.T) {
	good := resources.Mapping{FromField: "Address", ToTableName: "PropertyState", ToField: "address_line_1"}
	tests := []struct {
		name     string
		profile  string
		mappings []resources.Mapping
	}{
		{name: "empty name", profile: "", mappings: []resources.Mapping{good}},
		{name: "missing from field", profile: "p", mappings: []resources.Mapping{{ToTableName: "PropertyState", ToField: "city"}}},
		{name: "missing to field", profile: "p", mappings: []resources.Mapping{{FromField: "City", ToTableName: "PropertyState"}}},
		{name: "duplicate entries", profile: "p", mappings: []resources.Mapping{good, good}},
		{name: "duplicate entries with other units", profile: "p", mappings: []resources.Mapping{good, {
			FromField: good.FromField, FromUnits: ptr.To("ft"), ToTableName: good.ToTableName, ToField: good.ToField,
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, srv := newTestClient(t)
			_, err := c.CreateOrUpdateColumnMappingProfile(t.Context(), tt.profile, tt.mappings)
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err), "got %v", err)
			assert.Empty(t, srv.Calls())
		})
	}
}

func TestCreateOrUpdateColumnMappingProfileFromFileErrors(t *testing.T) {
	c, srv := newTestClient(t)

	_, err := c.CreateOrUpdateColumnMappingProfileFromFile(t.Context(), "p", "pkg/mappingfile/testdata/short-row.csv")
	require.Error(t, err)
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)

	_, err = c.CreateOrUpdateColumnMappingProfileFromFile(t.Context(), "p", "testdata/missing.csv")
	require.Error(t, err)
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)

	assert.Empty(t, srv.Calls())
}

func TestCreateOrUpdateColumnMappingProfileIncompleteStore(t *testing.T) {
	ctx := t.Context()
	c, srv := newTestClient(t)
	name := uniqueName("profile")

	full, err := mappingfile.ReadFile(mappingsCSV)
	require.NoError(t, err)
	_, err = c.CreateOrUpdateColumnMappingProfile(ctx, name, full[:2])
	require.NoError(t, err)

	srv.DropMappingsOnUpdate = 3
	_, err = c.CreateOrUpdateColumnMappingProfile(ctx, name, full)
	require.Error(t, err)
	var resErr *errors.ResourceError
	require.ErrorAs(t, err, &resErr)
	assert.Equal(t, "update", resErr.Operation)
	assert.Contains(t, err.Error(), "stored 3 mappings, expected 14")
}

func TestDeleteColumnMappingProfile(t *testing.T) {
	ctx := t.Context()
	c, _ := newTestClient(t)
	name := uniqueName("profile")

	p, err := c.CreateOrUpdateColumnMappingProfile(ctx, name, []resources.Mapping{
		{FromField: "City", ToTableName: "PropertyState", ToField: "city"},
	})
	require.NoError(t, err)
	require.NoError(t, c.DeleteColumnMappingProfile(ctx, p.ID))

	gone, err := c.GetColumnMappingProfile(ctx, name)
	require.NoError(t, err)
	assert.Nil(t, gone)

	err = c.DeleteColumnMappingProfile(ctx, p.ID)
	assert.True(t, errors.IsNotFound(err))
}
