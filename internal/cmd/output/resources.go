package output

import (
	"io"
	"strconv"

	"github.com/agentstation/goseed/pkg/resources"
)

// Cycles lays out cycles as a table.
func Cycles(cycles []resources.Cycle) Data {
	d := Data{
		Headers:         []string{"id", "name", "start", "end"},
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft},
	}
	for _, c := range cycles {
		d.Rows = append(d.Rows, []string{strconv.Itoa(c.ID), c.Name, c.Start.String(), c.End.String()})
	}
	return d
}

// Datasets lays out datasets as a table.
func Datasets(datasets []resources.Dataset) Data {
	d := Data{
		Headers:         []string{"id", "name", "super_organization"},
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignRight},
	}
	for _, ds := range datasets {
		d.Rows = append(d.Rows, []string{strconv.Itoa(ds.ID), ds.Name, strconv.Itoa(ds.SuperOrganization)})
	}
	return d
}

// Profiles lays out profiles as a table with a mapping count.
func Profiles(profiles []resources.ColumnMappingProfile) Data {
	d := Data{
		Headers:         []string{"id", "name", "profile_type", "mappings"},
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignRight},
	}
	for _, p := range profiles {
		d.Rows = append(d.Rows, []string{strconv.Itoa(p.ID), p.Name, p.ProfileType, strconv.Itoa(len(p.Mappings))})
	}
	return d
}

// Mappings lays out the mappings of one profile.
func Mappings(mappings []resources.Mapping) Data {
	d := Data{Headers: []string{"from_field", "from_units", "to_table_name", "to_field"}}
	for _, m := range mappings {
		d.Rows = append(d.Rows, []string{m.FromField, m.Units(), m.ToTableName, m.ToField})
	}
	return d
}

// Labels lays out labels as a table.
func Labels(labels []resources.Label) Data {
	d := Data{
		Headers:         []string{"id", "name", "color", "show_in_list"},
		ColumnAlignment: []Align{AlignRight, AlignLeft, AlignLeft, AlignLeft},
	}
	for _, l := range labels {
		d.Rows = append(d.Rows, []string{strconv.Itoa(l.ID), l.Name, l.Color, strconv.FormatBool(l.ShowInList)})
	}
	return d
}

// Write formats data for format, using table for tables and raw for the
// structured formats.
func Write(w io.Writer, format Format, table Data, raw any) error {
	if format == FormatTable || format == "" {
		return NewFormatter(FormatTable).Format(w, table)
	}
	return NewFormatter(format).Format(w, raw)
}

// Render writes data in the named format. An empty format is detected from
// the terminal.
func Render(w io.Writer, format string, table Data, raw any) error {
	f, err := ParseFormat(format)
	if err != nil {
		return err
	}
	return Write(w, DetectFormat(string(f)), table, raw)
}
