// Package mappingfile reads column-mapping definitions from disk.
//
// Two formats are understood. CSV files carry a header row naming the raw
// column, its units, the target table and the target field (the layout the
// service exports: "Raw Columns,units,SEED Table,SEED Columns"). YAML files
// hold a list of mappings, either at the top level or under a "mappings" key.
package mappingfile

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/goseed/internal/utils/ptr"
	"github.com/agentstation/goseed/pkg/errors"
	"github.com/agentstation/goseed/pkg/resources"
)

// Format is a mapping file format.
type Format string

const (
	// FormatCSV is a header-driven CSV file.
	FormatCSV Format = "csv"
	// FormatYAML is a YAML list of mappings.
	FormatYAML Format = "yaml"
)

// column positions inside a CSV record
type columns struct {
	from, units, table, field int
}

// headerAliases maps normalized header names to the column they fill.
var headerAliases = map[string]string{
	"raw columns":   "from",
	"raw column":    "from",
	"from_field":    "from",
	"units":         "units",
	"from_units":    "units",
	"seed table":    "table",
	"to_table_name": "table",
	"seed columns":  "field",
	"seed column":   "field",
	"to_field":      "field",
}

// DetectFormat picks the format from the file extension; anything that is
// not .yaml or .yml is read as CSV.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatCSV
	}
}

// ReadFile parses the mapping file at path.
func ReadFile(path string) ([]resources.Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Parse(bytes.NewReader(data), DetectFormat(path), path)
}

// Parse reads mappings in the given format from r. name is only used in
// error messages.
func Parse(r io.Reader, format Format, name string) ([]resources.Mapping, error) {
	switch format {
	case FormatYAML:
		return parseYAML(r, name)
	case FormatCSV:
		return parseCSV(r, name)
	default:
		return nil, errors.NewValidationError("format", format, "unsupported mapping file format")
	}
}

func parseCSV(r io.Reader, name string) ([]resources.Mapping, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewParseError(string(FormatCSV), name, "file is empty", nil)
	}
	if err != nil {
		return nil, errors.WrapParse(string(FormatCSV), name, err)
	}
	cols, err := resolveColumns(header, name)
	if err != nil {
		return nil, err
	}
	width := max(cols.from, cols.units, cols.table, cols.field) + 1

	mappings := []resources.Mapping{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapParse(string(FormatCSV), name, err)
		}
		if blank(record) {
			continue
		}
		line, _ := reader.FieldPos(0)
		if len(record) < width {
			return nil, &errors.ParseError{
				Format:  string(FormatCSV),
				File:    name,
				Line:    line,
				Message: "row has fewer columns than the header",
			}
		}
		m := resources.Mapping{
			FromField:   strings.TrimSpace(record[cols.from]),
			ToTableName: strings.TrimSpace(record[cols.table]),
			ToField:     strings.TrimSpace(record[cols.field]),
		}
		if cols.units >= 0 {
			m.FromUnits = ptr.NonEmpty(strings.TrimSpace(record[cols.units]))
		}
		if m.FromField == "" || m.ToField == "" {
			return nil, &errors.ParseError{
				Format:  string(FormatCSV),
				File:    name,
				Line:    line,
				Message: "raw column and target field are required",
			}
		}
		mappings = append(mappings, m)
	}
	return mappings, nil
}

// resolveColumns locates each known column in the header row. Units are
// optional; the other three are required.
func resolveColumns(header []string, name string) (columns, error) {
	cols := columns{from: -1, units: -1, table: -1, field: -1}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		switch headerAliases[key] {
		case "from":
			cols.from = i
		case "units":
			cols.units = i
		case "table":
			cols.table = i
		case "field":
			cols.field = i
		}
	}
	if cols.from < 0 || cols.table < 0 || cols.field < 0 {
		return cols, &errors.ParseError{
			Format:  string(FormatCSV),
			File:    name,
			Line:    1,
			Message: "header must name the raw column, target table and target field",
		}
	}
	return cols, nil
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

type yamlDocument struct {
	Mappings []resources.Mapping `yaml:"mappings"`
}

func parseYAML(r io.Reader, name string) ([]resources.Mapping, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.WrapIO("read", name, err)
	}

	var mappings []resources.Mapping
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '-' {
		err = yaml.Unmarshal(data, &mappings)
	} else {
		var doc yamlDocument
		err = yaml.Unmarshal(data, &doc)
		mappings = doc.Mappings
	}
	if err != nil {
		return nil, errors.WrapParse(string(FormatYAML), name, err)
	}

	for i, m := range mappings {
		if m.FromField == "" || m.ToField == "" {
			return nil, errors.NewParseError(string(FormatYAML), name,
				fmt.Sprintf("mapping %d needs from_field and to_field", i+1), nil)
		}
		mappings[i].FromUnits = ptr.NonEmpty(strings.TrimSpace(ptr.Deref(m.FromUnits)))
	}
	if mappings == nil {
		mappings = []resources.Mapping{}
	}
	return mappings, nil
}
