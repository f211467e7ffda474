package publications

import (
	"path"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/anxiangsir/homepage/pkg/errors"
)

// catalogDocument is the object form of a catalog file: {"publications": [...]}.
type catalogDocument struct {
	Publications []Record `json:"publications" yaml:"publications"`
}

// ParseCatalog decodes a catalog file. Both a top-level array of records and
// an object with a "publications" key are accepted, in JSON or YAML (JSON is
// decoded by the YAML parser). name is used for error messages only.
func ParseCatalog(data []byte, name string) ([]Record, error) {
	format := formatOf(name)

	var shape any
	if err := yaml.Unmarshal(data, &shape); err != nil {
		return nil, errors.WrapParse(format, name, err)
	}

	switch v := shape.(type) {
	case []any:
		var records []Record
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, errors.WrapParse(format, name, err)
		}
		return records, nil
	case map[string]any:
		if _, ok := v["publications"]; !ok {
			return nil, errors.NewParseError(format, name, `object has no "publications" key`, nil)
		}
		var doc catalogDocument
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.WrapParse(format, name, err)
		}
		return doc.Publications, nil
	case nil:
		return nil, errors.NewParseError(format, name, "empty document", nil)
	default:
		return nil, errors.NewParseError(format, name, "expected a list of publications", nil)
	}
}

// ParseSelected decodes a selected-list file. The list may be top level or
// under a "publications" or "selected" key, and each item may be a title
// string or an object with a "title" field.
func ParseSelected(data []byte, name string) (SelectedList, error) {
	format := formatOf(name)

	var shape any
	if err := yaml.Unmarshal(data, &shape); err != nil {
		return nil, errors.WrapParse(format, name, err)
	}

	if doc, ok := shape.(map[string]any); ok {
		switch {
		case doc["selected"] != nil:
			shape = doc["selected"]
		case doc["publications"] != nil:
			shape = doc["publications"]
		default:
			return nil, errors.NewParseError(format, name, `object has no "selected" or "publications" key`, nil)
		}
	}

	items, ok := shape.([]any)
	if !ok {
		return nil, errors.NewParseError(format, name, "expected a list of titles", nil)
	}

	list := make(SelectedList, 0, len(items))
	for i, item := range items {
		title, err := titleOf(item)
		if err != nil {
			return nil, errors.NewParseError(format, name, err.Error()+" at index "+strconv.Itoa(i), nil)
		}
		list = append(list, title)
	}
	return list, nil
}

func titleOf(item any) (string, error) {
	switch v := item.(type) {
	case string:
		return v, nil
	case map[string]any:
		if title, ok := v["title"].(string); ok {
			return title, nil
		}
		return "", errors.New(`item has no string "title"`)
	default:
		return "", errors.New("item is neither a title nor an object")
	}
}

func formatOf(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	}
	return "yaml"
}
