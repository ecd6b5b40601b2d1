package domain

import (
	"encoding/json"
	"fmt"
)

// featureCollection mirrors the GeoJSON envelope returned by the catalog.
// Features are decoded as generic maps so arbitrary properties survive the
// flattening step.
type featureCollection struct {
	Type     string           `json:"type"`
	Features []map[string]any `json:"features"`
}

// ParseFeatureCollection decodes a GeoJSON feature collection and flattens
// every feature into a Record. A response with zero features yields an
// empty, non-nil table.
func ParseFeatureCollection(data []byte) ([]Record, error) {
	var fc featureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse feature collection: %w", err)
	}
	records := make([]Record, 0, len(fc.Features))
	for _, f := range fc.Features {
		records = append(records, Flatten(f))
	}
	return records, nil
}

// Flatten expands nested JSON objects into dotted-path columns:
// {"properties":{"mag":6.5}} becomes {"properties.mag": 6.5}. Arrays and
// scalars are stored as-is under their path.
func Flatten(obj map[string]any) Record {
	rec := make(Record, len(obj))
	flattenInto("", obj, rec)
	return rec
}

func flattenInto(prefix string, obj map[string]any, rec Record) {
	for key, value := range obj {
		if prefix != "" {
			key = prefix + "." + key
		}
		if nested, ok := value.(map[string]any); ok {
			flattenInto(key, nested, rec)
			continue
		}
		rec[key] = value
	}
}
