package domain

import "maps"

// Record is one catalog feature flattened into a row: column name to value,
// with nested JSON objects expanded into dotted-path columns such as
// "properties.mag" and "geometry.type". Arrays are kept whole as column
// values, so the raw position array survives under "geometry.coordinates"
// until normalization unpacks it.
type Record map[string]any

// Column names shared by the fetch, normalize, and compose stages.
const (
	ColID        = "id"
	ColPosition  = "geometry.coordinates"
	ColMagnitude = "properties.mag"
	ColPlace     = "properties.place"
	ColEventTime = "properties.time"

	// Columns appended by NormalizeRecord.
	ColLongitude = "longitude"
	ColLatitude  = "latitude"
	ColDepth     = "depth"
)

// Float returns the named column as a float64. ok is false when the column
// is absent, null, or not numeric.
func (r Record) Float(key string) (float64, bool) {
	switch v := r[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// String returns the named column as a string, or "" when the column is
// absent or holds a non-string value.
func (r Record) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	return maps.Clone(r)
}

// Bounds is a geographic bounding box in WGS-84 decimal degrees.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// EventQuery bounds a catalog search. Dates are inclusive and
// formatted YYYY-MM-DD, matching the fdsnws starttime and endtime
// parameters.
type EventQuery struct {
	StartTime    string  `json:"starttime"`
	EndTime      string  `json:"endtime"`
	MinMagnitude float64 `json:"minmagnitude"`
}
