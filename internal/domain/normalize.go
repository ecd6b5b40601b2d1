package domain

import (
	"errors"
	"fmt"
)

// ErrBadPosition reports a feature whose position is not the 3-element
// numeric [longitude, latitude, depth] array the catalog feed guarantees.
var ErrBadPosition = errors.New("malformed position")

// NormalizeRecord unpacks the record's position array into named longitude,
// latitude, and depth columns. The input record is never modified; the
// returned copy carries every original column plus the three new ones.
//
// The feed orders positions as (longitude, latitude, depth) per the GeoJSON
// position rule, so index 0 is longitude and index 1 is latitude.
func NormalizeRecord(rec Record) (Record, error) {
	pos, err := position(rec)
	if err != nil {
		return nil, err
	}
	out := rec.Clone()
	out[ColLongitude] = pos[0]
	out[ColLatitude] = pos[1]
	out[ColDepth] = pos[2]
	return out, nil
}

// position extracts and validates the raw coordinate array.
func position(rec Record) ([3]float64, error) {
	raw, ok := rec[ColPosition]
	if !ok || raw == nil {
		return [3]float64{}, fmt.Errorf("column %q missing: %w", ColPosition, ErrBadPosition)
	}

	var elems []any
	switch v := raw.(type) {
	case []any:
		elems = v
	case []float64:
		// Records assembled in-process carry a typed slice.
		elems = make([]any, len(v))
		for i, f := range v {
			elems[i] = f
		}
	default:
		return [3]float64{}, fmt.Errorf("column %q is %T, want array: %w", ColPosition, raw, ErrBadPosition)
	}

	if len(elems) != 3 {
		return [3]float64{}, fmt.Errorf("position has %d elements, want 3: %w", len(elems), ErrBadPosition)
	}

	var pos [3]float64
	for i, v := range elems {
		switch n := v.(type) {
		case float64:
			pos[i] = n
		case int:
			pos[i] = float64(n)
		default:
			return [3]float64{}, fmt.Errorf("position[%d] is %T, want number: %w", i, v, ErrBadPosition)
		}
	}
	return pos, nil
}
