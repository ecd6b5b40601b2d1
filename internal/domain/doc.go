// Package domain models earthquake catalog records fetched from the USGS
// FDSN event service.
//
// # Data source
//
// Events come from https://earthquake.usgs.gov/fdsnws/event/1/query with
// format=geojson. The response is a GeoJSON FeatureCollection; each feature
// carries a geometry holding a 3-element coordinate array and a free-form
// properties object (magnitude, place, origin time, tsunami flag, and
// whatever else the catalog publishes for that event).
//
// # Coordinate convention
//
//	geometry.coordinates = [longitude, latitude, depth]
//
// Longitude and latitude are WGS-84 decimal degrees; depth is kilometers
// below the surface. The order follows the GeoJSON position rule (x, y, z),
// which is the reverse of the (lat, lon) order map libraries expect.
// [NormalizeRecord] unpacks the array into named latitude, longitude, and
// depth columns so downstream code never indexes the raw tuple. A feature
// without a well-formed 3-element numeric position is a data-quality fault
// ([ErrBadPosition]), never silently defaulted.
//
// # Flattening
//
// Features are flattened into dotted-path columns the way tabular tooling
// flattens nested JSON: properties.mag, properties.place, geometry.type.
// Arrays stay whole, so geometry.coordinates remains a 3-element array
// until normalization. Unknown properties survive untouched and the table
// always reflects exactly what the catalog returned.
//
// # Magnitude
//
// properties.mag is the published magnitude (the scale in use is reported
// separately through properties.magType). It can be null for very recent
// events; a null magnitude stays a null column value rather than being
// coerced to zero.
package domain
