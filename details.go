package ipmeta

import "strings"

// Derived field names added during enrichment.
const (
	fieldCountryName = "country_name"
	fieldLatitude    = "latitude"
	fieldLongitude   = "longitude"
)

// Details is the finalized lookup result: the raw API response plus the
// derived country_name, latitude and longitude fields. It is read-only once
// constructed; mutate the copy returned by All if you need to.
type Details struct {
	fields map[string]any
}

// Get returns the value for an arbitrary response field. The second return
// value reports whether the field is present.
func (d *Details) Get(field string) (any, bool) {
	v, ok := d.fields[field]
	return v, ok
}

// All returns a copy of every field, raw and derived. The copy is shallow:
// nested values (e.g. the "asn" object on paid plans) are shared with the
// original response.
func (d *Details) All() map[string]any {
	out := make(map[string]any, len(d.fields))
	for k, v := range d.fields {
		out[k] = v
	}
	return out
}

// str returns a string-typed field, or "" when the field is absent or not a
// string.
func (d *Details) str(field string) string {
	s, _ := d.fields[field].(string)
	return s
}

// IP returns the looked-up address.
func (d *Details) IP() string { return d.str("ip") }

// Hostname returns the reverse DNS name, when the API provides one.
func (d *Details) Hostname() string { return d.str("hostname") }

// City returns the city name.
func (d *Details) City() string { return d.str("city") }

// Region returns the region or state name.
func (d *Details) Region() string { return d.str("region") }

// Country returns the two-letter ISO country code.
func (d *Details) Country() string { return d.str("country") }

// CountryName returns the resolved country display name, or "" when the
// country code is absent or unknown.
func (d *Details) CountryName() string { return d.str(fieldCountryName) }

// Loc returns the raw "lat,lon" coordinate string.
func (d *Details) Loc() string { return d.str("loc") }

// Latitude returns the latitude split out of Loc, or "" when Loc is absent
// or malformed. Coordinates are kept as strings to preserve the API's
// precision.
func (d *Details) Latitude() string { return d.str(fieldLatitude) }

// Longitude returns the longitude split out of Loc, or "" when Loc is
// absent or malformed.
func (d *Details) Longitude() string { return d.str(fieldLongitude) }

// Org returns the AS number and organization name.
func (d *Details) Org() string { return d.str("org") }

// Postal returns the postal code.
func (d *Details) Postal() string { return d.str("postal") }

// Timezone returns the IANA timezone name.
func (d *Details) Timezone() string { return d.str("timezone") }

// enrich builds a Details from a raw API response. It copies the raw fields,
// resolves the country display name and splits "loc" into latitude and
// longitude. Enrichment never fails: absent or malformed source fields just
// leave the derived fields absent. The raw map is not modified, so cached
// entries stay pre-enrichment.
func enrich(raw map[string]any, countries map[string]string) *Details {
	fields := make(map[string]any, len(raw)+3)
	for k, v := range raw {
		fields[k] = v
	}

	if code, ok := raw["country"].(string); ok {
		if name, ok := countries[code]; ok {
			fields[fieldCountryName] = name
		}
	}

	if lat, lon, ok := splitLoc(raw["loc"]); ok {
		fields[fieldLatitude] = lat
		fields[fieldLongitude] = lon
	}

	return &Details{fields: fields}
}

// splitLoc parses a "lat,lon" value. It only accepts a string with exactly
// one comma separating two non-empty parts; anything else reports ok=false.
func splitLoc(v any) (lat, lon string, ok bool) {
	loc, _ := v.(string)
	if loc == "" {
		return "", "", false
	}
	parts := strings.Split(loc, ",")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
