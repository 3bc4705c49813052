// Package geocode resolves free-text addresses to coordinates with the
// OpenStreetMap Nominatim search API.
package geocode
