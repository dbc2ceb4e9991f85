// Package pricing holds the mutable configuration the price calculator reads:
// academic levels, deadline types, the rate table, service types, languages
// and presets. Values are plain structs edited by admins and validated on
// write.
package pricing
