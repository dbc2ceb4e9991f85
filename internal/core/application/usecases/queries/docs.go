// Package queries contains read-only operations. Handlers read the tables
// directly through GORM and return flat response structs instead of
// aggregates; none of them take locks.
package queries
