// Package payment holds settlement records of orders.
//
// A hybrid payment is stored as two records with method hybrid: one without
// an external id (wallet origin) and one with it (gateway origin). A refund
// never changes the reversed record; it is documented by a new record with
// status refunded and a refund_of metadata entry.
package payment
