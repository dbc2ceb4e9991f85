// Package wallet models the per-user prepaid balance as an append-only ledger.
//
// A Wallet never stores its balance as the source of truth. The repository
// folds completed Transaction entries into the balance when it loads a wallet
// under a row lock, the aggregate checks debits against that balance, and new
// entries are appended on save.
package wallet
