// Package postgres provides PostgreSQL implementations of the store
// interfaces. Each store accepts a store.DBTX, so the same implementation
// runs against a *sql.DB or a *sql.Tx, and maps driver errors to the
// sentinel errors defined in the store package.
package postgres
