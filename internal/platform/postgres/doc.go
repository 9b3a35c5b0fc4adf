// Package postgres implements the store interfaces against PostgreSQL.
//
// Stores that only ever run single statements accept a store.DBTX so they can
// participate in a caller-managed transaction. Stores whose operations span
// multiple statements (task tag sync, project cascade delete) accept *sql.DB
// and manage their own transactions.
package postgres
