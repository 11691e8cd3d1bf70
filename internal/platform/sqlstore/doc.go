// Package sqlstore implements store.ActivityStore on database/sql.
//
// The same schema and queries run on PostgreSQL (through the pgx stdlib
// driver) and on SQLite (through modernc.org/sqlite), which keeps local runs
// and tests free of an external database. Identifiers are stored as text and
// timestamps as Unix nanoseconds so neither dialect needs special casing.
// Migrations are embedded and applied with goose.
package sqlstore
