// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying database from the rest of the
// application. The board itself lives in memory; what is persisted is the
// activity journal, an append-only record of everything that happened on it.
package store
