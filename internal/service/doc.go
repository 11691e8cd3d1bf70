// Package service contains the application layer around the board domain.
//
// BoardService is the only way the API, the seed runner, and the CLI touch a
// board. It adds what the domain model deliberately leaves out:
//
//   - a read/write lock, so one board can serve concurrent requests with the
//     same observable behavior as single-threaded use,
//   - lookup by ID, so callers never hold domain pointers,
//   - immutable view structs for results,
//   - a BoardEvent for every successful mutation, and structured logging.
package service
