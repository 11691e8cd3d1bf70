// Package testdb provides journal databases for tests.
//
// Every test gets a migrated database: an in-memory SQLite database always,
// and a Postgres database when OVERBOARD_TEST_DATABASE_URL (or DATABASE_URL)
// is set. Tests that write can run inside WithTx, which rolls the
// transaction back when the test completes:
//
//	func TestAppend(t *testing.T) {
//	    testdb.ForEachDriver(t, func(t *testing.T, db *sql.DB) {
//	        testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
//	            s := sqlstore.NewActivityStore(tx, nil)
//	            // ...
//	        })
//	    })
//	}
package testdb
