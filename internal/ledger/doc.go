// Package ledger records which cue sheets have already been split, so
// repeated runs over a music library do not redo finished work.
//
// The ledger is a small SQLite database:
//
//	l, err := ledger.Open("/library/.cuesplit.db")
//	defer l.Close()
//
//	done, err := l.IsProcessed(cuePath)
//	if !done {
//	    // split, then:
//	    err = l.MarkProcessed(cuePath)
//	}
//
// Paths are stored as given; callers that want stable identity across
// working directories should pass absolute paths.
package ledger
