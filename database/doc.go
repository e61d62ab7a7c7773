// Package database provides the query-execution boundary for sqlstream: a
// GORM-backed connection wrapper with pooling, retries, and health checks,
// plus WithStream, which executes a query, hands a lazy stream.Stream over
// the result cursor to caller-supplied code, and releases the cursor,
// statement, and connection on every exit path.
//
//	db, err := database.NewWithContext(ctx, sqlite.Open(dsn), cfg, log)
//	...
//	names, err := database.WithStream(ctx, db, "SELECT name FROM users",
//	    func(s *stream.Stream) ([]any, error) {
//	        return s.Map(func(v any) (any, error) {
//	            name, _ := v.(stream.Row).Named("name")
//	            return name, nil
//	        }).ToList()
//	    })
//
// Streams must be realized inside the body: the cursor is closed when
// WithStream returns, and realizing a leaked stream afterwards yields a
// CURSOR_CLOSED error.
package database
