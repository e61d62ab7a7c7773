package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/kbukum/sqlstream/errors"
	"github.com/kbukum/sqlstream/logger"
	"github.com/kbukum/sqlstream/observability"
	"github.com/kbukum/sqlstream/stream"
)

// queryOptions collects the optional parts of a streamed query.
type queryOptions struct {
	args     []any
	metadata func([]*sql.ColumnType)
}

// QueryOption configures a WithStream call.
type QueryOption func(*queryOptions)

// WithArgs supplies positional placeholder arguments for the query.
func WithArgs(args ...any) QueryOption {
	return func(o *queryOptions) {
		o.args = append(o.args, args...)
	}
}

// WithNamedArgs supplies named placeholder arguments (e.g. @name) for the
// query.
func WithNamedArgs(params map[string]any) QueryOption {
	return func(o *queryOptions) {
		for k, v := range params {
			o.args = append(o.args, sql.Named(k, v))
		}
	}
}

// WithMetadata registers a callback invoked exactly once with the result
// set's column metadata, after execution and before any row is consumed.
func WithMetadata(fn func([]*sql.ColumnType)) QueryOption {
	return func(o *queryOptions) {
		o.metadata = fn
	}
}

// WithStream executes the query and calls body with a fresh stream over the
// result cursor. The connection, prepared statement, and cursor are acquired
// for the duration of body and released in reverse-acquisition order on
// every exit path, including panics. Release is best-effort: the first
// release error is reported, later releases are still attempted, and a
// release error never masks an error already in flight.
//
// body must realize any stream it wants values from before returning; after
// WithStream returns the cursor is closed and late realizations fail with
// CURSOR_CLOSED.
func WithStream[T any](ctx context.Context, db *DB, query string, body func(*stream.Stream) (T, error), opts ...QueryOption) (result T, err error) {
	var o queryOptions
	for _, opt := range opts {
		opt(&o)
	}

	queryID := uuid.NewString()
	log := db.log.WithComponent("withstream").WithFields(logger.Fields(
		logger.FieldQueryID, queryID,
	))
	start := time.Now()

	ctx, span := observability.StartSpan(ctx, observability.SpanQuery)
	defer span.End()
	span.SetAttributes(
		attribute.String(observability.AttrStatement, query),
		attribute.String(observability.AttrQueryID, queryID),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
		}
	}()

	sqlDB, err := db.GormDB.DB()
	if err != nil {
		return result, err
	}

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return result, apperrors.ConnectionFailed(err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = apperrors.ReleaseFailed("connection", cerr)
		}
	}()

	stmt, err := conn.PrepareContext(ctx, query)
	if err != nil {
		log.Error("Failed to prepare query", logger.Fields(
			logger.FieldQuery, query,
			logger.FieldError, err.Error(),
		))
		return result, apperrors.QueryFailed(query, err)
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil && err == nil {
			err = apperrors.ReleaseFailed("statement", cerr)
		}
	}()

	rows, err := stmt.QueryContext(ctx, o.args...)
	if err != nil {
		log.Error("Failed to execute query", logger.Fields(
			logger.FieldQuery, query,
			logger.FieldError, err.Error(),
		))
		return result, apperrors.QueryFailed(query, err)
	}

	cursor, err := newRowsCursor(rows)
	if err != nil {
		rows.Close()
		return result, apperrors.QueryFailed(query, err)
	}
	defer func() {
		cursor.markClosed()
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = apperrors.ReleaseFailed("cursor", cerr)
		}
		span.SetAttributes(attribute.Int(observability.AttrRowsRead, cursor.pos))
		log.Debug("Query scope completed", logger.Fields(
			logger.FieldRowCount, cursor.pos,
			logger.FieldDuration, time.Since(start).Milliseconds(),
		))
	}()

	if o.metadata != nil {
		columns, merr := rows.ColumnTypes()
		if merr != nil {
			return result, apperrors.QueryFailed(query, merr)
		}
		o.metadata(columns)
	}

	return body(stream.New(cursor))
}
