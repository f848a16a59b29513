package db

import (
	"database/sql"

	"github.com/promptdeck/promptdeck/config"
)

var shouldLogQueries bool

func init() {
	shouldLogQueries = config.Get().DBLogQueries
}

func logQuery(kind string, query string, params []any) {
	if !shouldLogQueries {
		return
	}
	logger.Debug().
		Str("kind", kind).
		Str("sql", query).
		Interface("params", params).
		Msg("db query")
}

// Run executes an INSERT/UPDATE/DELETE statement
func Run(query string, params ...any) (sql.Result, error) {
	logQuery("run", query, params)
	return GetDB().Exec(query, params...)
}

// Count runs a COUNT query and returns the value
func Count(query string, params ...any) (int64, error) {
	logQuery("count", query, params)

	var count int64
	if err := GetDB().QueryRow(query, params...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
