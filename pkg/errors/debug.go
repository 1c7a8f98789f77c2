package errors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// ErrorDump is the loggable breakdown of an error chain, including Postgres
// driver details when a database error is anywhere in the chain.
type ErrorDump struct {
	TopMessage string   `json:"top_message"`
	Code       Code     `json:"code,omitempty"`
	Chain      []string `json:"chain,omitempty"`

	PGCode       string `json:"pg_code,omitempty"`
	PGMessage    string `json:"pg_message,omitempty"`
	PGDetail     string `json:"pg_detail,omitempty"`
	PGTable      string `json:"pg_table,omitempty"`
	PGColumn     string `json:"pg_column,omitempty"`
	PGConstraint string `json:"pg_constraint,omitempty"`
}

// Dump flattens err for structured logging. Both the pgx and lib/pq error
// types are recognized; whichever appears first wins.
func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	dump := ErrorDump{TopMessage: err.Error()}
	if typed := As(err); typed != nil {
		dump.Code = typed.Code()
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		dump.Chain = append(dump.Chain, fmt.Sprintf("%T: %v", e, e))
	}

	var pgxErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgxErr):
		dump.PGCode = pgxErr.Code
		dump.PGMessage = pgxErr.Message
		dump.PGDetail = pgxErr.Detail
		dump.PGTable = pgxErr.TableName
		dump.PGColumn = pgxErr.ColumnName
		dump.PGConstraint = pgxErr.ConstraintName
	case errors.As(err, &pqErr):
		dump.PGCode = string(pqErr.Code)
		dump.PGMessage = pqErr.Message
		dump.PGDetail = pqErr.Detail
		dump.PGTable = pqErr.Table
		dump.PGColumn = pqErr.Column
		dump.PGConstraint = pqErr.Constraint
	}

	return dump
}
