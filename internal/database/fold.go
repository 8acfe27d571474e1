package database

import (
	"database/sql/driver"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"modernc.org/sqlite"
)

// SQLite's built-in lower() only folds ASCII. Replacing it on every
// connection keeps LOWER(col) in queries consistent with Fold.
func init() {
	sqlite.MustRegisterDeterministicScalarFunction("lower", 1, sqliteLower)
}

// Fold lowercases s with Unicode rules, the way LOWER() behaves in queries.
func Fold(s string) string {
	return cases.Lower(language.Und).String(s)
}

func sqliteLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return Fold(v), nil
	case []byte:
		return Fold(string(v)), nil
	default:
		return Fold(fmt.Sprint(v)), nil
	}
}
