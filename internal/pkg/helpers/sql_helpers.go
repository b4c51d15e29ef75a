package helpers

import (
	"database/sql"
	"strings"
)

// GetNullString converts a string value to sql.NullString.
// An empty string becomes an empty NullString.
func GetNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// FromNullString converts a sql.NullString back to a plain string,
// mapping NULL to the empty string.
func FromNullString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

// JoinIDs renders an ordered ID list as the comma-joined column form.
// The columns are a derived cache; nothing reads them back.
func JoinIDs(ids []string) string {
	return strings.Join(ids, ",")
}
