package util

import (
	"database/sql"
	"strings"
	"time"
)

// StringToNullString converts a string to sql.NullString.
// An empty string is treated as NULL.
func StringToNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// PtrToNullString converts an optional string to sql.NullString.
func PtrToNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return StringToNullString(*s)
}

// NullStringToPtr returns nil for NULL columns.
func NullStringToPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// TimeToNullTime converts a time.Time to sql.NullTime.
// A zero time is treated as NULL.
func TimeToNullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}

// BoolToNumber renders a bool for Oracle NUMBER(1) columns.
func BoolToNumber(b bool) int {
	if b {
		return 1
	}
	return 0
}

// IsUniqueViolation reports whether err is an Oracle unique constraint
// violation (ORA-00001).
func IsUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "ORA-00001")
}
