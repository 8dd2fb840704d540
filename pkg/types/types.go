// Package types defines the attendance interval model shared by attgen packages
package types

import (
	"time"

	"github.com/google/uuid"
)

// UserID owner of the generated intervals
type UserID = uuid.UUID

// DefaultUserID fixed user that every generated record belongs to
var DefaultUserID = uuid.MustParse("19d544de-3046-40bb-8cd4-8b311f665210")

// AutoNote note attached to the continuation of a month-split interval
const AutoNote = "自動生成"

// StatusID attendance status (attendance_status.id)
type StatusID int

const (
	StatusOff     StatusID = 1 // off duty
	StatusWorking StatusID = 2 // working
	StatusBreak   StatusID = 3 // on break
)

// String returns the status code as stored in attendance_status.code
func (s StatusID) String() string {
	switch s {
	case StatusOff:
		return "OFF"
	case StatusWorking:
		return "WORKING"
	case StatusBreak:
		return "BREAK"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether s is one of the seeded statuses
func (s StatusID) Valid() bool {
	return s >= StatusOff && s <= StatusBreak
}

// SourceID provenance of a punch (attendance_log_source.id)
type SourceID int

const (
	SourceWeb     SourceID = 1
	SourceDiscord SourceID = 2
	SourceNFC     SourceID = 3
	SourceAdmin   SourceID = 4
)

// String returns the source code as stored in attendance_log_source.code
func (s SourceID) String() string {
	switch s {
	case SourceWeb:
		return "WEB"
	case SourceDiscord:
		return "DISCORD"
	case SourceNFC:
		return "NFC"
	case SourceAdmin:
		return "ADMIN"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether s is one of the seeded sources
func (s SourceID) Valid() bool {
	return s >= SourceWeb && s <= SourceAdmin
}

// Record one attendance interval, a row of attendance_log
type Record struct {
	UserID        UserID    // owner
	Status        StatusID  // status during the interval
	StartedAt     time.Time // UTC, microsecond precision
	EndedAt       time.Time // UTC; zero value means the interval is still open
	StartedSource SourceID  // provenance of StartedAt
	EndedSource   SourceID  // provenance of EndedAt
	Note          string    // AutoNote on split continuations, empty otherwise

	// Split is set when EndedAt was truncated to the last instant of a JST month
	Split bool
}

// IsOpen reports whether the interval has no end yet
func (r Record) IsOpen() bool {
	return r.EndedAt.IsZero()
}

// Duration returns the interval length, zero for an open interval
func (r Record) Duration() time.Duration {
	if r.IsOpen() {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}
