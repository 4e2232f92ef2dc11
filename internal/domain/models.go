// Package domain defines the persistence models owned by the individual
// store services: users, calls, and the two append-only audit logs. Each
// model is mapped with GORM and owned exclusively by one service; there
// are no foreign keys between them — cross-entity relationships exist only
// through matching username strings.
package domain

import (
	"time"
)

// User represents a subscriber known to the user store.
//
// Fields:
//   - ID: auto-incrementing primary key.
//   - Username: unique display name; serialized as "name" on the wire.
//   - Phone: unique phone number in free-text form.
type User struct {
	ID       uint   `json:"id"    gorm:"primaryKey"`
	Username string `json:"name"  gorm:"type:varchar(80);not null;uniqueIndex"`
	Phone    string `json:"phone" gorm:"type:varchar(80);not null;uniqueIndex"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Call represents a single call attempt recorded by the call store.
//
// Fields:
//   - ID: auto-incrementing primary key.
//   - Username: caller name. Uniqueness is configurable at migration time
//     (see repo.MigrateCallDB); the default allows repeated calls per user.
//   - Date: call time; defaults to the insertion time in UTC when omitted.
//   - Status: whether the call completed, derived from the submitted
//     free-text status.
type Call struct {
	ID       uint      `json:"id"       gorm:"primaryKey"`
	Username string    `json:"username" gorm:"type:varchar(80);not null;index"`
	Date     time.Time `json:"date"`
	Status   bool      `json:"status"   gorm:"not null"`
}

// TableName returns the database table name for Call.
func (Call) TableName() string { return "calls" }

// UserLog is an append-only audit record of a user-level action.
// Rows are never updated or deleted and carry no uniqueness constraint.
type UserLog struct {
	ID        uint      `json:"id"        gorm:"primaryKey"`
	Username  string    `json:"username"  gorm:"type:varchar(80);not null"`
	Action    string    `json:"action"    gorm:"type:varchar(200);not null"`
	Timestamp time.Time `json:"timestamp" gorm:"index"`
}

// TableName returns the database table name for UserLog.
func (UserLog) TableName() string { return "user_logs" }

// CallLog is an append-only audit record of a call, written by the gateway
// after the call store accepts the call.
//
// CallDuration is in seconds. Status is kept as free text here (not the
// derived boolean) so the log preserves exactly what the caller reported.
type CallLog struct {
	ID           uint      `json:"id"            gorm:"primaryKey"`
	Username     string    `json:"username"      gorm:"type:varchar(80);not null"`
	CallDuration int       `json:"call_duration" gorm:"not null"`
	Status       string    `json:"status"        gorm:"type:varchar(50);not null"`
	Timestamp    time.Time `json:"timestamp"     gorm:"index"`
}

// TableName returns the database table name for CallLog.
func (CallLog) TableName() string { return "call_logs" }
