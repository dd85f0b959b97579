package domain

import "time"

// ActivityType categorizes audit entries. The literal values are kept from
// the upstream data set (Turkish domain labels).
type ActivityType string

const (
	ActivityTypeCargo    ActivityType = "yuk"
	ActivityTypeTruck    ActivityType = "arac"
	ActivityTypeApproval ActivityType = "onay"
	ActivityTypeUser     ActivityType = "kullanici"
)

// Valid reports whether the type is a known enum value.
func (t ActivityType) Valid() bool {
	switch t {
	case ActivityTypeCargo, ActivityTypeTruck, ActivityTypeApproval, ActivityTypeUser:
		return true
	}
	return false
}

// Activity is an immutable audit record. UserName is a snapshot captured at
// write time and intentionally not kept in sync with the user record.
type Activity struct {
	ID        string
	UserID    string
	UserName  string
	Action    string
	Type      ActivityType
	Details   map[string]any
	Timestamp time.Time
}
