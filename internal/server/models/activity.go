package models

import "time"

// ActivityKind enumerates the events recorded in the activity log.
type ActivityKind string

const (
	ActivityUserLogin    ActivityKind = "USER_LOGIN"
	ActivityFileUpload   ActivityKind = "FILE_UPLOAD"
	ActivityAdminLogin   ActivityKind = "ADMIN_LOGIN"
	ActivityUserRegister ActivityKind = "USER_REGISTER"
	ActivitySystemInit   ActivityKind = "SYSTEM_INIT"
)

// Valid reports whether k is one of the known kinds.
func (k ActivityKind) Valid() bool {
	switch k {
	case ActivityUserLogin, ActivityFileUpload, ActivityAdminLogin, ActivityUserRegister, ActivitySystemInit:
		return true
	}
	return false
}

// Activity is one activity log entry.
type Activity struct {
	Type ActivityKind `json:"type"`
	Text string       `json:"text"`
	Time time.Time    `json:"time"`
}
