package domain

import "time"

// User is the domain model for operators of the system. Admins manage the
// catalog and the fleet; non-admins are field technicians who only work the
// items assigned to them.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	FullName     string
	IsAdmin      bool
	CreatedAt    time.Time
}
