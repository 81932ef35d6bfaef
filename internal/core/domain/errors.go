package domain

import "errors"

var (
	ErrComplaintNotFound   = errors.New("complaint not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrForbidden           = errors.New("access forbidden")
	ErrInvalidAssignee     = errors.New("invalid staff member")
	ErrInvalidState        = errors.New("only resolved complaints can be deleted")
	ErrInvalidRating       = errors.New("rating must be between 1 and 5")
	ErrNotStaff            = errors.New("user is not a staff member")
	ErrStaffHasAssignments = errors.New("cannot delete staff member with assigned complaints")
	ErrConflict            = errors.New("complaint was modified concurrently")
)
