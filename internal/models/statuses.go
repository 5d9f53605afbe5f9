package models

type UserStatus string
type UserRole string
type AttendanceStatus string
type ComplaintStatus string
type MeetingStatus string
type EnrollmentStatus string
type OrderStatus string
type Audience string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"

	UserRoleParent     UserRole = "parent"
	UserRoleTeacher    UserRole = "teacher"
	UserRoleSupervisor UserRole = "supervisor"
	UserRoleAdmin      UserRole = "admin"

	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
	AttendanceStatusLate    AttendanceStatus = "late"

	ComplaintStatusOpen     ComplaintStatus = "open"
	ComplaintStatusInReview ComplaintStatus = "in_review"
	ComplaintStatusResolved ComplaintStatus = "resolved"

	MeetingStatusRequested MeetingStatus = "requested"
	MeetingStatusApproved  MeetingStatus = "approved"
	MeetingStatusDeclined  MeetingStatus = "declined"
	MeetingStatusCompleted MeetingStatus = "completed"

	EnrollmentStatusActive    EnrollmentStatus = "active"
	EnrollmentStatusExpired   EnrollmentStatus = "expired"
	EnrollmentStatusCancelled EnrollmentStatus = "cancelled"

	// Order lifecycle: pending is the only non-terminal state.
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"

	AudienceAll     Audience = "all"
	AudienceParents Audience = "parents"
	AudienceStaff   Audience = "staff"
)
