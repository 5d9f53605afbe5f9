package apperrors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a class of application error.
type ErrorCode string

// AppError is the application error carried from services to handlers.
type AppError struct {
	Code     ErrorCode   `json:"code"`
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Err      error       `json:"-"`
	HTTPCode int         `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		HTTPCode: httpCode,
	}
}

// Wrap attaches an underlying error to a new AppError.
func Wrap(err error, code ErrorCode, message string, httpCode int) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Err:      err,
		HTTPCode: httpCode,
	}
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	e.Details = details
	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// MarshalJSON hides the wrapped error and HTTP code from responses.
func (e *AppError) MarshalJSON() ([]byte, error) {
	type alias struct {
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}
	return json.Marshal(&alias{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}

// Predefined errors.
var (
	// Auth
	ErrInvalidCredentials = New(CodeInvalidCredentials, "Invalid email or password", http.StatusUnauthorized)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "Access denied", http.StatusForbidden)
	ErrInvalidToken       = New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)

	// Users
	ErrUserNotFound            = New(CodeUserNotFound, "User not found", http.StatusNotFound)
	ErrEmailAlreadyExists      = New(CodeEmailAlreadyExists, "Email already exists", http.StatusConflict)
	ErrWeakPassword            = New(CodeWeakPassword, "Password must be at least 6 characters", http.StatusBadRequest)
	ErrInvalidUserRole         = New(CodeInvalidUserRole, "Invalid user role", http.StatusBadRequest)
	ErrInsufficientPermissions = New(CodeInsufficientPermissions, "Insufficient permissions", http.StatusForbidden)

	// Children
	ErrChildNotFound  = New("CHILD_NOT_FOUND", "Child not found", http.StatusNotFound)
	ErrNotChildParent = New("NOT_CHILD_PARENT", "Child does not belong to this parent", http.StatusForbidden)

	// Attendance
	ErrAttendanceExists   = New("ATTENDANCE_EXISTS", "Attendance already recorded for this day", http.StatusConflict)
	ErrAttendanceNotFound = New("ATTENDANCE_NOT_FOUND", "Attendance record not found", http.StatusNotFound)
	ErrNotCheckedIn       = New("NOT_CHECKED_IN", "Child has not been checked in today", http.StatusBadRequest)

	// Daily reports
	ErrReportNotFound = New("REPORT_NOT_FOUND", "Daily report not found", http.StatusNotFound)
	ErrReportExists   = New("REPORT_EXISTS", "Daily report already exists for this day", http.StatusConflict)

	// Complaints
	ErrComplaintNotFound = New("COMPLAINT_NOT_FOUND", "Complaint not found", http.StatusNotFound)
	ErrComplaintResolved = New("COMPLAINT_RESOLVED", "Complaint is already resolved", http.StatusBadRequest)

	// Meetings
	ErrMeetingNotFound      = New("MEETING_NOT_FOUND", "Meeting not found", http.StatusNotFound)
	ErrMeetingNotPending    = New("MEETING_NOT_PENDING", "Meeting request has already been decided", http.StatusBadRequest)
	ErrMeetingInPast        = New("MEETING_IN_PAST", "Meeting time is in the past", http.StatusBadRequest)
	ErrAnnouncementNotFound = New("ANNOUNCEMENT_NOT_FOUND", "Announcement not found", http.StatusNotFound)

	// Plans and enrollments
	ErrPlanNotFound       = New("PLAN_NOT_FOUND", "Subscription plan not found", http.StatusNotFound)
	ErrPlanInactive       = New("PLAN_INACTIVE", "Subscription plan is not active", http.StatusBadRequest)
	ErrEnrollmentNotFound = New("ENROLLMENT_NOT_FOUND", "Enrollment not found", http.StatusNotFound)
	ErrEnrollmentExists   = New("ENROLLMENT_EXISTS", "Child already has an active enrollment", http.StatusConflict)

	// Payments
	ErrOrderNotFound        = New("ORDER_NOT_FOUND", "Payment order not found", http.StatusNotFound)
	ErrOrderNotPaid         = New("ORDER_NOT_PAID", "Payment order is not paid", http.StatusBadRequest)
	ErrInvalidPaymentAmount = New("INVALID_PAYMENT_AMOUNT", "Payment amount is invalid", http.StatusBadRequest)
)

// ValidationError builds a validation error carrying field details.
func ValidationError(details interface{}) *AppError {
	return New(CodeValidationFailed, "Validation failed", http.StatusBadRequest).WithDetails(details)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func InternalError(err error) *AppError {
	return Wrap(err, CodeInternalError, "Internal server error", http.StatusInternalServerError)
}

func NewConflictError(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict)
}

func NewInternalError(message string) *AppError {
	return New(CodeInternalError, message, http.StatusInternalServerError)
}

func NewUnauthorizedError(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func NewForbiddenError(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func NewNotFoundError(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func NewBadRequestError(message string) *AppError {
	return New(CodeValidationFailed, message, http.StatusBadRequest)
}
