package validator

import (
	"log"

	"daycare_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules wires the domain enum rules into the validator
// instance. Registration failure is a startup error.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-attendance-status", validateAttendanceStatus)
	mustRegister("is-complaint-status", validateComplaintStatus)
	mustRegister("is-meeting-status", validateMeetingStatus)
	mustRegister("is-payment-status", validatePaymentStatus)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // empty is handled by 'required'
	}
	switch models.UserRole(value) {
	case models.UserRoleParent, models.UserRoleTeacher, models.UserRoleSupervisor, models.UserRoleAdmin:
		return true
	default:
		return false
	}
}

func validateAttendanceStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.AttendanceStatus(value) {
	case models.AttendanceStatusPresent, models.AttendanceStatusAbsent, models.AttendanceStatusLate:
		return true
	default:
		return false
	}
}

func validateComplaintStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.ComplaintStatus(value) {
	case models.ComplaintStatusOpen, models.ComplaintStatusInReview, models.ComplaintStatusResolved:
		return true
	default:
		return false
	}
}

func validateMeetingStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.MeetingStatus(value) {
	case models.MeetingStatusRequested, models.MeetingStatusApproved, models.MeetingStatusDeclined, models.MeetingStatusCompleted:
		return true
	default:
		return false
	}
}

func validatePaymentStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	switch models.OrderStatus(value) {
	case models.OrderStatusPending, models.OrderStatusPaid, models.OrderStatusFailed:
		return true
	default:
		return false
	}
}
