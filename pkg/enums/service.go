package enums

import "fmt"

// ServiceType identifies which of the six structured inquiry forms a
// service request wraps.
type ServiceType string

const (
	ServiceTypeMaintenance ServiceType = "MAINTENANCE"
	ServiceTypeConsultancy ServiceType = "CONSULTANCY"
	ServiceTypeTurnkey     ServiceType = "TURNKEY_PROJECT"
	ServiceTypeAcquisition ServiceType = "ACQUISITION"
	ServiceTypeManpower    ServiceType = "MANPOWER"
	ServiceTypeJobSeeker   ServiceType = "JOB_SEEKER"
)

var validServiceTypes = []ServiceType{
	ServiceTypeMaintenance,
	ServiceTypeConsultancy,
	ServiceTypeTurnkey,
	ServiceTypeAcquisition,
	ServiceTypeManpower,
	ServiceTypeJobSeeker,
}

// String implements fmt.Stringer.
func (t ServiceType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known ServiceType.
func (t ServiceType) IsValid() bool {
	for _, candidate := range validServiceTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseServiceType converts raw input into a ServiceType.
func ParseServiceType(value string) (ServiceType, error) {
	for _, candidate := range validServiceTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid service type %q", value)
}

// ServiceStatus is the admin-driven lifecycle of a service request. Admin
// updates may set any valid status from any other; there is deliberately no
// transition table.
type ServiceStatus string

const (
	ServiceStatusSubmitted          ServiceStatus = "SUBMITTED"
	ServiceStatusAwaitingAssignment ServiceStatus = "AWAITING_ASSIGNMENT"
	ServiceStatusInReview           ServiceStatus = "IN_REVIEW"
	ServiceStatusActionRequired     ServiceStatus = "ACTION_REQUIRED"
	ServiceStatusApproved           ServiceStatus = "APPROVED"
	ServiceStatusRejected           ServiceStatus = "REJECTED"
	ServiceStatusInProgress         ServiceStatus = "IN_PROGRESS"
	ServiceStatusCompleted          ServiceStatus = "COMPLETED"
	ServiceStatusClosed             ServiceStatus = "CLOSED"
	ServiceStatusCancelled          ServiceStatus = "CANCELLED"
)

var validServiceStatuses = []ServiceStatus{
	ServiceStatusSubmitted,
	ServiceStatusAwaitingAssignment,
	ServiceStatusInReview,
	ServiceStatusActionRequired,
	ServiceStatusApproved,
	ServiceStatusRejected,
	ServiceStatusInProgress,
	ServiceStatusCompleted,
	ServiceStatusClosed,
	ServiceStatusCancelled,
}

// String implements fmt.Stringer.
func (s ServiceStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ServiceStatus.
func (s ServiceStatus) IsValid() bool {
	for _, candidate := range validServiceStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseServiceStatus converts raw input into a ServiceStatus.
func ParseServiceStatus(value string) (ServiceStatus, error) {
	for _, candidate := range validServiceStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid service status %q", value)
}
