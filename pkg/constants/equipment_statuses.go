package constants

import "slices"

type EquipmentStatus string

const (
	EquipmentAvailable EquipmentStatus = "available"
	EquipmentInUse     EquipmentStatus = "in-use"
	EquipmentDamaged   EquipmentStatus = "damaged"
)

var EquipmentStatuses = []EquipmentStatus{EquipmentAvailable, EquipmentInUse, EquipmentDamaged}

func IsEquipmentStatus(status EquipmentStatus) bool {
	return slices.Contains(EquipmentStatuses, status)
}

type HistoryAction string

const (
	ActionAssigned      HistoryAction = "assigned"
	ActionReturned      HistoryAction = "returned"
	ActionMoved         HistoryAction = "moved"
	ActionReported      HistoryAction = "reported"
	ActionStatusChanged HistoryAction = "status_changed"
)

type DamageReportStatus string

const (
	DamageReported DamageReportStatus = "reported"
	DamageInRepair DamageReportStatus = "in-repair"
	DamageResolved DamageReportStatus = "resolved"
)

var DamageReportStatuses = []DamageReportStatus{DamageReported, DamageInRepair, DamageResolved}

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestApproved  RequestStatus = "approved"
	RequestDenied    RequestStatus = "denied"
	RequestCompleted RequestStatus = "completed"
)

var RequestStatuses = []RequestStatus{RequestPending, RequestApproved, RequestDenied, RequestCompleted}

// Final request statuses
var FinalRequestStatuses = []RequestStatus{
	RequestDenied,
	RequestCompleted,
}

func IsFinalRequestStatus(status RequestStatus) bool {
	return slices.Contains(FinalRequestStatuses, status)
}

type NotificationType string

const (
	NotificationEquipmentAvailable NotificationType = "equipment_available"
	NotificationRequestApproved    NotificationType = "request_approved"
	NotificationEquipmentRepaired  NotificationType = "equipment_repaired"
	NotificationMaintenanceDue     NotificationType = "maintenance_due"
)

var NotificationTypes = []NotificationType{
	NotificationEquipmentAvailable,
	NotificationRequestApproved,
	NotificationEquipmentRepaired,
	NotificationMaintenanceDue,
}

type UserRole string

const (
	RoleLogisticsStaff UserRole = "logistics_staff"
	RoleNurse          UserRole = "nurse"
	RoleManager        UserRole = "manager"
)

// DateLayout is the calendar date format of purchase and maintenance dates.
const DateLayout = "2006-01-02"
