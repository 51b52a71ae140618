package entity

// Status constants for LeavePermit
const (
	PermitStatusPending            = "Pending"
	PermitStatusApproved           = "Approved"
	PermitStatusRejected           = "Rejected"
	PermitStatusOnLeave            = "On Leave"
	PermitStatusReturned           = "Returned"
	PermitStatusNeedsClarification = "Butuh Klarifikasi"
)

// Status constants for AttendanceRecord
const (
	AttendanceStatusPresent    = "Present"
	AttendanceStatusClockedOut = "Clocked Out"
	AttendanceStatusAbsent     = "Absent"
	AttendanceStatusOnLeave    = "On Leave"
)

// Status constants for OvertimeRecord
const (
	OvertimeStatusPending  = "Pending"
	OvertimeStatusApproved = "Approved"
	OvertimeStatusRejected = "Rejected"
)

// Condition constants for SarprasItem
const (
	AssetConditionGood        = "Baik"
	AssetConditionNeedsRepair = "Perlu Perbaikan"
	AssetConditionBroken      = "Rusak"
)

// Zone constants for Guest access
const (
	GuestZoneFree       = "Bebas"
	GuestZoneRestricted = "Terbatas"
	GuestZoneForbidden  = "Terlarang"
)

// Role constants for User
const (
	RoleAdmin        = "admin"
	RoleEmployee     = "employee"
	RoleSecurity     = "security"
	RoleReceptionist = "receptionist"
)

// Account status constants for User
const (
	UserStatusPending  = "pending"
	UserStatusApproved = "approved"
)
