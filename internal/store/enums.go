package store

// Attendance statuses accepted at the persistence boundary.
const (
	StatusPresent             = "present"
	StatusAbsentWithoutUpdate = "absent_without_update"
	StatusTravelling          = "travelling"
	StatusFamilyTime          = "family_time"
	StatusWorkBusiness        = "work_business"
	StatusWellness            = "wellness"
)

// Group member roles.
const (
	RoleFacilitator = "facilitator"
	RoleParticipant = "participant"
	RoleObserver    = "observer"
)

// Marketing activity stages.
const (
	StageClosed   = "closed"
	StageProposal = "proposal"
	StageMeetings = "meetings"
)

// Marketing activity types. NoneMentioned is the sentinel for activities the
// oracle reported without a type.
const (
	ActivityNetworkActivation = "network_activation"
	ActivityLinkedIn          = "linkedin"
	ActivityColdOutreach      = "cold_outreach"
	ActivityNoneMentioned     = "none_mentioned"
)

// Marketing contract types.
const (
	ContractMonthly = "monthly"
	ContractOneTime = "one_time"
	ContractHybrid  = "hybrid"
)

var attendanceStatuses = map[string]bool{
	StatusPresent:             true,
	StatusAbsentWithoutUpdate: true,
	StatusTravelling:          true,
	StatusFamilyTime:          true,
	StatusWorkBusiness:        true,
	StatusWellness:            true,
}

var groupMemberRoles = map[string]bool{
	RoleFacilitator: true,
	RoleParticipant: true,
	RoleObserver:    true,
}

// ValidAttendanceStatus reports whether status is an accepted enum value.
func ValidAttendanceStatus(status string) bool {
	return attendanceStatuses[status]
}

// ValidGroupMemberRole reports whether role is an accepted enum value.
func ValidGroupMemberRole(role string) bool {
	return groupMemberRoles[role]
}
