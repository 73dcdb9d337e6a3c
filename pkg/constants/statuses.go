package constants

// --- Статусы заявок ---
const (
	RequestStatusPending     = "PENDING"
	RequestStatusUnderReview = "UNDER_REVIEW"
	RequestStatusApproved    = "APPROVED"
	RequestStatusRejected    = "REJECTED"
	// RESOLVED закрывает сервисные заявки вне основного процесса согласования.
	RequestStatusResolved = "RESOLVED"
)

// Финальные статусы
var FinalRequestStatuses = []string{
	RequestStatusApproved,
	RequestStatusRejected,
}

// Активные статусы: заявка ещё ждёт решения.
var ActiveRequestStatuses = []string{
	RequestStatusPending,
	RequestStatusUnderReview,
}

func IsFinalRequestStatus(code string) bool {
	for _, s := range FinalRequestStatuses {
		if s == code {
			return true
		}
	}
	return false
}

func IsKnownRequestStatus(code string) bool {
	switch code {
	case RequestStatusPending, RequestStatusUnderReview, RequestStatusApproved, RequestStatusRejected, RequestStatusResolved:
		return true
	}
	return false
}

// --- Типы обращений ---
const (
	IssueTypeRequest  = "REQUEST"
	IssueTypeHardware = "HARDWARE"
	IssueTypeSoftware = "SOFTWARE"
	IssueTypeOther    = "OTHER"
)

var IssueTypes = []string{IssueTypeRequest, IssueTypeHardware, IssueTypeSoftware, IssueTypeOther}

func IsKnownIssueType(code string) bool {
	for _, t := range IssueTypes {
		if t == code {
			return true
		}
	}
	return false
}

// --- Статусы и состояние активов ---
const (
	AssetStatusAvailable   = "AVAILABLE"
	AssetStatusRequested   = "REQUESTED"
	AssetStatusAssigned    = "ASSIGNED"
	AssetStatusRetired     = "RETIRED"
	AssetStatusUnderRepair = "UNDER_REPAIR"

	AssetConditionGood    = "GOOD"
	AssetConditionDamaged = "DAMAGED"
	AssetConditionRepair  = "REPAIR"
)

var AssetStatuses = []string{
	AssetStatusAvailable,
	AssetStatusRequested,
	AssetStatusAssigned,
	AssetStatusRetired,
	AssetStatusUnderRepair,
}

var AssetConditions = []string{AssetConditionGood, AssetConditionDamaged, AssetConditionRepair}

func IsKnownAssetStatus(code string) bool {
	for _, s := range AssetStatuses {
		if s == code {
			return true
		}
	}
	return false
}

func IsKnownAssetCondition(code string) bool {
	for _, c := range AssetConditions {
		if c == code {
			return true
		}
	}
	return false
}
