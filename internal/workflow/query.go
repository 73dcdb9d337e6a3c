package workflow

import (
	"strings"

	"asset-desk/internal/entities"
	"asset-desk/pkg/constants"
)

// BlockingRequestStatuses - заявки в этих статусах держат актив.
var BlockingRequestStatuses = []string{
	constants.RequestStatusPending,
	constants.RequestStatusUnderReview,
	constants.RequestStatusApproved,
}

func IsBlockingStatus(status string) bool {
	for _, s := range BlockingRequestStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// RequestFilter - условия списка заявок. Пустое поле не ограничивает выборку.
type RequestFilter struct {
	Status     string
	IssueType  string
	EmployeeID uint64
}

// Matches сравнивает по эффективному статусу.
func (f RequestFilter) Matches(r entities.AssetRequest) bool {
	if f.Status != "" && r.EffectiveStatus() != f.Status {
		return false
	}
	if f.IssueType != "" && r.IssueType != f.IssueType {
		return false
	}
	if f.EmployeeID != 0 && r.EmployeeID != f.EmployeeID {
		return false
	}
	return true
}

// FilterRequests сохраняет порядок входного списка.
func FilterRequests(requests []entities.AssetRequest, f RequestFilter) []entities.AssetRequest {
	result := make([]entities.AssetRequest, 0, len(requests))
	for _, r := range requests {
		if f.Matches(r) {
			result = append(result, r)
		}
	}
	return result
}

// BlockedAssetIDs - активы, на которые есть заявка в блокирующем статусе.
func BlockedAssetIDs(requests []entities.AssetRequest) map[uint64]struct{} {
	blocked := make(map[uint64]struct{})
	for _, r := range requests {
		if IsBlockingStatus(r.EffectiveStatus()) {
			blocked[r.AssetID] = struct{}{}
		}
	}
	return blocked
}

// IsRequestable - актив свободен, исправен и ни за кем не числится.
func IsRequestable(asset entities.Asset, blocked map[uint64]struct{}) bool {
	if asset.Status != constants.AssetStatusAvailable || asset.AssetCondition != constants.AssetConditionGood {
		return false
	}
	if asset.AssignedToID.Valid || (asset.PurchasedDate.Valid && asset.PurchasedDate.String != "") {
		return false
	}
	_, isBlocked := blocked[asset.ID]
	return !isBlocked
}

// AssetQuery - поиск и фильтр по категории на экране выбора актива.
type AssetQuery struct {
	Search   string
	Category string
}

func (q AssetQuery) Matches(asset entities.Asset) bool {
	if q.Category != "" && !strings.EqualFold(asset.CategoryName, q.Category) {
		return false
	}
	search := strings.ToLower(strings.TrimSpace(q.Search))
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(asset.Name), search) ||
		strings.Contains(strings.ToLower(asset.AssetNumber), search)
}

// AvailableForRequest - активы, которые сотрудник может запросить.
func AvailableForRequest(assets []entities.Asset, requests []entities.AssetRequest, q AssetQuery) []entities.Asset {
	blocked := BlockedAssetIDs(requests)
	result := make([]entities.Asset, 0)
	for _, a := range assets {
		if IsRequestable(a, blocked) && q.Matches(a) {
			result = append(result, a)
		}
	}
	return result
}
