package dto

// DashboardStatsDTO - карточки дашборда сотрудника.
type DashboardStatsDTO struct {
	MyAssets        uint64 `json:"myAssets"`
	PendingRequests uint64 `json:"pendingRequests"`
	TotalRequests   uint64 `json:"totalRequests"`
}

// DashboardSummaryDTO - сводка администратора.
type DashboardSummaryDTO struct {
	AssetsByStatus   map[string]uint64 `json:"assetsByStatus"`
	RequestsByStatus map[string]uint64 `json:"requestsByStatus"`
	TotalAssets      uint64            `json:"totalAssets"`
	TotalRequests    uint64            `json:"totalRequests"`
}
