package core

// DashboardStats summarises every collection for the dashboard page.
type DashboardStats struct {
	TotalUsers        int            `json:"totalUsers"`
	ActiveUsers       int            `json:"activeUsers"`
	TotalAssets       int            `json:"totalAssets"`
	TotalLibraryItems int            `json:"totalLibraryItems"`
	AssetValue        float64        `json:"assetValue"`
	StorageUsedBytes  int64          `json:"storageUsedBytes"`
	AssetsByStatus    map[string]int `json:"assetsByStatus"`
	LibraryByType     map[string]int `json:"libraryByType"`
	RecentActivity    []Activity     `json:"recentActivity"`
}

// recentActivityLimit is how many entries the dashboard shows.
const recentActivityLimit = 5

// Stats computes the dashboard statistics from the current snapshots.
func (s *Service) Stats() DashboardStats {
	people, _ := s.people.Snapshot()
	library, _ := s.library.Snapshot()
	assets, _ := s.assets.Snapshot()

	st := DashboardStats{
		TotalUsers:        len(people),
		TotalAssets:       len(assets),
		TotalLibraryItems: len(library),
		AssetsByStatus:    make(map[string]int, len(AssetStatuses)),
		LibraryByType:     make(map[string]int, len(LibraryTypes)),
		RecentActivity:    s.Activity(ActivityFilter{Limit: recentActivityLimit}),
	}
	for _, status := range AssetStatuses {
		st.AssetsByStatus[status] = 0
	}
	for _, typ := range LibraryTypes {
		st.LibraryByType[typ] = 0
	}

	for _, p := range people {
		if p.Status == "active" {
			st.ActiveUsers++
		}
	}
	for _, a := range assets {
		st.AssetValue += a.Value
		st.AssetsByStatus[a.Status]++
	}
	for _, l := range library {
		st.StorageUsedBytes += l.Size
		st.LibraryByType[l.Type]++
	}
	return st
}
