package models

// DashboardStats - сводка для главного экрана панели администратора
type DashboardStats struct {
	TotalTourists    int            `json:"total_tourists"`
	ActiveTourists   int            `json:"active_tourists"`
	OpenAlerts       int            `json:"open_alerts"`
	CriticalAlerts   int            `json:"critical_alerts"`
	ResolvedToday    int            `json:"resolved_today"`
	AlertsByStatus   map[string]int `json:"alerts_by_status"`
	AlertsByPriority map[string]int `json:"alerts_by_priority"`
}

// AlertCounts - агрегаты по алертам, которые считает репозиторий
type AlertCounts struct {
	ByStatus      map[string]int
	ByPriority    map[string]int
	OpenCritical  int
	ResolvedToday int
}
