package server

// Auth flow routes
const (
	RouteLogin    = "/auth/login"
	RouteCallback = "/auth/callback"
	RouteLogout   = "/auth/logout"
)

// API routes
const (
	RouteAPISession       = "/api/auth/session"
	RouteAPILeaderboard   = "/api/leaderboard"
	RouteAPIPersonalStats = "/api/personal-stats"
	RouteAPIEntities      = "/api/entities"
	RouteAPILocations     = "/api/cidoc/locations"
	RouteAPIEvents        = "/api/cidoc/events"
	RouteAPINotifications = "/api/notifications"
)

// Page routes
const (
	RouteDashboard    = "/dashboard"
	RouteEntityList   = "/dashboard/knowledge/entity"
	RouteEntityRevise = "/contribute/entity/revise"
)
