package routes

const (
	// Health
	Health = "/health"

	// Public catalog
	Properties       = "/api/v1/properties"
	PropertyByID     = "/api/v1/properties/{id}"
	PropertiesMap    = "/api/v1/properties/map"
	PropertiesNearby = "/api/v1/properties/nearby"
	PropertySlots    = "/api/v1/properties/{id}/slots"
	AISearch         = "/api/v1/search/ai"

	// Auth
	AuthRegister = "/api/v1/auth/register"
	AuthLogin    = "/api/v1/auth/login"
	AuthRefresh  = "/api/v1/auth/refresh"
	AuthLogout   = "/api/v1/auth/logout"
	AuthMe       = "/api/v1/auth/me"

	// Favorites (authenticated)
	Favorites    = "/api/v1/favorites"
	FavoriteByID = "/api/v1/favorites/{propertyId}"

	// Appointments (authenticated)
	Appointments       = "/api/v1/appointments"
	AppointmentByID    = "/api/v1/appointments/{id}"
	AppointmentCancel  = "/api/v1/appointments/{id}/cancel"
	AppointmentConfirm = "/api/v1/appointments/{id}/confirm"

	// Agent inventory
	AgentProperties     = "/api/v1/agent/properties"
	AgentPropertyByID   = "/api/v1/agent/properties/{id}"
	AgentPropertyStatus = "/api/v1/agent/properties/{id}/status"
	AgentPropertyImages = "/api/v1/agent/properties/{id}/images"
	AgentPropertyImage  = "/api/v1/agent/properties/{id}/images/{imageId}"
	AgentPropertyCover  = "/api/v1/agent/properties/{id}/images/{imageId}/cover"
	AgentAppointments   = "/api/v1/agent/appointments"

	// Admin panel
	AdminUsers         = "/api/v1/admin/users"
	AdminUserBan       = "/api/v1/admin/users/{id}/ban"
	AdminUserUnban     = "/api/v1/admin/users/{id}/unban"
	AdminProperties    = "/api/v1/admin/properties"
	AdminPropertyState = "/api/v1/admin/properties/{id}/status"
	AdminStats         = "/api/v1/admin/stats"
)
