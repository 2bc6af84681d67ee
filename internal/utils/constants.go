package utils

const (
	OrganizationName                      = "InmoApp"
	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"

	BuyerAccountType = "buyer"
	AgentAccountType = "agent"
	AdminAccountType = "admin"
)
