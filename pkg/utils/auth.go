package utils

// AuthorizationHeader is the header carrying bearer credentials.
const AuthorizationHeader = "Authorization"

// BearerValue formats token using the bearer scheme.
func BearerValue(token string) string {
	return "Bearer " + token
}

// BuildAuthHeader returns a single-entry header map for token.
func BuildAuthHeader(token string) map[string]string {
	return map[string]string{AuthorizationHeader: BearerValue(token)}
}
