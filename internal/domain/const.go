package domain

// Context keys for requester information lifted by the auth middleware.
const (
	RequesterTokenCtxKey  = "repae-requesterToken"
	RequesterPortalCtxKey = "repae-requesterPortal"
)

// Portals of the platform. Each portal stores its own token under a
// distinct key in the preference store.
const (
	PortalMember  = "member"
	PortalCompany = "company"
	PortalAdmin   = "admin"
)

// Preference-store keys. Values are always plain strings; structured
// values are JSON-serialized text.
const (
	ThemeKey        = "theme"
	MemberTokenKey  = "it-token"
	MemberUserKey   = "it-user"
	CompanyTokenKey = "entreprise-token"
	AdminTokenKey   = "admin-token"
)

// TokenKeyForPortal returns the preference-store key holding the bearer
// token of the given portal, or "" for an unknown portal.
func TokenKeyForPortal(portal string) string {
	switch portal {
	case PortalMember:
		return MemberTokenKey
	case PortalCompany:
		return CompanyTokenKey
	case PortalAdmin:
		return AdminTokenKey
	default:
		return ""
	}
}
