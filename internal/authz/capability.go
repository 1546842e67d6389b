// Package authz is the single place permission logic lives. Handlers and
// services call HasCapability instead of re-deriving role checks ad hoc.
package authz

// Capability names checked before moderation actions.
const (
	CapModerateComments = "moderate-comments"
	CapDeleteComments   = "delete-comments"
	CapPinComments      = "pin-comments"
	CapBanUsers         = "ban-users"
)

// roleCapabilities maps a role to the set of capabilities it holds.
// Moderators hold the comment capabilities; admins hold everything.
var roleCapabilities = map[string]map[string]bool{
	"moderator": {
		CapModerateComments: true,
		CapDeleteComments:   true,
		CapPinComments:      true,
	},
	"admin": {
		CapModerateComments: true,
		CapDeleteComments:   true,
		CapPinComments:      true,
		CapBanUsers:         true,
	},
}

// HasCapability reports whether the given role holds the named capability.
// Unknown roles (including the regular "user" role) hold none.
func HasCapability(role, capability string) bool {
	caps, ok := roleCapabilities[role]
	if !ok {
		return false
	}
	return caps[capability]
}

// IsStaff reports whether the role holds any moderation capability at all.
// Used to decide whether moderation-only fields appear in responses.
func IsStaff(role string) bool {
	_, ok := roleCapabilities[role]
	return ok
}
