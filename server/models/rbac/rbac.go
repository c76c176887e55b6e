package rbac

// Role is a user's role name as stored on the user record and carried in
// JWT claims. Unrecognized role strings resolve to no capabilities.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleFaculty      Role = "faculty"
	RoleEventManager Role = "event_manager"
	RoleStudent      Role = "student"
)

// Capability is a single permission token consulted by route guards.
type Capability string

const (
	CapAdminPanel           Capability = "admin_panel"
	CapManageAllUsers       Capability = "manage_all_users"
	CapEditAnyEvent         Capability = "edit_any_event"
	CapDeleteAnyEvent       Capability = "delete_any_event"
	CapAccessAllContent     Capability = "access_all_content"
	CapViewAnalytics        Capability = "view_analytics"
	CapManageSystemSettings Capability = "manage_system_settings"
	CapApproveEvents        Capability = "approve_events"
	CapModerateContent      Capability = "moderate_content"
	CapCreateEvents         Capability = "create_events"
	CapManageOwnEvents      Capability = "manage_own_events"
	CapViewEvents           Capability = "view_events"
	CapRegisterForEvents    Capability = "register_for_events"
)

// rolePermissions is the fixed role -> capability table. Students are
// deliberately excluded from every create/manage token.
var rolePermissions = map[Role][]Capability{
	RoleAdmin: {
		CapAdminPanel, CapManageAllUsers, CapEditAnyEvent, CapDeleteAnyEvent,
		CapAccessAllContent, CapViewAnalytics, CapManageSystemSettings,
		CapApproveEvents, CapModerateContent, CapCreateEvents, CapManageOwnEvents,
	},
	RoleFaculty: {
		CapCreateEvents, CapManageOwnEvents, CapViewAnalytics, CapModerateContent,
	},
	RoleEventManager: {
		CapCreateEvents, CapManageOwnEvents, CapViewAnalytics,
	},
	RoleStudent: {
		CapViewEvents, CapRegisterForEvents,
	},
}

// Set is a resolved capability set.
type Set map[Capability]bool

// Has reports whether the set contains the capability.
func (s Set) Has(cap Capability) bool {
	return s[cap]
}

// List returns the capabilities in table order for the role they came from.
func (s Set) List() []Capability {
	caps := make([]Capability, 0, len(s))
	for _, role := range []Role{RoleAdmin, RoleFaculty, RoleEventManager, RoleStudent} {
		for _, c := range rolePermissions[role] {
			if s[c] && !contains(caps, c) {
				caps = append(caps, c)
			}
		}
	}
	return caps
}

func contains(caps []Capability, c Capability) bool {
	for _, existing := range caps {
		if existing == c {
			return true
		}
	}
	return false
}

// Resolve maps a role name to its capability set. The mapping is pure and
// total: unknown roles get an empty set, never an error.
func Resolve(role Role) Set {
	set := make(Set)
	for _, c := range rolePermissions[role] {
		set[c] = true
	}
	return set
}

// IsValidRole reports whether the role name is one of the defined roles.
func IsValidRole(role Role) bool {
	_, ok := rolePermissions[role]
	return ok
}

// HasCapability resolves the role and checks a single token.
func HasCapability(role Role, cap Capability) bool {
	return Resolve(role).Has(cap)
}

// CanAccessAdmin is true only for the admin role.
func CanAccessAdmin(role Role) bool {
	return role == RoleAdmin && HasCapability(role, CapAdminPanel)
}

// CanManageEvents is true for admin, faculty and event managers.
func CanManageEvents(role Role) bool {
	return HasCapability(role, CapManageOwnEvents)
}

// CanCreateEvents is true for admin, faculty and event managers.
func CanCreateEvents(role Role) bool {
	return HasCapability(role, CapCreateEvents)
}

// CanEditEvent is true when the actor owns the event or holds the admin
// override. Ownership is compared by stable user id, never display name.
func CanEditEvent(role Role, actorID, ownerID int64) bool {
	if HasCapability(role, CapEditAnyEvent) {
		return true
	}
	return actorID == ownerID
}

// CanDeleteEvent follows the same rule as CanEditEvent: admin override or
// exact owner match.
func CanDeleteEvent(role Role, actorID, ownerID int64) bool {
	if HasCapability(role, CapDeleteAnyEvent) {
		return true
	}
	return actorID == ownerID
}
