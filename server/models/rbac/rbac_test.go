package rbac

import "testing"

func TestResolveAdminHoldsAllDefinedCapabilities(t *testing.T) {
	admin := Resolve(RoleAdmin)

	// Admin must hold every token granted to any managing role, plus the
	// admin-only tokens.
	for _, role := range []Role{RoleFaculty, RoleEventManager} {
		for cap := range Resolve(role) {
			if !admin.Has(cap) {
				t.Errorf("admin is missing %q held by %s", cap, role)
			}
		}
	}

	adminOnly := []Capability{
		CapAdminPanel, CapManageAllUsers, CapEditAnyEvent, CapDeleteAnyEvent,
		CapAccessAllContent, CapManageSystemSettings, CapApproveEvents,
	}
	for _, cap := range adminOnly {
		if !admin.Has(cap) {
			t.Errorf("admin is missing admin-only capability %q", cap)
		}
	}
}

func TestResolveStudentNeverGetsManagementCapabilities(t *testing.T) {
	student := Resolve(RoleStudent)

	forbidden := []Capability{
		CapCreateEvents, CapManageOwnEvents, CapEditAnyEvent, CapDeleteAnyEvent,
		CapAdminPanel, CapManageAllUsers, CapApproveEvents, CapModerateContent,
		CapManageSystemSettings, CapViewAnalytics,
	}
	for _, cap := range forbidden {
		if student.Has(cap) {
			t.Errorf("student must not hold %q", cap)
		}
	}

	if !student.Has(CapViewEvents) || !student.Has(CapRegisterForEvents) {
		t.Error("student should hold view_events and register_for_events")
	}

	if CanManageEvents(RoleStudent) {
		t.Error("CanManageEvents must be false for students")
	}
	if CanCreateEvents(RoleStudent) {
		t.Error("CanCreateEvents must be false for students")
	}
	if CanAccessAdmin(RoleStudent) {
		t.Error("CanAccessAdmin must be false for students")
	}
}

func TestResolveUnknownRoleIsEmpty(t *testing.T) {
	set := Resolve("unknown_role")
	if len(set) != 0 {
		t.Errorf("unknown role resolved to %d capabilities, want 0", len(set))
	}

	if IsValidRole("unknown_role") {
		t.Error("unknown_role should not be a valid role")
	}

	// Empty string as well
	if len(Resolve("")) != 0 {
		t.Error("empty role should resolve to empty set")
	}
}

func TestCanManageEventsRoles(t *testing.T) {
	cases := []struct {
		role Role
		want bool
	}{
		{RoleAdmin, true},
		{RoleFaculty, true},
		{RoleEventManager, true},
		{RoleStudent, false},
		{Role("unknown"), false},
	}

	for _, tc := range cases {
		if got := CanManageEvents(tc.role); got != tc.want {
			t.Errorf("CanManageEvents(%s) = %v, want %v", tc.role, got, tc.want)
		}
	}
}

func TestCanEditEventOwnershipAndAdminOverride(t *testing.T) {
	const owner, other = int64(10), int64(20)

	// The owner can always edit, regardless of role.
	for _, role := range []Role{RoleAdmin, RoleFaculty, RoleEventManager, RoleStudent} {
		if !CanEditEvent(role, owner, owner) {
			t.Errorf("owner with role %s should be able to edit own event", role)
		}
		if !CanDeleteEvent(role, owner, owner) {
			t.Errorf("owner with role %s should be able to delete own event", role)
		}
	}

	// A non-owner can edit only as admin.
	if !CanEditEvent(RoleAdmin, other, owner) {
		t.Error("admin should be able to edit any event")
	}
	if !CanDeleteEvent(RoleAdmin, other, owner) {
		t.Error("admin should be able to delete any event")
	}

	for _, role := range []Role{RoleFaculty, RoleEventManager, RoleStudent, Role("unknown")} {
		if CanEditEvent(role, other, owner) {
			t.Errorf("non-owner %s must not edit another user's event", role)
		}
		if CanDeleteEvent(role, other, owner) {
			t.Errorf("non-owner %s must not delete another user's event", role)
		}
	}
}

func TestCapabilityListIsStable(t *testing.T) {
	set := Resolve(RoleFaculty)
	list := set.List()
	if len(list) != len(set) {
		t.Fatalf("List returned %d capabilities, want %d", len(list), len(set))
	}
	seen := map[Capability]bool{}
	for _, c := range list {
		if seen[c] {
			t.Errorf("duplicate capability %q in List", c)
		}
		seen[c] = true
	}
}
