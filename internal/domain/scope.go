package domain

// AccessScope is the ward visibility of a caller, computed once at the API
// boundary and threaded through every registry and aggregator call. The zero
// value is unrestricted.
type AccessScope struct {
	ward string
}

func Unrestricted() AccessScope {
	return AccessScope{}
}

func RestrictedTo(ward string) AccessScope {
	return AccessScope{ward: ward}
}

func (s AccessScope) Restricted() bool {
	return s.ward != ""
}

func (s AccessScope) Ward() string {
	return s.ward
}

// CanAccess reports whether a bed in the given ward is visible to the scope.
func (s AccessScope) CanAccess(ward string) bool {
	return s.ward == "" || s.ward == ward
}

// ScopeForUser maps a role to its access scope. Ward-bound roles see only
// their own ward; admin and ER staff see the whole facility.
func ScopeForUser(role, ward string) AccessScope {
	if role == RoleICUManager || role == RoleWardStaff {
		return RestrictedTo(ward)
	}
	return Unrestricted()
}
