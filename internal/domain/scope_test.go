package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccessScope(t *testing.T) {
	unrestricted := Unrestricted()
	assert.False(t, unrestricted.Restricted())
	assert.True(t, unrestricted.CanAccess("ICU"))
	assert.True(t, unrestricted.CanAccess(""))

	icu := RestrictedTo("ICU")
	assert.True(t, icu.Restricted())
	assert.Equal(t, "ICU", icu.Ward())
	assert.True(t, icu.CanAccess("ICU"))
	assert.False(t, icu.CanAccess("ER"))
}

func TestScopeForUser(t *testing.T) {
	assert.False(t, ScopeForUser(RoleAdmin, "ICU").Restricted())
	assert.False(t, ScopeForUser(RoleERStaff, "ER").Restricted())

	icuManager := ScopeForUser(RoleICUManager, "ICU")
	assert.True(t, icuManager.Restricted())
	assert.Equal(t, "ICU", icuManager.Ward())

	wardStaff := ScopeForUser(RoleWardStaff, "Pediatrics")
	assert.True(t, wardStaff.Restricted())
	assert.Equal(t, "Pediatrics", wardStaff.Ward())

	// A ward-bound role with no ward on record falls back to unrestricted,
	// matching the zero value.
	assert.False(t, ScopeForUser(RoleWardStaff, "").Restricted())
}
