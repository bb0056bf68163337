package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllow(t *testing.T) {
	assert.True(t, Allow(RoleAdmin, "library", ActionDelete))
	assert.True(t, Allow(RoleAdmin, "anything", ActionCreate))
	assert.True(t, Allow(RoleMember, "report", ActionCreate))
	assert.True(t, Allow(RoleMember, "news", ActionRead))
	assert.False(t, Allow(RoleMember, "news", ActionDelete))
	assert.False(t, Allow(RoleMember, "users", ActionRead))
	assert.False(t, Allow("ghost", "news", ActionRead))
}
