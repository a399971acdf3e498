package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAdmin(t *testing.T) {
	admin := &Session{Kind: KindAdmin, Phone: "972541234567"}
	customer := &Session{Kind: KindCustomer, Phone: "972541234567"}

	assert.True(t, admin.IsAdmin())
	assert.False(t, customer.IsAdmin())
}

func TestCanManage(t *testing.T) {
	sess := &Session{
		Kind:  KindAdmin,
		Phone: "972541234567",
		Slugs: []string{"barber", "nails"},
	}

	assert.True(t, sess.CanManage("barber"))
	assert.True(t, sess.CanManage("nails"))
	assert.False(t, sess.CanManage("spa"))
	assert.False(t, sess.CanManage(""))
}

func TestCanManageNoSlugs(t *testing.T) {
	sess := &Session{Kind: KindAdmin, Phone: "972541234567"}

	assert.False(t, sess.CanManage("barber"))
}
