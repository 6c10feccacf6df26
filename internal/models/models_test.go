package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVerificationToken_Expiry(t *testing.T) {
	expires := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	tok := &VerificationToken{Identifier: "a@co.com", Token: "123456", Expires: expires}

	assert.False(t, tok.IsExpired(expires.Add(-time.Second)))
	assert.False(t, tok.IsExpired(expires), "usable at exactly the expiry instant")
	assert.True(t, tok.IsExpired(expires.Add(time.Nanosecond)))

	assert.True(t, tok.Matches("a@co.com", "123456"))
	assert.False(t, tok.Matches("a@co.com", "654321"))
	assert.False(t, tok.Matches("b@co.com", "123456"))
}

func TestUserPrepare(t *testing.T) {
	u := &User{Email: "  New@Co.com "}
	u.Prepare()

	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "new@co.com", u.Email)
	assert.Equal(t, RoleEmployee, u.Role)
	assert.False(t, u.IsAdmin())
}

func TestEmployeeUpdate_PartialReplace(t *testing.T) {
	name := "Sarah Smith"
	email := "SARAH@co.com"
	user := &User{ID: "1", Name: "Sarah", Email: "old@co.com", Mobile: "+1 555", Designation: "HR"}

	upd := &EmployeeUpdate{Name: &name, Email: &email}
	upd.Apply(user)

	assert.Equal(t, "Sarah Smith", user.Name)
	assert.Equal(t, "sarah@co.com", user.Email)
	assert.Equal(t, "+1 555", user.Mobile, "unset fields are untouched")
	assert.Equal(t, "HR", user.Designation)

	cols := upd.Columns()
	assert.Equal(t, map[string]interface{}{"name": "Sarah Smith", "email": "sarah@co.com"}, cols)
}

func TestTicketEnums(t *testing.T) {
	for _, s := range []string{"Open", "In Progress", "Closed"} {
		assert.True(t, IsValidTicketStatus(s), s)
	}
	assert.False(t, IsValidTicketStatus("open"))
	assert.False(t, IsValidTicketStatus("Resolved"))

	for _, c := range []string{"IT", "HR", "Admin", "Payroll", "Other"} {
		assert.True(t, IsValidCategory(c), c)
	}
	assert.False(t, IsValidCategory("Facilities"))

	tk := &Ticket{}
	tk.Prepare()
	assert.Equal(t, TicketStatusOpen, tk.Status)
	assert.NotEmpty(t, tk.ID)
}

func TestContentDefaults(t *testing.T) {
	p := &Policy{Title: "Handbook"}
	p.Prepare()
	assert.Equal(t, DefaultPolicyVersion, p.Version)

	h := &Holiday{Name: "New Year"}
	h.Prepare()
	assert.Equal(t, HolidayPublic, h.Type)
	assert.True(t, IsValidHolidayType(HolidayOptional))
	assert.False(t, IsValidHolidayType("floating"))

	a := &Announcement{Title: "Hello"}
	a.Prepare()
	assert.False(t, a.Date.IsZero())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-10-20")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2025-10-20T18:30:00-02:00")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("20/10/2025")
	assert.Error(t, err)
}
