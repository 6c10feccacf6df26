package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Role constants
const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User is an employee account. Admins are users with RoleAdmin.
type User struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-"`
	EmployeeCode string     `json:"employeeCode"`
	Designation  string     `json:"designation"`
	Department   string     `json:"department"`
	Mobile       string     `json:"mobile"`
	Whatsapp     string     `json:"whatsapp"`
	Location     string     `json:"location"`
	Role         string     `json:"role" gorm:"default:employee;not null"`
	DOB          *time.Time `json:"dob" gorm:"type:date"`
	DOJ          *time.Time `json:"doj" gorm:"type:date"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// BeforeCreate assigns the id and normalizes email and role
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Prepare()
	return nil
}

// Prepare fills defaults shared by every store implementation
func (u *User) Prepare() {
	if u.ID == "" {
		u.ID = NewID()
	}
	u.Email = NormalizeEmail(u.Email)
	if u.Role == "" {
		u.Role = RoleEmployee
	}
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserSummary is the trimmed row returned by the user list
type UserSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	Mobile      string `json:"mobile"`
	Designation string `json:"designation"`
}

// EmployeeUpdate is a partial replace; nil fields are left untouched
type EmployeeUpdate struct {
	Name         *string    `json:"name"`
	Email        *string    `json:"email"`
	Designation  *string    `json:"designation"`
	Department   *string    `json:"department"`
	Mobile       *string    `json:"mobile"`
	Whatsapp     *string    `json:"whatsapp"`
	Location     *string    `json:"location"`
	EmployeeCode *string    `json:"employeeCode"`
	Role         *string    `json:"role"`
	DOB          *time.Time `json:"-"`
	DOJ          *time.Time `json:"-"`
}

// Columns returns the column/value pairs set on the update
func (u *EmployeeUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	set := func(col string, v *string) {
		if v != nil {
			cols[col] = *v
		}
	}
	set("name", u.Name)
	if u.Email != nil {
		cols["email"] = NormalizeEmail(*u.Email)
	}
	set("designation", u.Designation)
	set("department", u.Department)
	set("mobile", u.Mobile)
	set("whatsapp", u.Whatsapp)
	set("location", u.Location)
	set("employee_code", u.EmployeeCode)
	set("role", u.Role)
	if u.DOB != nil {
		cols["dob"] = *u.DOB
	}
	if u.DOJ != nil {
		cols["doj"] = *u.DOJ
	}
	return cols
}

// Apply copies the set fields onto an in-memory user
func (u *EmployeeUpdate) Apply(user *User) {
	assign := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	assign(&user.Name, u.Name)
	if u.Email != nil {
		user.Email = NormalizeEmail(*u.Email)
	}
	assign(&user.Designation, u.Designation)
	assign(&user.Department, u.Department)
	assign(&user.Mobile, u.Mobile)
	assign(&user.Whatsapp, u.Whatsapp)
	assign(&user.Location, u.Location)
	assign(&user.EmployeeCode, u.EmployeeCode)
	assign(&user.Role, u.Role)
	if u.DOB != nil {
		user.DOB = u.DOB
	}
	if u.DOJ != nil {
		user.DOJ = u.DOJ
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
