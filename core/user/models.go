package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/shule/core"
)

// Roles
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleParent  = "parent"
)

var (
	AllRoles = []string{RoleAdmin, RoleTeacher, RoleParent}

	Roles = []Role{
		{Name: "Admin", Value: RoleAdmin},
		{Name: "Teacher", Value: RoleTeacher},
		{Name: "Parent", Value: RoleParent},
	}
)

// AdminRef is how other records point at an admin user.
var AdminRef = core.Reference{Field: "user_id", Entity: core.EntityUser, Role: RoleAdmin}

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(pwd))
}

func (u *User) IsAdmin() bool   { return u.Role == RoleAdmin }
func (u *User) IsTeacher() bool { return u.Role == RoleTeacher }
func (u *User) IsParent() bool  { return u.Role == RoleParent }

// NewUser contains information needed to create a new User.
type NewUser struct {
	Name     string `json:"name" yaml:"name" validate:"required,notblank"`
	Email    string `json:"email" yaml:"email" validate:"required,email"`
	Password string `json:"password" yaml:"password" validate:"required"`
	Role     string `json:"role" yaml:"role" validate:"required,oneof=admin teacher parent"`
}

func (nu *NewUser) Clean() {
	nu.Name = core.CleanString(nu.Name)
	nu.Email = core.CleanString(nu.Email, true /* lower */)
	nu.Role = core.CleanString(nu.Role, true /* lower */)
}

// UpdateUser defines what information may be provided to modify an existing User.
// nil fields are left untouched.
type UpdateUser struct {
	Name     *string `json:"name" validate:"omitempty,notblank"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin teacher parent"`
}

func (uu *UpdateUser) Clean() {
	core.CleanStringPtr(uu.Name)
	core.CleanStringPtr(uu.Email, true /* lower */)
	core.CleanStringPtr(uu.Role, true /* lower */)
}

func (uu UpdateUser) IsEmpty() bool {
	return uu.Name == nil && uu.Email == nil && uu.Password == nil && uu.Role == nil
}
