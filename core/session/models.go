package session

import (
	"time"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/DrumilPatell/sms-system/core"
)

// Role is a capability tag attached to a User. There is no hierarchy between
// roles; authorization is decided against explicit allow-sets per route.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleFaculty Role = "faculty"
	RoleStudent Role = "student"
)

var (
	AllRoles = []Role{RoleAdmin, RoleFaculty, RoleStudent}

	ErrUnknownRole = errors.New("unknown role")
)

func ParseRole(s string) (Role, error) {
	switch r := Role(core.CleanString(s, true /* lower */)); r {
	case RoleAdmin, RoleFaculty, RoleStudent:
		return r, nil
	default:
		return "", errors.Wrapf(ErrUnknownRole, "%q", s)
	}
}

func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

func (r Role) String() string { return string(r) }

// User is the authenticated profile as served by the backend's /auth/me.
type User struct {
	ID             int         `json:"id"`
	Email          string      `json:"email" validate:"required,email"`
	FullName       string      `json:"full_name" validate:"required"`
	Role           Role        `json:"role" validate:"required,role"`
	IsActive       bool        `json:"is_active"`
	ProfilePicture null.String `json:"profile_picture,omitempty"`
	OauthProvider  null.String `json:"oauth_provider,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

func (u *User) Validate() error {
	u.Email = core.CleanString(u.Email, true /* lower */)
	u.FullName = core.CleanString(u.FullName)
	return core.Validate.Struct(u)
}

// Session is the client-held record of the authenticated identity and its
// bearer credential. User and Token are set together or cleared together,
// never one without the other.
type Session struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

func (s Session) IsAuthenticated() bool {
	return s.User != nil && s.Token != ""
}
