package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyUsername = errors.New("username is required")
	ErrEmptyPassword = errors.New("password is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrWeakPassword  = errors.New("password must be at least 4 characters")
	ErrUnknownRole   = errors.New("unknown account role")
)

// Role determines which side of the appointment negotiation an account acts
// on. SuperAdmins can act on behalf of either side.
type Role string

const (
	RolePetOwner   Role = "pet_owner"
	RoleVet        Role = "vet"
	RoleSuperAdmin Role = "super_admin"
)

// ParseRole validates an account role.
func ParseRole(value string) (Role, error) {
	switch Role(value) {
	case RolePetOwner, RoleVet, RoleSuperAdmin:
		return Role(value), nil
	default:
		return "", ErrUnknownRole
	}
}

// User is a clinic account. SubjectID points at the vet or pet-owner record
// the account acts as; it is zero for super admins.
type User struct {
	ID        int64
	Username  string
	Password  string
	Role      Role
	SubjectID int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// NewUser builds a user ensuring required invariants.
func NewUser(id int64, username, password string, role Role) (*User, error) {
	user := &User{ID: id}
	if err := user.SetUsername(username); err != nil {
		return nil, err
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := user.SetRole(role); err != nil {
		return nil, err
	}
	return user, nil
}

// SetUsername trims and validates the username.
func (u *User) SetUsername(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrEmptyUsername
	}
	u.Username = username
	return nil
}

// SetPassword validates basic password strength.
func (u *User) SetPassword(password string) error {
	password = strings.TrimSpace(password)
	if password == "" {
		return ErrEmptyPassword
	}
	if len(password) < 4 {
		return ErrWeakPassword
	}
	u.Password = password
	return nil
}

// SetRole validates and applies the account role.
func (u *User) SetRole(role Role) error {
	parsed, err := ParseRole(string(role))
	if err != nil {
		return err
	}
	u.Role = parsed
	return nil
}

// UpdateProfile applies optional profile fields and validates email if present.
func (u *User) UpdateProfile(firstName, lastName, email, phone string) error {
	u.FirstName = strings.TrimSpace(firstName)
	u.LastName = strings.TrimSpace(lastName)
	email = strings.TrimSpace(email)
	if email != "" && !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	u.Phone = strings.TrimSpace(phone)
	return nil
}

// CheckPassword compares the stored password with the supplied credentials.
func (u *User) CheckPassword(password string) bool {
	return strings.TrimSpace(password) != "" && u.Password == strings.TrimSpace(password)
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.SetUsername(u.Username); err != nil {
		return err
	}
	if err := u.SetPassword(u.Password); err != nil {
		return err
	}
	if err := u.SetRole(u.Role); err != nil {
		return err
	}
	return u.UpdateProfile(u.FirstName, u.LastName, u.Email, u.Phone)
}
