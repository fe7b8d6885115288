package mapper

import (
	"github.com/vetlink/vetlink-api/internal/domains/accounts/domain"
)

// MutationUser is the wire form used to create or update an account.
type MutationUser struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	SubjectID int64  `json:"subjectId,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// UserView is the wire form of an account; credentials never leave the server.
type UserView struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	SubjectID int64  `json:"subjectId,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// LoginView carries the issued session token.
type LoginView struct {
	Token string `json:"token"`
}

// ToUser converts the wire payload to a domain user.
func ToUser(payload MutationUser) (*domain.User, error) {
	user, err := domain.NewUser(0, payload.Username, payload.Password, domain.Role(payload.Role))
	if err != nil {
		return nil, err
	}
	user.SubjectID = payload.SubjectID
	if err := user.UpdateProfile(payload.FirstName, payload.LastName, payload.Email, payload.Phone); err != nil {
		return nil, err
	}
	return user, nil
}

// FromUser converts a domain user to its wire form.
func FromUser(user *domain.User) UserView {
	return UserView{
		ID:        user.ID,
		Username:  user.Username,
		Role:      string(user.Role),
		SubjectID: user.SubjectID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Phone:     user.Phone,
	}
}

// FromUserList converts domain users to their wire form.
func FromUserList(users []*domain.User) []UserView {
	views := make([]UserView, 0, len(users))
	for _, user := range users {
		views = append(views, FromUser(user))
	}
	return views
}
