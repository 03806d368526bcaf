package response

import "accountd/internal/core/domain/user"

// User is the public projection of an account record. The password hash
// and reset token fields are never rendered.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) FromDomainUser(du user.User) {
	u.ID = int64(du.ID)
	u.Username = string(du.Username)
	u.Email = string(du.Email)
}
