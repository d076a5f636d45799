package board

// User is a registered account, identified by nickname. Passwords are
// opaque strings compared verbatim; the online flag is transient and is
// forced to false whenever state is restored from disk.
type User struct {
	Nickname string `json:"nickname"`
	Password string `json:"password"`
	Online   bool   `json:"online"`
}

// NewUser creates an offline user.
func NewUser(nickname, password string) *User {
	return &User{Nickname: nickname, Password: password}
}

// Public returns a copy of the user with the password blanked, suitable for
// snapshots pushed to subscribers.
func (u *User) Public() User {
	return User{Nickname: u.Nickname, Online: u.Online}
}
