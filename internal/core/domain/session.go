package domain

// Session is the authenticated identity plus credential. The zero value is
// the empty session; User and Token are either both set or both unset.
type Session struct {
	User  *User
	Token string
}

// Active reports whether the session holds an identity.
func (s Session) Active() bool {
	return s.User != nil && s.Token != ""
}

// NewSession returns the empty session unless both parts are present.
func NewSession(user *User, token string) Session {
	if user == nil || token == "" {
		return Session{}
	}
	u := *user
	return Session{User: &u, Token: token}
}
