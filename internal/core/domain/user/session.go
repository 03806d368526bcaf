package user

// SessionToken is a signed, time-bounded credential proving a successful
// login, carried by the client in a cookie.
type SessionToken string

type SessionTokenIssuer interface {
	IssueToken(userID ID) (SessionToken, error)
}
