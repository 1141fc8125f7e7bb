package domain

// User is an account allowed to log in. Users are seed data only; there is
// no registration endpoint. Password holds either a bcrypt hash or a legacy
// plaintext value (see service.AuthService).
type User struct {
	Username string `json:"username"`
	Password string `json:"-"`
}
