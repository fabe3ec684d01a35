package auth

const (
	RoleAdmin  = "ADMIN"
	RoleEditor = "EDITOR"
)

// User is an account allowed to manage establishments and deals.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"-"`
	Role     string `json:"role"`
}
