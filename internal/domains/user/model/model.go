package model

const (
	EntityName = "user"
)

// User is an account in the users record. Email is stored case-folded and
// identifies the account.
type User struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
