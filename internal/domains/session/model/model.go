package model

// Session is the user currently signed in on this store.
type Session struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
