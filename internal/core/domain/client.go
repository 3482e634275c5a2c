package domain

// Client is a customer owned by a user (UserEmail). Projects reference it by ID.
type Client struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	UserEmail string `json:"userEmail"`
	Phone     string `json:"phone"`
	Company   string `json:"company,omitempty"`
	Notes     string `json:"notes,omitempty"`
}
