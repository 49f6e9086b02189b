package entity

// SessionRequest carries the identity asserted by the upstream identity provider.
type SessionRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
	Photo string `json:"photo"`
}

// EmailURI binds an :email path parameter.
type EmailURI struct {
	Email string `uri:"email" binding:"required,email"`
}

// IDURI binds an :id path parameter.
type IDURI struct {
	ID string `uri:"id" binding:"required"`
}
