package domain

// IdentityClaim is the decoded payload of a verified identity token. It is
// produced at login, carried in the signed token, and reconstructed by the
// auth middleware on every request. Never persisted server-side.
type IdentityClaim struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}
