package handler

// resultsResponse is the standard success envelope for data-returning
// operations: {"results":[...]}.
type resultsResponse struct {
	Results any `json:"results"`
}

// tokenResponse is returned by login only.
type tokenResponse struct {
	Token string `json:"token"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// relationshipRequest names the other party of a relationship mutation.
type relationshipRequest struct {
	ID string `json:"id"`
}

// editProfileRequest carries the patchable profile fields. Any id in the
// body is ignored in favour of the authenticated caller's id; it is only
// bound so the ownership gate can inspect it.
type editProfileRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}
