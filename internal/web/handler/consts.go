package handler

const (
	// RootPath is the root path of the route group.
	RootPath = "/"

	// HeaderUserID carries the acting user's id, set by the fronting auth
	// proxy. Authentication itself is not handled here.
	HeaderUserID = "X-Callboard-User"

	// ErrNilACDFatalLogMsg is used if app or cfg or db var pointer is nil.
	ErrNilACDFatalLogMsg = "app, cfg or db is nil"

	// ErrMissingUser is returned when the acting user header is absent or invalid.
	ErrMissingUser = "Missing or invalid user header"
	// ErrInvalidBody is returned when the request body cannot be parsed.
	ErrInvalidBody = "Invalid request body"
)
