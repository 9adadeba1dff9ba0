package types

const (
	ContextUserKey    = "user"
	ContextRequestKey = "request_id"

	TokenCookieName = "token"
)

const (
	StatusActive    = "Active"
	StatusCompleted = "Completed"
)
