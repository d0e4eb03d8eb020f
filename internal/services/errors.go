package services

import "errors"

// Business-rule errors surfaced to the transport layer. Handlers map
// these to HTTP status codes; anything else is an infrastructure
// failure and becomes a 500.
var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidVote        = errors.New("vote type must be upvote or downvote")
)
