package auth

import "github.com/google/uuid"

// Authorize is the ownership half of the authorization pipeline. Identity
// resolution (token → user id) happens in the auth middleware; handlers that
// mutate an owned resource call Authorize with the resolved actor and the
// resource's owner field.
func Authorize(actor, owner uuid.UUID) error {
	if actor != owner {
		return ErrForbidden
	}
	return nil
}
