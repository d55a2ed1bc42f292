package ports

import "context"

// TokenStore is the authoritative mapping of opaque bearer tokens to user
// identities. A token is valid exactly as long as its mapping exists.
type TokenStore interface {
	// Issue generates an unguessable opaque token bound to userID and
	// persists the mapping.
	Issue(ctx context.Context, userID int64) (string, error)
	// Validate resolves a presented token back to a user id. Absent,
	// malformed or revoked tokens yield domain.ErrUnauthenticated.
	Validate(ctx context.Context, token string) (int64, error)
	// Revoke deletes the mapping. Revoking an absent token is not an error.
	Revoke(ctx context.Context, token string) error
}
