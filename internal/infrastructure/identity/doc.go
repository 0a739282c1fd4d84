// Package identity implements token issuing and verification, password
// hashing and login throttling for the account domain.
package identity
