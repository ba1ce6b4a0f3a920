package auth

import "errors"

var (
	// ErrNoToken indicates the request carried no authorization token.
	ErrNoToken = errors.New("authorization token missing")

	// ErrInvalidToken indicates the token is malformed, has an invalid
	// signature, or otherwise failed validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken indicates the token has expired.
	ErrExpiredToken = errors.New("token expired")
)
