package token

import "errors"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrUnsupported  = errors.New("unsupported signing algorithm")
)
