package identity

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")

	ErrRegisterFailed = errors.New("failed to register user")
	ErrUpdateFailed   = errors.New("failed to update user")
	ErrListFailed     = errors.New("failed to list users")
	ErrDeleteFailed   = errors.New("failed to delete user")
)
