package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Article errors
	ErrArticleNotFound = errors.New("article not found")
	ErrSlugConflict    = errors.New("an article with this slug already exists")
	ErrNotArticleOwner = errors.New("you do not have permission to edit this article")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrGuestNotAllowed    = errors.New("guest users cannot perform this action")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUsernameTaken      = errors.New("username already taken")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")

	// Upload errors
	ErrFileMissing  = errors.New("no file provided")
	ErrFileType     = errors.New("invalid file type")
	ErrFileTooLarge = errors.New("file size exceeds the maximum allowed (5MB)")
)
