package services

import "errors"

var (
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUpstream       = errors.New("upstream provider error")
	ErrNotFound       = errors.New("not found")
)
