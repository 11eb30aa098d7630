package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrTagExists          = errors.New("tag already exists")
	ErrTagInUse           = errors.New("tag is in use")
	ErrEmailTaken         = errors.New("email already in use")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrMalformedTags      = errors.New("malformed tags parameter")
)

// NotFoundError names the missing resource; errors.Is matches ErrNotFound
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// TagInUseError reports how many posts still reference a tag
type TagInUseError struct {
	Tag   string
	Count int
}

func (e *TagInUseError) Error() string {
	return fmt.Sprintf("Cannot delete tag %q: it is used by %d post(s)", e.Tag, e.Count)
}

func (e *TagInUseError) Is(target error) bool {
	return target == ErrTagInUse
}
