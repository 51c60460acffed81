package project

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidInput indicates invalid project input.
	ErrInvalidInput = errors.New("invalid project input")
	// ErrInvalidCategory indicates a category outside the enumeration.
	ErrInvalidCategory = errors.New("invalid project category")
	// ErrInvalidLink indicates a link without a label or a usable URL.
	ErrInvalidLink = errors.New("invalid project link")
	// ErrDuplicateProject indicates a project id already in use.
	ErrDuplicateProject = errors.New("project already exists")
	// ErrGeneratorUnavailable indicates no generative-text service is configured.
	ErrGeneratorUnavailable = errors.New("generative text service not configured")
	// ErrSourceUnavailable indicates no repository-hosting source is configured.
	ErrSourceUnavailable = errors.New("repository source not configured")
	// ErrInvalidBundle indicates an import bundle that could not be decoded.
	ErrInvalidBundle = errors.New("invalid project bundle")
)
