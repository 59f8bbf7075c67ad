package domain

import "errors"

var (
	// ErrInvalidEmail is returned when a registration email fails the shape check.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrEmptyName is returned when a registration name is blank.
	ErrEmptyName = errors.New("name must not be empty")
	// ErrNoQuestions indicates quiz content could not be loaded; the quiz cannot start.
	ErrNoQuestions = errors.New("no questions available")
	// ErrWrongState is returned when an operation does not apply to the current session state.
	ErrWrongState = errors.New("operation not allowed in current state")
	// ErrAlreadyAnswered is returned on a second answer to the same question.
	ErrAlreadyAnswered = errors.New("question already answered")
	// ErrOptionOutOfRange indicates a selected option index outside the question's options.
	ErrOptionOutOfRange = errors.New("option index out of range")
	// ErrSessionNotFound is returned by the backend when a session ID is unknown.
	ErrSessionNotFound = errors.New("quiz session not found")
)
