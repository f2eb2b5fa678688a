package services

import "errors"

// Grading and review failures. Handlers map these to HTTP statuses; the
// message is what the client sees.
var (
	ErrQuizNotAvailable    = errors.New("quiz is not available")
	ErrDuplicateSubmission = errors.New("quiz has already been attempted")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrAnswerNotFound      = errors.New("answer not found in result")
	ErrInvalidQuestionType = errors.New("only text questions can be marked manually")
)
