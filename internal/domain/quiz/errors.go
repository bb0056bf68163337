package quiz

import "errors"

var (
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrQuizNotPublished  = errors.New("quiz is not published")
	ErrUnknownQuestion   = errors.New("answer references an unknown question")
	ErrChoiceMismatch    = errors.New("choice does not belong to the question")
	ErrInvalidCorrectRef = errors.New("correct_index is out of range")
)
