package quiz

import (
	"time"

	"cityportal/internal/pkg/pagination"
)

type CreateChoiceRequest struct {
	Text string `json:"text" validate:"required"`
}

type CreateQuestionRequest struct {
	Text         string                `json:"text" validate:"required"`
	Choices      []CreateChoiceRequest `json:"choices" validate:"required,min=2,dive"`
	CorrectIndex int                   `json:"correct_index" validate:"gte=0"`
}

type CreateQuizRequest struct {
	Title       string                  `json:"title" validate:"required"`
	Description string                  `json:"description"`
	Published   bool                    `json:"published"`
	Questions   []CreateQuestionRequest `json:"questions" validate:"required,min=1,dive"`
}

type UpdateQuizRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Published   *bool   `json:"published"`
}

type SearchQuery struct {
	pagination.Query
	Published *bool `form:"published"`
}

type SubmitAnswer struct {
	QuestionID string `json:"question_id" validate:"required"`
	ChoiceID   string `json:"choice_id" validate:"required"`
}

type SubmitRequest struct {
	Answers []SubmitAnswer `json:"answers" validate:"required,min=1,dive"`
}

type AnswerResult struct {
	QuestionID      string `json:"question_id"`
	ChoiceID        string `json:"choice_id"`
	Correct         bool   `json:"correct"`
	CorrectChoiceID string `json:"correct_choice_id"`
}

type SubmitResponse struct {
	AttemptID string         `json:"attempt_id"`
	QuizID    string         `json:"quiz_id"`
	Score     int            `json:"score"`
	Correct   int            `json:"correct"`
	Total     int            `json:"total"`
	Answers   []AnswerResult `json:"answers"`
}

// Stats aggregates the attempts of one quiz.
type Stats struct {
	QuizID       string  `json:"quiz_id"`
	AttemptCount int64   `json:"attempt_count"`
	AverageScore float64 `json:"average_score"`
}

type AttemptSummary struct {
	ID        string    `json:"id"`
	QuizID    string    `json:"quiz_id"`
	QuizTitle string    `json:"quiz_title"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}
