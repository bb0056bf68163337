package quiz

import "time"

type Quiz struct {
	ID          string     `gorm:"column:id;primaryKey" json:"id"`
	Title       string     `gorm:"column:title" json:"title"`
	Description string     `gorm:"column:description" json:"description"`
	Published   bool       `gorm:"column:published" json:"published"`
	Questions   []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at" json:"updated_at"`
}

func (Quiz) TableName() string { return "quizzes" }

// Question keys its correct answer by choice id so reordering choices
// never silently changes the answer.
type Question struct {
	ID              string   `gorm:"column:id;primaryKey" json:"id"`
	QuizID          string   `gorm:"column:quiz_id;index" json:"quiz_id"`
	Text            string   `gorm:"column:text" json:"text"`
	Position        int      `gorm:"column:position" json:"position"`
	CorrectChoiceID string   `gorm:"column:correct_choice_id" json:"-"`
	Choices         []Choice `gorm:"foreignKey:QuestionID" json:"choices,omitempty"`
}

func (Question) TableName() string { return "quiz_questions" }

type Choice struct {
	ID         string `gorm:"column:id;primaryKey" json:"id"`
	QuestionID string `gorm:"column:question_id;index" json:"question_id"`
	Text       string `gorm:"column:text" json:"text"`
	Position   int    `gorm:"column:position" json:"position"`
}

func (Choice) TableName() string { return "quiz_choices" }

// Attempt is one submission of a quiz by a user. Score is a percentage
// rounded to the nearest integer.
type Attempt struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	QuizID    string    `gorm:"column:quiz_id;index" json:"quiz_id"`
	Quiz      *Quiz     `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
	UserID    string    `gorm:"column:user_id;index" json:"user_id"`
	Score     int       `gorm:"column:score" json:"score"`
	Answers   []Answer  `gorm:"foreignKey:AttemptID" json:"answers,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Attempt) TableName() string { return "quiz_attempts" }

type Answer struct {
	ID         string `gorm:"column:id;primaryKey" json:"id"`
	AttemptID  string `gorm:"column:attempt_id;index" json:"attempt_id"`
	QuestionID string `gorm:"column:question_id" json:"question_id"`
	ChoiceID   string `gorm:"column:choice_id" json:"choice_id"`
	Correct    bool   `gorm:"column:correct" json:"correct"`
}

func (Answer) TableName() string { return "quiz_answers" }
