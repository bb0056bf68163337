package quiz

import (
	"context"
	"math"

	"github.com/google/uuid"

	"cityportal/internal/pkg/pagination"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create builds the full quiz graph with generated ids so the correct
// choice can be referenced before anything is persisted, then inserts
// it in one transaction.
func (s *Service) Create(ctx context.Context, req CreateQuizRequest) (*Quiz, error) {
	q := &Quiz{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Published:   req.Published,
	}

	for qi, qr := range req.Questions {
		if qr.CorrectIndex < 0 || qr.CorrectIndex >= len(qr.Choices) {
			return nil, ErrInvalidCorrectRef
		}

		question := Question{
			ID:       uuid.NewString(),
			QuizID:   q.ID,
			Text:     qr.Text,
			Position: qi,
		}
		for ci, cr := range qr.Choices {
			choice := Choice{
				ID:         uuid.NewString(),
				QuestionID: question.ID,
				Text:       cr.Text,
				Position:   ci,
			}
			if ci == qr.CorrectIndex {
				question.CorrectChoiceID = choice.ID
			}
			question.Choices = append(question.Choices, choice)
		}
		q.Questions = append(q.Questions, question)
	}

	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (*Quiz, error) {
	return s.repo.GetByID(ctx, id)
}

// GetPublished is the member-facing read; drafts stay invisible.
func (s *Service) GetPublished(ctx context.Context, id string) (*Quiz, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !q.Published {
		return nil, ErrQuizNotFound
	}
	return q, nil
}

func (s *Service) List(ctx context.Context, q SearchQuery) ([]Quiz, pagination.Meta, error) {
	q.Normalize()

	quizzes, total, err := s.repo.List(ctx, Filters{
		Search:    q.Search,
		Published: q.Published,
		Limit:     q.Limit,
		Offset:    q.Skip(),
	})
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return quizzes, q.Meta(total), nil
}

func (s *Service) Update(ctx context.Context, id string, req UpdateQuizRequest) (*Quiz, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		q.Title = *req.Title
	}
	if req.Description != nil {
		q.Description = *req.Description
	}
	if req.Published != nil {
		q.Published = *req.Published
	}
	if err := s.repo.Update(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// Submit grades a member's answers against the stored correct choices.
// Unanswered questions count as wrong; the score is the percentage of
// correct answers rounded to the nearest integer.
func (s *Service) Submit(ctx context.Context, quizID, userID string, req SubmitRequest) (*SubmitResponse, error) {
	q, err := s.GetPublished(ctx, quizID)
	if err != nil {
		return nil, err
	}

	questions := make(map[string]*Question, len(q.Questions))
	for i := range q.Questions {
		questions[q.Questions[i].ID] = &q.Questions[i]
	}

	attempt := &Attempt{
		ID:     uuid.NewString(),
		QuizID: q.ID,
		UserID: userID,
	}

	correct := 0
	results := make([]AnswerResult, 0, len(req.Answers))
	for _, ans := range req.Answers {
		question, ok := questions[ans.QuestionID]
		if !ok {
			return nil, ErrUnknownQuestion
		}
		if !hasChoice(question, ans.ChoiceID) {
			return nil, ErrChoiceMismatch
		}

		isCorrect := ans.ChoiceID == question.CorrectChoiceID
		if isCorrect {
			correct++
		}
		attempt.Answers = append(attempt.Answers, Answer{
			ID:         uuid.NewString(),
			AttemptID:  attempt.ID,
			QuestionID: ans.QuestionID,
			ChoiceID:   ans.ChoiceID,
			Correct:    isCorrect,
		})
		results = append(results, AnswerResult{
			QuestionID:      ans.QuestionID,
			ChoiceID:        ans.ChoiceID,
			Correct:         isCorrect,
			CorrectChoiceID: question.CorrectChoiceID,
		})
	}

	total := len(q.Questions)
	attempt.Score = int(math.Round(float64(correct) / float64(total) * 100))

	if err := s.repo.CreateAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	return &SubmitResponse{
		AttemptID: attempt.ID,
		QuizID:    q.ID,
		Score:     attempt.Score,
		Correct:   correct,
		Total:     total,
		Answers:   results,
	}, nil
}

func (s *Service) UserResults(ctx context.Context, userID string) ([]AttemptSummary, error) {
	attempts, err := s.repo.ListAttemptsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]AttemptSummary, 0, len(attempts))
	for _, a := range attempts {
		sum := AttemptSummary{
			ID:        a.ID,
			QuizID:    a.QuizID,
			Score:     a.Score,
			CreatedAt: a.CreatedAt,
		}
		if a.Quiz != nil {
			sum.QuizTitle = a.Quiz.Title
		}
		summaries = append(summaries, sum)
	}
	return summaries, nil
}

func (s *Service) QuizStats(ctx context.Context, quizID string) (*Stats, error) {
	if _, err := s.repo.GetByID(ctx, quizID); err != nil {
		return nil, err
	}
	count, avg, err := s.repo.Stats(ctx, quizID)
	if err != nil {
		return nil, err
	}
	return &Stats{QuizID: quizID, AttemptCount: count, AverageScore: avg}, nil
}

func hasChoice(q *Question, choiceID string) bool {
	for _, c := range q.Choices {
		if c.ID == choiceID {
			return true
		}
	}
	return false
}
