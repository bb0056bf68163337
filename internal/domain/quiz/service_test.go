package quiz

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, q *Quiz) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id string) (*Quiz, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Quiz), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, q *Quiz) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, f Filters) ([]Quiz, int64, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Quiz), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) CreateAttempt(ctx context.Context, a *Attempt) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockRepository) ListAttemptsByUser(ctx context.Context, userID string) ([]Attempt, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Attempt), args.Error(1)
}

func (m *MockRepository) Stats(ctx context.Context, quizID string) (int64, float64, error) {
	args := m.Called(ctx, quizID)
	return args.Get(0).(int64), args.Get(1).(float64), args.Error(2)
}

func threeQuestionQuiz() *Quiz {
	q := &Quiz{ID: "q1", Title: "Civics", Published: true}
	for i, correct := range []string{"c1b", "c2a", "c3a"} {
		question := Question{
			ID:              []string{"q1-1", "q1-2", "q1-3"}[i],
			QuizID:          q.ID,
			Position:        i,
			CorrectChoiceID: correct,
		}
		prefix := []string{"c1", "c2", "c3"}[i]
		question.Choices = []Choice{
			{ID: prefix + "a", QuestionID: question.ID, Position: 0},
			{ID: prefix + "b", QuestionID: question.ID, Position: 1},
		}
		q.Questions = append(q.Questions, question)
	}
	return q
}

func TestService_Create_LinksCorrectChoice(t *testing.T) {
	repo := new(MockRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo)
	q, err := svc.Create(context.Background(), CreateQuizRequest{
		Title: "Civics",
		Questions: []CreateQuestionRequest{
			{
				Text:         "Capital?",
				Choices:      []CreateChoiceRequest{{Text: "Lyon"}, {Text: "Paris"}},
				CorrectIndex: 1,
			},
		},
	})

	require.NoError(t, err)
	require.Len(t, q.Questions, 1)
	require.Len(t, q.Questions[0].Choices, 2)
	assert.Equal(t, q.Questions[0].Choices[1].ID, q.Questions[0].CorrectChoiceID)
	assert.Equal(t, q.ID, q.Questions[0].QuizID)
	repo.AssertExpectations(t)
}

func TestService_Create_CorrectIndexOutOfRange(t *testing.T) {
	repo := new(MockRepository)

	svc := NewService(repo)
	_, err := svc.Create(context.Background(), CreateQuizRequest{
		Title: "Civics",
		Questions: []CreateQuestionRequest{
			{
				Text:         "Capital?",
				Choices:      []CreateChoiceRequest{{Text: "Lyon"}, {Text: "Paris"}},
				CorrectIndex: 2,
			},
		},
	})

	assert.ErrorIs(t, err, ErrInvalidCorrectRef)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_Submit_ScoresAndPersists(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "q1").Return(threeQuestionQuiz(), nil)
	var saved *Attempt
	repo.On("CreateAttempt", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		saved = args.Get(1).(*Attempt)
	}).Return(nil)

	svc := NewService(repo)
	result, err := svc.Submit(context.Background(), "q1", "user-1", SubmitRequest{
		Answers: []SubmitAnswer{
			{QuestionID: "q1-1", ChoiceID: "c1b"}, // correct
			{QuestionID: "q1-2", ChoiceID: "c2b"}, // wrong
			{QuestionID: "q1-3", ChoiceID: "c3a"}, // correct
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Correct)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 67, result.Score) // round(2/3*100)

	require.NotNil(t, saved)
	assert.Equal(t, "user-1", saved.UserID)
	assert.Equal(t, 67, saved.Score)
	require.Len(t, saved.Answers, 3)
	assert.True(t, saved.Answers[0].Correct)
	assert.False(t, saved.Answers[1].Correct)
}

func TestService_Submit_UnansweredCountsAsWrong(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "q1").Return(threeQuestionQuiz(), nil)
	repo.On("CreateAttempt", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo)
	result, err := svc.Submit(context.Background(), "q1", "user-1", SubmitRequest{
		Answers: []SubmitAnswer{{QuestionID: "q1-1", ChoiceID: "c1b"}},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, result.Correct)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 33, result.Score)
}

func TestService_Submit_RejectsForeignChoice(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "q1").Return(threeQuestionQuiz(), nil)

	svc := NewService(repo)
	_, err := svc.Submit(context.Background(), "q1", "user-1", SubmitRequest{
		Answers: []SubmitAnswer{{QuestionID: "q1-1", ChoiceID: "c2a"}},
	})

	assert.ErrorIs(t, err, ErrChoiceMismatch)
	repo.AssertNotCalled(t, "CreateAttempt", mock.Anything, mock.Anything)
}

func TestService_Submit_DraftQuizHidden(t *testing.T) {
	repo := new(MockRepository)
	draft := threeQuestionQuiz()
	draft.Published = false
	repo.On("GetByID", mock.Anything, "q1").Return(draft, nil)

	svc := NewService(repo)
	_, err := svc.Submit(context.Background(), "q1", "user-1", SubmitRequest{
		Answers: []SubmitAnswer{{QuestionID: "q1-1", ChoiceID: "c1b"}},
	})

	assert.ErrorIs(t, err, ErrQuizNotFound)
}

func TestService_QuizStats(t *testing.T) {
	repo := new(MockRepository)
	repo.On("GetByID", mock.Anything, "q1").Return(threeQuestionQuiz(), nil)
	repo.On("Stats", mock.Anything, "q1").Return(int64(4), 72.5, nil)

	svc := NewService(repo)
	stats, err := svc.QuizStats(context.Background(), "q1")

	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.AttemptCount)
	assert.InDelta(t, 72.5, stats.AverageScore, 0.001)
}

func TestService_UserResults_IncludesQuizTitle(t *testing.T) {
	repo := new(MockRepository)
	repo.On("ListAttemptsByUser", mock.Anything, "user-1").Return([]Attempt{
		{ID: "a1", QuizID: "q1", Score: 80, Quiz: &Quiz{ID: "q1", Title: "Civics"}},
	}, nil)

	svc := NewService(repo)
	results, err := svc.UserResults(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Civics", results[0].QuizTitle)
	assert.Equal(t, 80, results[0].Score)
}
