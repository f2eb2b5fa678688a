package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"quizportal_backend/models"
)

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func makeQuiz(total, passing float64) models.Quiz {
	return models.Quiz{
		ID:           uuid.New(),
		Title:        "Unit Test Quiz",
		TotalMarks:   total,
		PassingMarks: passing,
		StartDate:    now.Add(-time.Hour),
		ExpiryDate:   now.Add(time.Hour),
		IsActive:     true,
	}
}

func mcqQuestion(marks float64, correct string, wrong ...string) models.Question {
	opts := []models.QuestionOption{{OptionText: correct, IsCorrect: true}}
	for _, w := range wrong {
		opts = append(opts, models.QuestionOption{OptionText: w})
	}
	return models.Question{
		ID:           uuid.New(),
		QuestionType: models.QuestionTypeMCQ,
		QuestionText: "pick one",
		Options:      datatypes.NewJSONType(opts),
		Marks:        marks,
	}
}

func trueFalseQuestion(marks float64, answerIsTrue bool) models.Question {
	q := models.Question{
		ID:           uuid.New(),
		QuestionType: models.QuestionTypeTrueFalse,
		QuestionText: "true or false",
		Marks:        marks,
	}
	q.Options = datatypes.NewJSONType([]models.QuestionOption{
		{OptionText: "True", IsCorrect: answerIsTrue},
		{OptionText: "False", IsCorrect: !answerIsTrue},
	})
	return q
}

func textQuestion(marks float64) models.Question {
	return models.Question{
		ID:           uuid.New(),
		QuestionType: models.QuestionTypeText,
		QuestionText: "explain",
		Marks:        marks,
	}
}

func resultFrom(quiz models.Quiz, graded GradedSubmission) models.Result {
	return models.Result{
		ID:                  uuid.New(),
		UserID:              uuid.New(),
		QuizID:              quiz.ID,
		Answers:             graded.Answers,
		TotalMarks:          graded.TotalMarks,
		ObtainedMarks:       graded.ObtainedMarks,
		Percentage:          graded.Percentage,
		IsPassed:            graded.IsPassed,
		ManualReviewPending: graded.ManualReviewPending,
		ReviewStatus:        models.ReviewStatusPending,
		SubmittedAt:         now,
	}
}

func TestGradeSubmission_AllMCQ(t *testing.T) {
	quiz := makeQuiz(100, 40)
	q1 := mcqQuestion(50, "Paris", "London", "Berlin")
	q2 := mcqQuestion(50, "4", "5")
	questions := []models.Question{q1, q2}

	graded, err := GradeSubmission(quiz, questions, []SubmittedAnswer{
		{QuestionID: q1.ID, SelectedAnswer: "Paris"},
		{QuestionID: q2.ID, SelectedAnswer: "5"},
	}, now)
	require.NoError(t, err)

	require.Equal(t, 50.0, graded.ObtainedMarks)
	require.Equal(t, 100.0, graded.TotalMarks)
	require.Equal(t, 50.0, graded.Percentage)
	require.True(t, graded.IsPassed)
	require.False(t, graded.ManualReviewPending)

	require.Len(t, graded.Answers, 2)
	require.NotNil(t, graded.Answers[0].IsCorrect)
	require.True(t, *graded.Answers[0].IsCorrect)
	require.Equal(t, 50.0, graded.Answers[0].MarksObtained)
	require.NotNil(t, graded.Answers[1].IsCorrect)
	require.False(t, *graded.Answers[1].IsCorrect)
	require.Equal(t, 0.0, graded.Answers[1].MarksObtained)
}

func TestGradeSubmission_MatchIsExactAndCaseSensitive(t *testing.T) {
	quiz := makeQuiz(10, 5)
	q := mcqQuestion(10, "Paris", "London")

	graded, err := GradeSubmission(quiz, []models.Question{q}, []SubmittedAnswer{
		{QuestionID: q.ID, SelectedAnswer: "paris"},
	}, now)
	require.NoError(t, err)
	require.Equal(t, 0.0, graded.ObtainedMarks)
	require.False(t, *graded.Answers[0].IsCorrect)
}

func TestGradeSubmission_TrueFalse(t *testing.T) {
	quiz := makeQuiz(10, 5)
	q := trueFalseQuestion(10, false)

	graded, err := GradeSubmission(quiz, []models.Question{q}, []SubmittedAnswer{
		{QuestionID: q.ID, SelectedAnswer: "False"},
	}, now)
	require.NoError(t, err)
	require.Equal(t, 10.0, graded.ObtainedMarks)
	require.True(t, graded.IsPassed)
}

func TestGradeSubmission_TextAnswerGoesToManualReview(t *testing.T) {
	quiz := makeQuiz(100, 40)
	mcq := mcqQuestion(50, "A", "B")
	text := textQuestion(50)
	questions := []models.Question{mcq, text}

	graded, err := GradeSubmission(quiz, questions, []SubmittedAnswer{
		{QuestionID: mcq.ID, SelectedAnswer: "A"},
		{QuestionID: text.ID, TypedAnswer: "a long explanation"},
	}, now)
	require.NoError(t, err)

	require.Equal(t, 50.0, graded.ObtainedMarks)
	require.True(t, graded.ManualReviewPending)
	require.Equal(t, 50.0, graded.Percentage)

	textAns := graded.Answers[1]
	require.Nil(t, textAns.IsCorrect)
	require.Equal(t, 0.0, textAns.MarksObtained)
	require.True(t, textAns.RequiresManualReview)
	require.Equal(t, "a long explanation", textAns.TypedAnswer)
	require.Equal(t, "a long explanation", textAns.SelectedAnswer)
}

func TestGradeSubmission_UnknownQuestionIDDropped(t *testing.T) {
	quiz := makeQuiz(10, 5)
	q := mcqQuestion(10, "A", "B")

	graded, err := GradeSubmission(quiz, []models.Question{q}, []SubmittedAnswer{
		{QuestionID: q.ID, SelectedAnswer: "A"},
		{QuestionID: uuid.New(), SelectedAnswer: "A"},
	}, now)
	require.NoError(t, err)
	require.Len(t, graded.Answers, 1)
	require.Equal(t, 10.0, graded.ObtainedMarks)
}

func TestGradeSubmission_Availability(t *testing.T) {
	q := mcqQuestion(10, "A", "B")
	answers := []SubmittedAnswer{{QuestionID: q.ID, SelectedAnswer: "A"}}

	tests := []struct {
		name   string
		mutate func(*models.Quiz)
		wantOK bool
	}{
		{name: "active inside window", mutate: func(*models.Quiz) {}, wantOK: true},
		{name: "inactive", mutate: func(q *models.Quiz) { q.IsActive = false }},
		{name: "expired", mutate: func(q *models.Quiz) { q.ExpiryDate = now.Add(-time.Minute) }},
		{name: "not started", mutate: func(q *models.Quiz) { q.StartDate = now.Add(time.Minute) }},
		{name: "zero bounds skipped", mutate: func(q *models.Quiz) {
			q.StartDate = time.Time{}
			q.ExpiryDate = time.Time{}
		}, wantOK: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			quiz := makeQuiz(10, 5)
			tc.mutate(&quiz)
			graded, err := GradeSubmission(quiz, []models.Question{q}, answers, now)
			if tc.wantOK {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrQuizNotAvailable)
			require.Empty(t, graded.Answers)
		})
	}
}

func TestGradeSubmission_TotalMarksFallback(t *testing.T) {
	quiz := makeQuiz(0, 10)
	q1 := mcqQuestion(10, "A", "B")
	q2 := mcqQuestion(10, "C", "D")
	questions := []models.Question{q1, q2}

	graded, err := GradeSubmission(quiz, questions, []SubmittedAnswer{
		{QuestionID: q1.ID, SelectedAnswer: "A"},
		{QuestionID: q2.ID, SelectedAnswer: "C"},
	}, now)
	require.NoError(t, err)
	require.Equal(t, 20.0, graded.TotalMarks)
	require.Equal(t, 100.0, graded.Percentage)
	require.True(t, graded.IsPassed)
}

func TestGradeSubmission_DeterministicAndOrderInsensitive(t *testing.T) {
	quiz := makeQuiz(100, 40)
	q1 := mcqQuestion(50, "A", "B")
	q2 := mcqQuestion(30, "C", "D")
	q3 := textQuestion(20)
	questions := []models.Question{q1, q2, q3}

	answers := []SubmittedAnswer{
		{QuestionID: q1.ID, SelectedAnswer: "A"},
		{QuestionID: q2.ID, SelectedAnswer: "D"},
		{QuestionID: q3.ID, TypedAnswer: "essay"},
	}
	reversed := []SubmittedAnswer{answers[2], answers[1], answers[0]}

	first, err := GradeSubmission(quiz, questions, answers, now)
	require.NoError(t, err)
	second, err := GradeSubmission(quiz, questions, answers, now)
	require.NoError(t, err)
	shuffled, err := GradeSubmission(quiz, questions, reversed, now)
	require.NoError(t, err)

	require.Equal(t, first.ObtainedMarks, second.ObtainedMarks)
	require.Equal(t, first.Percentage, second.Percentage)
	require.Equal(t, first.IsPassed, second.IsPassed)

	require.Equal(t, first.ObtainedMarks, shuffled.ObtainedMarks)
	require.Equal(t, first.Percentage, shuffled.Percentage)
	require.Equal(t, first.ManualReviewPending, shuffled.ManualReviewPending)
}

func TestClampMarks(t *testing.T) {
	tests := []struct {
		name    string
		awarded float64
		max     float64
		want    float64
	}{
		{name: "within range", awarded: 7.5, max: 10, want: 7.5},
		{name: "negative clamps to zero", awarded: -3, max: 10, want: 0},
		{name: "over max clamps to max", awarded: 200, max: 10, want: 10},
		{name: "rounds to two decimals", awarded: 3.14159, max: 10, want: 3.14},
		{name: "rounds half up", awarded: 6.666, max: 10, want: 6.67},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, ClampMarks(tc.awarded, tc.max))
		})
	}
}

func TestApplyManualMark_ReconcilesAggregates(t *testing.T) {
	quiz := makeQuiz(100, 40)
	mcq := mcqQuestion(50, "A", "B")
	text := textQuestion(50)
	questions := []models.Question{mcq, text}

	graded, err := GradeSubmission(quiz, questions, []SubmittedAnswer{
		{QuestionID: mcq.ID, SelectedAnswer: "A"},
		{QuestionID: text.ID, TypedAnswer: "essay"},
	}, now)
	require.NoError(t, err)

	result := resultFrom(quiz, graded)
	require.True(t, result.ManualReviewPending)

	err = ApplyManualMark(&result, quiz, text, questions, 30)
	require.NoError(t, err)

	require.Equal(t, 80.0, result.ObtainedMarks)
	require.Equal(t, 80.0, result.Percentage)
	require.True(t, result.IsPassed)
	require.False(t, result.ManualReviewPending)

	marked := result.Answers[1]
	require.Equal(t, 30.0, marked.MarksObtained)
	require.False(t, marked.RequiresManualReview)
	require.Nil(t, marked.IsCorrect)
}

func TestApplyManualMark_ClampInvariant(t *testing.T) {
	for _, awarded := range []float64{-10, 0, 25, 49.999, 50, 80, 1e9} {
		quiz := makeQuiz(50, 20)
		text := textQuestion(50)
		questions := []models.Question{text}

		graded, err := GradeSubmission(quiz, questions, []SubmittedAnswer{
			{QuestionID: text.ID, TypedAnswer: "essay"},
		}, now)
		require.NoError(t, err)

		result := resultFrom(quiz, graded)
		require.NoError(t, ApplyManualMark(&result, quiz, text, questions, awarded))

		got := result.Answers[0].MarksObtained
		require.GreaterOrEqual(t, got, 0.0)
		require.LessOrEqual(t, got, text.Marks)
	}
}

func TestApplyManualMark_RejectsObjectiveQuestion(t *testing.T) {
	quiz := makeQuiz(50, 20)
	mcq := mcqQuestion(50, "A", "B")
	questions := []models.Question{mcq}

	graded, err := GradeSubmission(quiz, questions, []SubmittedAnswer{
		{QuestionID: mcq.ID, SelectedAnswer: "A"},
	}, now)
	require.NoError(t, err)

	result := resultFrom(quiz, graded)
	err = ApplyManualMark(&result, quiz, mcq, questions, 10)
	require.ErrorIs(t, err, ErrInvalidQuestionType)
}

func TestApplyManualMark_AnswerMissing(t *testing.T) {
	quiz := makeQuiz(50, 20)
	answered := textQuestion(25)
	skipped := textQuestion(25)
	questions := []models.Question{answered, skipped}

	graded, err := GradeSubmission(quiz, questions, []SubmittedAnswer{
		{QuestionID: answered.ID, TypedAnswer: "essay"},
	}, now)
	require.NoError(t, err)

	result := resultFrom(quiz, graded)
	err = ApplyManualMark(&result, quiz, skipped, questions, 10)
	require.ErrorIs(t, err, ErrAnswerNotFound)
}

func TestApplyManualMark_ZeroTotalKeepsStoredPercentage(t *testing.T) {
	quiz := makeQuiz(50, 20)
	text := textQuestion(50)
	questions := []models.Question{text}

	graded, err := GradeSubmission(quiz, questions, []SubmittedAnswer{
		{QuestionID: text.ID, TypedAnswer: "essay"},
	}, now)
	require.NoError(t, err)

	result := resultFrom(quiz, graded)
	result.Percentage = 42
	result.IsPassed = true

	// Quiz misconfigured to zero total and its questions since deleted.
	brokenQuiz := quiz
	brokenQuiz.TotalMarks = 0
	err = ApplyManualMark(&result, brokenQuiz, text, nil, 30)
	require.NoError(t, err)

	require.Equal(t, 30.0, result.ObtainedMarks)
	require.Equal(t, 42.0, result.Percentage)
	require.True(t, result.IsPassed)
	require.False(t, result.ManualReviewPending)
}

func TestApplyManualMark_PartialReviewKeepsPendingFlag(t *testing.T) {
	quiz := makeQuiz(100, 40)
	t1 := textQuestion(50)
	t2 := textQuestion(50)
	questions := []models.Question{t1, t2}

	graded, err := GradeSubmission(quiz, questions, []SubmittedAnswer{
		{QuestionID: t1.ID, TypedAnswer: "one"},
		{QuestionID: t2.ID, TypedAnswer: "two"},
	}, now)
	require.NoError(t, err)

	result := resultFrom(quiz, graded)
	require.NoError(t, ApplyManualMark(&result, quiz, t1, questions, 40))

	require.True(t, result.ManualReviewPending)

	require.NoError(t, ApplyManualMark(&result, quiz, t2, questions, 25))
	require.False(t, result.ManualReviewPending)
	require.Equal(t, 65.0, result.ObtainedMarks)
}

func TestMarkQuizBulk(t *testing.T) {
	quiz := makeQuiz(100, 40)
	mcq := mcqQuestion(40, "A", "B")
	t1 := textQuestion(30)
	t2 := textQuestion(30)
	questions := []models.Question{mcq, t1, t2}

	graded, err := GradeSubmission(quiz, questions, []SubmittedAnswer{
		{QuestionID: mcq.ID, SelectedAnswer: "A"},
		{QuestionID: t1.ID, TypedAnswer: "one"},
		{QuestionID: t2.ID, TypedAnswer: "two"},
	}, now)
	require.NoError(t, err)

	result := resultFrom(quiz, graded)
	teacherID := uuid.New()

	MarkQuizBulk(&result, quiz, questions, []AnswerMark{
		{QuestionID: t1.ID, MarksAwarded: 20},
		{QuestionID: t2.ID, MarksAwarded: 99}, // clamped to 30
	}, "good effort", teacherID, now)

	require.Equal(t, 90.0, result.ObtainedMarks)
	require.Equal(t, 90.0, result.Percentage)
	require.True(t, result.IsPassed)
	require.Equal(t, models.ReviewStatusMarked, result.ReviewStatus)
	require.Equal(t, "good effort", result.ReviewComments)
	require.NotNil(t, result.MarkedBy)
	require.Equal(t, teacherID, *result.MarkedBy)
	require.NotNil(t, result.MarkedAt)
	require.False(t, result.ManualReviewPending)

	// The auto-graded answer was not referenced and keeps its marks.
	require.Equal(t, 40.0, result.Answers[0].MarksObtained)
	require.Equal(t, 30.0, result.Answers[2].MarksObtained)
}

func TestMarkQuizBulk_ClearsPendingEvenWhenAnswersLeftUntouched(t *testing.T) {
	quiz := makeQuiz(60, 20)
	t1 := textQuestion(30)
	t2 := textQuestion(30)
	questions := []models.Question{t1, t2}

	graded, err := GradeSubmission(quiz, questions, []SubmittedAnswer{
		{QuestionID: t1.ID, TypedAnswer: "one"},
		{QuestionID: t2.ID, TypedAnswer: "two"},
	}, now)
	require.NoError(t, err)

	result := resultFrom(quiz, graded)
	MarkQuizBulk(&result, quiz, questions, []AnswerMark{
		{QuestionID: t1.ID, MarksAwarded: 15},
	}, "", uuid.New(), now)

	// Bulk marking ends the review session outright.
	require.False(t, result.ManualReviewPending)
	require.Equal(t, 15.0, result.ObtainedMarks)
	require.Equal(t, 25.0, result.Percentage)
}

func TestPublishResult(t *testing.T) {
	quiz := makeQuiz(50, 20)
	text := textQuestion(50)
	questions := []models.Question{text}

	graded, err := GradeSubmission(quiz, questions, []SubmittedAnswer{
		{QuestionID: text.ID, TypedAnswer: "essay"},
	}, now)
	require.NoError(t, err)

	result := resultFrom(quiz, graded)
	MarkQuizBulk(&result, quiz, questions, []AnswerMark{
		{QuestionID: text.ID, MarksAwarded: 35},
	}, "", uuid.New(), now)

	before := result.ObtainedMarks
	PublishResult(&result)

	require.Equal(t, models.ReviewStatusPublished, result.ReviewStatus)
	require.Equal(t, before, result.ObtainedMarks)
}

func TestQuestionTypeDefaultsToMCQ(t *testing.T) {
	quiz := makeQuiz(10, 5)
	legacy := mcqQuestion(10, "A", "B")
	legacy.QuestionType = "" // rows predating the type column

	graded, err := GradeSubmission(quiz, []models.Question{legacy}, []SubmittedAnswer{
		{QuestionID: legacy.ID, SelectedAnswer: "A"},
	}, now)
	require.NoError(t, err)
	require.Equal(t, 10.0, graded.ObtainedMarks)
	require.False(t, graded.ManualReviewPending)
}

func TestCheckFirstAttempt_RejectsSecondSubmission(t *testing.T) {
	quiz := makeQuiz(100, 40)
	q := mcqQuestion(100, "Go", "Rust")
	questions := []models.Question{q}

	graded, err := GradeSubmission(quiz, questions, []SubmittedAnswer{
		{QuestionID: q.ID, SelectedAnswer: "Go"},
	}, now)
	require.NoError(t, err)
	first := resultFrom(quiz, graded)
	stored := first

	require.NoError(t, CheckFirstAttempt(0))
	require.ErrorIs(t, CheckFirstAttempt(1), ErrDuplicateSubmission)

	// The rejected second attempt leaves the stored result untouched.
	require.Equal(t, stored, first)
	require.Equal(t, 100.0, first.ObtainedMarks)
	require.True(t, first.IsPassed)
}

func TestFindQuizQuestion(t *testing.T) {
	q1 := mcqQuestion(10, "A", "B")
	q2 := textQuestion(10)
	questions := []models.Question{q1, q2}

	got, err := FindQuizQuestion(questions, q2.ID)
	require.NoError(t, err)
	require.Equal(t, q2.ID, got.ID)

	// Question ids from another quiz are not in the set.
	_, err = FindQuizQuestion(questions, uuid.New())
	require.ErrorIs(t, err, ErrQuestionNotFound)
}
