package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"quizportal_backend/models"
)

func TestQuizOwnedByTeacher(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	tests := []struct {
		name string
		quiz models.Quiz
		by   uuid.UUID
		want bool
	}{
		{name: "teacher field matches", quiz: models.Quiz{TeacherID: &owner}, by: owner, want: true},
		{name: "legacy createdBy matches", quiz: models.Quiz{CreatedBy: &owner}, by: owner, want: true},
		{name: "neither matches", quiz: models.Quiz{TeacherID: &owner}, by: other, want: false},
		{name: "unowned quiz", quiz: models.Quiz{}, by: owner, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, QuizOwnedByTeacher(tc.quiz, tc.by))
			require.Equal(t, tc.want, CanGradeResult(tc.quiz, tc.by))
		})
	}
}

func TestQuizAvailableToStudent(t *testing.T) {
	quiz := makeQuiz(100, 40)
	require.True(t, QuizAvailableToStudent(quiz, now))

	quiz.IsActive = false
	require.False(t, QuizAvailableToStudent(quiz, now))

	quiz.IsActive = true
	require.False(t, QuizAvailableToStudent(quiz, quiz.ExpiryDate.Add(time.Minute)))
	require.False(t, QuizAvailableToStudent(quiz, quiz.StartDate.Add(-time.Minute)))
}

func TestCanViewResult(t *testing.T) {
	student := uuid.New()
	result := models.Result{UserID: student}

	require.True(t, CanViewResult(result, student))
	require.False(t, CanViewResult(result, uuid.New()))
}

func TestResultVisibleToStudent(t *testing.T) {
	correct := true

	autoOnly := models.Result{
		ReviewStatus: models.ReviewStatusPending,
		Answers: []models.ResultAnswer{
			{IsCorrect: &correct},
		},
	}
	require.True(t, ResultVisibleToStudent(autoOnly))

	withText := models.Result{
		ReviewStatus: models.ReviewStatusMarked,
		Answers: []models.ResultAnswer{
			{IsCorrect: &correct},
			{IsCorrect: nil},
		},
	}
	require.False(t, ResultVisibleToStudent(withText))

	withText.ReviewStatus = models.ReviewStatusPublished
	require.True(t, ResultVisibleToStudent(withText))
}
