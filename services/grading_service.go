package services

import (
	"log"
	"math"
	"time"

	"github.com/google/uuid"

	"quizportal_backend/models"
)

// SubmittedAnswer is one raw answer from a quiz submission. SelectedAnswer is
// used for objective questions, TypedAnswer for text questions.
type SubmittedAnswer struct {
	QuestionID     uuid.UUID
	SelectedAnswer string
	TypedAnswer    string
}

// GradedSubmission is the first-pass grading outcome for a whole submission.
type GradedSubmission struct {
	Answers             []models.ResultAnswer
	TotalMarks          float64
	ObtainedMarks       float64
	Percentage          float64
	IsPassed            bool
	ManualReviewPending bool
}

// AnswerMark is one entry of a bulk marking request.
type AnswerMark struct {
	QuestionID   uuid.UUID
	MarksAwarded float64
}

// CheckQuizAvailability verifies the quiz is published and that now falls
// inside its availability window. A zero bound skips that side of the check.
func CheckQuizAvailability(quiz models.Quiz, now time.Time) error {
	if !quiz.IsActive {
		return ErrQuizNotAvailable
	}
	if !quiz.StartDate.IsZero() && now.Before(quiz.StartDate) {
		return ErrQuizNotAvailable
	}
	if !quiz.ExpiryDate.IsZero() && now.After(quiz.ExpiryDate) {
		return ErrQuizNotAvailable
	}
	return nil
}

// QuizTotalMarks resolves the marks a submission is graded out of. Older quiz
// rows were saved without totalMarks, so fall back to summing the questions.
func QuizTotalMarks(quiz models.Quiz, questions []models.Question) float64 {
	if quiz.TotalMarks > 0 {
		return quiz.TotalMarks
	}
	var total float64
	for _, q := range questions {
		total += q.Marks
	}
	return total
}

// CheckFirstAttempt enforces the one-attempt rule given the number of results
// already stored for the (user, quiz) pair. The unique index on results backs
// this up when two submissions race past the count.
func CheckFirstAttempt(existing int64) error {
	if existing > 0 {
		return ErrDuplicateSubmission
	}
	return nil
}

// FindQuizQuestion locates a question by id within a quiz's question set, so
// marking cannot reach questions belonging to another quiz.
func FindQuizQuestion(questions []models.Question, id uuid.UUID) (models.Question, error) {
	for _, q := range questions {
		if q.ID == id {
			return q, nil
		}
	}
	return models.Question{}, ErrQuestionNotFound
}

// GradeSubmission grades every answer against the quiz's question set and
// computes the aggregate fields for a new Result. Answers referencing unknown
// question ids are dropped. Persistence and the duplicate-attempt check are
// the caller's responsibility.
func GradeSubmission(quiz models.Quiz, questions []models.Question, answers []SubmittedAnswer, now time.Time) (GradedSubmission, error) {
	if err := CheckQuizAvailability(quiz, now); err != nil {
		return GradedSubmission{}, err
	}

	byID := make(map[uuid.UUID]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	graded := GradedSubmission{}
	for _, ans := range answers {
		question, ok := byID[ans.QuestionID]
		if !ok {
			log.Printf("grading: dropping answer for unknown question %s on quiz %s", ans.QuestionID, quiz.ID)
			continue
		}
		graded.Answers = append(graded.Answers, gradeAnswer(question, ans))
	}

	for _, a := range graded.Answers {
		graded.ObtainedMarks += a.MarksObtained
		if a.RequiresManualReview {
			graded.ManualReviewPending = true
		}
	}

	graded.TotalMarks = QuizTotalMarks(quiz, questions)
	if graded.TotalMarks > 0 {
		graded.Percentage = graded.ObtainedMarks / graded.TotalMarks * 100
	}
	graded.IsPassed = graded.ObtainedMarks >= quiz.PassingMarks

	return graded, nil
}

func gradeAnswer(question models.Question, ans SubmittedAnswer) models.ResultAnswer {
	if question.Type() == models.QuestionTypeText {
		// Typed text is mirrored into selectedAnswer for older clients that
		// only read that field.
		return models.ResultAnswer{
			QuestionID:           question.ID,
			SelectedAnswer:       ans.TypedAnswer,
			TypedAnswer:          ans.TypedAnswer,
			IsCorrect:            nil,
			MarksObtained:        0,
			RequiresManualReview: true,
		}
	}

	isCorrect := false
	correct := question.CorrectOption()
	if correct != nil && correct.OptionText == ans.SelectedAnswer {
		isCorrect = true
	}

	var marks float64
	if isCorrect {
		marks = question.Marks
	}

	return models.ResultAnswer{
		QuestionID:     question.ID,
		SelectedAnswer: ans.SelectedAnswer,
		IsCorrect:      &isCorrect,
		MarksObtained:  marks,
	}
}

// ApplyManualMark scores one text answer inside an existing result and
// reconciles the aggregate fields. The questions slice must be the quiz's
// current question set; it drives the total-marks fallback.
func ApplyManualMark(result *models.Result, quiz models.Quiz, question models.Question, questions []models.Question, marksAwarded float64) error {
	if question.Type() != models.QuestionTypeText {
		return ErrInvalidQuestionType
	}

	idx := -1
	for i := range result.Answers {
		if result.Answers[i].QuestionID == question.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrAnswerNotFound
	}

	result.Answers[idx].MarksObtained = ClampMarks(marksAwarded, question.Marks)
	result.Answers[idx].RequiresManualReview = false
	result.Answers[idx].IsCorrect = nil

	var obtained float64
	pending := false
	for _, a := range result.Answers {
		obtained += a.MarksObtained
		if a.RequiresManualReview {
			pending = true
		}
	}
	result.ObtainedMarks = obtained
	result.ManualReviewPending = pending

	// A quiz whose questions were all deleted after submission resolves to a
	// zero total; keep the stored percentage and pass status rather than
	// dividing by zero or regressing them.
	total := QuizTotalMarks(quiz, questions)
	if total > 0 {
		result.TotalMarks = total
		result.Percentage = obtained / total * 100
		result.IsPassed = obtained >= quiz.PassingMarks
	}

	return nil
}

// MarkQuizBulk applies a teacher's full marking pass over a result. Answers
// not referenced keep their existing marks; the whole review session is
// considered complete afterwards.
func MarkQuizBulk(result *models.Result, quiz models.Quiz, questions []models.Question, marks []AnswerMark, comments string, markedBy uuid.UUID, now time.Time) {
	byID := make(map[uuid.UUID]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	for _, m := range marks {
		question, ok := byID[m.QuestionID]
		if !ok {
			log.Printf("marking: skipping mark for unknown question %s on result %s", m.QuestionID, result.ID)
			continue
		}
		for i := range result.Answers {
			if result.Answers[i].QuestionID != m.QuestionID {
				continue
			}
			result.Answers[i].MarksObtained = ClampMarks(m.MarksAwarded, question.Marks)
			result.Answers[i].RequiresManualReview = false
			break
		}
	}

	var obtained float64
	for _, a := range result.Answers {
		obtained += a.MarksObtained
	}
	result.ObtainedMarks = obtained
	if result.TotalMarks > 0 {
		result.Percentage = obtained / result.TotalMarks * 100
	} else {
		result.Percentage = 0
	}
	result.IsPassed = obtained >= quiz.PassingMarks

	result.ReviewStatus = models.ReviewStatusMarked
	result.MarkedBy = &markedBy
	result.MarkedAt = &now
	result.ReviewComments = comments
	result.ManualReviewPending = false
}

// PublishResult makes a marked result visible to the student. Scores are
// never changed by publishing.
func PublishResult(result *models.Result) {
	result.ReviewStatus = models.ReviewStatusPublished
}

// ClampMarks bounds an awarded mark to [0, max] and rounds it to two decimal
// places.
func ClampMarks(awarded, max float64) float64 {
	if awarded < 0 {
		awarded = 0
	}
	if awarded > max {
		awarded = max
	}
	return math.Round(awarded*100) / 100
}
