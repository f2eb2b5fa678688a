package jobs

import (
	"log"
	"time"

	"quizportal_backend/database"
	"quizportal_backend/models"
)

// DeactivateExpiredQuizzes unpublishes quizzes whose expiry date has passed
// so they stop showing up in student listings. Run from cron.
func DeactivateExpiredQuizzes() {
	res := database.DB.Model(&models.Quiz{}).
		Where("is_active = ? AND expiry_date < ?", true, time.Now()).
		Update("is_active", false)
	if res.Error != nil {
		log.Printf("[ERROR] Failed to deactivate expired quizzes: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("Deactivated %d expired quizzes", res.RowsAffected)
	}
}
