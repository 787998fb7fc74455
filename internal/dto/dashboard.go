package dto

import "github.com/rasd-app/rasd-api/internal/models"

// ReadinessResponse is the dashboard payload for one day.
type ReadinessResponse struct {
	Date       string                  `json:"date"`
	Classes    []models.ClassReadiness `json:"classes"`
	ReadyCount int                     `json:"ready_count"`
	TotalCount int                     `json:"total_count"`
}

// ReminderReceipt echoes a dispatched reminder back to the caller.
type ReminderReceipt struct {
	ClassName        string `json:"class_name"`
	RecipientTeacher string `json:"recipient_teacher"`
	MessageText      string `json:"message_text"`
}
