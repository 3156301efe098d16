package model

import "time"

// FAQ is a question/answer pair shown in ascending OrderIndex order.
type FAQ struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	QuestionAr string    `gorm:"type:text;not null" json:"question_ar"`
	QuestionEn string    `gorm:"type:text;not null" json:"question_en"`
	QuestionTr string    `gorm:"type:text;not null" json:"question_tr"`
	QuestionMs string    `gorm:"type:text;not null" json:"question_ms"`
	AnswerAr   string    `gorm:"type:text;not null" json:"answer_ar"`
	AnswerEn   string    `gorm:"type:text;not null" json:"answer_en"`
	AnswerTr   string    `gorm:"type:text;not null" json:"answer_tr"`
	AnswerMs   string    `gorm:"type:text;not null" json:"answer_ms"`
	OrderIndex int       `gorm:"not null;default:0;index" json:"order_index"`
	Category   *string   `gorm:"type:text;index" json:"category"`
	Status     Status    `gorm:"type:varchar(16);not null;default:'ACTIVE';index" json:"status"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (FAQ) TableName() string {
	return "faqs"
}
