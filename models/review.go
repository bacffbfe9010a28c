package models

import "time"

type Review struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	ProductID string    `gorm:"index;not null" json:"productId"`
	UserID    string    `gorm:"not null" json:"userId"`
	Rating    int       `gorm:"not null" json:"rating"` // 1..5
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
