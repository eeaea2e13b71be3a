package entities

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:100;not null" json:"username"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	IsAdmin      bool      `gorm:"default:false" json:"is_admin"`
	JoinDate     time.Time `json:"join_date"`

	// Denormalized activity counters, maintained transactionally by the
	// repositories and recounted by the reconciliation task.
	NumberOfBooks    int `gorm:"default:0" json:"number_of_books"`
	NumberOfReviews  int `gorm:"default:0" json:"number_of_reviews"`
	NumberOfComments int `gorm:"default:0" json:"number_of_comments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
