package models

import "time"

// DefaultImage is assigned to users that never uploaded a profile image.
const DefaultImage = "default.jpg"

type User struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	Name     string    `json:"name" gorm:"size:250;not null"`
	Email    string    `json:"email" gorm:"size:120;uniqueIndex;not null"`
	Password string    `json:"-" gorm:"size:80;not null"` // bcrypt hash
	Image    string    `json:"image" gorm:"size:30;not null;default:'default.jpg'"`
	Created  time.Time `json:"created" gorm:"autoCreateTime"`
}
