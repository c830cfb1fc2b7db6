package models

import "time"

// Controller is a physical hub registered by serial number. UserID stays nil
// until the controller is bound to an account.
type Controller struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ControllerSN string    `json:"controller_sn" gorm:"size:64;uniqueIndex;not null"`
	UserID       *uint     `json:"user_id" gorm:"uniqueIndex"`
	Created      time.Time `json:"created" gorm:"autoCreateTime"`
}

// Assigned reports whether the controller is already bound to a user.
func (c Controller) Assigned() bool {
	return c.UserID != nil
}
