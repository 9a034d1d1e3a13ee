package models

import "time"

// User represents an investor profile in the database
type User struct {
	Base
	Email       string     `gorm:"uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	FullName    string     `json:"full_name"`
	AvatarURL   string     `json:"avatar_url,omitempty"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`

	Platforms    []ConnectedPlatform `gorm:"foreignKey:UserID" json:"platforms,omitempty"`
	Holdings     []Holding           `gorm:"foreignKey:UserID" json:"holdings,omitempty"`
	Transactions []Transaction       `gorm:"foreignKey:UserID" json:"transactions,omitempty"`
}
