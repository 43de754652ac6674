package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RolePlayer Role = "player"
	RoleAdmin  Role = "admin"
)

type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
)

type Account struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string         `gorm:"type:varchar(100);not null" json:"name"`
	Username     string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Phone        string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"phone"`
	Email        string         `gorm:"type:varchar(100);index" json:"email,omitempty"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"` // Never expose password hash in JSON
	Role         Role           `gorm:"type:varchar(20);not null;default:'player'" json:"role"`
	Category     string         `gorm:"type:varchar(50)" json:"category,omitempty"`
	Specialties  string         `gorm:"type:varchar(200)" json:"specialties,omitempty"`
	BattingStyle string         `gorm:"type:varchar(50)" json:"batting_style,omitempty"`
	BowlingStyle string         `gorm:"type:varchar(50)" json:"bowling_style,omitempty"`
	Age          int            `json:"age,omitempty"`
	AvatarURL    string         `gorm:"type:varchar(500)" json:"avatar_url,omitempty"`
	Status       ApprovalStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	LikeCount    int64          `gorm:"not null;default:0" json:"like_count"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
