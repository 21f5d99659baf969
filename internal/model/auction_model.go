package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Auction struct {
	Id         uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CategoryId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Title      string         `gorm:"type:varchar(255);not null"`
	Status     string         `gorm:"type:varchar(32);not null;default:'draft';index"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}

func (Auction) TableName() string {
	return "auctions"
}
