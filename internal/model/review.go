package model

import (
	"time"
)

type Review struct {
	ID        uint64    `gorm:"primaryKey"`
	PlaceID   uint64    `gorm:"not null;uniqueIndex:idx_user_place,priority:2;index:idx_review_place_id" json:"placeId"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_user_place,priority:1" json:"userId"`
	Rating    int       `gorm:"not null" json:"rating"`
	Content   string    `gorm:"type:varchar(1000);not null" json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (Review) TableName() string {
	return "reviews"
}
