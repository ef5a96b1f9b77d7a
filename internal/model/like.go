package model

import "time"

// Like 用户对景点的点赞，(user_id, place_id) 唯一
type Like struct {
	UserID    uint64    `gorm:"primaryKey;index:idx_user_created,priority:1" json:"userId"`
	PlaceID   uint64    `gorm:"primaryKey;index:idx_like_place_id" json:"placeId"`
	CreatedAt time.Time `gorm:"index:idx_user_created,priority:2" json:"createdAt"`
}

func (Like) TableName() string {
	return "place_likes"
}
