package dto

import "time"

// ReviewCreateDTO 新建评论
type ReviewCreateDTO struct {
	PlaceID uint64 `json:"place_id" validate:"required"`
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

// ReviewUpdateDTO 修改评论
type ReviewUpdateDTO struct {
	Rating  int    `json:"rating"`
	Content string `json:"content"`
}

// ReviewIDDTO 返回评论 ID
type ReviewIDDTO struct {
	ReviewID uint64 `json:"review_id"`
}

type ReviewDTO struct {
	ID        uint64    `json:"id"`
	PlaceID   uint64    `json:"place_id"`
	UserID    uint64    `json:"user_id"`
	Nickname  string    `json:"nickname"`
	Rating    int       `json:"rating"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReviewPageDTO struct {
	Results    []*ReviewDTO `json:"results"`
	TotalCount int64        `json:"total_count"`
	Page       int          `json:"page"`
	Size       int          `json:"size"`
}
