package dto

// PlaceQueryDTO 景点列表筛选条件
type PlaceQueryDTO struct {
	Theme    string   `form:"theme" validate:"required"`
	Region   string   `form:"region"`
	Wards    []string `form:"ward"`
	Category string   `form:"category"`
	Sort     string   `form:"sort"`
	Page     int      `form:"page" validate:"min=0"`
	Size     int      `form:"size" validate:"min=0"`
}

// PlaceSearchDTO 关键词搜索
type PlaceSearchDTO struct {
	Keyword string `form:"keyword" validate:"required,max=50"`
	Theme   string `form:"theme"`
	Page    int    `form:"page" validate:"min=0"`
	Size    int    `form:"size" validate:"min=0"`
}

// PlaceDTO 景点返回结构，地区与区县名称内联
type PlaceDTO struct {
	ID            uint64   `json:"id"`
	ContentID     string   `json:"content_id"`
	ContentTypeID int      `json:"content_type_id"`
	Title         string   `json:"title"`
	Addr1         string   `json:"addr1"`
	Addr2         string   `json:"addr2"`
	ZipCode       string   `json:"zip_code"`
	Tel           string   `json:"tel"`
	FirstImage    string   `json:"first_image"`
	MapX          string   `json:"map_x"`
	MapY          string   `json:"map_y"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Cat1          string   `json:"cat1"`
	Cat2          string   `json:"cat2"`
	Cat3          string   `json:"cat3"`
	RegionName    *string  `json:"region_name"`
	RegionCode    *int     `json:"region_code"`
	WardName      *string  `json:"ward_name"`
	WardCode      *int     `json:"ward_code"`
	ViewCount     int64    `json:"view_count"`
	LikeCount     int64    `json:"like_count"`
	ReviewCount   int64    `json:"review_count"`
	Rating        float64  `json:"rating"`
	Score         float64  `json:"score"`
	IsLiked       *bool    `json:"is_liked,omitempty"`
}

// PlacePageDTO 分页结果
type PlacePageDTO struct {
	Results    []*PlaceDTO `json:"results"`
	TotalCount int64       `json:"total_count"`
	Page       int         `json:"page"`
	Size       int         `json:"size"`
}

// PlaceDetailDTO 详情页，附带最新评论
type PlaceDetailDTO struct {
	Place   *PlaceDTO    `json:"place"`
	Reviews []*ReviewDTO `json:"reviews"`
}

// PlaceStatsDTO 统计值变更后的快照
type PlaceStatsDTO struct {
	PlaceID     uint64  `json:"place_id"`
	ContentID   string  `json:"content_id"`
	ViewCount   int64   `json:"view_count"`
	LikeCount   int64   `json:"like_count"`
	ReviewCount int64   `json:"review_count"`
	Rating      float64 `json:"rating"`
	Score       float64 `json:"score"`
}

// LikeStatusDTO 1 为已点赞，0 为已取消
type LikeStatusDTO struct {
	LikeStatus int `json:"like_status"`
}

// ScorePreviewDTO 分数预览入参
type ScorePreviewDTO struct {
	ViewCount   int64   `form:"view_count" validate:"min=0"`
	LikeCount   int64   `form:"like_count" validate:"min=0"`
	ReviewCount int64   `form:"review_count" validate:"min=0"`
	Rating      float64 `form:"rating" validate:"min=0,max=5"`
}

// ScoreDTO 分数结果
type ScoreDTO struct {
	Score float64 `json:"score"`
}
