package model

type Theme struct {
	ID   uint64 `gorm:"primaryKey"`
	Code int    `gorm:"not null;uniqueIndex:idx_theme_code" json:"code"`
	Name string `gorm:"type:varchar(50);not null;uniqueIndex:idx_theme_name" json:"name"`
}

func (Theme) TableName() string {
	return "themes"
}

// DefaultThemes 公共旅游接口的 8 种内容类型
var DefaultThemes = []Theme{
	{Code: 12, Name: "관광지"},
	{Code: 14, Name: "문화시설"},
	{Code: 15, Name: "축제공연행사"},
	{Code: 25, Name: "여행코스"},
	{Code: 28, Name: "레포츠"},
	{Code: 32, Name: "숙박"},
	{Code: 38, Name: "쇼핑"},
	{Code: 39, Name: "음식점"},
}
