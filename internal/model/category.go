package model

// CategoryLevel 分类层级
type CategoryLevel int

const (
	CategoryLevel1 CategoryLevel = 1
	CategoryLevel2 CategoryLevel = 2
	CategoryLevel3 CategoryLevel = 3
)

// Column 对应 places 表上的分类列
func (l CategoryLevel) Column() string {
	switch l {
	case CategoryLevel1:
		return "cat1"
	case CategoryLevel2:
		return "cat2"
	default:
		return "cat3"
	}
}

type Category struct {
	ID       uint64 `gorm:"primaryKey"`
	Cat1Code string `gorm:"type:varchar(16);not null;index:idx_cat1_code" json:"cat1Code"`
	Cat1Name string `gorm:"type:varchar(50);not null;index:idx_cat1_name" json:"cat1Name"`
	Cat2Code string `gorm:"type:varchar(16);not null;index:idx_cat2_code" json:"cat2Code"`
	Cat2Name string `gorm:"type:varchar(50);not null;index:idx_cat2_name" json:"cat2Name"`
	Cat3Code string `gorm:"type:varchar(16);not null;uniqueIndex:idx_cat3_code" json:"cat3Code"`
	Cat3Name string `gorm:"type:varchar(50);not null;index:idx_cat3_name" json:"cat3Name"`
}

func (Category) TableName() string {
	return "categories"
}
