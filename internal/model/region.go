package model

type Region struct {
	ID   uint64 `gorm:"primaryKey"`
	Code int    `gorm:"not null;uniqueIndex:idx_region_code" json:"code"`
	Name string `gorm:"type:varchar(50);not null;index:idx_region_name" json:"name"`
}

func (Region) TableName() string {
	return "regions"
}

type Ward struct {
	ID       uint64 `gorm:"primaryKey"`
	RegionID uint64 `gorm:"not null;uniqueIndex:idx_region_ward_code,priority:1;index:idx_region_ward_name,priority:1" json:"regionId"`
	Code     int    `gorm:"not null;uniqueIndex:idx_region_ward_code,priority:2" json:"code"`
	Name     string `gorm:"type:varchar(50);not null;index:idx_region_ward_name,priority:2" json:"name"`

	Region Region `gorm:"foreignKey:RegionID;references:ID"`
}

func (Ward) TableName() string {
	return "wards"
}
