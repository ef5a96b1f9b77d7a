package model

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// ErrWardRegionMismatch 区县与所属地区不一致
var ErrWardRegionMismatch = errors.New("ward does not belong to place region")

type Place struct {
	ID            uint64  `gorm:"primaryKey"`
	ContentID     string  `gorm:"type:varchar(32);not null;uniqueIndex:idx_content_id" json:"contentId"`
	ContentTypeID int     `gorm:"not null;index:idx_theme_score,priority:1;index:idx_theme_view,priority:1;index:idx_theme_like,priority:1;index:idx_theme_rating,priority:1;index:idx_theme_review,priority:1" json:"contentTypeId"`
	Title         string  `gorm:"type:varchar(255);not null" json:"title"`
	Addr1         string  `gorm:"type:varchar(255)" json:"addr1"`
	Addr2         string  `gorm:"type:varchar(255)" json:"addr2"`
	ZipCode       string  `gorm:"type:varchar(16)" json:"zipCode"`
	Tel           string  `gorm:"type:varchar(255)" json:"tel"`
	FirstImage    string  `gorm:"type:varchar(512)" json:"firstImage"`
	MapX          string  `gorm:"type:varchar(32)" json:"mapX"` // 经度
	MapY          string  `gorm:"type:varchar(32)" json:"mapY"` // 纬度
	Cat1          string  `gorm:"type:varchar(16);index:idx_cat1" json:"cat1"`
	Cat2          string  `gorm:"type:varchar(16);index:idx_cat2" json:"cat2"`
	Cat3          string  `gorm:"type:varchar(16);index:idx_cat3" json:"cat3"`
	RegionID      *uint64 `gorm:"index:idx_region_ward,priority:1" json:"regionId"`
	WardID        *uint64 `gorm:"index:idx_region_ward,priority:2" json:"wardId"`

	ViewCount   int64   `gorm:"not null;default:0;index:idx_theme_view,priority:2" json:"viewCount"`
	LikeCount   int64   `gorm:"not null;default:0;index:idx_theme_like,priority:2" json:"likeCount"`
	ReviewCount int64   `gorm:"not null;default:0;index:idx_theme_review,priority:2" json:"reviewCount"`
	Rating      float64 `gorm:"not null;default:0;index:idx_theme_rating,priority:2" json:"rating"`
	Score       float64 `gorm:"not null;default:0;index:idx_theme_score,priority:2" json:"score"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// 关联关系
	Region *Region `gorm:"foreignKey:RegionID;references:ID"`
	Ward   *Ward   `gorm:"foreignKey:WardID;references:ID"`
}

func (Place) TableName() string {
	return "places"
}

// BeforeSave 区县必须隶属于景点所在地区
func (p *Place) BeforeSave(tx *gorm.DB) error {
	if p.WardID == nil {
		return nil
	}
	if p.RegionID == nil {
		return ErrWardRegionMismatch
	}
	var ward Ward
	if err := tx.Session(&gorm.Session{NewDB: true}).Select("id", "region_id").First(&ward, *p.WardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWardRegionMismatch
		}
		return err
	}
	if ward.RegionID != *p.RegionID {
		return ErrWardRegionMismatch
	}
	return nil
}

// Coordinates 将文本坐标解析为 (纬度, 经度)
func (p *Place) Coordinates() (lat, lng float64, ok bool) {
	lat, errLat := strconv.ParseFloat(strings.TrimSpace(p.MapY), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(p.MapX), 64)
	if errLat != nil || errLng != nil {
		return 0, 0, false
	}
	return lat, lng, true
}
