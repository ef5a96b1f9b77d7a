package es

import (
	"Tripmate/internal/model"
	"time"
)

// PlaceES 写入 ES 的景点文档
type PlaceES struct {
	ID            uint64      `json:"id"`
	ContentID     string      `json:"content_id"`
	ContentTypeID int         `json:"content_type_id"`
	Title         string      `json:"title"`
	Addr1         string      `json:"addr1"`
	Addr2         string      `json:"addr2"`
	Cat1          string      `json:"cat1"`
	Cat2          string      `json:"cat2"`
	Cat3          string      `json:"cat3"`
	RegionName    string      `json:"region_name,omitempty"`
	WardName      string      `json:"ward_name,omitempty"`
	Location      *GeoPointES `json:"location,omitempty"`
	ViewCount     int64       `json:"view_count"`
	LikeCount     int64       `json:"like_count"`
	ReviewCount   int64       `json:"review_count"`
	Rating        float64     `json:"rating"`
	Score         float64     `json:"score"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type GeoPointES struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// NewPlaceES 由已加载 Region / Ward 的景点构建文档
func NewPlaceES(place *model.Place) *PlaceES {
	doc := &PlaceES{
		ID:            place.ID,
		ContentID:     place.ContentID,
		ContentTypeID: place.ContentTypeID,
		Title:         place.Title,
		Addr1:         place.Addr1,
		Addr2:         place.Addr2,
		Cat1:          place.Cat1,
		Cat2:          place.Cat2,
		Cat3:          place.Cat3,
		ViewCount:     place.ViewCount,
		LikeCount:     place.LikeCount,
		ReviewCount:   place.ReviewCount,
		Rating:        place.Rating,
		Score:         place.Score,
		UpdatedAt:     place.UpdatedAt,
	}
	if place.Region != nil && place.RegionID != nil {
		doc.RegionName = place.Region.Name
	}
	if place.Ward != nil && place.WardID != nil {
		doc.WardName = place.Ward.Name
	}
	if lat, lng, ok := place.Coordinates(); ok {
		doc.Location = &GeoPointES{Lat: lat, Lon: lng}
	}
	return doc
}

// Version 外部版本号取更新时间毫秒，旧事件不会覆盖新文档
func (p *PlaceES) Version() int64 {
	return p.UpdatedAt.UnixMilli()
}
