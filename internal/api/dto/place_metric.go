package dto

// PlaceMetricDTO 景点指标趋势点
type PlaceMetricDTO struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// PlaceTrendDTO 景点趋势返回包装
type PlaceTrendDTO struct {
	ContentID string            `json:"content_id"`
	Days      int               `json:"days"` // 7 或 30
	Views     []*PlaceMetricDTO `json:"views"`
	Likes     []*PlaceMetricDTO `json:"likes"`
	Reviews   []*PlaceMetricDTO `json:"reviews"`
	Ratings   []*PlaceMetricDTO `json:"ratings"`
	Scores    []*PlaceMetricDTO `json:"scores"`
}
