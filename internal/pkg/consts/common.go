package consts

// NationwideRegion 不限地区
const NationwideRegion = "전국"

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

const (
	TimeLayout = "2006-01-02 15:04:05"
)
