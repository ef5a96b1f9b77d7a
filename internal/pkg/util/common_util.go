package util

import (
	"Tripmate/internal/pkg/consts"
	"math"
	"strconv"
	"strings"
	"time"
)

// PtrInt 用于将 int 转换为 *int
func PtrInt(i int) *int {
	return &i
}

// PtrString 空字符串返回 nil
func PtrString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// NormalizePage 校验分页参数，size 为 0 时取默认值并限制上限，page*size 溢出时视为非法
func NormalizePage(page, size int) (int, int, bool) {
	if page < 0 || size < 0 {
		return 0, 0, false
	}
	if size == 0 {
		size = consts.DefaultPageSize
	}
	if size > consts.MaxPageSize {
		size = consts.MaxPageSize
	}
	if page > math.MaxInt/size {
		return 0, 0, false
	}
	return page, size, true
}

// UniqueNonEmpty 去掉空白项并保持原有顺序去重
func UniqueNonEmpty(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}

// GetMidnight 返回所在日期的零点
func GetMidnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ParseIDs 将 redis 集合成员解析为 ID，非法成员跳过
func ParseIDs(members []string) []uint64 {
	ids := make([]uint64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseUint(m, 10, 64)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// ParseCode 将接口返回的数字字符串转为编码，空值或非法值返回 0
func ParseCode(s string) int {
	code, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return code
}
