package kafka

import (
	"strconv"

	"github.com/goccy/go-json"
)

const (
	canalInsert = "INSERT"
	canalUpdate = "UPDATE"
	canalDelete = "DELETE"
)

// CanalMessage 定义了 Canal 推送到 Kafka 的 JSON 数据结构
type CanalMessage struct {
	ID       int64    `json:"id"`
	Database string   `json:"database"`
	Table    string   `json:"table"`
	PKNames  []string `json:"pkNames"`
	IsDDL    bool     `json:"isDdl"`
	Type     string   `json:"type"`
	ES       int64    `json:"es"`
	TS       int64    `json:"ts"`
	SQL      string   `json:"sql"`

	// Data 存储变更后的数据
	Data []map[string]interface{} `json:"data"`

	// Old 存储变更前的数据（仅包含被修改的列）
	Old []map[string]interface{} `json:"old"`
}

// IDs 返回每行的主键 id，无法解析的行跳过
func (m *CanalMessage) IDs() []uint64 {
	ids := make([]uint64, 0, len(m.Data))
	for _, row := range m.Data {
		if id, ok := toUint64(row["id"]); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Strings 收集 Data 与 Old 中指定列的非空字符串值，重命名时新旧名称都会返回
func (m *CanalMessage) Strings(columns ...string) []string {
	seen := make(map[string]struct{})
	var res []string
	collect := func(rows []map[string]interface{}) {
		for _, row := range rows {
			for _, col := range columns {
				s, ok := row[col].(string)
				if !ok || s == "" {
					continue
				}
				if _, dup := seen[s]; dup {
					continue
				}
				seen[s] = struct{}{}
				res = append(res, s)
			}
		}
	}
	collect(m.Data)
	collect(m.Old)
	return res
}

// Canal flatMessage 中的列值均为字符串
func toUint64(v interface{}) (uint64, bool) {
	switch val := v.(type) {
	case string:
		id, err := strconv.ParseUint(val, 10, 64)
		return id, err == nil && id > 0
	case float64:
		return uint64(val), val > 0
	case json.Number:
		id, err := strconv.ParseUint(val.String(), 10, 64)
		return id, err == nil && id > 0
	default:
		return 0, false
	}
}
