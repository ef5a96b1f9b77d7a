package tourapi

import (
	"Tripmate/internal/api/config"
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

const (
	successCode    = "0000"
	defaultTimeout = 10 * time.Second
)

// Item 地区列表中映射到景点的字段，接口所有字段均为字符串
type Item struct {
	ContentID     string `json:"contentid"`
	ContentTypeID string `json:"contenttypeid"`
	Title         string `json:"title"`
	Addr1         string `json:"addr1"`
	Addr2         string `json:"addr2"`
	ZipCode       string `json:"zipcode"`
	Tel           string `json:"tel"`
	FirstImage    string `json:"firstimage"`
	MapX          string `json:"mapx"`
	MapY          string `json:"mapy"`
	Cat1          string `json:"cat1"`
	Cat2          string `json:"cat2"`
	Cat3          string `json:"cat3"`
	AreaCode      string `json:"areacode"`
	SigunguCode   string `json:"sigungucode"`
}

type envelope struct {
	Response struct {
		Header struct {
			ResultCode string `json:"resultCode"`
			ResultMsg  string `json:"resultMsg"`
		} `json:"header"`
		Body struct {
			// 无数据时接口返回空字符串而不是对象
			Items      json.RawMessage `json:"items"`
			TotalCount int64           `json:"totalCount"`
		} `json:"body"`
	} `json:"response"`
}

type itemList struct {
	Item []Item `json:"item"`
}

// Client 公共旅游数据接口客户端
type Client struct {
	http       *resty.Client
	serviceKey string
	pageSize   int
}

func NewClient(cfg config.TourAPIConfig) *Client {
	timeout := defaultTimeout
	if cfg.Timeout > 0 {
		timeout = time.Duration(cfg.Timeout) * time.Second
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetHeader("Accept", "application/json")

	return &Client{
		http:       httpClient,
		serviceKey: cfg.ServiceKey,
		pageSize:   pageSize,
	}
}

// PageSize 每页条数
func (c *Client) PageSize() int {
	return c.pageSize
}

// AreaBasedList 按内容类型分页拉取景点列表，返回当页条目与总数
func (c *Client) AreaBasedList(ctx context.Context, contentTypeID, pageNo int) ([]Item, int64, error) {
	var env envelope
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"serviceKey":    c.serviceKey,
			"MobileOS":      "ETC",
			"MobileApp":     "Tripmate",
			"_type":         "json",
			"arrange":       "C",
			"contentTypeId": strconv.Itoa(contentTypeID),
			"numOfRows":     strconv.Itoa(c.pageSize),
			"pageNo":        strconv.Itoa(pageNo),
		}).
		SetResult(&env).
		Get("/areaBasedList1")
	if err != nil {
		return nil, 0, fmt.Errorf("请求旅游接口失败: %w", err)
	}
	if resp.IsError() {
		return nil, 0, fmt.Errorf("旅游接口返回状态码 %d", resp.StatusCode())
	}

	header := env.Response.Header
	if header.ResultCode != successCode {
		return nil, 0, fmt.Errorf("旅游接口错误 %s: %s", header.ResultCode, header.ResultMsg)
	}

	items, err := decodeItems(env.Response.Body.Items)
	if err != nil {
		return nil, 0, err
	}
	return items, env.Response.Body.TotalCount, nil
}

func decodeItems(raw json.RawMessage) ([]Item, error) {
	if len(raw) == 0 || raw[0] != '{' {
		return []Item{}, nil
	}
	var list itemList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("解析旅游接口条目失败: %w", err)
	}
	return list.Item, nil
}
