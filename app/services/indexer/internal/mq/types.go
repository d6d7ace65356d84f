package mq

// GarmentSyncEvent 与 stylist-api 目录同步接口发布的事件结构保持一致
type GarmentSyncEvent struct {
	Op           string  `json:"op"`
	Id           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Url          string  `json:"url"`
	ImageLink    string  `json:"image_link"`
	Brand        string  `json:"brand"`
	Material     string  `json:"material"`
	Color        string  `json:"color"`
	Gender       string  `json:"gender"`
	MainCategory string  `json:"main_category"`
	Price        float64 `json:"price"`
	UpdatedAt    int64   `json:"updated_at"`
}
