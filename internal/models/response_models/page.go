package response_models

type PageResponse[T any] struct {
	Items    []T   `json:"items"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
	Total    int64 `json:"total"`
}

func NewPage[T any](items []T, page, pageSize int, total int64) *PageResponse[T] {
	if items == nil {
		items = []T{}
	}
	return &PageResponse[T]{Items: items, Page: page, PageSize: pageSize, Total: total}
}
