package util

import (
	"strconv"
	"time"
)

// Pagination 分页计算结果
type Pagination struct {
	TotalItems  int   `json:"totalItems"`
	CurrentPage int   `json:"currentPage"`
	PerPage     int   `json:"perPage"`
	TotalPages  int   `json:"totalPages"`
	FromItem    int   `json:"fromItem"`
	ToItem      int   `json:"toItem"`
	HasPrevious bool  `json:"hasPrevious"`
	HasNext     bool  `json:"hasNext"`
	PageLinks   []int `json:"pageLinks"`
}

// Paginate 分页计算
// currentPage 越界时收敛到合法范围；totalItems 为 0 时返回零页
func Paginate(totalItems, currentPage, perPage int) Pagination {
	if perPage <= 0 {
		perPage = 1
	}

	totalPages := 0
	if totalItems > 0 {
		totalPages = (totalItems + perPage - 1) / perPage
	}

	if currentPage < 1 {
		currentPage = 1
	}
	if totalPages > 0 && currentPage > totalPages {
		currentPage = totalPages
	}

	p := Pagination{
		TotalItems:  totalItems,
		CurrentPage: currentPage,
		PerPage:     perPage,
		TotalPages:  totalPages,
		PageLinks:   []int{},
	}

	if totalPages == 0 {
		return p
	}

	p.FromItem = (currentPage-1)*perPage + 1
	p.ToItem = currentPage * perPage
	if p.ToItem > totalItems {
		p.ToItem = totalItems
	}
	p.HasPrevious = currentPage > 1
	p.HasNext = currentPage < totalPages

	for i := 1; i <= totalPages; i++ {
		p.PageLinks = append(p.PageLinks, i)
	}

	return p
}

// StrToInt64 Convert string to int64
func StrToInt64(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// StrToInt Convert string to int
func StrToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// UnixMilliToTime Convert epoch milliseconds to time.Time
func UnixMilliToTime(ms int64) time.Time {
	return time.UnixMilli(ms)
}

// DefaultIfEmpty Return default value if string is empty
func DefaultIfEmpty(s, defaultVal string) string {
	if s == "" {
		return defaultVal
	}
	return s
}
