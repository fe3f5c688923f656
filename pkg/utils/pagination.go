package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Pagination struct {
	Page     int
	PageSize int
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func (p Pagination) Validate() error {
	if p.Page < 1 {
		return ErrInvalidPage
	}
	if p.PageSize < 1 || p.PageSize > MaxPageSize {
		return ErrInvalidPageSize
	}
	return nil
}

// ParsePagination reads page and page_size query params.
func ParsePagination(c *gin.Context) (Pagination, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return Pagination{}, ErrInvalidPage
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	if err != nil {
		return Pagination{}, ErrInvalidPageSize
	}

	p := Pagination{Page: page, PageSize: pageSize}
	return p, p.Validate()
}
