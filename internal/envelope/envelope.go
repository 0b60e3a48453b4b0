// Package envelope builds the uniform JSON wrapper returned by every API
// endpoint: a success flag, a message, the payload or an error detail, and a
// UTC timestamp, plus page metadata for listings.
package envelope

import "time"

const (
	DefaultSuccessMessage = "operation succeeded"
	DefaultPagedMessage   = "query succeeded"
)

// Response wraps a single payload. A successful response never carries an
// Error; a failed one never carries Data.
type Response[T any] struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      *T        `json:"data"`
	Error     any       `json:"error"`
	Timestamp time.Time `json:"timestamp"`
}

// PageInfo describes where a page sits in a listing.
type PageInfo struct {
	Page            int  `json:"page"`
	PageSize        int  `json:"pageSize"`
	TotalCount      int  `json:"totalCount"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// Paged wraps one page of a listing.
type Paged[T any] struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Data      []T       `json:"data"`
	Error     any       `json:"error"`
	PageInfo  PageInfo  `json:"pageInfo"`
	Timestamp time.Time `json:"timestamp"`
}

// Success wraps data in a successful response. An empty message falls back to
// DefaultSuccessMessage.
func Success[T any](data T, message string) Response[T] {
	if message == "" {
		message = DefaultSuccessMessage
	}
	return Response[T]{
		Success:   true,
		Message:   message,
		Data:      &data,
		Timestamp: time.Now().UTC(),
	}
}

// Failure builds an unsuccessful response. detail may be nil.
func Failure[T any](message string, detail any) Response[T] {
	return Response[T]{
		Success:   false,
		Message:   message,
		Error:     detail,
		Timestamp: time.Now().UTC(),
	}
}

// PagedSuccess wraps one page of items. It does not clamp or validate page
// and pageSize; it only derives the page counts from totalCount.
func PagedSuccess[T any](items []T, page, pageSize, totalCount int, message string) Paged[T] {
	if message == "" {
		message = DefaultPagedMessage
	}
	if items == nil {
		items = []T{}
	}
	return Paged[T]{
		Success:   true,
		Message:   message,
		Data:      items,
		PageInfo:  NewPageInfo(page, pageSize, totalCount),
		Timestamp: time.Now().UTC(),
	}
}

// NewPageInfo computes the page counts and navigation flags. totalPages is
// always derived here, never taken from the caller.
func NewPageInfo(page, pageSize, totalCount int) PageInfo {
	totalPages := 0
	if pageSize > 0 && totalCount > 0 {
		totalPages = (totalCount + pageSize - 1) / pageSize
	}
	return PageInfo{
		Page:            page,
		PageSize:        pageSize,
		TotalCount:      totalCount,
		TotalPages:      totalPages,
		HasNextPage:     page < totalPages,
		HasPreviousPage: page > 1,
	}
}
