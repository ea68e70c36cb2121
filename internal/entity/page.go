package entity

import (
	"math"

	"github.com/google/uuid"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
	// MaxPage keeps (page-1)*limit well inside a Postgres BIGINT OFFSET.
	MaxPage = math.MaxInt32
)

// Filter narrows owner-scoped list and count queries. Zero values match all.
type Filter struct {
	UserID   uuid.UUID
	Status   Status
	Category Category
	Channel  Channel
	// Unread matches status <> read and takes precedence over Status.
	Unread bool
}

type PageRequest struct {
	Page  int
	Limit int
}

// Normalize applies the default page and limit and clamps both.
func (p PageRequest) Normalize(defaultLimit, maxLimit int) PageRequest {
	if defaultLimit <= 0 {
		defaultLimit = DefaultPageLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxPageLimit
	}
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit <= 0 {
		p.Limit = defaultLimit
	}
	if p.Limit > maxLimit {
		p.Limit = maxLimit
	}
	return p
}

// Offset is (page-1)*limit with both factors capped at MaxPage, so the
// product fits in an int64 even for a request that skipped Normalize.
func (p PageRequest) Offset() uint64 {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	return uint64(min(p.Page, MaxPage)-1) * uint64(min(p.Limit, MaxPage))
}

type Page struct {
	Items       []Notification `json:"notifications"`
	Total       int64          `json:"total"`
	TotalPages  int64          `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
}

// TotalPages returns ceil(total/limit).
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 || total <= 0 {
		return 0
	}
	l := int64(limit)
	return (total + l - 1) / l
}

type Counts struct {
	Unread int64 `json:"unread"`
	Total  int64 `json:"total"`
}
