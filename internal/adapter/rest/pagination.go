package rest

import (
	"net/url"
	"strconv"
)

const (
	// DefaultLimit applies when a caller passes a zero page.
	DefaultLimit = 100

	paramLimit  = "_limit"
	paramOffset = "_offset"
	paramSort   = "_sort"
)

// Page is a pagination request.
type Page struct {
	Limit  int
	Offset int
}

// normalized fills in the default limit and clamps a negative offset.
func (p Page) normalized() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Sort names the field to order by. Zero value means server default order.
type Sort struct {
	Field string
	Desc  bool
}

func (s Sort) query() string {
	if s.Field == "" {
		return ""
	}
	if s.Desc {
		return s.Field + ":desc"
	}
	return s.Field
}

// Query renders the pagination (and optional sort) as URL query parameters.
func (p Page) Query(sort Sort) url.Values {
	p = p.normalized()
	q := url.Values{}
	q.Set(paramLimit, strconv.Itoa(p.Limit))
	q.Set(paramOffset, strconv.Itoa(p.Offset))
	if s := sort.query(); s != "" {
		q.Set(paramSort, s)
	}
	return q
}

// PageInfo describes the page the server actually returned.
type PageInfo struct {
	Limit   int
	Offset  int
	HasMore bool
}

// RawPageInfo mirrors the pagination block of a list envelope. HasMore and
// Offset are pointers because older endpoints omit them; an omitted offset
// must not clobber the requested one.
type RawPageInfo struct {
	Limit   int   `json:"limit"`
	Offset  *int  `json:"offset"`
	HasMore *bool `json:"has_more"`
}

// NewPageInfo normalizes the server's pagination block. When the server
// omits has_more, it is inferred as "the page came back full": returned
// item count equals the requested limit.
func NewPageInfo(raw *RawPageInfo, requested Page, returned int) PageInfo {
	requested = requested.normalized()
	info := PageInfo{Limit: requested.Limit, Offset: requested.Offset}
	if raw != nil {
		if raw.Limit > 0 {
			info.Limit = raw.Limit
		}
		if raw.Offset != nil && *raw.Offset >= 0 {
			info.Offset = *raw.Offset
		}
		if raw.HasMore != nil {
			info.HasMore = *raw.HasMore
			return info
		}
	}
	info.HasMore = returned == info.Limit
	return info
}

// Next returns the page request for the following page.
func (p PageInfo) Next() Page {
	return Page{Limit: p.Limit, Offset: p.Offset + p.Limit}
}
