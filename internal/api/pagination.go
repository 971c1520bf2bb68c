package api

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/wirefeed/wirefeed/internal/service"
)

// requestPage parses the 1-based "page" query parameter. Anything
// non-numeric is an invalid page.
func requestPage(c *gin.Context) (int, error) {
	raw := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, service.NotFound("Invalid page.")
	}
	return page, nil
}

// pageEnvelope wraps one page of results with the total match count and
// absolute next/previous links.
func pageEnvelope(c *gin.Context, page, pageSize int, count int64, results interface{}) gin.H {
	var next, previous interface{}

	if int64(page*pageSize) < count {
		next = pageURL(c, page+1)
	}
	if page > 1 {
		previous = pageURL(c, page-1)
	}

	return gin.H{
		"count":    count,
		"next":     next,
		"previous": previous,
		"results":  results,
	}
}

// pageURL rebuilds the request URL pointing at another page. Page 1 drops
// the page parameter entirely.
func pageURL(c *gin.Context, page int) string {
	u := &url.URL{Path: c.Request.URL.Path}
	q := c.Request.URL.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()
	return absoluteURL(c, u.String())
}
