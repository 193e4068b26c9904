package utils

import (
	"net/url"
	"strconv"
	"strings"
)

// QueryInt parses an integer query parameter, returning def when it is
// missing or not a number. Handlers call it after ValidateQuery.
func QueryInt(q url.Values, key string, def int) int {
	v := strings.TrimSpace(q.Get(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
