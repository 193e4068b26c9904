package repository

// MaxPageSize caps the size parameter of a search.
const MaxPageSize = 200

// UserFilter drives both the page query and the count query; Count ignores
// Page and Size.
type UserFilter struct {
	Q        string
	Sort     string // first_name|last_name|email|created_at|updated_at|last_login_at, "-" prefix for desc
	UserType string // accepted from callers, not used for filtering
	Page     int
	Size     int
}

// Normalized returns the filter with page defaulted to 1, so the offset
// and the pagination metadata always agree.
func (f UserFilter) Normalized() UserFilter {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Size < 1 {
		f.Size = 1
	}
	return f
}

func (f UserFilter) Offset() int {
	n := f.Normalized()
	return (n.Page - 1) * n.Size
}
