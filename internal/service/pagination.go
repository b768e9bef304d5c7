package service

const (
	defaultPage  = 1
	defaultLimit = 20
)

// Page is a 1-based page request.
type Page struct {
	Number int
	Limit  int
}

// NormalizePage applies defaults to non-positive values.
func NormalizePage(number, limit int) Page {
	if number <= 0 {
		number = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	return Page{Number: number, Limit: limit}
}

// Offset is the number of rows skipped before the page starts.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Limit
}
