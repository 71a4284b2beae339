// Package listview derives the searchable, paginated user table from the
// user store. Filter and Paginate are pure; Controller keeps the operator's
// current query and page and re-derives them whenever the store changes.
package listview

import (
	"strings"

	"github.com/99minutos/admin-console/internal/core/domain"
)

// DefaultPageSize matches the table the console has always shown.
const DefaultPageSize = 5

// Filter returns the users whose name, email or mobile contains query,
// ignoring case. An empty or blank query returns every user; otherwise the
// query is matched as typed, spaces included. Order is preserved and the
// input slice is never modified.
func Filter(users []domain.User, query string) []domain.User {
	all := strings.TrimSpace(query) == ""
	q := strings.ToLower(query)
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		if all || matches(u, q) {
			out = append(out, u)
		}
	}
	return out
}

func matches(u domain.User, q string) bool {
	return strings.Contains(strings.ToLower(u.Name), q) ||
		strings.Contains(strings.ToLower(u.Email), q) ||
		strings.Contains(strings.ToLower(u.Mobile), q)
}

// Page is one window of a (possibly filtered) user list.
type Page struct {
	Items    []domain.User
	Page     int
	PageSize int
	Total    int
	Pages    int
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.Page < p.Pages }

// Paginate cuts the 1-based page out of users. Total is len(users), so when
// users is a filtered set the total tracks the filter. A page past the end
// yields no items.
func Paginate(users []domain.User, page, pageSize int) Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	total := len(users)
	p := Page{
		Items:    []domain.User{},
		Page:     page,
		PageSize: pageSize,
		Total:    total,
		Pages:    (total + pageSize - 1) / pageSize,
	}

	start := (page - 1) * pageSize
	if start >= total {
		return p
	}
	end := min(start+pageSize, total)
	p.Items = append(p.Items, users[start:end]...)
	return p
}
