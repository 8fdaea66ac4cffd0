package models

import (
	"sort"
	"strings"
	"time"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
)

// ParseStatus maps a user-supplied value onto a known status.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusCompleted:
		return StatusCompleted, true
	case StatusPending:
		return StatusPending, true
	case StatusCancelled:
		return StatusCancelled, true
	}
	return "", false
}

// Sale is a single immutable row of the dataset. Amount is the final
// charged value after the discount fraction is applied to GrossAmount.
type Sale struct {
	ID            string
	Date          time.Time
	Category      string
	Product       string
	Region        string
	City          string
	Seller        string
	PaymentMethod string
	CustomerID    string
	UnitPrice     float64
	Quantity      int
	GrossAmount   float64
	Discount      float64 // fraction in [0,1]
	Amount        float64
	Status        Status
}

// FilterCriteria is a conjunction of predicates. A zero From/To means no
// bound on that side; an empty set means no restriction on that dimension.
type FilterCriteria struct {
	From       time.Time
	To         time.Time
	Statuses   []Status
	Categories []string
	Regions    []string
}

// Key returns a canonical string representation of the criteria, stable
// under reordering of the set values. Used as a memoization key component.
func (c FilterCriteria) Key() string {
	var b strings.Builder

	b.WriteString("from=")
	if !c.From.IsZero() {
		b.WriteString(c.From.Format("2006-01-02"))
	}
	b.WriteString("|to=")
	if !c.To.IsZero() {
		b.WriteString(c.To.Format("2006-01-02"))
	}

	statuses := make([]string, 0, len(c.Statuses))
	for _, s := range c.Statuses {
		statuses = append(statuses, string(s))
	}
	writeSet := func(name string, values []string) {
		sorted := make([]string, len(values))
		copy(sorted, values)
		sort.Strings(sorted)
		b.WriteString("|")
		b.WriteString(name)
		b.WriteString("=")
		b.WriteString(strings.Join(sorted, ","))
	}
	writeSet("status", statuses)
	writeSet("category", c.Categories)
	writeSet("region", c.Regions)

	return b.String()
}
