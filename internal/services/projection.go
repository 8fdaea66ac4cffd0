package services

import (
	"fmt"

	"sales-dashboard/internal/models"
)

const (
	defaultRecordLimit = 100
	maxRecordLimit     = 1000
)

// columnGetters is the whitelist of column identifiers the detail view may
// request, each paired with its value extractor.
var columnGetters = map[string]func(models.Sale) any{
	"id":             func(s models.Sale) any { return s.ID },
	"date":           func(s models.Sale) any { return s.Date.Format("2006-01-02") },
	"category":       func(s models.Sale) any { return s.Category },
	"product":        func(s models.Sale) any { return s.Product },
	"region":         func(s models.Sale) any { return s.Region },
	"city":           func(s models.Sale) any { return s.City },
	"seller":         func(s models.Sale) any { return s.Seller },
	"payment_method": func(s models.Sale) any { return s.PaymentMethod },
	"customer_id":    func(s models.Sale) any { return s.CustomerID },
	"unit_price":     func(s models.Sale) any { return s.UnitPrice },
	"quantity":       func(s models.Sale) any { return s.Quantity },
	"gross_amount":   func(s models.Sale) any { return s.GrossAmount },
	"discount":       func(s models.Sale) any { return s.Discount },
	"amount":         func(s models.Sale) any { return s.Amount },
	"status":         func(s models.Sale) any { return string(s.Status) },
}

// DefaultColumns is the detail view's initial column selection.
var DefaultColumns = []string{
	"id", "date", "category", "product", "region",
	"seller", "quantity", "discount", "amount", "status",
}

// ProjectRecords maps rows onto the requested whitelisted columns, capping
// the row count. Empty columns select the default set; an identifier
// outside the whitelist is an error.
func ProjectRecords(rows []models.Sale, columns []string, limit int) ([]map[string]any, error) {
	if len(columns) == 0 {
		columns = DefaultColumns
	}
	for _, col := range columns {
		if _, ok := columnGetters[col]; !ok {
			return nil, fmt.Errorf("unknown column %q", col)
		}
	}

	if limit <= 0 {
		limit = defaultRecordLimit
	}
	if limit > maxRecordLimit {
		limit = maxRecordLimit
	}
	if limit > len(rows) {
		limit = len(rows)
	}

	out := make([]map[string]any, 0, limit)
	for _, s := range rows[:limit] {
		row := make(map[string]any, len(columns))
		for _, col := range columns {
			row[col] = columnGetters[col](s)
		}
		out = append(out, row)
	}
	return out, nil
}
