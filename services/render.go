package services

import (
	"fmt"
	"strings"
	"time"

	"debtflow-backend/models"
)

// PlaceholderData builds the substitution map for a reminder message.
func PlaceholderData(customer models.Customer, debt models.Debt, companyName string) map[string]string {
	return map[string]string{
		"customer_name":  customer.Name,
		"amount":         fmt.Sprintf("%.2f", debt.Outstanding()),
		"invoice_number": debt.InvoiceNumber,
		"due_date":       debt.DueDate.Format("2006-01-02"),
		"company_name":   companyName,
	}
}

// RenderTemplate substitutes {{name}} placeholders. Bodies carry a fixed
// placeholder set, so plain replacement is the whole engine.
func RenderTemplate(body string, data map[string]string) string {
	for key, value := range data {
		body = strings.ReplaceAll(body, "{{"+key+"}}", value)
	}
	return body
}

// FormatDueDate is shared by controllers that echo due dates in
// human-readable summaries.
func FormatDueDate(due time.Time, now time.Time) string {
	days := int(due.Sub(now).Hours() / 24)
	switch {
	case days < 0:
		return fmt.Sprintf("%d days overdue", -days)
	case days == 0:
		return "due today"
	case days == 1:
		return "due tomorrow"
	default:
		return fmt.Sprintf("due in %d days", days)
	}
}
