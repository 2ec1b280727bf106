package services_test

import (
	"testing"
	"time"

	"debtflow-backend/models"
	"debtflow-backend/services"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplate(t *testing.T) {
	customer := models.Customer{Name: "Acme GmbH"}
	debt := models.Debt{
		InvoiceNumber: "INV-2026-042",
		Amount:        250,
		PaidAmount:    50,
		DueDate:       time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}

	data := services.PlaceholderData(customer, debt, "Debtflow Ltd")
	body := services.RenderTemplate(
		"Dear {{customer_name}}, invoice {{invoice_number}} over {{amount}} is due {{due_date}}. - {{company_name}}",
		data,
	)

	assert.Equal(t,
		"Dear Acme GmbH, invoice INV-2026-042 over 200.00 is due 2026-04-01. - Debtflow Ltd",
		body)
}

func TestRenderTemplateLeavesUnknownPlaceholders(t *testing.T) {
	body := services.RenderTemplate("Hello {{customer_name}}, ref {{unknown}}", map[string]string{
		"customer_name": "Jo",
	})
	assert.Equal(t, "Hello Jo, ref {{unknown}}", body)
}

func TestFormatDueDate(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "due today", services.FormatDueDate(now, now))
	assert.Equal(t, "due tomorrow", services.FormatDueDate(now.AddDate(0, 0, 1), now))
	assert.Equal(t, "due in 7 days", services.FormatDueDate(now.AddDate(0, 0, 7), now))
	assert.Equal(t, "3 days overdue", services.FormatDueDate(now.AddDate(0, 0, -3), now))
}
