package utils

import "fmt"

// FormatEUR keeps consistent decimal formatting for fee fields.
func FormatEUR(amount float64) string {
	return fmt.Sprintf("%.2f EUR", amount)
}

// FormatFeeRange renders a fee band for reports.
func FormatFeeRange(min, max float64, currency string) string {
	if currency == "" {
		currency = "EUR"
	}
	return fmt.Sprintf("%.0f-%.0f %s", min, max, currency)
}
