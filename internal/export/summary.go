package export

import "designsight-backend/internal/models"

// Summarize counts feedback by category, severity and status. Only values
// that occur appear as keys.
func Summarize(items []models.Feedback) models.ExportSummary {
	summary := models.ExportSummary{
		TotalFeedback: len(items),
		ByCategory:    make(map[string]int),
		BySeverity:    make(map[string]int),
		ByStatus:      make(map[string]int),
	}
	for _, item := range items {
		summary.ByCategory[string(item.Category)]++
		summary.BySeverity[string(item.Severity)]++
		summary.ByStatus[string(item.Status)]++
	}
	return summary
}
