package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"revu-backend/internal/models"
)

var csvHeader = []string{"rating", "review", "summary", "actions", "timestamp"}

// WriteCSV streams records as a CSV document with standard quoting, one row
// per record in the given order.
func WriteCSV(w io.Writer, records []*models.Feedback) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	for _, f := range records {
		row := []string{
			strconv.Itoa(f.Rating),
			f.Review,
			f.Summary,
			f.Actions,
			models.FormatTimestamp(f.CreatedAt),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
