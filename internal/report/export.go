package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
)

// ExportCSV writes the report rows as CSV with headers. Offline placeholder
// rows keep empty band and metric cells so the column shape stays fixed.
func ExportCSV(w io.Writer, r *Report) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	headers := []string{"Name", "Serial", "Model", "Band", "UtilizationPercent", "ClientCount", "Status"}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, row := range r.Rows {
		record := []string{
			row.Name,
			row.Serial,
			row.Model,
			row.BandLabel,
			fmt.Sprintf("%.1f", row.UtilizationPercent),
			fmt.Sprintf("%d", row.ClientCount),
			row.Status,
		}
		if row.Offline {
			record[3] = ""
			record[4] = ""
			record[5] = ""
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return writer.Error()
}

// ExportJSON writes the full report as indented JSON.
func ExportJSON(w io.Writer, r *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}
