package codec

import (
	"strings"

	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/model"
)

// csvTimeLayout renders dates the way the flat format always has:
// a localized, human-readable timestamp. The flat format is lossy and
// export-only, so no machine-parseable form is needed.
const csvTimeLayout = "1/2/2006, 3:04:05 PM"

// csvHeader is the fixed column set. ID, created, and capacity are
// deliberately dropped.
var csvHeader = []string{"Name", "Date", "Location", "Category", "Organizer", "Description"}

// ExportCSV writes one quoted row per record under a plain header row.
// Every data field is double-quote wrapped with embedded quotes doubled,
// so commas, quotes, and newlines inside fields stay intact.
func ExportCSV(records []model.EventRecord) []byte {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))

	for _, rec := range records {
		fields := []string{
			rec.Name,
			rec.Date.Format(csvTimeLayout),
			rec.Location,
			rec.Category.DisplayName(),
			rec.Organizer,
			rec.Description,
		}
		b.WriteByte('\n')
		for i, f := range fields {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('"')
			b.WriteString(strings.ReplaceAll(f, `"`, `""`))
			b.WriteByte('"')
		}
	}
	return []byte(b.String())
}
