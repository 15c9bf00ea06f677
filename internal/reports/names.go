package reports

import (
	"regexp"
	"strings"
	"time"
)

const downloadBase = "/api/v1/analysis/pdfs/"

var (
	unsafeChars   = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
	stampReplacer = strings.NewReplacer(":", "-", ".", "-")
)

// Filename builds "analysis-<ids>-<city>-<timestamp>.pdf" with the timestamp in
// ISO-8601 UTC form, colons and dots replaced by dashes.
func Filename(ids []string, city string, at time.Time) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		if s := unsafeChars.ReplaceAllString(id, ""); s != "" {
			parts = append(parts, s)
		}
	}
	stamp := stampReplacer.Replace(at.UTC().Format("2006-01-02T15:04:05.000Z"))
	return "analysis-" + strings.Join(parts, "-") + "-" + unsafeChars.ReplaceAllString(city, "_") + "-" + stamp + ".pdf"
}

// DownloadPath is the API path a stored report is served from.
func DownloadPath(name string) string {
	return downloadBase + name
}
