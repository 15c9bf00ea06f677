package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFilename(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 7, 9, 123000000, time.UTC)
	got := Filename([]string{"a1", "b2"}, "Mumbai", at)
	assert.Equal(t, "analysis-a1-b2-Mumbai-2024-03-05T14-07-09-123Z.pdf", got)
	assert.NoError(t, CheckFilename(got))
}

func TestFilename_StripsUnsafeCharacters(t *testing.T) {
	at := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	got := Filename([]string{"../x", "/"}, "New Delhi/..", at)
	assert.Equal(t, "analysis-x-New_Delhi_-2024-03-05T14-07-09-000Z.pdf", got)
	assert.NoError(t, CheckFilename(got))
}

func TestCheckFilename(t *testing.T) {
	for _, bad := range []string{"", "../secret.pdf", "a/b.pdf", `a\b.pdf`, ".hidden.pdf", "report.txt", ".."} {
		assert.ErrorIs(t, CheckFilename(bad), ErrInvalidFilename, bad)
	}
	assert.NoError(t, CheckFilename("analysis-x-Delhi-2024.pdf"))
}

func TestDownloadPath(t *testing.T) {
	assert.Equal(t, "/api/v1/analysis/pdfs/r.pdf", DownloadPath("r.pdf"))
}
