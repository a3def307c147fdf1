package drive

import (
	"fmt"
	"strings"
	"time"
)

// filesystem- and Drive-unsafe characters replaced during sanitization.
const unsafeChars = `\/:*?"<>|`

// InvoiceFilename builds the archive file name from the received date, the
// sender's display name, and the extracted amount when one is available:
// 20240615_Acme_33,000円.pdf, falling back to 20240615_Acme.pdf.
func InvoiceFilename(received time.Time, company string, amount *float64) string {
	dateStr := received.Format("20060102")
	safe := SanitizeFilename(company)
	if amount == nil {
		return fmt.Sprintf("%s_%s.pdf", dateStr, safe)
	}
	return fmt.Sprintf("%s_%s_%s円.pdf", dateStr, safe, groupDigits(int64(*amount)))
}

// SanitizeFilename replaces characters that are unsafe in file names with
// underscores.
func SanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(unsafeChars, r) {
			return '_'
		}
		return r
	}, s)
}

// groupDigits renders n with comma-separated thousands.
func groupDigits(n int64) string {
	s := fmt.Sprintf("%d", n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	if neg {
		return "-" + b.String()
	}
	return b.String()
}
