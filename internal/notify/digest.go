package notify

import (
	"fmt"
	"strings"

	"github.com/tartampluch/go-screening/internal/config"
	"github.com/tartampluch/go-screening/internal/engine"
)

// Digest formats the checklist as an email. The first config.UpNextCount entries
// are listed under "Up next:", the rest under "In the future:".
func Digest(recs []engine.Recommendation) (subject, body string) {
	next, later := engine.Split(recs)

	var b strings.Builder
	b.WriteString(config.DigestTitle)
	b.WriteString(config.DigestItemSeparator)
	b.WriteString(config.DigestUpNext)
	b.WriteString("\n")
	writeItems(&b, next)
	b.WriteString(config.DigestItemSeparator)
	b.WriteString(config.DigestFuture)
	b.WriteString("\n")
	writeItems(&b, later)
	b.WriteString("\n")

	return config.DigestSubject, b.String()
}

func writeItems(b *strings.Builder, recs []engine.Recommendation) {
	for i, r := range recs {
		if i > 0 {
			b.WriteString(config.DigestItemSeparator)
		}
		fmt.Fprintf(b, config.DigestItemFormat, r.Name, r.Label(), r.DueDateText(), r.Frequency)
	}
}
