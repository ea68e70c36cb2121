package cache

import (
	"fmt"
	"strings"
)

// Key joins a prefix and its parts with ':' (e.g. "lease:deliver:<id>").
func Key(prefix string, parts ...any) string {
	var b strings.Builder
	b.WriteString(prefix)
	for _, p := range parts {
		b.WriteByte(':')
		fmt.Fprint(&b, p)
	}
	return b.String()
}
