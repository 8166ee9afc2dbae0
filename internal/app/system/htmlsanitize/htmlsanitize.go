// Package htmlsanitize cleans user-supplied free text before it is stored.
//
// Activity and task descriptions may carry light formatting from the client's
// rich-text inputs; anything executable is removed.
package htmlsanitize

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugcOnce   sync.Once
	ugc       *bluemonday.Policy
	plainOnce sync.Once
	plain     *bluemonday.Policy
)

func ugcPolicy() *bluemonday.Policy {
	ugcOnce.Do(func() {
		ugc = bluemonday.UGCPolicy()
		ugc.AllowAttrs("colspan", "rowspan").OnElements("td", "th")
	})
	return ugc
}

func plainPolicy() *bluemonday.Policy {
	plainOnce.Do(func() {
		plain = bluemonday.StrictPolicy()
	})
	return plain
}

// Sanitize keeps safe formatting markup and strips scripts, event handlers,
// and javascript: URLs. Surrounding whitespace is trimmed.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return ugcPolicy().Sanitize(s)
}

// StripTags removes all markup, leaving only text content.
func StripTags(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return plainPolicy().Sanitize(s)
}
