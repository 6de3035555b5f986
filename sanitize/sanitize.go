// Package sanitize strips executable content from dictionary fragments
// before they reach the definition parser or a browser.
//
// The policy is bluemonday's UGC policy plus the attributes the parser
// depends on: class on every element, id on containers.
package sanitize

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Policy returns the shared fragment policy. bluemonday policies are safe
// for concurrent use once built.
func Policy() *bluemonday.Policy {
	policyOnce.Do(func() {
		p := bluemonday.UGCPolicy()
		p.AllowAttrs("class").Globally()
		p.AllowAttrs("id").OnElements("div", "section")
		p.AllowElements("section", "header")
		policy = p
	})
	return policy
}

// Fragment returns html with scripts, event handlers, and unsafe URLs removed.
func Fragment(html string) string {
	return Policy().Sanitize(html)
}
