package html

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	codePolicyOnce sync.Once
	codePolicy     *bluemonday.Policy
)

var classNamePattern = regexp.MustCompile(`^[A-Za-z0-9_\- ]+$`)

// codeSanitizer allows only pre and span elements carrying class names.
func codeSanitizer() *bluemonday.Policy {
	codePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("pre", "span")
		policy.AllowAttrs("class").Matching(classNamePattern).OnElements("pre", "span")
		codePolicy = policy
	})
	return codePolicy
}
