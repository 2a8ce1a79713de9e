package renderer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugcPolicyOnce sync.Once
	ugcPolicy     *bluemonday.Policy
)

func defaultPolicy() *bluemonday.Policy {
	ugcPolicyOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
	})
	return ugcPolicy
}

// Sanitized runs the output of another converter through an HTML policy.
type Sanitized struct {
	next   Converter
	policy *bluemonday.Policy
}

// Sanitize wraps next. A nil policy selects the UGC policy.
// bluemonday policies are safe for concurrent use once configured.
func Sanitize(next Converter, policy *bluemonday.Policy) *Sanitized {
	if policy == nil {
		policy = defaultPolicy()
	}
	return &Sanitized{next: next, policy: policy}
}

// Convert renders src with the wrapped converter, then sanitizes the result.
func (s *Sanitized) Convert(src []byte) ([]byte, error) {
	out, err := s.next.Convert(src)
	if err != nil {
		return nil, err
	}
	return s.policy.SanitizeBytes(out), nil
}

// OutputExt follows the wrapped converter.
func (s *Sanitized) OutputExt() string {
	return outputExtOf(s.next, "")
}
