package markdown

import bm "github.com/microcosm-cc/bluemonday"

// Sanitizer scrubs editor or author supplied HTML down to the bluemonday
// user generated content policy.
type Sanitizer struct {
	policy *bm.Policy
}

func NewSanitizer() *Sanitizer {
	policy := bm.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return &Sanitizer{policy: policy}
}

func (s *Sanitizer) Sanitize(html string) string {
	return s.policy.Sanitize(html)
}

func (s *Sanitizer) SanitizeBytes(html []byte) []byte {
	return s.policy.SanitizeBytes(html)
}
