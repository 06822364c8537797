package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	iconPolicyOnce sync.Once
	iconPolicy     *bluemonday.Policy
)

// SanitizeIcon strips everything but inline SVG drawing markup from raw.
func SanitizeIcon(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(iconSanitizer().Sanitize(trimmed))
}

// iconShapeAttrs lists the drawing attributes kept per element. Anything not
// listed here, including every event handler, style and link attribute, is
// dropped.
var iconShapeAttrs = map[string][]string{
	"svg":      {"xmlns", "viewBox", "width", "height", "aria-hidden"},
	"g":        nil,
	"path":     {"d"},
	"circle":   {"cx", "cy", "r"},
	"rect":     {"x", "y", "width", "height", "rx", "ry"},
	"polyline": {"points"},
}

var iconPaintAttrs = []string{"fill", "stroke", "stroke-width", "stroke-linecap", "stroke-linejoin"}

func iconSanitizer() *bluemonday.Policy {
	iconPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		for element, attrs := range iconShapeAttrs {
			policy.AllowElements(element)
			policy.AllowAttrs(append(attrs, iconPaintAttrs...)...).OnElements(element)
		}
		iconPolicy = policy
	})
	return iconPolicy
}

// DefaultIcons are the glyphs the canned account forms reference.
func DefaultIcons() map[string]string {
	return map[string]string{
		"email":    `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><rect x="3" y="5" width="18" height="14" rx="2"></rect><polyline points="3,7 12,13 21,7"></polyline></svg>`,
		"password": `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><rect x="5" y="11" width="14" height="10" rx="2"></rect><path d="M8 11V7a4 4 0 0 1 8 0v4"></path></svg>`,
	}
}
