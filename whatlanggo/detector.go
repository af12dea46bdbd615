// Package whatlanggo detects the natural language of questions using
// github.com/abadojack/whatlanggo.
package whatlanggo

import (
	"strings"
	"unicode/utf8"

	"github.com/abadojack/whatlanggo"
	"github.com/fwojciec/helpdesk"
)

// DefaultMinLength is the shortest text, in characters, worth detecting.
const DefaultMinLength = 12

var _ helpdesk.LanguageDetector = (*Detector)(nil)

// Detector implements helpdesk.LanguageDetector.
type Detector struct {
	// MinLength is the shortest text that is detected; shorter text yields "".
	MinLength int
}

// NewDetector creates a new Detector.
func NewDetector() *Detector {
	return &Detector{MinLength: DefaultMinLength}
}

// DetectLanguage returns the English name of the language of text, such as
// "English" or "French". It returns "" for short text or when detection is
// not reliable.
func (d *Detector) DetectLanguage(text string) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < d.MinLength {
		return ""
	}
	info := whatlanggo.Detect(text)
	if !info.IsReliable() {
		return ""
	}
	return info.Lang.String()
}
