package polish

import "strings"

var replacer = strings.NewReplacer(
	"人工智能", "AI技术",
	"机器学习", "ML技术",
)

// Fallback is the local transform used when the remote call fails: the
// style tag, a space, then text with a fixed set of term abbreviations
func Fallback(text string, style Style) string {
	return spec(style).tag + " " + replacer.Replace(text)
}
