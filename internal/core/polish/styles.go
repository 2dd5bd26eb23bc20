package polish

import "strings"

// Style is a polishing register
type Style string

const (
	Academic Style = "academic"
	Formal   Style = "formal"
	Casual   Style = "casual"
	Creative Style = "creative"
)

// DefaultStyle is used for an empty or unknown style
const DefaultStyle = Academic

// StyleInfo describes a style to clients
type StyleInfo struct {
	ID          Style  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type styleSpec struct {
	info   StyleInfo
	prompt string
	tag    string
}

var styleSpecs = []styleSpec{
	{
		info:   StyleInfo{Academic, "学术", "学术论文风格"},
		prompt: "请将以下文本润色为学术论文风格，保持原意，提高专业性和严谨性：",
		tag:    "[学术润色]",
	},
	{
		info:   StyleInfo{Formal, "正式", "正式文体风格"},
		prompt: "请将以下文本改写为正式的书面语风格，用词规范、表达得体：",
		tag:    "[正式润色]",
	},
	{
		info:   StyleInfo{Casual, "通俗", "通俗易懂风格"},
		prompt: "请将以下文本改写为通俗易懂的风格，语言自然流畅：",
		tag:    "[通俗润色]",
	},
	{
		info:   StyleInfo{Creative, "创意", "创意表达风格"},
		prompt: "请将以下文本改写得更有创意和文采，保持核心意思不变：",
		tag:    "[创意润色]",
	},
}

// StyleIDs lists the accepted style ids in display order
func StyleIDs() []string {
	out := make([]string, len(styleSpecs))
	for i, s := range styleSpecs {
		out[i] = string(s.info.ID)
	}
	return out
}

// Styles lists every style in display order
func Styles() []StyleInfo {
	out := make([]StyleInfo, len(styleSpecs))
	for i, s := range styleSpecs {
		out[i] = s.info
	}
	return out
}

// ParseStyle accepts a style id case-insensitively; "" is the default
func ParseStyle(s string) (Style, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultStyle, true
	}
	for _, sp := range styleSpecs {
		if string(sp.info.ID) == s {
			return sp.info.ID, true
		}
	}
	return "", false
}

// Normalize maps anything unrecognized to the default
func Normalize(s Style) Style {
	if st, ok := ParseStyle(string(s)); ok {
		return st
	}
	return DefaultStyle
}

func spec(s Style) styleSpec {
	s = Normalize(s)
	for _, sp := range styleSpecs {
		if sp.info.ID == s {
			return sp
		}
	}
	return styleSpecs[0]
}
