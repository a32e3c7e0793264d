package formula

import (
	"html"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Terminal styles per token class. Parens alternate between two colors by
// nesting depth so matching pairs are easy to spot.
var (
	styleFunction = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	styleFieldRef = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleOperator = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleComma    = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	styleString   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	styleNumber   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	parenStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
		lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	}
)

// Highlight renders a formula with ANSI colors for terminal display.
func Highlight(src string) string {
	if src == "" {
		return ""
	}
	var b strings.Builder
	for _, tok := range Tokenize(src) {
		switch tok.Type {
		case TokenFunction:
			b.WriteString(styleFunction.Render(tok.Value))
		case TokenFieldRef:
			b.WriteString(styleFieldRef.Render(tok.Value))
		case TokenOperator:
			b.WriteString(styleOperator.Render(tok.Value))
		case TokenComma:
			b.WriteString(styleComma.Render(tok.Value))
		case TokenString:
			b.WriteString(styleString.Render(tok.Value))
		case TokenNumber:
			b.WriteString(styleNumber.Render(tok.Value))
		case TokenParen:
			style := parenStyles[(tok.Depth-1+len(parenStyles))%len(parenStyles)]
			b.WriteString(style.Render(tok.Value))
		default:
			b.WriteString(tok.Value)
		}
	}
	return b.String()
}

// HTML color scheme, chosen to read well on both light and dark markdown
// themes.
var htmlColors = map[TokenType]string{
	TokenFunction: "#0066CC",
	TokenFieldRef: "#22863A",
	TokenOperator: "#D73A49",
	TokenComma:    "#DB2777",
}

var htmlParenColors = []string{"#6F42C1", "#0EA5E9"}

// HighlightHTML renders a formula as HTML with inline styles, suitable for
// embedding in markdown exports. Token text is HTML-escaped.
func HighlightHTML(src string) string {
	if src == "" {
		return ""
	}
	var b strings.Builder
	for _, tok := range Tokenize(src) {
		escaped := html.EscapeString(tok.Value)
		if tok.Type == TokenParen {
			color := htmlParenColors[(tok.Depth-1+len(htmlParenColors))%len(htmlParenColors)]
			b.WriteString(`<span style="color:` + color + `">` + escaped + `</span>`)
			continue
		}
		if color, ok := htmlColors[tok.Type]; ok {
			b.WriteString(`<span style="color:` + color + `">` + escaped + `</span>`)
			continue
		}
		b.WriteString(escaped)
	}
	return b.String()
}
