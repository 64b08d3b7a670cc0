package markdown

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// CopyFeedbackMillis is how long the copy button shows its confirmation.
const CopyFeedbackMillis = 2000

// CodeStyle is the chroma style used for hydrated code blocks.
const CodeStyle = "github"

// CodeBlock is a fenced code block lifted out of the rendered HTML flow.
type CodeBlock struct {
	Index    int    `json:"index"`
	Language string `json:"language"`
	Filename string `json:"filename"`
	Code     string `json:"code"`
}

var languageAliases = map[string]string{
	"js":    "javascript",
	"ts":    "typescript",
	"sh":    "bash",
	"shell": "bash",
	"yml":   "yaml",
	"md":    "markdown",
}

// NormalizeLanguage maps a fence info string to a canonical language name.
func NormalizeLanguage(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return "text"
	}
	lang := strings.ToLower(fields[0])
	if alias, ok := languageAliases[lang]; ok {
		return alias
	}
	return lang
}

var filenamePattern = regexp.MustCompile(`^(?://|#|/\*)\s*(\S+\.\w+)`)

// SniffFilename looks for a file name in a leading comment such as
// "// main.go", "# setup.py" or "/* styles.css". It returns "code" when
// the first line carries none.
func SniffFilename(code string) string {
	first := code
	if i := strings.IndexByte(code, '\n'); i >= 0 {
		first = code[:i]
	}
	m := filenamePattern.FindStringSubmatch(strings.TrimSpace(first))
	if m == nil {
		return "code"
	}
	return m[1]
}

// Hydrate renders an interactive code block: a header with the file name,
// language and copy button followed by chroma-highlighted source.
func Hydrate(block CodeBlock) (string, error) {
	lexer := lexers.Get(block.Language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, block.Code)
	if err != nil {
		return "", fmt.Errorf("tokenising %s block: %w", block.Language, err)
	}

	var code bytes.Buffer
	if err := codeFormatter().Format(&code, codeStyle(), iterator); err != nil {
		return "", fmt.Errorf("formatting %s block: %w", block.Language, err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="code-block" data-code-index="%d" data-language="%s">`+"\n",
		block.Index, html.EscapeString(block.Language))
	b.WriteString(`<div class="code-header">`)
	fmt.Fprintf(&b, `<span class="code-filename">%s</span>`, html.EscapeString(block.Filename))
	fmt.Fprintf(&b, `<span class="code-language">%s</span>`, html.EscapeString(block.Language))
	fmt.Fprintf(&b, `<button type="button" class="copy-button" data-copied-label="Copied!" data-feedback-ms="%d">Copy</button>`,
		CopyFeedbackMillis)
	b.WriteString("</div>\n")
	b.Write(code.Bytes())
	b.WriteString("</div>\n")
	return b.String(), nil
}

// ChromaCSS returns the stylesheet matching the classes Hydrate emits.
func ChromaCSS() (string, error) {
	var buf bytes.Buffer
	if err := codeFormatter().WriteCSS(&buf, codeStyle()); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func codeFormatter() *chromahtml.Formatter {
	return chromahtml.New(chromahtml.WithClasses(true), chromahtml.TabWidth(4))
}

func codeStyle() *chroma.Style {
	if s := styles.Get(CodeStyle); s != nil {
		return s
	}
	return styles.Fallback
}
