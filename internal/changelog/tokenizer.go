package changelog

import (
	"regexp"
	"strings"
)

// Line prefixes checked during classification, in priority order. The
// horizontal rule is checked before list items so `---` is not read as a
// list item, and headings are checked longest-prefix-first so `### ` is
// not read as `# `.
const (
	prefixHR = "---"
	prefixH1 = "# "
	prefixH2 = "## "
	prefixH3 = "### "
	prefixLI = "-"
	prefixL2 = "*"
)

var (
	linkLineRE  = regexp.MustCompile(`^\[.*\]:\s*http.*$`)
	linkLabelRE = regexp.MustCompile(`^\[.*\]:$`)
	commentRE   = regexp.MustCompile(`^<!--(.*)-->$`)
	indentRE    = regexp.MustCompile(`^\s\s`)
)

// Tokenize splits a markdown document into classified line tokens and detects
// whether the document uses compact spacing. It never fails: anything that
// matches no other classification becomes a paragraph token and is left for
// the parser to judge.
//
// The compact flag is set when the first level-one heading is immediately
// followed by a non-blank source line. Only the first heading's successor
// line is inspected; the result applies to the whole document.
func Tokenize(markdown string) (bool, []Token) {
	raw := extractTokens(markdown)

	compact := false
	for i, tok := range raw {
		if tok.Kind != KindH1 {
			continue
		}
		if i+1 < len(raw) && raw[i+1].Content[0] != "" {
			compact = true
		}
		break
	}

	return compact, trimTokens(mergeContinuations(raw))
}

// extractTokens classifies each source line into a single-line token.
// Two-line link reference definitions consume their second line.
func extractTokens(markdown string) []Token {
	lines := strings.Split(strings.TrimSpace(markdown), "\n")
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}

	var tokens []Token
	skipNext := false

	for idx, line := range lines {
		ln := idx + 1

		if skipNext {
			skipNext = false
			line = ""
		}

		switch {
		case strings.HasPrefix(line, prefixHR):
			tokens = append(tokens, Token{Line: ln, Kind: KindHorizontalRule, Content: []string{"-"}})
		case strings.HasPrefix(line, prefixH3):
			tokens = append(tokens, Token{Line: ln, Kind: KindH3, Content: []string{headingText(line, 3)}})
		case strings.HasPrefix(line, prefixH2):
			tokens = append(tokens, Token{Line: ln, Kind: KindH2, Content: []string{headingText(line, 2)}})
		case strings.HasPrefix(line, prefixH1):
			tokens = append(tokens, Token{Line: ln, Kind: KindH1, Content: []string{headingText(line, 1)}})
		case strings.HasPrefix(line, prefixLI), strings.HasPrefix(line, prefixL2):
			tokens = append(tokens, Token{Line: ln, Kind: KindListItem, Content: []string{headingText(line, 1)}})
		case linkLineRE.MatchString(line):
			tokens = append(tokens, Token{Line: ln, Kind: KindLink, Content: []string{strings.TrimSpace(line)}})
		case linkLabelRE.MatchString(line):
			// A bare `[anchor]:` line forms a link only when the next line,
			// after trimming, starts with a URL. The two source lines merge
			// into one token; an orphaned label is dropped.
			if idx+1 < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[idx+1]), "http") {
				skipNext = true
				merged := strings.TrimSpace(line) + "\n" + strings.TrimRight(lines[idx+1], " \t")
				tokens = append(tokens, Token{Line: ln, Kind: KindLink, Content: []string{merged}})
			}
		case commentRE.MatchString(line):
			body := strings.TrimSpace(commentRE.FindStringSubmatch(line)[1])
			kind := KindFlag
			if strings.HasPrefix(body, "markdownlint-disable") {
				kind = KindLintDirective
			}
			tokens = append(tokens, Token{Line: ln, Kind: kind, Content: []string{body}})
		default:
			tokens = append(tokens, Token{Line: ln, Kind: KindParagraph, Content: []string{strings.TrimRight(line, " \t")}})
		}
	}

	return tokens
}

// mergeContinuations folds consecutive paragraph lines into multi-line
// paragraph tokens, and attaches indented paragraph lines that follow a list
// item to that item with the two-space indent stripped.
func mergeContinuations(tokens []Token) []Token {
	var result []Token

	for i, tok := range tokens {
		content := tok.Content[0]

		if i > 0 && tok.Kind == KindParagraph {
			prev := &result[len(result)-1]

			if prev.Kind == KindParagraph {
				prev.Content = append(prev.Content, content)
				continue
			}
			if prev.Kind == KindListItem && indentRE.MatchString(content) {
				prev.Content = append(prev.Content, indentRE.ReplaceAllString(content, ""))
				continue
			}
		}

		result = append(result, Token{Line: tok.Line, Kind: tok.Kind, Content: []string{content}})
	}

	return result
}

// trimTokens drops tokens whose content is entirely blank and strips leading
// and trailing blank lines from every remaining token.
func trimTokens(tokens []Token) []Token {
	result := make([]Token, 0, len(tokens))

	for _, tok := range tokens {
		content := tok.Content
		for len(content) > 0 && strings.TrimSpace(content[0]) == "" {
			content = content[1:]
		}
		for len(content) > 0 && strings.TrimSpace(content[len(content)-1]) == "" {
			content = content[:len(content)-1]
		}
		if len(content) == 0 {
			continue
		}
		tok.Content = content
		result = append(result, tok)
	}

	return result
}

// headingText strips an n-character marker prefix and surrounding whitespace.
func headingText(line string, n int) string {
	return strings.TrimSpace(line[n:])
}
