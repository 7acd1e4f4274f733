package changelog

// TokenKind classifies a single markdown construct produced by Tokenize.
type TokenKind int

const (
	// KindH1 is a first-level heading (`# `).
	KindH1 TokenKind = iota
	// KindH2 is a second-level heading (`## `), opening a release section.
	KindH2
	// KindH3 is a third-level heading (`### `), opening a change-kind section.
	KindH3
	// KindListItem is a list item (`-` or `*` prefix).
	KindListItem
	// KindParagraph is any line that matched no other classification.
	KindParagraph
	// KindLink is a link reference definition (`[anchor]: url`).
	KindLink
	// KindFlag is an HTML comment that is not a lint directive.
	KindFlag
	// KindHorizontalRule is a `---` line.
	KindHorizontalRule
	// KindLintDirective is a `<!-- markdownlint-disable ... -->` comment.
	KindLintDirective
)

// String returns a human-readable name, used in parse diagnostics.
func (k TokenKind) String() string {
	switch k {
	case KindH1:
		return "Heading 1"
	case KindH2:
		return "Heading 2"
	case KindH3:
		return "Heading 3"
	case KindListItem:
		return "List Item"
	case KindParagraph:
		return "Paragraph"
	case KindLink:
		return "Link"
	case KindFlag:
		return "Flag"
	case KindHorizontalRule:
		return "Horizontal Rule"
	case KindLintDirective:
		return "Lint"
	default:
		return "Unknown"
	}
}

// Token is a classified slice of the source document. Line is the 1-based
// source line the token started on. Content holds one entry per source line;
// multi-line tokens (merged paragraphs, list-item continuations) accumulate
// entries during the merge pass.
type Token struct {
	Line    int
	Kind    TokenKind
	Content []string
}
