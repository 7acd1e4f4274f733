package changelog

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// dateLayout accepts one- or two-digit month and day on input; rendering
// always zero-pads.
const dateLayout = "2006-1-2"

var (
	// Release headings are matched lowercased. The dated pattern is tried
	// first, so a heading carrying both a date and the word "unreleased"
	// takes the dated branch.
	releaseHeadingRE    = regexp.MustCompile(`^\[?([^\]]+)\]?\s*-\s*(\d{4}-\d{1,2}-\d{1,2})(\s+\[yanked\])?$`)
	unreleasedHeadingRE = regexp.MustCompile(`^\[?([^\]]+)\]?\s*-\s*unreleased(\s+\[yanked\])?$`)

	lintDirectiveRE = regexp.MustCompile(`markdownlint-disable((?: MD\d{3})+)`)
	compareSeedRE   = regexp.MustCompile(`(?s)^\[.*\]:\s*(http.*?)/(?:-/)?compare/.*$`)
)

// parser consumes the token stream with a forward-only cursor. There is no
// backtracking: each grammar step peeks and consumes only on a kind match.
type parser struct {
	tokens []Token
	idx    int
	cl     *Changelog
}

// Parse builds a Changelog from markdown source. opts may be nil.
//
// The grammar runs in fixed order: lint directive, flag comment, title,
// description, releases (each with optional description and change-kind
// sections), links, footer. Link tokens are pulled out of the stream before
// the grammar starts and handled separately. Any token left unconsumed once
// the grammar completes is a parse error.
func Parse(markdown string, opts *Options) (*Changelog, error) {
	compact, tokens := Tokenize(markdown)

	var links, rest []Token
	for _, tok := range tokens {
		if tok.Kind == KindLink {
			links = append(links, tok)
		} else {
			rest = append(rest, tok)
		}
	}

	cl := New()
	if opts != nil {
		cl.URL = opts.URL
		cl.TagPrefix = opts.TagPrefix
		if opts.Head != "" {
			cl.Head = opts.Head
		}
	}

	p := &parser{tokens: rest, cl: cl}

	if err := p.parseMeta(); err != nil {
		return nil, err
	}
	if err := p.parseReleases(); err != nil {
		return nil, err
	}
	if err := p.parseLinks(links); err != nil {
		return nil, err
	}
	if err := p.parseFooter(); err != nil {
		return nil, err
	}
	if err := p.finish(); err != nil {
		return nil, err
	}

	cl.Compact = compact
	if compact {
		cl.DisableLint(lintHeadings)
		cl.DisableLint(lintLists)
	}
	cl.sortReleases()

	return cl, nil
}

// parseMeta handles the document prologue: optional lint directive,
// optional flag comment, optional title, optional description.
func (p *parser) parseMeta() error {
	if tok, ok := p.tryConsume(KindLintDirective); ok {
		m := lintDirectiveRE.FindStringSubmatch(tok.Content[0])
		if m == nil {
			return parseErrorf(tok, "malformed lint directive: %q", tok.Content[0])
		}
		p.cl.Lint = strings.Fields(m[1])
	}

	if tok, ok := p.tryConsume(KindFlag); ok {
		p.cl.Flag = strings.Join(tok.Content, "\n")
	}

	if tok, ok := p.tryConsume(KindH1); ok {
		p.cl.Title = strings.Join(tok.Content, "\n")
	}

	p.cl.Description = p.textContent()
	return nil
}

// parseReleases consumes each H2 heading and its body.
func (p *parser) parseReleases() error {
	for {
		tok, ok := p.tryConsume(KindH2)
		if !ok {
			return nil
		}

		heading := strings.Join(tok.Content, "\n")
		release := Release{Yanked: strings.Contains(strings.ToLower(heading), "[yanked]")}

		if err := p.parseReleaseHeading(tok, heading, &release); err != nil {
			return err
		}

		release.Description = p.paragraphContent()

		// List items before any change-kind heading default to Added. This
		// keeps the short form `## 0.1.0 - 2024-04-28` + `- Initial release`
		// meaningful, and keeps rendering a fixed point: regenerated output
		// always carries the explicit `### Added` heading.
		for {
			li, ok := p.tryConsume(KindListItem)
			if !ok {
				break
			}
			release.Changes.Add(Added, strings.Join(li.Content, "\n"))
		}

		for {
			h3, ok := p.tryConsume(KindH3)
			if !ok {
				break
			}
			kind, err := ParseChangeKind(strings.Join(h3.Content, "\n"))
			if err != nil {
				return parseErrorf(h3, "%v", err)
			}
			for {
				li, ok := p.tryConsume(KindListItem)
				if !ok {
					break
				}
				release.Changes.Add(kind, strings.Join(li.Content, "\n"))
			}
		}

		p.cl.Releases = append(p.cl.Releases, release)
	}
}

// parseReleaseHeading resolves a heading into version, date and yanked
// state. The dated form is tried before the unreleased form.
func (p *parser) parseReleaseHeading(tok Token, heading string, release *Release) error {
	lowered := strings.ToLower(heading)

	if m := releaseHeadingRE.FindStringSubmatch(lowered); m != nil {
		version, err := semver.StrictNewVersion(strings.TrimSpace(m[1]))
		if err != nil {
			return parseErrorf(tok, "malformed version %q: %v", strings.TrimSpace(m[1]), err)
		}
		date, err := time.Parse(dateLayout, strings.TrimSpace(m[2]))
		if err != nil {
			return parseErrorf(tok, "malformed date %q: %v", strings.TrimSpace(m[2]), err)
		}
		release.Version = version
		release.Date = &date
		return nil
	}

	if strings.Contains(lowered, "unreleased") {
		// An embedded version is a display label only, never a sort key.
		if m := unreleasedHeadingRE.FindStringSubmatch(lowered); m != nil {
			version, err := semver.StrictNewVersion(strings.TrimSpace(m[1]))
			if err != nil {
				return parseErrorf(tok, "malformed version %q: %v", strings.TrimSpace(m[1]), err)
			}
			release.Version = version
		}
		return nil
	}

	return parseErrorf(tok, "malformed release heading `## %s`: expected `## [VERSION] - [DATE]` or `## [Unreleased]`", heading)
}

// parseLinks resolves the link tokens that were partitioned out of the main
// stream. When no repository URL was supplied, the first link shaped like a
// compare URL seeds the inferred URL used for link derivation.
func (p *parser) parseLinks(tokens []Token) error {
	for _, tok := range tokens {
		raw := strings.Join(tok.Content, "\n")

		if p.cl.URL == "" {
			if m := compareSeedRE.FindStringSubmatch(raw); m != nil {
				p.cl.URL = m[1]
			}
		}

		link, err := ParseLink(raw)
		if err != nil {
			return parseErrorf(tok, "%v", err)
		}
		p.cl.Links = append(p.cl.Links, link)
	}
	return nil
}

// parseFooter consumes an optional horizontal rule and the text after it.
func (p *parser) parseFooter() error {
	if _, ok := p.tryConsume(KindHorizontalRule); ok {
		p.cl.Footer = p.textContent()
	}
	return nil
}

// finish verifies the whole stream was consumed.
func (p *parser) finish() error {
	if p.idx == len(p.tokens) {
		return nil
	}

	var leftover []string
	for _, tok := range p.tokens[p.idx:] {
		leftover = append(leftover, fmt.Sprintf("%s at line %d: %q", tok.Kind, tok.Line, strings.Join(tok.Content, "\n")))
	}
	return &ParseError{
		Line:    p.tokens[p.idx].Line,
		Kind:    p.tokens[p.idx].Kind.String(),
		Message: fmt.Sprintf("unexpected tokens after position %d of %d: %s", p.idx, len(p.tokens), strings.Join(leftover, "; ")),
	}
}

// tryConsume advances past the next token only when it matches kind.
func (p *parser) tryConsume(kind TokenKind) (Token, bool) {
	if p.idx >= len(p.tokens) || p.tokens[p.idx].Kind != kind {
		return Token{}, false
	}
	tok := p.tokens[p.idx]
	p.idx++
	return tok, true
}

// textContent consumes a run of paragraph and list-item tokens and joins
// them into free text. List items are re-prefixed with "- ".
func (p *parser) textContent() string {
	var lines []string

	for p.idx < len(p.tokens) {
		tok := p.tokens[p.idx]
		if tok.Kind != KindParagraph && tok.Kind != KindListItem {
			break
		}
		p.idx++

		if tok.Kind == KindListItem {
			lines = append(lines, "- "+strings.Join(tok.Content, "\n"))
		} else {
			lines = append(lines, strings.Join(tok.Content, "\n"))
		}
	}

	return strings.Join(lines, "\n")
}

// paragraphContent consumes a run of paragraph tokens only. Used for
// release descriptions, where leading list items are change entries rather
// than prose.
func (p *parser) paragraphContent() string {
	var lines []string

	for p.idx < len(p.tokens) {
		tok := p.tokens[p.idx]
		if tok.Kind != KindParagraph {
			break
		}
		p.idx++
		lines = append(lines, strings.Join(tok.Content, "\n"))
	}

	return strings.Join(lines, "\n")
}
