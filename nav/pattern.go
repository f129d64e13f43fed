package nav

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// defaultParamPattern captures a maximal run of non-separator characters.
const defaultParamPattern = "[^/]+"

// templateToken is one literal run or one parameter of a path template.
type templateToken struct {
	// literal is the raw text for literal tokens.
	literal string
	// param is the parameter name; empty for literal tokens.
	param string
	// constraint is the regexp (or macro name) from ":name(constraint)".
	constraint string
}

// Pattern is the compiled form of a path template such as "family/:fid".
//
// A Pattern matches case-insensitively. Captured parameter values keep the
// case of the input and are path-unescaped.
type Pattern struct {
	// template is the original template string.
	template string
	// prefix matches the template at the start of the input.
	prefix *regexp.Regexp
	// exact matches the whole input.
	exact *regexp.Regexp
	// tokens drive Expand.
	tokens []templateToken
	// names are the parameter names in template order.
	names []string
	// groups are the submatch indices of names, shared by prefix and exact.
	groups []int
	// values validate each parameter value during Expand.
	values []*regexp.Regexp
	// openEnded is set for templates ending in "/", which may be followed
	// directly by a child segment.
	openEnded bool
}

// Compile parses a path template and returns its compiled pattern.
//
// A template is a sequence of literal text and parameters. A parameter is a
// colon followed by a name made of letters, digits and underscores, with an
// optional constraint in parentheses:
//
//	family/:fid
//	users/:id(int)/posts/:slug([a-z-]+)
//
// The constraint is either a macro name (see the package documentation) or a
// regular expression. Parameter names must be unique within the template.
func Compile(template string) (*Pattern, error) {
	tokens, err := parseTemplate(template)
	if err != nil {
		return nil, err
	}

	var (
		body   bytes.Buffer
		names  []string
		values []*regexp.Regexp
	)

	for _, tok := range tokens {
		if tok.param == "" {
			body.WriteString(regexp.QuoteMeta(tok.literal))
			continue
		}

		patt := defaultParamPattern
		if tok.constraint != "" {
			patt = constraintPattern(tok.constraint)
		}
		matcher, err := compileRegexp(fmt.Sprintf("(?i)^(?:%s)$", patt))
		if err != nil {
			return nil, fmt.Errorf("nav: invalid constraint %q for parameter %q: %w", patt, tok.param, err)
		}

		fmt.Fprintf(&body, "(?P<%s>%s)", tok.param, patt)
		names = append(names, tok.param)
		values = append(values, matcher)
	}

	if err := checkDuplicateParams(names); err != nil {
		return nil, fmt.Errorf("%w in %q", err, template)
	}

	prefix, err := compileRegexp("(?i)^" + body.String())
	if err != nil {
		return nil, fmt.Errorf("nav: invalid template %q: %w", template, err)
	}
	exact, err := compileRegexp("(?i)^" + body.String() + "$")
	if err != nil {
		return nil, fmt.Errorf("nav: invalid template %q: %w", template, err)
	}

	groups := make([]int, len(names))
	for i, name := range names {
		groups[i] = prefix.SubexpIndex(name)
	}

	return &Pattern{
		template:  template,
		prefix:    prefix,
		exact:     exact,
		tokens:    tokens,
		names:     names,
		groups:    groups,
		values:    values,
		openEnded: strings.HasSuffix(template, "/"),
	}, nil
}

// Template returns the template the pattern was compiled from.
func (p *Pattern) Template() string {
	return p.template
}

// Names returns the parameter names in the order they appear.
func (p *Pattern) Names() []string {
	return append([]string(nil), p.names...)
}

// Regexp returns the source of the exact-match regular expression.
func (p *Pattern) Regexp() string {
	return p.exact.String()
}

// MatchPrefix matches the template against the start of input. The matched
// prefix must end at the end of input or at a "/" separator. It returns the
// consumed prefix and the captured parameters.
func (p *Pattern) MatchPrefix(input string) (string, map[string]string, bool) {
	loc := p.prefix.FindStringSubmatchIndex(input)
	if loc == nil {
		return "", nil, false
	}

	end := loc[1]
	if end < len(input) && !p.openEnded && input[end] != '/' {
		return "", nil, false
	}

	return input[:end], p.params(input, loc), true
}

// MatchExact matches the template against the whole input and returns the
// captured parameters.
func (p *Pattern) MatchExact(input string) (map[string]string, bool) {
	loc := p.exact.FindStringSubmatchIndex(input)
	if loc == nil {
		return nil, false
	}

	return p.params(input, loc), true
}

// Expand builds a concrete, escaped path from the template by substituting
// values. It fails with ErrMissingParameter when a name is absent and with
// ErrInvalidParameter when a value violates its constraint.
func (p *Pattern) Expand(values map[string]string) (string, error) {
	var (
		buf strings.Builder
		i   int
	)

	for _, tok := range p.tokens {
		if tok.param == "" {
			buf.WriteString(tok.literal)
			continue
		}

		v, ok := values[tok.param]
		if !ok {
			return "", fmt.Errorf("nav: %w %q in %q", ErrMissingParameter, tok.param, p.template)
		}
		// Locations are matched in escaped form, so constraints are too.
		escaped := url.PathEscape(v)
		if !p.values[i].MatchString(escaped) {
			return "", fmt.Errorf("nav: %w %q: %q doesn't match %q", ErrInvalidParameter, tok.param, v, p.values[i].String())
		}
		buf.WriteString(escaped)
		i++
	}

	return buf.String(), nil
}

// params extracts the parameter values from a submatch index slice.
func (p *Pattern) params(input string, loc []int) map[string]string {
	vars := make(map[string]string, len(p.names))
	for i, name := range p.names {
		g := p.groups[i]
		if g < 0 || 2*g+1 >= len(loc) || loc[2*g] < 0 {
			continue
		}
		raw := input[loc[2*g]:loc[2*g+1]]
		if v, err := url.PathUnescape(raw); err == nil {
			raw = v
		}
		vars[name] = raw
	}
	return vars
}

// ExpandPath compiles template (served from a cache) and expands it with
// values.
func ExpandPath(template string, values map[string]string) (string, error) {
	p, err := cachedPattern(template)
	if err != nil {
		return "", err
	}
	return p.Expand(values)
}

// ParamNames returns the parameter names of template in order.
func ParamNames(template string) ([]string, error) {
	p, err := cachedPattern(template)
	if err != nil {
		return nil, err
	}
	return p.Names(), nil
}

// parseTemplate splits a template into literal and parameter tokens.
func parseTemplate(tpl string) ([]templateToken, error) {
	var (
		tokens  []templateToken
		literal strings.Builder
	)

	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, templateToken{literal: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(tpl); {
		if tpl[i] != ':' || i+1 >= len(tpl) || !isNameByte(tpl[i+1]) {
			literal.WriteByte(tpl[i])
			i++
			continue
		}

		j := i + 1
		for j < len(tpl) && isNameByte(tpl[j]) {
			j++
		}
		tok := templateToken{param: tpl[i+1 : j]}

		if j < len(tpl) && tpl[j] == '(' {
			end, err := closingParen(tpl, j)
			if err != nil {
				return nil, err
			}
			tok.constraint = tpl[j+1 : end]
			if tok.constraint == "" {
				return nil, fmt.Errorf("nav: empty constraint for parameter %q in %q", tok.param, tpl)
			}
			j = end + 1
		}

		flush()
		tokens = append(tokens, tok)
		i = j
	}
	flush()

	return tokens, nil
}

// closingParen returns the index of the parenthesis closing the one at open.
// Escaped parentheses inside the constraint are skipped.
func closingParen(s string, open int) (int, error) {
	level := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '(':
			level++
		case ')':
			if level--; level == 0 {
				return i, nil
			}
		}
	}
	return 0, fmt.Errorf("nav: unbalanced parentheses in %q", s)
}

// isNameByte reports whether c may appear in a parameter name.
func isNameByte(c byte) bool {
	return c == '_' ||
		('a' <= c && c <= 'z') ||
		('A' <= c && c <= 'Z') ||
		('0' <= c && c <= '9')
}

// checkDuplicateParams returns an error if any parameter name is repeated.
func checkDuplicateParams(names []string) error {
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if seen[n] {
			return fmt.Errorf("nav: duplicated route parameter %q", n)
		}
		seen[n] = true
	}
	return nil
}
