// Package gherkin parses feature documents into a typed syntax tree.
//
// The grammar is line-oriented: tags, Feature/Background/Scenario
// headers, Given/When/Then step sentences, data tables and `"""` doc
// strings. Parsing has no side effects and returns either a complete
// *Feature or a *SyntaxError; it never returns a partial tree.
package gherkin

import (
	"os"
	"regexp"
	"strings"
)

var tagPattern = regexp.MustCompile(`@[^@\s]+`)

var stepKeywords = []string{"Given", "When", "Then", "And", "But"}

// Parse parses a feature document. filename is used only for error
// reporting.
func Parse(filename string, content []byte) (*Feature, error) {
	text := strings.ReplaceAll(string(content), "\r\n", "\n")
	p := &parser{
		filename: filename,
		lines:    strings.Split(text, "\n"),
	}
	return p.parseFeature()
}

// ParseFile reads and parses the feature document at path.
func ParseFile(path string) (*Feature, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, content)
}

type parser struct {
	filename string
	lines    []string
	i        int // 0-based cursor
}

func (p *parser) parseFeature() (*Feature, error) {
	p.skipInsignificant()

	feature := &Feature{}
	feature.Tags = p.parseTags()

	p.skipInsignificant()
	trimmed := p.trimmed()
	if !strings.HasPrefix(trimmed, "Feature:") {
		return nil, p.errHere("expected 'Feature:'")
	}
	feature.Name = strings.TrimSpace(strings.TrimPrefix(trimmed, "Feature:"))
	p.i++

	feature.Description = p.parseDescription()

	p.skipInsignificant()
	if p.trimmed() == "Background:" {
		p.i++
		bg := &Background{}
		steps, err := p.parseSteps()
		if err != nil {
			return nil, err
		}
		bg.Steps = steps
		feature.Background = bg
	}

	for {
		p.skipInsignificant()
		if !p.atScenarioStart() {
			break
		}
		scenario, err := p.parseScenario()
		if err != nil {
			return nil, err
		}
		feature.Scenarios = append(feature.Scenarios, scenario)
	}

	if len(feature.Scenarios) == 0 {
		return nil, p.errHere("expected 'Scenario:'")
	}

	p.skipInsignificant()
	if !p.atEOF() {
		return nil, p.errHere("unexpected input after last scenario")
	}

	return feature, nil
}

// parseDescription captures free text between the Feature: header and
// the first Background or Scenario. The boundary is decided by peeking
// at upcoming lines without consuming them: a tag line only terminates
// the description when it precedes a Scenario header.
func (p *parser) parseDescription() string {
	var lines []string
	for !p.atEOF() {
		trimmed := p.trimmed()
		if trimmed == "Background:" || isScenarioHeader(trimmed) {
			break
		}
		if isTagLine(trimmed) && p.tagsPrecedeScenario(p.i) {
			break
		}
		if !strings.HasPrefix(trimmed, "#") {
			lines = append(lines, trimmed)
		}
		p.i++
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

func (p *parser) parseScenario() (*Scenario, error) {
	scenario := &Scenario{}
	scenario.Tags = p.parseTags()
	p.skipInsignificant()

	trimmed := p.trimmed()
	switch {
	case strings.HasPrefix(trimmed, "Scenario Outline:"):
		scenario.Outline = true
		scenario.Name = strings.TrimSpace(strings.TrimPrefix(trimmed, "Scenario Outline:"))
	case strings.HasPrefix(trimmed, "Scenario:"):
		scenario.Name = strings.TrimSpace(strings.TrimPrefix(trimmed, "Scenario:"))
	default:
		return nil, p.errHere("expected 'Scenario:'")
	}
	scenario.Line = p.i + 1
	p.i++

	steps, err := p.parseSteps()
	if err != nil {
		return nil, err
	}
	scenario.Steps = steps

	p.skipInsignificant()
	if p.trimmed() == "Examples:" {
		p.i++
		p.skipInsignificant()
		if !strings.HasPrefix(p.trimmed(), "|") {
			return nil, p.errHere("expected table after 'Examples:'")
		}
		table, err := p.parseTable()
		if err != nil {
			return nil, err
		}
		scenario.Examples = table
	}

	return scenario, nil
}

// parseSteps consumes consecutive step lines. And/But steps inherit the
// role of the nearest preceding plain keyword; a step list opening with
// And/But resolves to Given.
func (p *parser) parseSteps() ([]*Statement, error) {
	var steps []*Statement
	role := "Given"
	for {
		p.skipInsignificant()
		keyword, rest, ok := splitKeyword(p.trimmed())
		if !ok {
			return steps, nil
		}
		stmt := &Statement{
			Keyword: keyword,
			Text:    rest,
			Line:    p.i + 1,
		}
		if keyword == "And" || keyword == "But" {
			stmt.Role = role
		} else {
			role = keyword
			stmt.Role = keyword
		}
		p.i++

		// A table or doc string on the following lines belongs to this
		// step. First match wins; only one may attach.
		p.skipInsignificant()
		switch {
		case strings.HasPrefix(p.trimmed(), "|"):
			table, err := p.parseTable()
			if err != nil {
				return nil, err
			}
			stmt.Table = table
		case p.trimmed() == `"""`:
			doc, err := p.parseDocString()
			if err != nil {
				return nil, err
			}
			stmt.DocString = doc
		}

		steps = append(steps, stmt)
	}
}

func (p *parser) parseTable() (*Table, error) {
	table := &Table{}
	for !p.atEOF() {
		trimmed := p.trimmed()
		if !strings.HasPrefix(trimmed, "|") {
			break
		}
		if !strings.HasSuffix(trimmed, "|") || trimmed == "|" {
			return nil, p.errHere("malformed table row")
		}
		inner := trimmed[1 : len(trimmed)-1]
		cells := strings.Split(inner, "|")
		for i := range cells {
			cells[i] = strings.TrimSpace(cells[i])
		}
		table.Rows = append(table.Rows, cells)
		p.i++
	}
	return table, nil
}

// parseDocString captures everything between the `"""` delimiter lines
// verbatim. Only the delimiters are trimmed; content lines keep their
// whitespace.
func (p *parser) parseDocString() (*DocString, error) {
	opener := p.i
	p.i++
	var lines []string
	for !p.atEOF() {
		if p.trimmed() == `"""` {
			p.i++
			return &DocString{Content: strings.Join(lines, "\n")}, nil
		}
		lines = append(lines, p.lines[p.i])
		p.i++
	}
	return nil, p.errAt(opener, "unterminated doc string")
}

// parseTags consumes consecutive tag lines, skipping blank and comment
// lines between them.
func (p *parser) parseTags() []Tag {
	var tags []Tag
	for {
		p.skipInsignificant()
		trimmed := p.trimmed()
		if !isTagLine(trimmed) {
			return tags
		}
		for _, m := range tagPattern.FindAllString(trimmed, -1) {
			tags = append(tags, Tag{Name: m})
		}
		p.i++
	}
}

// atScenarioStart reports whether the cursor sits on a Scenario header
// or on tag lines that precede one. It never advances the cursor.
func (p *parser) atScenarioStart() bool {
	trimmed := p.trimmed()
	if isScenarioHeader(trimmed) {
		return true
	}
	return isTagLine(trimmed) && p.tagsPrecedeScenario(p.i)
}

// tagsPrecedeScenario peeks past tag, blank and comment lines starting
// at index i and reports whether a Scenario header follows.
func (p *parser) tagsPrecedeScenario(i int) bool {
	for j := i; j < len(p.lines); j++ {
		t := strings.TrimSpace(p.lines[j])
		if t == "" || strings.HasPrefix(t, "#") || isTagLine(t) {
			continue
		}
		return isScenarioHeader(t)
	}
	return false
}

func (p *parser) skipInsignificant() {
	for !p.atEOF() {
		trimmed := p.trimmed()
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			return
		}
		p.i++
	}
}

func (p *parser) atEOF() bool {
	return p.i >= len(p.lines)
}

func (p *parser) trimmed() string {
	if p.atEOF() {
		return ""
	}
	return strings.TrimSpace(p.lines[p.i])
}

func (p *parser) errHere(format string, args ...any) *SyntaxError {
	return p.errAt(p.i, format, args...)
}

func (p *parser) errAt(i int, format string, args ...any) *SyntaxError {
	line, column, text := 1, 1, ""
	if i < len(p.lines) {
		line = i + 1
		text = p.lines[i]
		column = len(text) - len(strings.TrimLeft(text, " \t")) + 1
	} else if n := len(p.lines); n > 0 {
		line = n
		text = p.lines[n-1]
	}
	return syntaxErrorf(p.filename, line, column, text, format, args...)
}

func isTagLine(trimmed string) bool {
	return strings.HasPrefix(trimmed, "@")
}

func isScenarioHeader(trimmed string) bool {
	return strings.HasPrefix(trimmed, "Scenario:") ||
		strings.HasPrefix(trimmed, "Scenario Outline:")
}

// splitKeyword splits a step line into its keyword and sentence. The
// keyword must be followed by whitespace or end the line.
func splitKeyword(trimmed string) (keyword, rest string, ok bool) {
	for _, kw := range stepKeywords {
		if !strings.HasPrefix(trimmed, kw) {
			continue
		}
		tail := trimmed[len(kw):]
		if tail != "" && tail[0] != ' ' && tail[0] != '\t' {
			continue
		}
		return kw, strings.TrimSpace(tail), true
	}
	return "", "", false
}
