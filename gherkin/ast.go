package gherkin

// Tag is a single @-prefixed label attached to a feature or scenario.
type Tag struct {
	Name string // e.g. "@smoke", "@wip"
}

// Table is tabular step data. The first row holds the column keys.
type Table struct {
	Rows [][]string
}

// Keys returns the first row of the table.
func (t *Table) Keys() []string {
	return t.Rows[0]
}

// Hashes zips every row after the first against the keys. Rows are
// assumed to be as wide as the key row; shorter rows are zipped as far
// as they go.
func (t *Table) Hashes() []map[string]string {
	keys := t.Keys()
	hashes := make([]map[string]string, 0, len(t.Rows)-1)
	for _, row := range t.Rows[1:] {
		h := make(map[string]string, len(keys))
		for i, key := range keys {
			if i < len(row) {
				h[key] = row[i]
			}
		}
		hashes = append(hashes, h)
	}
	return hashes
}

// DocString is a multiline block delimited by `"""` lines. Content is
// preserved verbatim, including embedded blank lines.
type DocString struct {
	Content string
}

// Statement is a single step line. At most one of Table and DocString
// is set.
type Statement struct {
	Keyword   string // as written: Given, When, Then, And, But
	Role      string // Given, When or Then; And/But resolve to the preceding role
	Text      string // the sentence after the keyword
	Table     *Table
	DocString *DocString
	Line      int // 1-based
}

// Sentence returns the free-text portion the step registry matches
// against.
func (s *Statement) Sentence() string {
	return s.Text
}

// Block is an ordered sequence of steps.
type Block struct {
	Steps []*Statement
}

// TaggedBlock is a block with tags and a name.
type TaggedBlock struct {
	Block
	Tags []Tag
	Name string
}

// Background holds steps that run before each scenario. Semantics are
// owned by the executor; the parser only captures them.
type Background struct {
	Block
}

// Scenario is a named, optionally tagged example within a feature.
type Scenario struct {
	TaggedBlock
	Outline  bool   // header was "Scenario Outline:"
	Examples *Table // optional, only after an Examples: header
	Line     int    // 1-based line of the Scenario: header
}

// Feature is the root of a parsed document.
type Feature struct {
	TaggedBlock
	Description string
	Background  *Background
	Scenarios   []*Scenario
}
