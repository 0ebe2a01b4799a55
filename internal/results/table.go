package results

import "fmt"

type Row []string

// Table is the output of one scrape routine: a fixed header followed by
// data rows of the same arity.
type Table struct {
	Header Row
	Rows   []Row
}

func New(header ...string) *Table {
	return &Table{Header: Row(header)}
}

func (t *Table) Append(fields ...string) error {
	if len(fields) != len(t.Header) {
		return fmt.Errorf("row has %d fields, header has %d", len(fields), len(t.Header))
	}

	t.Rows = append(t.Rows, Row(fields))
	return nil
}

// Records returns the header followed by all rows.
func (t *Table) Records() [][]string {
	if t == nil {
		return nil
	}

	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, []string(t.Header))
	for _, r := range t.Rows {
		out = append(out, []string(r))
	}

	return out
}

func (t *Table) Empty() bool {
	return t == nil || len(t.Header) == 0
}
