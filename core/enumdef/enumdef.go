package enumdef

import (
	"fmt"
	"regexp"
)

// identifierPattern accepts plain SQL identifiers. Table names travel into
// raw DDL, so anything fancier is rejected at construction time.
var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Row is one member of an enumeration: a stable numeric ID and its name.
type Row struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Definition is an immutable enum definition: the table it lives in and the
// ordered member rows. Instances are only built through New or MustNew, both
// of which validate; a Definition that exists is a Definition that is valid.
type Definition struct {
	table string
	rows  []Row
}

// New validates and builds a Definition. It fails when the table name is not
// a plain SQL identifier, or when two rows share an ID or a name.
func New(table string, rows []Row) (*Definition, error) {
	if !identifierPattern.MatchString(table) {
		return nil, fmt.Errorf("invalid enum table name %q", table)
	}

	seenIDs := make(map[int64]struct{}, len(rows))
	seenNames := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if _, dup := seenIDs[r.ID]; dup {
			return nil, fmt.Errorf("enum %s: duplicate id %d", table, r.ID)
		}
		if _, dup := seenNames[r.Name]; dup {
			return nil, fmt.Errorf("enum %s: duplicate name %q", table, r.Name)
		}
		seenIDs[r.ID] = struct{}{}
		seenNames[r.Name] = struct{}{}
	}

	copied := make([]Row, len(rows))
	copy(copied, rows)

	return &Definition{table: table, rows: copied}, nil
}

// MustNew is New for compile-time-constant definitions; it panics on error.
func MustNew(table string, rows []Row) *Definition {
	def, err := New(table, rows)
	if err != nil {
		panic(err)
	}
	return def
}

// Table returns the name of the table this enum maps to.
func (d *Definition) Table() string {
	return d.table
}

// Rows returns a copy of the member rows in declaration order.
func (d *Definition) Rows() []Row {
	out := make([]Row, len(d.rows))
	copy(out, d.rows)
	return out
}

// Len returns the number of members.
func (d *Definition) Len() int {
	return len(d.rows)
}
