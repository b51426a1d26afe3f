// Package bank provides the structured-bank abstraction the track builder
// reads from: named columnar records with typed column accessors and
// random access by row.
//
// Banks are read-only from the point of view of the track builder. The
// in-memory MemBank is the only implementation in this repository; other
// sources (files, databases) decode into MemBank before processing.
package bank

import (
	"fmt"
)

// Bank is a read-only columnar record set.
//
// Int and Float return the zero value for a column the bank does not carry
// so that optional columns can be probed with Has and otherwise ignored.
// Row indices outside [0, Rows()) are a caller error.
type Bank interface {
	Name() string
	Rows() int
	Has(column string) bool
	Int(column string, row int) int
	Float(column string, row int) float64
}

// MemBank is an in-memory Bank. Values are stored as float64 per cell and
// truncated toward zero by Int.
type MemBank struct {
	name    string
	columns []string
	index   map[string]int
	data    [][]float64
}

// NewMemBank creates an empty bank with the given column layout.
func NewMemBank(name string, columns ...string) *MemBank {
	b := &MemBank{
		name:    name,
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, c := range columns {
		b.index[c] = i
	}
	return b
}

// Append adds one row. The number of values must match the column count.
func (b *MemBank) Append(values ...float64) error {
	if len(values) != len(b.columns) {
		return fmt.Errorf("bank %s: row has %d values, want %d", b.name, len(values), len(b.columns))
	}
	b.data = append(b.data, append([]float64(nil), values...))
	return nil
}

// Columns returns a copy of the column names in declaration order.
func (b *MemBank) Columns() []string {
	return append([]string(nil), b.columns...)
}

func (b *MemBank) Name() string { return b.name }

func (b *MemBank) Rows() int { return len(b.data) }

func (b *MemBank) Has(column string) bool {
	_, ok := b.index[column]
	return ok
}

func (b *MemBank) Int(column string, row int) int {
	return int(b.Float(column, row))
}

func (b *MemBank) Float(column string, row int) float64 {
	col, ok := b.index[column]
	if !ok {
		return 0
	}
	return b.data[row][col]
}
