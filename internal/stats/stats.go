// Package stats aggregates structural statistics over a JSON value.
package stats

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/pkg/errors"

	"github.com/mcncl/jsonview/internal/models"
)

// Stats holds per-kind value counts and the total member count of every
// object in a document.
type Stats struct {
	Objects   int `json:"objects"`
	Arrays    int `json:"arrays"`
	Strings   int `json:"strings"`
	Numbers   int `json:"numbers"`
	Booleans  int `json:"booleans"`
	Nulls     int `json:"nulls"`
	TotalKeys int `json:"totalKeys"`
}

// Aggregate visits every value reachable from v exactly once. The
// result does not depend on traversal or member order.
func Aggregate(v *models.Value) Stats {
	var s Stats
	if v == nil {
		return s
	}
	s.visit(v)
	return s
}

func (s *Stats) visit(v *models.Value) {
	switch v.Kind() {
	case models.KindNull:
		s.Nulls++
	case models.KindBoolean:
		s.Booleans++
	case models.KindNumber:
		s.Numbers++
	case models.KindString:
		s.Strings++
	case models.KindArray:
		s.Arrays++
		for _, item := range v.Items() {
			s.visit(item)
		}
	case models.KindObject:
		s.Objects++
		s.TotalKeys += v.Len()
		for _, m := range v.Members() {
			s.visit(m.Value)
		}
	}
}

// Values returns the number of values counted, root included.
func (s Stats) Values() int {
	return s.Objects + s.Arrays + s.Strings + s.Numbers + s.Booleans + s.Nulls
}

// Field is one named counter of the statistics panel.
type Field struct {
	Name  string
	Label string
	Value int
}

// Fields lists the counters in panel order.
func (s Stats) Fields() []Field {
	named := []struct {
		name  string
		value int
	}{
		{"objects", s.Objects},
		{"arrays", s.Arrays},
		{"strings", s.Strings},
		{"numbers", s.Numbers},
		{"booleans", s.Booleans},
		{"nulls", s.Nulls},
		{"totalKeys", s.TotalKeys},
	}
	fields := make([]Field, len(named))
	for i, n := range named {
		fields[i] = Field{Name: n.name, Label: Label(n.name), Value: n.value}
	}
	return fields
}

// Label turns a counter name such as "totalKeys" into "Total Keys".
func Label(name string) string {
	words := strings.Fields(strcase.ToDelimited(name, ' '))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// String renders the counters on one line.
func (s Stats) String() string {
	parts := make([]string, 0, 7)
	for _, f := range s.Fields() {
		parts = append(parts, fmt.Sprintf("%s=%d", f.Name, f.Value))
	}
	return strings.Join(parts, " ")
}

// WriteTable renders the statistics panel as a two-column table.
func WriteTable(w io.Writer, s Stats) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
	)
	table.Header("Statistic", "Count")
	for _, f := range s.Fields() {
		if err := table.Append(f.Label, strconv.Itoa(f.Value)); err != nil {
			return errors.Wrapf(err, "append %s", f.Name)
		}
	}
	return table.Render()
}
