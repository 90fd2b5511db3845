package cmd

import (
	"bytes"

	"github.com/fanduty/fanduty/cmd/global"
	"github.com/tomlazar/table"
)

// renderTables renders all non-empty tables, separated by newlines.
func renderTables(tables ...table.Table) (string, error) {
	var buf bytes.Buffer
	for _, t := range tables {
		if t.Rows == nil {
			continue
		}
		if err := t.WriteTable(&buf, global.TableConfig()); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
