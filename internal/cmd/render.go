package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/easemob/easemob-cli/internal/api"
	"github.com/easemob/easemob-cli/internal/outfmt"
)

func formatter(cmd *cobra.Command) *outfmt.Formatter {
	return outfmt.NewFormatter(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// printResponse turns a non-2xx response into an error and otherwise
// prints it: the decoded body in JSON mode, text(resp) in text mode. A nil
// text prints the entities table, or a generic summary.
func printResponse(cmd *cobra.Command, resp *api.Response, text func(*outfmt.Formatter, *api.Response) error) error {
	if err := resp.Err(); err != nil {
		return err
	}
	f := formatter(cmd)
	if handled, err := f.Output(resp.Data); handled {
		return err
	}
	if text != nil {
		return text(f, resp)
	}
	return printEntities(f, resp, nil)
}

// printEntities renders the "entities" array. Columns default to the union
// of keys, sorted, with "uuid" and "type" dropped.
func printEntities(f *outfmt.Formatter, resp *api.Response, columns []string) error {
	entities := resp.Entities()
	if len(entities) == 0 {
		return printData(f, resp)
	}
	if columns == nil {
		columns = entityColumns(entities)
	}
	if err := printRows(f, entities, columns); err != nil {
		return err
	}
	if cursor := resp.Cursor(); cursor != "" {
		f.Empty("Next page: --cursor " + cursor)
	}
	return nil
}

// printData renders the "data" member, which is an object, an array of
// names, or a scalar depending on the operation.
func printData(f *outfmt.Formatter, resp *api.Response) error {
	data, ok := resp.Data["data"]
	if !ok || data == nil {
		f.Println("OK")
		return nil
	}
	switch v := data.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([][2]string, len(keys))
		for i, k := range keys {
			pairs[i] = [2]string{k, cell(v[k])}
		}
		return f.KeyValues(pairs)
	case []any:
		if len(v) == 0 {
			f.Empty("No results")
			return nil
		}
		if rows := objects(v); rows != nil {
			return printRows(f, rows, entityColumns(rows))
		}
		for _, item := range v {
			f.Println(cell(item))
		}
		return nil
	default:
		f.Println(cell(v))
		return nil
	}
}

func printRows(f *outfmt.Formatter, items []map[string]any, columns []string) error {
	rows := make([][]string, 0, len(items))
	for _, e := range items {
		row := make([]string, len(columns))
		for i, c := range columns {
			row[i] = cell(e[c])
		}
		rows = append(rows, row)
	}
	headers := make([]string, len(columns))
	for i, c := range columns {
		headers[i] = strings.ToUpper(c)
	}
	return f.Table(headers, rows)
}

// objects returns items as maps when every item is a JSON object.
func objects(items []any) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil
		}
		out = append(out, m)
	}
	return out
}

func entityColumns(entities []map[string]any) []string {
	seen := map[string]bool{"uuid": true, "type": true}
	var cols []string
	for _, e := range entities {
		for k := range e {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	sort.Strings(cols)
	return cols
}

func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case string:
		return t
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%g", t)
	case []any:
		parts := make([]string, len(t))
		for i, p := range t {
			parts[i] = cell(p)
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", t)
	}
}

func listOptions(cmd *cobra.Command) api.ListOptions {
	limit, _ := cmd.Flags().GetInt("limit")
	cursor, _ := cmd.Flags().GetString("cursor")
	return api.ListOptions{Limit: limit, Cursor: cursor}
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().Int("limit", api.DefaultListLimit, "Page size")
	cmd.Flags().String("cursor", "", "Cursor from a previous page")
}
