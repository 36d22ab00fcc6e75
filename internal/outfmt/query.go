package outfmt

import (
	"context"
	"encoding/json"
	"io"

	"github.com/easemob/easemob-cli/internal/filter"
)

type queryKey struct{}

// WithQuery adds a jq query to the context
func WithQuery(ctx context.Context, query string) context.Context {
	return context.WithValue(ctx, queryKey{}, query)
}

// GetQuery retrieves the jq query from context
func GetQuery(ctx context.Context) string {
	q, _ := ctx.Value(queryKey{}).(string)
	return q
}

// WriteJSONFiltered writes v as JSON after applying query, if any.
func WriteJSONFiltered(w io.Writer, v any, query string, compact bool) error {
	if query == "" {
		return WriteJSON(w, v, compact)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	result, err := filter.ApplyFromJSON(data, query)
	if err != nil {
		return err
	}
	return WriteJSON(w, result, compact)
}
