package symvalidation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Gobd/symvalidation/solver/builtin"
)

var page = New("Page",
	Int("size", IntDefault(20), Max(100), IntExample(50)),
	String("sort", Default("asc"), In("asc", "desc"), Example("desc")),
)

func TestDefaults(t *testing.T) {
	d, err := page.Descriptor()
	require.NoError(t, err)
	var rules []string
	for _, c := range d.Properties {
		rules = append(rules, c.Rule)
	}
	require.Equal(t, []string{"size.max", "sort.in"}, rules)

	v := NewValidator(builtin.New())
	ctx := context.Background()

	raw := map[string]any{}
	got, err := v.Validate(ctx, page, raw)
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = v.Validate(ctx, page, map[string]any{"size": nil, "sort": "desc"})
	require.NoError(t, err)

	_, err = v.Validate(ctx, page, map[string]any{"size": 200})
	require.EqualError(t, err, "must be no greater than 100")

	_, err = v.Validate(ctx, page, map[string]any{"sort": "random"})
	require.EqualError(t, err, "must be one of 'asc', 'desc'")

	_, err = v.Validate(ctx, page, map[string]any{"sort": 1})
	require.EqualError(t, err, "sort: must be a string.")
}

func TestDefaultAndExampleSchema(t *testing.T) {
	d, err := page.Descriptor()
	require.NoError(t, err)
	s := d.OpenAPISchema()

	size := s.Properties["size"].Value
	assert.Equal(t, int64(20), size.Default)
	assert.Equal(t, int64(50), size.Example)
	sort := s.Properties["sort"].Value
	assert.Equal(t, "asc", sort.Default)
	assert.Equal(t, "desc", sort.Example)
	assert.Equal(t, []any{"asc", "desc"}, sort.Enum)
}
