package symvalidation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	f "github.com/Gobd/symvalidation/formula"
	"github.com/Gobd/symvalidation/solver/builtin"
)

var shipment = New("Shipment",
	String("method", In("pickup", "post")),
	String("address"),
).Constraints(
	When(func(t *Terms) f.Formula {
		return f.Equals(t.Str("method"), f.Str("post"))
	},
		Constraint("address_required", "address is required for post", func(t *Terms) f.Formula {
			return f.Ge(f.Len(t.Str("address")), f.Int(1))
		}).On("address"),
	).Else(
		Constraint("no_address", "pickup has no address", func(t *Terms) f.Formula {
			return f.Equals(t.Str("address"), f.Str(""))
		}).On("address"),
	).Rules()...,
)

func TestWhen(t *testing.T) {
	d, err := shipment.Descriptor()
	require.NoError(t, err)
	require.Len(t, d.Constraints, 2)
	require.Equal(t, "address_required", d.Constraints[0].Rule)
	require.Equal(t, "address", d.Constraints[0].Field)
	require.Equal(t, `(!(method == "post") || len(address) >= 1)`, d.Constraints[0].Formula.String())
	require.Equal(t, `(method == "post" || address == "")`, d.Constraints[1].Formula.String())

	tests := []struct {
		method, address string
		wantErr         string
	}{
		{"post", "Main St 1", ""},
		{"post", "", "address is required for post"},
		{"pickup", "", ""},
		{"pickup", "Main St 1", "pickup has no address"},
	}
	v := NewValidator(builtin.New())
	for _, tt := range tests {
		t.Run(tt.method+"/"+tt.address, func(t *testing.T) {
			_, err := v.Validate(context.Background(), shipment, map[string]any{
				"method": tt.method, "address": tt.address,
			})
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestWhenUnknownField(t *testing.T) {
	s := New("S", String("a")).Constraints(When(func(t *Terms) f.Formula {
		return f.Equals(t.Str("missing"), f.Str(""))
	}, Constraint("r", "m", func(t *Terms) f.Formula {
		return f.Equals(t.Str("a"), f.Str(""))
	})).Rules()...)
	_, err := s.Descriptor()
	require.EqualError(t, err, `symvalidation: S: unknown field "missing"`)
}
