package entities

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v "github.com/Gobd/symvalidation"
	"github.com/Gobd/symvalidation/solver/builtin"
)

func validUser() map[string]any {
	return map[string]any{
		"username":       "a",
		"password1":      "p",
		"password2":      "p",
		"postal_code":    "1001",
		"contact_number": "1001567890",
	}
}

func withField(m map[string]any, k string, val any) map[string]any {
	out := map[string]any{}
	for key, x := range m {
		out[key] = x
	}
	out[k] = val
	return out
}

func TestUser(t *testing.T) {
	tests := []struct {
		name    string
		schema  *v.Schema
		raw     map[string]any
		wantErr string
	}{
		{name: "accepted", schema: User, raw: validUser()},
		{name: "password mismatch", schema: User, raw: withField(validUser(), "password2", "q"), wantErr: "Passwords do not match"},
		{name: "nine digits", schema: User, raw: withField(validUser(), "contact_number", "100156789"), wantErr: "Contact number should have 10 digits"},
		{name: "letters", schema: User, raw: withField(validUser(), "contact_number", "1001a67890"), wantErr: "Contact number should have 10 digits"},
		{name: "wrong prefix", schema: User, raw: withField(validUser(), "contact_number", "2002567890"), wantErr: "Contact number should start with Postal code"},
		{name: "unknown postal code", schema: User, raw: withField(withField(validUser(), "postal_code", "9999"), "contact_number", "9999567890"), wantErr: "Postal code is not valid"},
		{name: "first error wins", schema: User, raw: withField(withField(validUser(), "password2", "q"), "contact_number", "2002567890"), wantErr: "Passwords do not match"},
		{name: "sub user accepted", schema: SubUser, raw: withField(validUser(), "unique_id", 120)},
		{name: "sub user incompatible id", schema: SubUser, raw: withField(validUser(), "unique_id", 999999999999), wantErr: "Unique ID is not compatible with Postal code"},
		{name: "sub user short id", schema: SubUser, raw: withField(validUser(), "unique_id", 7), wantErr: "Unique ID should have at least 3 digits"},
		// unique_id_digits requires at least 3 decimal digits, so 12 is rejected.
		{name: "sub user two digit id", schema: SubUser, raw: withField(validUser(), "unique_id", 12), wantErr: "Unique ID should have at least 3 digits"},
		{name: "sub user inherits rules", schema: SubUser, raw: withField(withField(validUser(), "unique_id", 120), "password2", "q"), wantErr: "Passwords do not match"},
		{name: "sub user id as string", schema: SubUser, raw: withField(validUser(), "unique_id", "120")},
	}

	val := v.NewValidator(builtin.New())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := val.Validate(context.Background(), tt.schema, tt.raw)
			if tt.wantErr == "" {
				require.NoError(t, err)
				require.Equal(t, tt.raw, got)
				return
			}
			require.EqualError(t, err, tt.wantErr)
			var cv *v.ConstraintViolation
			require.ErrorAs(t, err, &cv)
			require.Nil(t, got)
		})
	}
}

func TestUserIdempotent(t *testing.T) {
	val := v.NewValidator(builtin.New())
	raw := withField(validUser(), "password2", "q")
	_, err1 := val.Validate(context.Background(), User, raw)
	_, err2 := val.Validate(context.Background(), User, raw)
	require.Error(t, err1)
	require.Equal(t, err1, err2)
}

func TestDerivedViolationIsAttributed(t *testing.T) {
	val := v.NewValidator(builtin.New())
	raw := withField(validUser(), "unique_id", 999999999999)

	_, err := val.Validate(context.Background(), User, raw)
	require.NoError(t, err, "valid for the base schema")

	_, err = val.Validate(context.Background(), SubUser, raw)
	var cv *v.ConstraintViolation
	require.ErrorAs(t, err, &cv)
	assert.Equal(t, "SubUser", cv.Entity)
	assert.Equal(t, "unique_id_postal_code", cv.Rule)
	assert.Equal(t, "unique_id", cv.Field)
	assert.Equal(t, v.ValidationErrors{"unique_id": cv.Errors()["unique_id"]}, v.AsValidationErrors(err))
}

func TestNestedViolationComesFromChild(t *testing.T) {
	val := v.NewValidator(builtin.New())
	_, err := val.Validate(context.Background(), User, withField(validUser(), "contact_number", "100156789"))
	var cv *v.ConstraintViolation
	require.ErrorAs(t, err, &cv)
	assert.Equal(t, "ContactNumber", cv.Entity)
	assert.Equal(t, "value.digits", cv.Rule)
}

func TestMissingField(t *testing.T) {
	val := v.NewValidator(builtin.New())
	raw := validUser()
	delete(raw, "password1")
	_, err := val.Validate(context.Background(), User, raw)
	ve := v.AsValidationErrors(err)
	require.Len(t, ve, 1)
	require.EqualError(t, ve["password1"], "cannot be blank")
}

func TestDescribe(t *testing.T) {
	val := v.NewValidator(builtin.New())
	for name, s := range Registry() {
		t.Run(name, func(t *testing.T) {
			d, err := val.Describe(context.Background(), s)
			require.NoError(t, err)
			require.Equal(t, name, d.Entity)
			require.NotNil(t, d.Classification)
			require.Equal(t, v.NeedsConcreteCheck, d.Classification.Kind)
		})
	}
}

func TestSubUserDescriptor(t *testing.T) {
	d, err := SubUser.Descriptor()
	require.NoError(t, err)
	require.Equal(t, []string{"username", "password1", "password2", "postal_code", "contact_number", "unique_id"}, d.Fields())

	rules := make([]string, 0, len(d.Checks()))
	for _, c := range d.Checks() {
		rules = append(rules, c.Rule)
	}
	require.Equal(t, []string{
		"postal_code.in",
		"postal_code.length",
		"contact_number.digits",
		"passwords_match",
		"contact_number_prefix",
		"unique_id_digits",
		"unique_id_postal_code",
	}, rules)
	require.Equal(t, []string{"username"}, d.Unconstrained())
}

func TestNewPostalCode(t *testing.T) {
	_, err := NewPostalCode([]string{"1001", "20020"})
	require.EqualError(t, err, `postal code "20020" has 5 characters, want 4`)

	s, err := NewPostalCode([]string{"9009"})
	require.NoError(t, err)
	_, err = v.NewValidator(builtin.New()).ValidateValue(context.Background(), s, "9009")
	require.NoError(t, err)
}
