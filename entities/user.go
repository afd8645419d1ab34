package entities

import (
	v "github.com/Gobd/symvalidation"
	f "github.com/Gobd/symvalidation/formula"
)

// User is an account with a confirmed password and a postal code that the
// contact number has to start with.
var User = v.New("User",
	v.String("username"),
	v.String("password1"),
	v.String("password2"),
	v.Nested("postal_code", PostalCode),
	v.Nested("contact_number", ContactNumber),
).Constraints(
	v.Constraint("passwords_match", "Passwords do not match", func(t *v.Terms) f.Formula {
		return f.Equals(t.Str("password1"), t.Str("password2"))
	}).On("password2"),
	v.Constraint("contact_number_prefix", "Contact number should start with Postal code", func(t *v.Terms) f.Formula {
		contact, postal := t.Str("contact_number"), t.Str("postal_code")
		return f.Equals(f.Substr(contact, f.Int(0), f.Len(postal)), postal)
	}).On("contact_number"),
)

// SubUser is a User with a numeric unique ID tied to its postal code.
var SubUser = User.Extend("SubUser",
	v.Int("unique_id"),
).Constraints(
	v.Constraint("unique_id_digits", "Unique ID should have at least 3 digits", func(t *v.Terms) f.Formula {
		return f.Ge(f.Len(f.IntToStr(t.Int("unique_id"))), f.Int(3))
	}).On("unique_id"),
	v.Constraint("unique_id_postal_code", "Unique ID is not compatible with Postal code", func(t *v.Terms) f.Formula {
		return f.Lt(f.Mul(2, t.Int("unique_id")), f.Add(f.StrToInt(t.Str("postal_code")), f.Int(999)))
	}).On("unique_id"),
)

// Registry returns the schemas by entity name.
func Registry() map[string]*v.Schema {
	return map[string]*v.Schema{
		PostalCode.Name():    PostalCode,
		ContactNumber.Name(): ContactNumber,
		User.Name():          User,
		SubUser.Name():       SubUser,
	}
}
