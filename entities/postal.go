package entities

import (
	"fmt"
	"unicode/utf8"

	v "github.com/Gobd/symvalidation"
)

// PostalCodeLength is the length every postal code literal must have.
const PostalCodeLength = 4

// PostalCodes are the known postal codes.
var PostalCodes = []string{"1001", "2002", "3003", "4004", "5005"}

var (
	// PostalCode is one of PostalCodes.
	PostalCode = mustPostalCode(PostalCodes)

	// ContactNumber is a ten digit number.
	ContactNumber = v.Value("ContactNumber",
		v.Digits(10).Error("Contact number should have 10 digits"),
	)
)

// NewPostalCode returns a postal code schema over codes. Every code must have
// PostalCodeLength characters.
func NewPostalCode(codes []string) (*v.Schema, error) {
	for _, c := range codes {
		if n := utf8.RuneCountInString(c); n != PostalCodeLength {
			return nil, fmt.Errorf("postal code %q has %d characters, want %d", c, n, PostalCodeLength)
		}
	}
	return v.Value("PostalCode",
		v.In(codes...).Error("Postal code is not valid"),
		v.Length(PostalCodeLength, PostalCodeLength).Error("Postal code should have 4 characters"),
	), nil
}

func mustPostalCode(codes []string) *v.Schema {
	s, err := NewPostalCode(codes)
	if err != nil {
		panic(err)
	}
	return s
}
