package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := rootCmd()
	cmd.SetArgs(append(args, "--no-color"))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

const goodUser = `{"username":"a","password1":"p","password2":"p","postal_code":"1001","contact_number":"1001567890"}`

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "symval version 0.1.0\n", out)
}

func TestValidateFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "users/good.json", goodUser)
	writeFile(t, dir, "users/nested/bad.json", strings.Replace(goodUser, `"password2":"p"`, `"password2":"q"`, 1))

	out, stderr, err := execute(t, "", "validate", "User", filepath.Join(dir, "users", "**", "*.json"), "--metrics")
	require.EqualError(t, err, "1 of 2 instances rejected")
	assert.Contains(t, out, "good.json: ok\n")
	assert.Contains(t, out, "bad.json: rejected: Passwords do not match\n")
	assert.Contains(t, stderr, `symvalidation_validations_total{entity="User",outcome="accepted"} 1`)
	assert.Contains(t, stderr, `symvalidation_validations_total{entity="User",outcome="rejected"} 1`)
}

func TestValidateStdin(t *testing.T) {
	out, _, err := execute(t, `"1001567890"`, "validate", "ContactNumber")
	require.NoError(t, err)
	assert.Equal(t, "-: ok\n", out)

	out, _, err = execute(t, `"  1001567890 "`, "validate", "ContactNumber")
	require.Error(t, err)
	assert.Equal(t, "-: rejected: Contact number should have 10 digits\n", out)

	_, _, err = execute(t, `"  1001567890 "`, "validate", "ContactNumber", "--trim")
	require.NoError(t, err)

	out, _, err = execute(t, `["a"]`, "validate", "User")
	require.Error(t, err)
	assert.Equal(t, "-: rejected: User instance must be a JSON object\n", out)

	out, _, err = execute(t, `{`, "validate", "User")
	require.Error(t, err)
	assert.Contains(t, out, "decode JSON")

	out, _, err = execute(t, `{"unique_id": 120, "username":"a","password1":"p","password2":"p","postal_code":"1001","contact_number":"1001567890"}`, "validate", "SubUser")
	require.NoError(t, err)
	assert.Equal(t, "-: ok\n", out)
}

func TestValidateErrors(t *testing.T) {
	_, _, err := execute(t, "", "validate", "Nope")
	require.ErrorContains(t, err, `unknown entity "Nope" (known: ContactNumber, PostalCode, SubUser, User)`)

	_, _, err = execute(t, "", "validate", "User", filepath.Join(t.TempDir(), "*.json"))
	require.ErrorContains(t, err, "no files match")

	_, _, err = execute(t, "", "validate")
	require.Error(t, err)

	cfg := writeFile(t, t.TempDir(), "symval.yaml", "solver:\n  backend: cvc5\n")
	_, _, err = execute(t, "", "validate", "User", "--config", cfg)
	require.ErrorContains(t, err, "invalid configuration")

	_, _, err = execute(t, "", "describe", "--log-level", "loud")
	require.ErrorContains(t, err, "log.level")
}

func TestDescribe(t *testing.T) {
	out, _, err := execute(t, "", "describe", "User")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "User("))
	assert.Contains(t, out, "contact_number_prefix: ")
	assert.Contains(t, out, "=> needs_concrete_check")

	out, _, err = execute(t, "", "describe", "--openapi")
	require.NoError(t, err)
	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	for _, p := range []string{"/validate/User", "/validate/SubUser", "/validate/PostalCode", "/schemas/ContactNumber"} {
		assert.Contains(t, doc.Paths, p)
	}
}
