package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TimurManjosov/ffc-commons-go/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("FFC_BASE_URL", "")
	t.Setenv("FFC_ENV_SECRET", "")

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestEncode(t *testing.T) {
	out, err := run(t, "", "encode", "--user", "user-1", "--email", "ada@example.com", "--prop", "plan=gold", "--flag", "new-ui")
	require.NoError(t, err)
	assert.Equal(t,
		`{"userKeyId":"user-1","featureFlagKeyName":"new-ui","userCustomizedProperties":[{"name":"plan","value":"gold"}]}`+"\n",
		out)
}

func TestEncode_Errors(t *testing.T) {
	_, err := run(t, "", "encode")
	assert.ErrorContains(t, err, "key")

	_, err = run(t, "", "encode", "--user", "u", "--prop", "novalue")
	assert.ErrorContains(t, err, "expected name=value")
}

func TestDecode_Stdin(t *testing.T) {
	out, err := run(t, `{"userKeyId":"user-1","userName":"Ada","featureFlagKeyName":"f"}`, "decode", "-", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "Flag: f")
	assert.Contains(t, out, `"userName": "Ada"`)
}

func TestDecode_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"userKeyId":"user-1"}`), 0600))

	out, err := run(t, "", "decode", path, "--format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "(all flags)")
	assert.Contains(t, out, "key: user-1")
}

func TestDecode_Invalid(t *testing.T) {
	_, err := run(t, `{"userKeyId":`, "decode", "-")
	assert.ErrorContains(t, err, "received data invalid")
}

func TestVariation_AgainstBackend(t *testing.T) {
	b := testutil.NewFakeBackend(t)
	b.SetFlag("new-ui", `{"success":true,"message":"OK","data":{"value":"on","index":0,"reason":"match","keyName":"new-ui"}}`)

	out, err := run(t, "", "variation", "new-ui", "--user", "user-1",
		"--base-url", b.URL(), "--env-secret", "s", "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, `{"value":"on","index":0,"reason":"match","keyName":"new-ui"}`+"\n", out)
}

func TestAll_AgainstBackend(t *testing.T) {
	b := testutil.NewFakeBackend(t)
	b.SetAllFlags(`{"success":true,"message":"OK","data":[{"value":true,"index":0,"reason":"r","keyName":"beta"}]}`)

	out, err := run(t, "", "all", "--user", "user-1", "--base-url", b.URL(), "--env-secret", "s")
	require.NoError(t, err)
	assert.Contains(t, out, "beta")
}

func TestAll_Failure(t *testing.T) {
	b := testutil.NewFakeBackend(t)
	b.FailNext(1, 400)

	_, err := run(t, "", "all", "--user", "user-1", "--base-url", b.URL(), "--env-secret", "s")
	assert.ErrorContains(t, err, "400")
}

func TestVariation_MissingProfile(t *testing.T) {
	_, err := run(t, "", "variation", "f", "--user", "u")
	assert.ErrorContains(t, err, "configuration error")
}

func TestConfigInitAndShow(t *testing.T) {
	home := t.TempDir()
	runIn := func(args ...string) (string, error) {
		t.Setenv("HOME", home)
		cmd := NewRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs(args)
		err := cmd.Execute()
		return out.String(), err
	}

	out, err := runIn("config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(home, ".ffc", "config.yaml"))

	_, err = runIn("config", "init")
	assert.ErrorContains(t, err, "already exists")

	out, err = runIn("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Default profile: dev")
	assert.Contains(t, out, "http://localhost:8080")
}

func runWithStderr(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVariation_LogLevelFromEnvironment(t *testing.T) {
	b := testutil.NewFakeBackend(t)
	b.SetFlag("f", `{"success":true,"message":"OK","data":{"value":"on","index":0,"reason":"r"}}`)
	t.Setenv("FFC_BASE_URL", b.URL())
	t.Setenv("FFC_ENV_SECRET", "s")

	t.Setenv("FFC_LOG_LEVEL", "debug")
	_, stderr, err := runWithStderr(t, "variation", "f", "--user", "u")
	require.NoError(t, err)
	assert.Contains(t, stderr, "request done")

	t.Setenv("FFC_LOG_LEVEL", "warn")
	_, stderr, err = runWithStderr(t, "variation", "f", "--user", "u")
	require.NoError(t, err)
	assert.Empty(t, stderr)

	_, stderr, err = runWithStderr(t, "variation", "f", "--user", "u", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, "request done")
}
