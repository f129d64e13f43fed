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
	"gopkg.in/yaml.v3"

	"github.com/vitalvas/navstack/nav"
)

const routesTable = `
routes:
  - path: /
    name: home
    page: home
  - path: /family/:fid
    name: family
    page: family
    routes:
      - path: person/:pid
        name: person
        page: person
  - path: /f/:fid
    redirectTo: /family/:fid
  - shell: frame
    navigatorKey: framed
    routes:
      - path: /settings
        page: settings
  - shell: tabs
    branches:
      - navigatorKey: tab-inbox
        routes:
          - path: /inbox
            page: inbox
`

func writeRoutes(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "routes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(routesTable), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), err
}

func TestRoutesCmd(t *testing.T) {
	routes := writeRoutes(t)

	out, err := run(t, "routes", "-f", routes)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)
	assert.True(t, strings.HasPrefix(lines[0], "PATH"))

	assert.Contains(t, out, "/family/:fid/person/:pid")
	assert.Contains(t, out, "redirect")
	assert.Contains(t, out, "framed")
	assert.Contains(t, out, "stateful-shell")
	assert.Contains(t, out, "tab-inbox")
}

func TestMatchCmd(t *testing.T) {
	routes := writeRoutes(t)

	t.Run("text", func(t *testing.T) {
		out, err := run(t, "match", "-f", routes, "/family/f1/person/p1")
		require.NoError(t, err)

		assert.Contains(t, out, "full path: /family/:fid/person/:pid")
		assert.Contains(t, out, "param:     fid=f1")
		assert.Contains(t, out, "param:     pid=p1")
		assert.Contains(t, out, "2. /family/:fid/person/:pid")
	})

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "match", "-f", routes, "--json", "/settings")
		require.NoError(t, err)

		var report matchReport
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.Equal(t, "/settings", report.FullPath)
		assert.Equal(t, "framed", report.Navigator)
		require.Len(t, report.Matches, 2)
		assert.Equal(t, "/settings", report.Matches[1].PageKey)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := run(t, "match", "-f", routes, "/nope")
		assert.ErrorIs(t, err, nav.ErrNoMatch)
	})

	t.Run("missing table", func(t *testing.T) {
		_, err := run(t, "match", "-f", filepath.Join(t.TempDir(), "missing.yaml"), "/")
		assert.Error(t, err)
	})
}

func TestLocationCmd(t *testing.T) {
	routes := writeRoutes(t)

	tests := []struct {
		name string
		args []string
		want string
		err  error
	}{
		{"root", []string{"home"}, "/", nil},
		{"nested", []string{"person", "fid=a", "pid=b"}, "/family/a/person/b", nil},
		{"query", []string{"family", "fid=a", "-q", "tab=info"}, "/family/a?tab=info", nil},
		{"missing parameter", []string{"person", "fid=a"}, "", nav.ErrMissingParameter},
		{"unknown route", []string{"nope"}, "", nav.ErrUnknownRoute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"location", "-f", routes}, tt.args...)...)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want+"\n", out)
		})
	}

	t.Run("invalid pair", func(t *testing.T) {
		_, err := run(t, "location", "-f", routes, "person", "fid")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected key=value")
	})
}

func TestEncodeCmd(t *testing.T) {
	routes := writeRoutes(t)

	t.Run("json", func(t *testing.T) {
		out, err := run(t, "encode", "-f", routes, "/", "-p", "/family/f1", "-p", "/family/f1/person/p1")
		require.NoError(t, err)

		var state map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &state))

		list := state[nav.CodecKey].(map[string]any)
		assert.Equal(t, "/", list["location"])

		imperative := list["imperativeMatches"].([]any)
		require.Len(t, imperative, 2)
		assert.Equal(t, "family/:fid-p1", imperative[0].(map[string]any)["pageKey"])
		assert.Equal(t, "family/:fid/person/:pid-p1", imperative[1].(map[string]any)["pageKey"])

		counts := state["pushCounts"].(map[string]any)
		assert.Equal(t, 1.0, counts["family/:fid"])
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := run(t, "encode", "-f", routes, "--yaml", "/f/smith")
		require.NoError(t, err)

		var state map[string]any
		require.NoError(t, yaml.Unmarshal([]byte(out), &state))
		list := state[nav.CodecKey].(map[string]any)
		assert.Equal(t, "/family/smith", list["location"])
	})

	t.Run("unresolvable location", func(t *testing.T) {
		_, err := run(t, "encode", "-f", routes, "/nope")
		assert.ErrorIs(t, err, nav.ErrNoMatch)
	})

	t.Run("rejected push", func(t *testing.T) {
		_, err := run(t, "encode", "-f", routes, "/", "-p", "/nope")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "push /nope")
	})
}

func TestStateCmd(t *testing.T) {
	routes := writeRoutes(t)
	db := filepath.Join(t.TempDir(), "state")

	_, err := run(t, "encode", "-f", routes, "--db", db, "--id", "user-1", "/", "-p", "/family/f1")
	require.NoError(t, err)
	_, err = run(t, "encode", "-f", routes, "--db", db, "--id", "user-2", "/settings")
	require.NoError(t, err)

	out, err := run(t, "state", "list", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "user-1\nuser-2\n", out)

	out, err = run(t, "state", "show", "--db", db, "user-1")
	require.NoError(t, err)
	assert.Contains(t, out, `"pageKey": "family/:fid-p1"`)

	out, err = run(t, "state", "show", "-f", routes, "--db", db, "--check", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "/family/f1\n", out)

	_, err = run(t, "state", "rm", "--db", db, "user-1")
	require.NoError(t, err)

	out, err = run(t, "state", "list", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "user-2\n", out)

	_, err = run(t, "state", "show", "--db", db, "user-1")
	assert.Error(t, err)

	_, err = run(t, "state", "list")
	assert.Error(t, err)
}

func TestParsePairs(t *testing.T) {
	pairs, err := parsePairs([]string{"a=1", "b=", "c=x=y"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "", "c": "x=y"}, pairs)

	_, err = parsePairs([]string{"=1"})
	assert.Error(t, err)
}
