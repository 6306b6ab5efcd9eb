package main

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvloznov/ledgersync/internal/console"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"schema", "migrate", "sync", "verify"}, names)
}

func TestLoadApp_MissingConfigDoesNoWork(t *testing.T) {
	chdirForTest(t, t.TempDir())
	for _, v := range []string{"GOOGLE_SERVICE_ACCOUNT_JSON", "GOOGLE_SHEET_ID", "SUPABASE_URL", "SUPABASE_SERVICE_ROLE_KEY"} {
		t.Setenv(v, "")
	}
	t.Setenv("GOOGLE_SHEET_ID", "sheet-123")

	out := &bytes.Buffer{}
	a, ok, err := loadApp(console.NewWithWriter(out))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, a)
	assert.Contains(t, out.String(), "GOOGLE_SERVICE_ACCOUNT_JSON")
	assert.Contains(t, out.String(), "SUPABASE_URL")
	assert.Contains(t, out.String(), "SUPABASE_SERVICE_ROLE_KEY")
	assert.NotContains(t, out.String(), "GOOGLE_SHEET_ID")
}

func TestLoadApp(t *testing.T) {
	chdirForTest(t, t.TempDir())
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", `{"type":"service_account"}`)
	t.Setenv("GOOGLE_SHEET_ID", "sheet-123")
	t.Setenv("SUPABASE_URL", "postgres://postgres@localhost:5432/postgres")
	t.Setenv("SUPABASE_SERVICE_ROLE_KEY", "key")
	t.Setenv("LOG_LEVEL", "debug")

	a, ok, err := loadApp(console.NewWithWriter(&bytes.Buffer{}))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "sheet-123", a.cfg.Google.SheetID)

	ctx, cancel := a.runContext(testContext(t))
	defer cancel()
	_, hasDeadline := ctx.Deadline()
	assert.True(t, hasDeadline)
}

// chdirForTest changes the working directory for the duration of the test
// and restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdirForTest(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

// testContext returns a context cancelled when the test finishes
// (equivalent of testing.T.Context, Go 1.24+).
func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
