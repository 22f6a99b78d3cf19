package main

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

// run executes the CLI with args and returns what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"pptree", "--log-level", "error"}, args...))
	return out.String(), err
}

func TestCommandFlags(t *testing.T) {
	app := newApp()

	for _, name := range []string{"add", "remove", "list", "search", "has", "dump", "stats"} {
		t.Run(name+" requires db", func(t *testing.T) {
			cmd := app.Command(name)
			require.NotNil(t, cmd)

			var db *cli.StringFlag
			for _, f := range cmd.Flags {
				if sf, ok := f.(*cli.StringFlag); ok && sf.Name == "db" {
					db = sf
				}
			}
			require.NotNil(t, db, "db flag should exist")
			assert.True(t, db.Required)
			assert.Contains(t, db.Aliases, "d")
		})
	}

	t.Run("search max has default value of 10", func(t *testing.T) {
		cmd := app.Command("search")
		for _, f := range cmd.Flags {
			if intFlag, ok := f.(*cli.IntFlag); ok && intFlag.Name == "max" {
				assert.Equal(t, 10, intFlag.Value)
				return
			}
		}
		t.Fatal("max flag not found")
	})

	t.Run("missing db flag fails", func(t *testing.T) {
		_, err := run(t, "list")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db")
	})
}

func TestEndToEnd(t *testing.T) {
	db := filepath.Join(t.TempDir(), "db")

	_, err := run(t, "add", "--db", db, "doge", "shiba inu")
	require.NoError(t, err)
	_, err = run(t, "add", "--db", db, "--meta", "kind=cat", "bingus", "{^[bdgz]}ingus")
	require.NoError(t, err)
	_, err = run(t, "add", "--db", db, "parakeet", "parake{^e+}t")
	require.NoError(t, err)

	t.Run("list", func(t *testing.T) {
		out, err := run(t, "list", "--db", db)
		require.NoError(t, err)
		assert.Equal(t, "doge\tshiba inu\nbingus\t{^[bdgz]}ingus\nparakeet\tparake{^e+}t\n", out)
	})

	t.Run("search ranks by cost", func(t *testing.T) {
		out, err := run(t, "search", "--db", db, "in")
		require.NoError(t, err)
		assert.Equal(t, "Found 2 hits\n0: bingus [cost 1]\n1: doge [cost 6]\n", out)
	})

	t.Run("search honours max", func(t *testing.T) {
		out, err := run(t, "search", "--db", db, "-n", "1", "in")
		require.NoError(t, err)
		assert.Equal(t, "Found 1 hits\n0: bingus [cost 1]\n", out)
	})

	t.Run("has", func(t *testing.T) {
		out, err := run(t, "has", "--db", db, "keeeee")
		require.NoError(t, err)
		assert.Equal(t, "has: true\ncontains: true\n", out)
	})

	t.Run("dump", func(t *testing.T) {
		out, err := run(t, "dump", "--db", db)
		require.NoError(t, err)
		assert.Contains(t, out, "branches:")
		assert.Contains(t, out, "^e+")
	})

	t.Run("stats", func(t *testing.T) {
		out, err := run(t, "stats", "--db", db)
		require.NoError(t, err)
		assert.Contains(t, out, "entries:       3\n")
		assert.Contains(t, out, "pattern edges:")
	})

	t.Run("duplicate add fails", func(t *testing.T) {
		_, err := run(t, "add", "--db", db, "doge", "dog")
		assert.Error(t, err)
	})

	t.Run("unanchored pattern fails", func(t *testing.T) {
		_, err := run(t, "add", "--db", db, "bad", "x{e+}")
		assert.Error(t, err)
	})

	t.Run("invalid metadata fails", func(t *testing.T) {
		_, err := run(t, "add", "--db", db, "--meta", "novalue", "meta", "m")
		assert.ErrorContains(t, err, "invalid metadata")
	})

	t.Run("remove", func(t *testing.T) {
		out, err := run(t, "remove", "--db", db, "doge")
		require.NoError(t, err)
		assert.Equal(t, "removed doge\n", out)

		out, err = run(t, "search", "--db", db, "in")
		require.NoError(t, err)
		assert.Equal(t, "Found 1 hits\n0: bingus [cost 1]\n", out)
	})

	t.Run("remove unknown fails", func(t *testing.T) {
		_, err := run(t, "remove", "--db", db, "nobody")
		assert.Error(t, err)
	})
}

func TestSetupLogger(t *testing.T) {
	newTestApp := func(action cli.ActionFunc) *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "log-level",
					Aliases: []string{"l"},
					Value:   "info",
				},
			},
			Before: setupLogger,
			Action: action,
		}
	}
	noop := func(c *cli.Context) error { return nil }

	t.Run("valid log levels", func(t *testing.T) {
		testCases := []struct {
			input    string
			expected slog.Level
		}{
			{"debug", slog.LevelDebug},
			{"info", slog.LevelInfo},
			{"warn", slog.LevelWarn},
			{"error", slog.LevelError},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				err := newTestApp(noop).Run([]string{"test", "--log-level", tc.input})
				require.NoError(t, err)
				assert.True(t, slog.Default().Enabled(t.Context(), tc.expected))
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, tc := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(tc, func(t *testing.T) {
				err := newTestApp(noop).Run([]string{"test", "--log-level", tc})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newTestApp(noop).Run([]string{"test", "--log-level", "invalid"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("log-level flag has alias -l", func(t *testing.T) {
		err := newTestApp(func(c *cli.Context) error {
			assert.Equal(t, "debug", c.String("log-level"))
			return nil
		}).Run([]string{"test", "-l", "debug"})
		require.NoError(t, err)
	})
}

func TestMain(m *testing.M) {
	code := m.Run()
	os.Exit(code)
}
