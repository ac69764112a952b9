package app_test

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askiada/rangler/internal/app"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func runApp(t *testing.T, args []string, input string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := app.Run(context.Background(), args, strings.NewReader(input), &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestRun(t *testing.T) {
	tcs := map[string]struct {
		args       []string
		input      string
		wantCode   int
		wantStdout string
		wantStderr []string
	}{
		"lower then dedupe": {
			args:       []string{"--log-format", "json", "lower", "dedupe"},
			input:      "Foo\nfoo\nbar\n",
			wantCode:   app.ExitOK,
			wantStdout: "foo\nbar\n",
			wantStderr: []string{`"run_id"`, "12B read, 6B stored"},
		},
		"keywords are case insensitive": {
			args:       []string{"TRIM", "Append", "!"},
			input:      "  hi  \n",
			wantCode:   app.ExitOK,
			wantStdout: "hi!\n",
		},
		"empty pipeline copies input": {
			args:       []string{"--log-no-color"},
			input:      "a\nb",
			wantCode:   app.ExitOK,
			wantStdout: "a\nb\n",
			wantStderr: []string{"no command given"},
		},
		"missing regex": {
			args:       []string{"filter"},
			input:      "a\n",
			wantCode:   app.ExitUsage,
			wantStderr: []string{"Error: missing regular expression", "Usage: rangler"},
		},
		"invalid regex": {
			args:       []string{"filter", `\`},
			wantCode:   app.ExitUsage,
			wantStderr: []string{"invalid regular expression", "Usage: rangler"},
		},
		"unknown keyword": {
			args:       []string{"lower", "frobnicate"},
			wantCode:   app.ExitUsage,
			wantStderr: []string{"invalid command specified", `"frobnicate"`},
		},
		"unknown flag": {
			args:       []string{"--frobnicate", "lower"},
			wantCode:   app.ExitUsage,
			wantStderr: []string{"unable to parse flags", "Flags:"},
		},
		"invalid configuration": {
			args:       []string{"--progress-interval", "-1", "lower"},
			wantCode:   app.ExitUsage,
			wantStderr: []string{"invalid configuration"},
		},
		"help": {
			args:       []string{"--help"},
			wantCode:   app.ExitOK,
			wantStderr: []string{"Usage: rangler", "dedupe", "--draw-file"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			code, stdout, stderr := runApp(t, tc.args, tc.input)

			assert.Equal(t, tc.wantCode, code, stderr)
			assert.Equal(t, tc.wantStdout, stdout)
			for _, want := range tc.wantStderr {
				assert.Contains(t, stderr, want)
			}
		})
	}
}

func TestRunWriteError(t *testing.T) {
	var stderr bytes.Buffer
	code := app.Run(context.Background(), []string{"upper"}, strings.NewReader("a\n"), failingWriter{}, &stderr)

	assert.Equal(t, app.ExitRuntime, code)
	assert.Contains(t, stderr.String(), "unable to flush output")
	assert.Contains(t, stderr.String(), "disk full")
	assert.Contains(t, stderr.String(), "Usage: rangler")
}

func TestRunMeasureAndDraw(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "pipeline.dot")

	code, stdout, stderr := runApp(t,
		[]string{"--measure", "--draw-file", fileName, "--log-format", "json", "lower", "dedupe"},
		"A\na\nb\n")
	require.Equal(t, app.ExitOK, code, stderr)
	assert.Equal(t, "a\nb\n", stdout)

	assert.Contains(t, stderr, `"step":"2. dedupe"`)
	assert.Contains(t, stderr, `"dropped":1`)
	assert.Contains(t, stderr, "pipeline measure")
	assert.Contains(t, stderr, "pipeline drawn")

	content, err := os.ReadFile(fileName)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"1. lower" -> "2. dedupe"`)
	assert.Contains(t, string(content), "dropped: 1/3")
}

func TestRunDrawFileError(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "missing", "pipeline.dot")

	code, stdout, stderr := runApp(t, []string{"--draw-file", fileName, "trim"}, " a \n")
	assert.Equal(t, app.ExitRuntime, code)
	assert.Equal(t, "a\n", stdout)
	assert.Contains(t, stderr, "unable to draw pipeline")
}

func TestRunMetricsServer(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	addr := "127.0.0.1:" + strconv.Itoa(port)
	code, stdout, stderr := runApp(t, []string{"--metrics-addr", addr, "--log-format", "json", "upper"}, "a\n")

	require.Equal(t, app.ExitOK, code, stderr)
	assert.Equal(t, "A\n", stdout)
	assert.Contains(t, stderr, "serving metrics")
}

func TestRunMetricsAddressInUse(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	code, stdout, stderr := runApp(t, []string{"--metrics-addr", ln.Addr().String(), "upper"}, "a\n")
	assert.Equal(t, app.ExitRuntime, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "unable to listen on")
}
