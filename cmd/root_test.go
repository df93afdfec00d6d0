package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/gnames/gngb/pkg/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePath = "../testdata/sample.gb"

// TestGetRootCmd_Exists verifies getRootCmd returns
// a valid command.
func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "gngb", cmd.Use,
		"Command name should be gngb")
}

// TestGetRootCmd_VersionFormat verifies version
// output format.
func TestGetRootCmd_VersionFormat(t *testing.T) {
	cmd := getRootCmd()

	// Set a test version
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "v1.2.3",
		"Version output should contain version")
	assert.Contains(t, output, "abc123",
		"Version output should contain build")
	assert.NotContains(t, output, "gngb version",
		"Should use custom version template")
}

// TestGetRootCmd_ShortVersionFlag verifies
// -V flag works.
func TestGetRootCmd_ShortVersionFlag(t *testing.T) {
	cmd := getRootCmd()
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-V"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "v1.2.3",
		"Version output should work with -V flag")
}

// TestGetRootCmd_HelpText verifies help text content.
func TestGetRootCmd_HelpText(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	assert.Contains(t, helpText, "GNgb")
	assert.Contains(t, helpText, "GenBank")
	assert.Contains(t, helpText, "GNGB_TRANSLATE_FORMAT")
	for _, flag := range []string{
		"--one-letter", "--kinds", "--select", "--format",
		"--with-nucleotides", "--jobs", "--progress",
		"--with-cache", "--clean-cache", "--config",
	} {
		assert.Contains(t, helpText, flag)
	}
}

// TestGetRootCmd_Settings verifies hooks and error silencing.
func TestGetRootCmd_Settings(t *testing.T) {
	cmd := getRootCmd()

	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
	assert.NotNil(t, cmd.RunE)
	assert.True(t, cmd.SilenceErrors,
		"Errors should be silenced")
	assert.True(t, cmd.SilenceUsage,
		"Usage should be silenced on errors")

	list, _, err := cmd.Find([]string{"list"})
	require.NoError(t, err)
	assert.Equal(t, "list [file]", list.Use)
}

// TestGetRootCmd_IndependentInstances verifies each
// call returns independent instance.
func TestGetRootCmd_IndependentInstances(t *testing.T) {
	cmd1 := getRootCmd()
	cmd2 := getRootCmd()

	assert.NotSame(t, cmd1, cmd2,
		"Each getRootCmd call should return new instance")

	cmd1.Version = "version1"
	cmd2.Version = "version2"

	assert.Equal(t, "version1", cmd1.Version)
	assert.Equal(t, "version2", cmd2.Version)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := getRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func runJSON(t *testing.T, args ...string) report.Report {
	t.Helper()
	out, err := run(t, args...)
	require.NoError(t, err)

	var res report.Report
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	return res
}

// captureStderr returns everything written to os.Stderr while fn runs.
func captureStderr(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stderr
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stderr = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		io.Copy(&buf, r)
		done <- buf.String()
	}()

	fn()
	w.Close()
	os.Stderr = old
	return <-done
}

func TestRoot_TranslateText(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := run(t, samplePath)
	require.NoError(t, err)
	assert.Contains(t, out, "Record name: TEST0001.1\n")
	assert.Contains(t, out, "Three-letter code:\n1 Met-Ala\n")
	assert.Contains(t, out, "Warnings (3):")
}

func TestRoot_TranslateJSON(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	res := runJSON(t, "-1", "-f", "json", "-j", "2", samplePath)
	assert.Equal(t, "one-letter", res.Style)
	require.Len(t, res.Records, 2)
	require.Len(t, res.Records[0].Features, 4)
	assert.Equal(t, "MA", res.Records[0].Features[0].Translation)
	assert.Equal(t, "MWCH", res.Records[0].Features[3].Translation)
	assert.Equal(t, 7, res.Stats.TranslatedNum)
}

func TestRoot_Select(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	res := runJSON(t, "-f", "json", "-s", "abcB,xyzA", "-n", samplePath)
	require.Len(t, res.Records[0].Features, 1)
	assert.Equal(t, "Met-Lys", res.Records[0].Features[0].Translation)
	assert.Equal(t, "ATGAAATGA", res.Records[0].Features[0].Nucleotides)
	require.Len(t, res.Records[1].Features, 1)
	assert.Equal(t, "Met-Gly-Lys-Pro", res.Records[1].Features[0].Translation)
}

func TestRoot_EnvVars(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GNGB_TRANSLATE_ONE_LETTER", "true")
	t.Setenv("GNGB_TRANSLATE_FORMAT", "json")

	res := runJSON(t, samplePath)
	assert.Equal(t, "one-letter", res.Style)

	// flags win over environment
	res = runJSON(t, "--one-letter=false", samplePath)
	assert.Equal(t, "three-letter", res.Style)
}

func TestRoot_WithCache(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	res := runJSON(t, "-c", "-f", "json", samplePath)
	assert.Equal(t, 0, res.Stats.CachedNum)

	res = runJSON(t, "-c", "-f", "json", samplePath)
	assert.Equal(t, 7, res.Stats.CachedNum)

	out, err := run(t, "--clean-cache")
	require.NoError(t, err)
	assert.Empty(t, out)

	res = runJSON(t, "-c", "-f", "json", samplePath)
	assert.Equal(t, 0, res.Stats.CachedNum)
}

func TestRoot_WarningsOnStderr(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name  string
		args  []string
		warns []string
	}{
		{
			"csv",
			[]string{"-f", "csv", samplePath},
			[]string{"CDS feature dropped", "feature not translated"},
		},
		{
			"tsv",
			[]string{"-f", "tsv", samplePath},
			[]string{"CDS feature dropped", "feature not translated"},
		},
		{
			"list csv",
			[]string{"list", "-f", "csv", samplePath},
			[]string{"CDS feature dropped"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out string
			var err error
			stderr := captureStderr(t, func() {
				out, err = run(t, tt.args...)
			})
			require.NoError(t, err)
			assert.NotContains(t, out, "dropped")
			for _, w := range tt.warns {
				assert.Contains(t, stderr, w)
			}
		})
	}

	stderr := captureStderr(t, func() {
		_, err := run(t, samplePath)
		require.NoError(t, err)
	})
	assert.NotContains(t, stderr, "dropped")
}

func TestRoot_MissingFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := run(t, "nonexistent-file.gb")
	assert.Error(t, err)
	assert.Empty(t, out)
}

func TestList(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	res := runJSON(t, "list", "-f", "json", samplePath)
	assert.True(t, res.ListOnly)
	require.Len(t, res.Records, 2)
	assert.Len(t, res.Records[0].Features, 6)
	assert.Equal(t, 11, res.Stats.FeaturesNum)

	out, err := run(t, "list", samplePath)
	require.NoError(t, err)
	assert.Contains(t, out, "4) CDS abcC TST_0003 TST00003.1")
	assert.Contains(t, out, "   join(19..24,31..36) (+, 12 bp)\n")
}
