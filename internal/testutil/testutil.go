// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// GoldenTest produces output to compare against testdata/<name>.golden.
type GoldenTest interface {
	Output() ([]byte, string)
}

// Golden is a GoldenTest for output that is already in hand.
type Golden struct {
	Name string
	Data []byte
}

func (g Golden) Output() ([]byte, string) {
	return g.Data, g.Name
}

// CompareGoldenFile checks the output of tc against its golden file. Golden
// files are checked out with LF endings (see .gitattributes), so the
// comparison holds on every OS. Nil output asserts that no golden file
// exists.
func CompareGoldenFile(t *testing.T, tc GoldenTest) {
	t.Helper()

	output, name := tc.Output()

	if output == nil {
		f := filepath.Join("testdata", name+".golden")
		if _, err := os.Stat(f); err == nil || errors.Is(err, os.ErrExist) {
			t.Fatalf("expected no output, but golden file exists: %s", f)
		}

		return
	}

	g := goldie.New(t, goldie.WithFixtureDir("testdata"))
	g.Assert(t, name, output)
}

// CopyFile copies src to dst, typically a fixture into t.TempDir().
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copying file: %w", err)
	}

	return out.Close()
}
