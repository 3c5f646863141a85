// Package tests provides the external test data used by the long-running
// tests, downloading it on first use.
package tests

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"

	"nescore/emu/log"
)

func decompress(zipFile, dest, prefix, rename string) error {
	r, err := zip.OpenReader(zipFile)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		fname := strings.Replace(f.Name, prefix, rename, 1)
		fpath := filepath.Join(dest, fname)
		if !strings.HasPrefix(fpath, filepath.Clean(dest)+string(os.PathSeparator)) {
			return errors.Errorf("%s: illegal file path", fpath)
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(fpath, os.ModePerm); err != nil {
				return err
			}
			continue
		}
		if err := extract(f, fpath); err != nil {
			return errors.Wrap(err, f.Name)
		}
	}

	log.ModEmu.InfoZ("decompressed archive").
		String("dest", dest).
		Int("files", len(r.File)).
		End()
	return nil
}

func extract(f *zip.File, fpath string) error {
	if err := os.MkdirAll(filepath.Dir(fpath), os.ModePerm); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(fpath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func download(url, path string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("GET %s: %s", url, resp.Status)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func downloadTestRoms(dest string) error {
	const url = `https://github.com/christopherpow/nes-test-roms/archive/refs/heads/master.zip`

	tmpf, err := os.CreateTemp("", "nes-test-roms-*-.zip")
	if err != nil {
		return err
	}
	tmpf.Close()
	defer os.Remove(tmpf.Name())

	if err := download(url, tmpf.Name()); err != nil {
		return err
	}
	return installTestRoms(tmpf.Name(), dest)
}

// installTestRoms unpacks the nes-test-roms archive into dest/nes-test-roms.
func installTestRoms(zipFile, dest string) error {
	if err := decompress(zipFile, dest, "nes-test-roms-master", "nes-test-roms"); err != nil {
		return errors.Wrap(err, "failed to decompress test roms")
	}
	return nil
}

// download the 256 processor test files (one per opcode) into dest dir.
func downloadProcessorTests(dest string) error {
	const urlfmt = `https://raw.githubusercontent.com/SingleStepTests/65x02/main/nes6502/v1/%02x.json`

	tempdir, err := os.MkdirTemp("", "processor.tests.*")
	if err != nil {
		return err
	}

	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for opcode := range 256 {
		g.Go(func() error {
			url := fmt.Sprintf(urlfmt, opcode)
			return download(url, filepath.Join(tempdir, fmt.Sprintf("%02x.json", opcode)))
		})
	}
	if err := g.Wait(); err != nil {
		os.RemoveAll(tempdir)
		return errors.Wrap(err, "failed to download all files")
	}
	return os.Rename(tempdir, dest)
}

// fetchOnce returns the path of dir in the tests directory, calling fetch to
// create it if it doesn't exist.
func fetchOnce(tb testing.TB, once *sync.Once, dir string, fetch func(dest string) error) string {
	_, b, _, _ := runtime.Caller(0)
	testsDir := filepath.Dir(b)
	path := filepath.Join(testsDir, dir)

	var err error
	once.Do(func() {
		if _, serr := os.Stat(path); errors.Is(serr, fs.ErrNotExist) {
			tb.Logf("%s directory not found, downloading it...", dir)
			err = fetch(testsDir)
		}
	})
	if err != nil {
		tb.Fatal(err)
	}
	return path
}

var romsOnce, procTestsOnce sync.Once

// RomsPath returns the directory of the nes-test-roms collection.
func RomsPath(tb testing.TB) string {
	return fetchOnce(tb, &romsOnce, "nes-test-roms", downloadTestRoms)
}

// ProcessorTestsPath returns the directory of the nes6502 processor tests.
func ProcessorTestsPath(tb testing.TB) string {
	const dir = "processor.tests"
	return fetchOnce(tb, &procTestsOnce, dir, func(testsDir string) error {
		return downloadProcessorTests(filepath.Join(testsDir, dir))
	})
}
