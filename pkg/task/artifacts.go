package task

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/vmihailenco/msgpack/v5"
)

// StateExt is the suffix of the state artifact next to a task's flag.
const StateExt = ".state"

// artifacts manages one task's flag and state files under a base directory.
type artifacts struct {
	fs   afero.Fs
	flag string
	stat string
}

func newArtifacts(fs afero.Fs, base, id string) artifacts {
	flag := filepath.Join(base, id)
	return artifacts{fs: fs, flag: flag, stat: flag + StateExt}
}

// prepare creates the base directory and the flag.
func (a artifacts) prepare() error {
	if err := a.fs.MkdirAll(filepath.Dir(a.flag), 0o700); err != nil {
		return fmt.Errorf("create task directory: %w", err)
	}
	if err := afero.WriteFile(a.fs, a.flag, nil, 0o600); err != nil {
		return fmt.Errorf("create task flag: %w", err)
	}
	return nil
}

// running reports whether the flag still exists.
func (a artifacts) running() bool {
	ok, err := afero.Exists(a.fs, a.flag)
	return err == nil && ok
}

// writeState encodes data to the state file through a temp file and a
// rename, so a reader never sees a partial payload.
func (a artifacts) writeState(data map[string]any) error {
	raw, err := msgpack.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode task state: %w", err)
	}

	tmp, err := afero.TempFile(a.fs, filepath.Dir(a.stat), "."+filepath.Base(a.stat)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp state: %w", err)
	}
	success := false
	defer func() {
		if !success {
			_ = a.fs.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp state: %w", err)
	}
	if err := a.fs.Rename(tmp.Name(), a.stat); err != nil {
		return fmt.Errorf("rename state: %w", err)
	}
	success = true
	return nil
}

// readState decodes and deletes the state file. A missing file yields no
// data and no error. Integers come back as int64/uint64 and floats as
// float64, whatever type was remembered.
func (a artifacts) readState() (map[string]any, error) {
	raw, err := afero.ReadFile(a.fs, a.stat)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read task state: %w", err)
	}
	_ = remove(a.fs, a.stat)

	dec := msgpack.NewDecoder(bytes.NewReader(raw))
	dec.UseLooseInterfaceDecoding(true)

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("decode task state: %w", err)
	}
	return data, nil
}

// cleanup removes both artifacts. Already-missing files are fine.
func (a artifacts) cleanup() error {
	return errors.Join(remove(a.fs, a.flag), remove(a.fs, a.stat))
}

func remove(fs afero.Fs, path string) error {
	if err := fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
