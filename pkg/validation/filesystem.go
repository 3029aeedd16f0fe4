package validation

import (
	"os"

	"github.com/spf13/cast"
)

// Filesystem rules take an optional custom message; "" keeps the default.

// FileExists requires a regular file at the given path.
func FileExists(message string) Rule {
	return pathRule("file_exists", message, "The :name :type does not exist.", func(p string) bool {
		info, err := os.Stat(p)
		return err == nil && info.Mode().IsRegular()
	})
}

// FileMustExist is FileExists under the name used in rule strings.
func FileMustExist(message string) Rule {
	return pathRule("file_must_exist", message, "The :name :type does not exist.", func(p string) bool {
		info, err := os.Stat(p)
		return err == nil && info.Mode().IsRegular()
	})
}

// FileMustNotExist fails when a regular file already exists at the path.
func FileMustNotExist(message string) Rule {
	return pathRule("file_must_not_exist", message, "The :name :type already exists.", func(p string) bool {
		info, err := os.Stat(p)
		return err != nil || !info.Mode().IsRegular()
	})
}

// DirectoryExists requires a directory at the path.
func DirectoryExists(message string) Rule {
	return pathRule("directory_exists", message, "The :name :type directory does not exist.", isDir)
}

// IsDirectory is DirectoryExists under its other rule name.
func IsDirectory(message string) Rule {
	return pathRule("is_directory", message, "The :name :type directory does not exist.", isDir)
}

// DirectoryMustNotExist fails when a directory already exists at the path.
func DirectoryMustNotExist(message string) Rule {
	return pathRule("directory_must_not_exist", message, "The :name :type directory already exists.", func(p string) bool {
		return !isDir(p)
	})
}

// FileOrDirectoryExists requires anything at the path.
func FileOrDirectoryExists(message string) Rule {
	return pathRule("file_or_directory_exists", message, "The :name :type file or directory does not exist.", func(p string) bool {
		_, err := os.Stat(p)
		return err == nil
	})
}

// Readable requires the path to open for reading.
func Readable(message string) Rule {
	return pathRule("readable", message, "The :name :type is not readable.", func(p string) bool {
		f, err := os.Open(p)
		if err != nil {
			return false
		}
		_ = f.Close()
		return true
	})
}

// Writable requires a file to open for writing, or a directory to accept a
// new file.
func Writable(message string) Rule {
	return pathRule("writable", message, "The :name :type is not writable.", func(p string) bool {
		info, err := os.Stat(p)
		if err != nil {
			return false
		}
		if info.IsDir() {
			f, err := os.CreateTemp(p, ".console-writable-*")
			if err != nil {
				return false
			}
			name := f.Name()
			_ = f.Close()
			_ = os.Remove(name)
			return true
		}
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			return false
		}
		_ = f.Close()
		return true
	})
}

// Executable requires a regular file with an execute bit set.
func Executable(message string) Rule {
	return pathRule("executable", message, "The :name :type is not executable.", func(p string) bool {
		info, err := os.Stat(p)
		return err == nil && info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
	})
}

func pathRule(name, message, fallback string, ok func(path string) bool) Rule {
	if message == "" {
		message = fallback
	}
	return Check(name, message, func(v any) bool {
		p, err := cast.ToStringE(v)
		if err != nil || p == "" {
			return false
		}
		return ok(p)
	})
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
