// Package fsops exposes thin interfaces over os and filepath helpers so the
// rest of the project can be tested without touching the real filesystem.
package fsops

import (
	"io/fs"
	"os"
	"path/filepath"
)

// PathOps abstracts common filepath operations to allow mocking in tests.
type PathOps interface {
	Abs(path string) (string, error)
	Join(elem ...string) string
	Clean(path string) string
	IsAbs(path string) bool
	Ext(name string) string
	Dir(path string) string
	Base(path string) string
}

// OSOps abstracts the filesystem calls the checkout normalizer performs:
// metadata queries, directory listing, symlink creation and whole-file
// read/rewrite.
type OSOps interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	Symlink(oldname, newname string) error
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
}

// Ops groups together the filesystem dependencies of a component.
type Ops struct {
	Path PathOps
	OS   OSOps
}

// DefaultOps returns an Ops configured with the standard library implementations.
func DefaultOps() Ops {
	return Ops{
		Path: stdPathOps{},
		OS:   stdOSOps{},
	}
}

type stdPathOps struct{}

func (stdPathOps) Abs(path string) (string, error) { return filepath.Abs(path) }
func (stdPathOps) Join(elem ...string) string      { return filepath.Join(elem...) }
func (stdPathOps) Clean(path string) string        { return filepath.Clean(path) }
func (stdPathOps) IsAbs(path string) bool          { return filepath.IsAbs(path) }
func (stdPathOps) Ext(name string) string          { return filepath.Ext(name) }
func (stdPathOps) Dir(path string) string          { return filepath.Dir(path) }
func (stdPathOps) Base(path string) string         { return filepath.Base(path) }

type stdOSOps struct{}

func (stdOSOps) Stat(name string) (fs.FileInfo, error)      { return os.Stat(name) }
func (stdOSOps) Lstat(name string) (fs.FileInfo, error)     { return os.Lstat(name) }
func (stdOSOps) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }
func (stdOSOps) Symlink(oldname, newname string) error      { return os.Symlink(oldname, newname) }
func (stdOSOps) ReadFile(name string) ([]byte, error)       { return os.ReadFile(name) }
func (stdOSOps) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}
