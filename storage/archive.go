package storage

import (
	"archive/zip"
	"fmt"
	"io"
	"os"

	"github.com/sbinet/npyio"
)

// archiveWriter wraps a zip being assembled on disk.
type archiveWriter struct {
	f  *os.File
	zw *zip.Writer
}

func newArchiveWriter(path string) (*archiveWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &archiveWriter{f: f, zw: zip.NewWriter(f)}, nil
}

// putArray stores a float array or dense matrix as an npy member.
func (a *archiveWriter) putArray(name string, v interface{}) error {
	w, err := a.zw.Create(name + ".npy")
	if err != nil {
		return err
	}
	return npyio.Write(w, v)
}

// putText stores a plain text member.
func (a *archiveWriter) putText(name, content string) error {
	w, err := a.zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write([]byte(content))
	return err
}

func (a *archiveWriter) Close() error {
	if err := a.zw.Close(); err != nil {
		a.f.Close()
		return err
	}
	return a.f.Close()
}

// archiveReader indexes the members of a zip on disk.
type archiveReader struct {
	rc      *zip.ReadCloser
	members map[string]*zip.File
}

func openArchive(path string) (*archiveReader, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	members := make(map[string]*zip.File, len(rc.File))
	for _, f := range rc.File {
		members[f.Name] = f
	}
	return &archiveReader{rc: rc, members: members}, nil
}

// getArray decodes an npy member into v, which must be a pointer to a float
// slice or a dense matrix.
func (a *archiveReader) getArray(name string, v interface{}) error {
	f, ok := a.members[name+".npy"]
	if !ok {
		return fmt.Errorf("missing entry %q", name+".npy")
	}
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	return npyio.Read(r, v)
}

// getText reads a plain text member.
func (a *archiveReader) getText(name string) (string, error) {
	f, ok := a.members[name]
	if !ok {
		return "", fmt.Errorf("missing entry %q", name)
	}
	r, err := f.Open()
	if err != nil {
		return "", err
	}
	defer r.Close()

	buf, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}

func (a *archiveReader) Close() error { return a.rc.Close() }
