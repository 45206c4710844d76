// Package rawfs keeps one JSON document per (supplier, hotel) under
// <base>/<supplier>/<hotel_id>.json.
package rawfs

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"hotel_content/internal/domain"
)

type Store struct {
	base string
}

func New(base string) (*Store, error) {
	if base == "" {
		return nil, errors.New("rawfs: base directory is required")
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, &domain.StorageError{Op: "mkdir", Path: base, Err: err}
	}
	return &Store{base: base}, nil
}

// validSegment rejects anything that could escape its directory.
func validSegment(s string) bool {
	if s == "" || s == "." || s == ".." || strings.Contains(s, "..") {
		return false
	}
	return !strings.ContainsAny(s, `/\`+"\x00")
}

// Path returns the file a (supplier, hotel) pair is stored in.
func (s *Store) Path(supplier, hotelID string) (string, error) {
	if !validSegment(supplier) || !validSegment(hotelID) {
		return "", domain.ErrInvalidHotelID
	}
	return filepath.Join(s.base, supplier, hotelID+".json"), nil
}

// Save overwrites any existing document. The write goes to a temp file in the
// same directory and is renamed into place, so readers never see a partial file.
func (s *Store) Save(ctx context.Context, supplier, hotelID string, payload any) (string, error) {
	path, err := s.Path(supplier, hotelID)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", &domain.StorageError{Op: "encode", Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.StorageError{Op: "mkdir", Path: dir, Err: err}
	}
	tmp, err := os.CreateTemp(dir, "."+hotelID+".*.tmp")
	if err != nil {
		return "", &domain.StorageError{Op: "write", Path: path, Err: err}
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return "", &domain.StorageError{Op: "write", Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return "", &domain.StorageError{Op: "write", Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", &domain.StorageError{Op: "rename", Path: path, Err: err}
	}
	return path, nil
}

// Load returns the stored document. A missing file wraps domain.ErrNotFound;
// undecodable content is a StorageError with Op "decode".
func (s *Store) Load(ctx context.Context, supplier, hotelID string) (any, error) {
	path, err := s.Path(supplier, hotelID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &domain.StorageError{Op: "read", Path: path, Err: domain.ErrNotFound}
		}
		return nil, &domain.StorageError{Op: "read", Path: path, Err: err}
	}
	// numbers stay json.Number so long supplier IDs keep every digit
	d := json.NewDecoder(bytes.NewReader(b))
	d.UseNumber()
	var v any
	if err := d.Decode(&v); err != nil {
		return nil, &domain.StorageError{Op: "decode", Path: path, Err: err}
	}
	return v, nil
}
