package scenario

import (
	"fmt"
	"strings"
)

// Storage is the server-side storage backend under test.
type Storage string

const (
	// StoragePlain is the plain filesystem backend.
	StoragePlain Storage = "fs"
	// StorageRoot is the root-shell filesystem backend.
	StorageRoot Storage = "root"
	// StorageSAF is the storage access framework backend.
	StorageSAF Storage = "saf"
	// StorageSAFReadOnly is the read-only storage access framework backend.
	StorageSAFReadOnly Storage = "safro"
)

// Storages lists every supported backend in display order.
var Storages = []Storage{StoragePlain, StorageRoot, StorageSAF, StorageSAFReadOnly}

// InvalidStorageError is returned for an unknown storage name.
type InvalidStorageError struct {
	Name string
}

func (e *InvalidStorageError) Error() string {
	names := make([]string, len(Storages))
	for i, s := range Storages {
		names[i] = string(s)
	}
	return fmt.Sprintf("invalid storage %q: must be one of %s", e.Name, strings.Join(names, ", "))
}

// ParseStorage returns the backend named name.
func ParseStorage(name string) (Storage, error) {
	for _, s := range Storages {
		if string(s) == name {
			return s, nil
		}
	}
	return "", &InvalidStorageError{Name: name}
}

// ReadOnly reports whether the backend refuses writes.
func (s Storage) ReadOnly() bool {
	return s == StorageSAFReadOnly
}

// label is the storage part of a scenario tag.
func (s Storage) label() string {
	switch s {
	case StorageSAF, StorageSAFReadOnly:
		return strings.ToUpper(string(s))
	default:
		return string(s)
	}
}

// Tag returns the label attached to errors of the scenario running client
// over this storage, e.g. "[fs sftp]" or "[SAF  ftp]".
func (s Storage) Tag(client string) string {
	return fmt.Sprintf("[%s %4s]", s.label(), client)
}
