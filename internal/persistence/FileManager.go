package persistence

import (
	"errors"
	"fmt"
	json "github.com/goccy/go-json"
	"nodelete/internal/models"
	"nodelete/internal/persistence/interfaces"
	"nodelete/internal/providers"
	"os"
	"time"
)

var ErrUnsupportedVersion = errors.New("unsupported storage version")

// FileManager moves the whole LogStore to and from one compressed JSON file.
type FileManager struct {
	store      *models.LogStore
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, store *models.LogStore, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		store:      store,
		logger:     logger,
	}
}

// SaveToFile writes the store atomically. The dirty flag is cleared before
// the snapshot is taken and restored on failure, so appends racing with the
// save are picked up by the next one.
func (f *FileManager) SaveToFile(fileName string) (err error) {
	f.store.MarkClean()
	defer func() {
		if err != nil {
			f.store.MarkDirty()
		}
	}()

	storage := models.Storage{
		Version: models.StorageVersion,
		Logs:    f.store.Snapshot(),
	}

	jsonData, err := json.Marshal(storage)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// LoadFromFile initializes the store from fileName. A missing file leaves
// the store with an empty mapping. A file that cannot be decoded is moved
// aside before the store starts empty, so the next save never replaces it.
// A store that is already initialized is never overwritten.
func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			f.store.Init(nil)
			return nil
		}
		return err
	}

	storage, err := f.decode(fileName, data)
	if err != nil {
		return f.quarantine(fileName, err)
	}

	if !f.store.Init(storage.Logs) {
		f.logger.Warnf(providers.TypeApp, "Log store already initialized, skipped restore from %s", fileName)
		return nil
	}
	f.logger.Infof(providers.TypeApp, "Restored %d channel logs from %s", len(storage.Logs), fileName)
	return nil
}

func (f *FileManager) decode(fileName string, data []byte) (*models.Storage, error) {
	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return nil, err
	}

	var storage models.Storage
	if err := json.Unmarshal(decompressedData, &storage); err != nil {
		return nil, fmt.Errorf("unable to decode %s: %w", fileName, err)
	}
	if storage.Version != models.StorageVersion {
		return nil, fmt.Errorf("%s: %w: %d", fileName, ErrUnsupportedVersion, storage.Version)
	}
	return &storage, nil
}

// quarantine renames an unreadable file to <name>.corrupt-<time>. If the
// rename fails the store stays uninitialized and the caller must not save.
func (f *FileManager) quarantine(fileName string, cause error) error {
	target := fileName + ".corrupt-" + time.Now().UTC().Format("20060102T150405.000000000")
	if err := os.Rename(fileName, target); err != nil {
		return fmt.Errorf("%w (moving it aside failed: %s)", cause, err)
	}
	f.logger.Warnf(providers.TypeApp, "Moved unreadable %s to %s: %s", fileName, target, cause)
	f.store.Init(nil)
	return nil
}
