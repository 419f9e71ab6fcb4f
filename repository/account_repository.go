package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/sirupsen/logrus"

	"securebank/logger"
	"securebank/model"
)

// ErrCorruptStore signals that the backing file existed but could not be
// parsed. The repository quarantines the file and returns an empty set so
// the caller can decide how loudly to report the data loss.
var ErrCorruptStore = errors.New("account store is corrupt")

type IAccountRepository interface {
	Load() ([]*model.Account, error)
	Save(accounts []*model.Account) error
}

// FileAccountRepository persists the full account set as one pretty-printed
// JSON document. The whole file is read at load and rewritten on every save.
type FileAccountRepository struct {
	path string
}

func NewFileAccountRepository(path string) *FileAccountRepository {
	return &FileAccountRepository{path: path}
}

// Load reads the backing file. A missing file yields an empty set. An
// unparseable file is renamed aside with a .corrupt suffix instead of being
// silently overwritten on the next save.
func (r *FileAccountRepository) Load() ([]*model.Account, error) {
	log := logger.Log.WithField("path", r.path)

	f, err := os.Open(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("No existing account store, starting empty")
		return []*model.Account{}, nil
	}
	if err != nil {
		log.WithError(err).Error("Failed to open account store")
		return nil, fmt.Errorf("could not open account store: %w", err)
	}

	var accounts []*model.Account
	decodeErr := json.NewDecoder(f).Decode(&accounts)
	f.Close()
	if decodeErr != nil {
		quarantine := r.path + ".corrupt"
		if renameErr := os.Rename(r.path, quarantine); renameErr != nil {
			// Without the quarantine the next save would overwrite the
			// unreadable file, so this is a hard failure rather than an
			// empty-store start.
			log.WithError(renameErr).Error("Failed to quarantine corrupt account store")
			return nil, fmt.Errorf("could not quarantine corrupt account store: %w", renameErr)
		}
		log.WithField("quarantine", quarantine).Warn("Account store could not be parsed, file preserved")
		return []*model.Account{}, fmt.Errorf("%w: %v", ErrCorruptStore, decodeErr)
	}

	log.WithField("accounts", len(accounts)).Info("Account store loaded")
	return accounts, nil
}

// Save writes the full set to a temporary file and renames it over the
// target, so a crash mid-write never leaves a half-written store behind.
func (r *FileAccountRepository) Save(accounts []*model.Account) error {
	log := logger.Log.WithFields(logrus.Fields{
		"path":     r.path,
		"accounts": len(accounts),
	})

	tmp := r.path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		log.WithError(err).Error("Failed to create temporary store file")
		return fmt.Errorf("could not create temporary store file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "    ")
	if err := enc.Encode(accounts); err != nil {
		f.Close()
		os.Remove(tmp)
		log.WithError(err).Error("Failed to encode account store")
		return fmt.Errorf("could not encode account store: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("could not flush account store: %w", err)
	}

	if err := os.Rename(tmp, r.path); err != nil {
		os.Remove(tmp)
		log.WithError(err).Error("Failed to replace account store")
		return fmt.Errorf("could not replace account store: %w", err)
	}
	return nil
}
