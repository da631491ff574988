package storage

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// BackupManager handles database backup and restore operations. Backups
// use VACUUM INTO, so they can run while the app holds the database open.
type BackupManager struct {
	dbPath string
}

// NewBackupManager creates a backup manager for the given database path.
func NewBackupManager(dbPath string) *BackupManager {
	return &BackupManager{dbPath: dbPath}
}

// BackupConfig holds configuration for one backup operation. A non-empty
// Password produces an encrypted .db.enc backup instead of a plain copy.
type BackupConfig struct {
	BackupDir    string // defaults to <db dir>/backups
	BackupName   string // defaults to a timestamped name
	VerifyBackup bool
	Password     string
}

// DefaultBackupConfig returns a BackupConfig with verification enabled.
func DefaultBackupConfig() *BackupConfig {
	return &BackupConfig{VerifyBackup: true}
}

// Backup creates a backup of the database and returns its path.
func (bm *BackupManager) Backup(config *BackupConfig) (string, error) {
	if config == nil {
		config = DefaultBackupConfig()
	}

	backupDir := config.BackupDir
	if backupDir == "" {
		backupDir = bm.BackupDir()
	}
	if err := os.MkdirAll(backupDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	backupName := config.BackupName
	if backupName == "" {
		backupName = "backup_" + time.Now().Format("20060102_150405")
	}
	backupPath := filepath.Join(backupDir, backupName+".db")

	sourceDB, err := sql.Open("sqlite", bm.dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to open source database: %w", err)
	}
	defer sourceDB.Close()

	// VACUUM INTO is atomic and needs no exclusive lock (SQLite 3.27+).
	if _, err := sourceDB.Exec(fmt.Sprintf("VACUUM INTO %q", backupPath)); err != nil {
		if err := bm.backupByCopy(backupPath); err != nil {
			return "", err
		}
	}

	if config.VerifyBackup {
		if err := bm.VerifyBackup(backupPath); err != nil {
			_ = os.Remove(backupPath)
			return "", fmt.Errorf("backup verification failed: %w", err)
		}
	}

	if config.Password != "" {
		encPath := backupPath + ".enc"
		if err := EncryptFile(backupPath, encPath, DefaultEncryptionConfig(config.Password)); err != nil {
			_ = os.Remove(backupPath)
			return "", err
		}
		_ = os.Remove(backupPath)
		return encPath, nil
	}

	return backupPath, nil
}

// backupByCopy copies the database file directly, for SQLite builds
// without VACUUM INTO.
func (bm *BackupManager) backupByCopy(backupPath string) error {
	sourceFile, err := os.Open(bm.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open source database file: %w", err)
	}
	defer sourceFile.Close()

	destFile, err := os.Create(backupPath)
	if err != nil {
		return fmt.Errorf("failed to create backup file: %w", err)
	}
	defer destFile.Close()

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		_ = os.Remove(backupPath)
		return fmt.Errorf("failed to copy database file: %w", err)
	}
	return nil
}

// Restore replaces the current database with a backup. The previous
// database is kept beside it with an .old suffix. Encrypted backups need
// the password they were created with. The caller must have closed its
// database connection first.
func (bm *BackupManager) Restore(backupPath, password string) error {
	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return fmt.Errorf("backup file does not exist: %s", backupPath)
	}

	tempPath := bm.dbPath + ".restore.tmp"

	encrypted, err := IsEncrypted(backupPath)
	if err != nil {
		return fmt.Errorf("failed to inspect backup file: %w", err)
	}

	if encrypted {
		if password == "" {
			return fmt.Errorf("backup is encrypted; password required")
		}
		if err := DecryptFile(backupPath, tempPath, DefaultEncryptionConfig(password)); err != nil {
			return err
		}
	} else {
		if err := copyFile(backupPath, tempPath); err != nil {
			_ = os.Remove(tempPath)
			return fmt.Errorf("failed to copy backup file: %w", err)
		}
	}

	if err := bm.VerifyBackup(tempPath); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("restored database verification failed: %w", err)
	}

	if _, err := os.Stat(bm.dbPath); err == nil {
		oldPath := bm.dbPath + ".old." + time.Now().Format("20060102_150405")
		if err := os.Rename(bm.dbPath, oldPath); err != nil {
			_ = os.Remove(tempPath)
			return fmt.Errorf("failed to set aside current database: %w", err)
		}
	}

	if err := os.Rename(tempPath, bm.dbPath); err != nil {
		return fmt.Errorf("failed to replace database with restored backup: %w", err)
	}
	return nil
}

// VerifyBackup verifies that a backup file is a readable SQLite database.
func (bm *BackupManager) VerifyBackup(backupPath string) error {
	db, err := sql.Open("sqlite", backupPath)
	if err != nil {
		return fmt.Errorf("failed to open backup as database: %w", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to ping backup database: %w", err)
	}

	var version string
	if err := db.QueryRow("SELECT sqlite_version()").Scan(&version); err != nil {
		return fmt.Errorf("failed to query backup database: %w", err)
	}
	return nil
}

// BackupInfo describes one backup file.
type BackupInfo struct {
	Path      string
	Name      string
	Size      int64
	ModTime   time.Time
	Checksum  string
	Encrypted bool
}

// ListBackups returns the backup files in the backup directory, plain and
// encrypted.
func (bm *BackupManager) ListBackups(backupDir string) ([]BackupInfo, error) {
	if backupDir == "" {
		backupDir = bm.BackupDir()
	}
	if _, err := os.Stat(backupDir); os.IsNotExist(err) {
		return []BackupInfo{}, nil
	}

	entries, err := os.ReadDir(backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".db" && ext != ".enc" {
			continue
		}

		path := filepath.Join(backupDir, entry.Name())
		info, err := entry.Info()
		if err != nil {
			continue
		}

		checksum, err := fileChecksum(path)
		if err != nil {
			checksum = "unknown"
		}

		backups = append(backups, BackupInfo{
			Path:      path,
			Name:      entry.Name(),
			Size:      info.Size(),
			ModTime:   info.ModTime(),
			Checksum:  checksum,
			Encrypted: ext == ".enc",
		})
	}
	return backups, nil
}

// BackupDir returns the default backup directory for this database.
func (bm *BackupManager) BackupDir() string {
	return filepath.Join(filepath.Dir(bm.dbPath), "backups")
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

// fileChecksum returns the SHA-256 checksum of a file.
func fileChecksum(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
