package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// migratedDBPath creates a migrated database file to back up.
func migratedDBPath(t *testing.T) string {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "highcard.db")
	mgr, err := NewMigrationManager(dbPath)
	if err != nil {
		t.Fatalf("Failed to create migration manager: %v", err)
	}
	if err := mgr.Up(); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	_ = mgr.Close()
	return dbPath
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	config := DefaultEncryptionConfig("correct horse")
	plaintext := []byte("profile data worth keeping")

	encrypted, err := EncryptData(plaintext, config)
	if err != nil {
		t.Fatalf("EncryptData: %v", err)
	}
	if bytes.Contains(encrypted, plaintext) {
		t.Fatal("ciphertext contains the plaintext")
	}

	decrypted, err := DecryptData(encrypted, config)
	if err != nil {
		t.Fatalf("DecryptData: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Error("round trip changed the data")
	}
}

func TestDecryptWrongPassword(t *testing.T) {
	encrypted, err := EncryptData([]byte("secret"), DefaultEncryptionConfig("right"))
	if err != nil {
		t.Fatalf("EncryptData: %v", err)
	}

	if _, err := DecryptData(encrypted, DefaultEncryptionConfig("wrong")); err == nil {
		t.Fatal("wrong password accepted")
	}
}

func TestEncryptRequiresPassword(t *testing.T) {
	if _, err := EncryptData([]byte("x"), nil); err == nil {
		t.Error("nil config accepted")
	}
	if _, err := EncryptData([]byte("x"), &EncryptionConfig{}); err == nil {
		t.Error("empty password accepted")
	}
}

func TestBackupAndList(t *testing.T) {
	dbPath := migratedDBPath(t)
	bm := NewBackupManager(dbPath)
	backupDir := t.TempDir()

	backupPath, err := bm.Backup(&BackupConfig{BackupDir: backupDir, VerifyBackup: true})
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if filepath.Ext(backupPath) != ".db" {
		t.Errorf("backup path = %s, want .db file", backupPath)
	}
	if err := bm.VerifyBackup(backupPath); err != nil {
		t.Errorf("VerifyBackup: %v", err)
	}

	backups, err := bm.ListBackups(backupDir)
	if err != nil {
		t.Fatalf("ListBackups: %v", err)
	}
	if len(backups) != 1 || backups[0].Encrypted {
		t.Fatalf("backups = %+v, want one plain backup", backups)
	}
	if backups[0].Checksum == "" || backups[0].Checksum == "unknown" {
		t.Errorf("checksum = %q", backups[0].Checksum)
	}
}

func TestEncryptedBackupAndRestore(t *testing.T) {
	dbPath := migratedDBPath(t)
	bm := NewBackupManager(dbPath)
	backupDir := t.TempDir()

	backupPath, err := bm.Backup(&BackupConfig{
		BackupDir:    backupDir,
		VerifyBackup: true,
		Password:     "hunter2",
	})
	if err != nil {
		t.Fatalf("Backup: %v", err)
	}
	if !strings.HasSuffix(backupPath, ".db.enc") {
		t.Fatalf("backup path = %s, want .db.enc", backupPath)
	}

	encrypted, err := IsEncrypted(backupPath)
	if err != nil || !encrypted {
		t.Fatalf("IsEncrypted = %v, %v", encrypted, err)
	}

	if err := bm.Restore(backupPath, ""); err == nil {
		t.Fatal("restore without password succeeded")
	}
	if err := bm.Restore(backupPath, "hunter2"); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if err := bm.VerifyBackup(dbPath); err != nil {
		t.Errorf("restored database invalid: %v", err)
	}
}

func TestRestoreMissingBackup(t *testing.T) {
	bm := NewBackupManager(migratedDBPath(t))

	if err := bm.Restore(filepath.Join(t.TempDir(), "missing.db"), ""); err == nil {
		t.Error("restore from missing file succeeded")
	}
}

func TestListBackupsEmptyDir(t *testing.T) {
	bm := NewBackupManager(filepath.Join(t.TempDir(), "nope.db"))

	backups, err := bm.ListBackups("")
	if err != nil {
		t.Fatalf("ListBackups: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("backups = %+v, want none", backups)
	}
}

func TestIsEncryptedPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.db")
	if err := os.WriteFile(path, []byte("SQLite format 3"), 0o600); err != nil {
		t.Fatal(err)
	}

	encrypted, err := IsEncrypted(path)
	if err != nil {
		t.Fatalf("IsEncrypted: %v", err)
	}
	if encrypted {
		t.Error("plain file reported as encrypted")
	}
}
