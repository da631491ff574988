package storage

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"
	"os"

	"golang.org/x/crypto/argon2"
)

// encryptionMagicHeader identifies encrypted backup files.
const encryptionMagicHeader = "HCBKUP01"

// Argon2id parameters per RFC 9106, and the salt length used for key
// derivation.
const (
	argon2Time    = 1
	argon2Memory  = 64 * 1024
	argon2Threads = 4
	argon2KeyLen  = 32
	saltLength    = 32
)

// EncryptionConfig holds the passphrase and key-derivation cost settings
// for backup encryption.
type EncryptionConfig struct {
	Password string
	Time     uint32
	Memory   uint32
	Threads  uint8
}

// DefaultEncryptionConfig returns an encryption config with the standard
// cost parameters.
func DefaultEncryptionConfig(password string) *EncryptionConfig {
	return &EncryptionConfig{
		Password: password,
		Time:     argon2Time,
		Memory:   argon2Memory,
		Threads:  argon2Threads,
	}
}

// deriveKey derives an AES-256 key from the passphrase with Argon2id.
func deriveKey(password string, salt []byte, config *EncryptionConfig) []byte {
	if config == nil {
		config = DefaultEncryptionConfig(password)
	}
	return argon2.IDKey([]byte(password), salt, config.Time, config.Memory, config.Threads, argon2KeyLen)
}

// EncryptData encrypts plaintext with AES-256-GCM under a key derived from
// the config's passphrase. Output layout: salt || nonce || ciphertext.
func EncryptData(plaintext []byte, config *EncryptionConfig) ([]byte, error) {
	if config == nil || config.Password == "" {
		return nil, fmt.Errorf("encryption config with password required")
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	block, err := aes.NewCipher(deriveKey(config.Password, salt, config))
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ciphertext := gcm.Seal(nil, nonce, plaintext, nil)

	result := make([]byte, 0, len(salt)+len(nonce)+len(ciphertext))
	result = append(result, salt...)
	result = append(result, nonce...)
	result = append(result, ciphertext...)
	return result, nil
}

// DecryptData reverses EncryptData. A wrong passphrase fails the GCM
// authentication check rather than yielding garbage.
func DecryptData(encrypted []byte, config *EncryptionConfig) ([]byte, error) {
	if config == nil || config.Password == "" {
		return nil, fmt.Errorf("encryption config with password required")
	}

	// salt + 12-byte nonce + 16-byte auth tag is the smallest valid payload.
	if len(encrypted) < saltLength+12+16 {
		return nil, fmt.Errorf("encrypted data too short")
	}

	salt := encrypted[:saltLength]
	encrypted = encrypted[saltLength:]

	block, err := aes.NewCipher(deriveKey(config.Password, salt, config))
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	nonceSize := gcm.NonceSize()
	if len(encrypted) < nonceSize {
		return nil, fmt.Errorf("encrypted data too short for nonce")
	}

	plaintext, err := gcm.Open(nil, encrypted[:nonceSize], encrypted[nonceSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed (wrong password or corrupted data): %w", err)
	}
	return plaintext, nil
}

// EncryptFile encrypts sourcePath into destPath with the magic header
// prepended.
func EncryptFile(sourcePath, destPath string, config *EncryptionConfig) error {
	plaintext, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}

	encrypted, err := EncryptData(plaintext, config)
	if err != nil {
		return fmt.Errorf("encryption failed: %w", err)
	}

	destFile, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer destFile.Close()

	if _, err := destFile.Write([]byte(encryptionMagicHeader)); err != nil {
		return fmt.Errorf("failed to write magic header: %w", err)
	}
	if _, err := destFile.Write(encrypted); err != nil {
		return fmt.Errorf("failed to write encrypted data: %w", err)
	}
	return nil
}

// DecryptFile decrypts an encrypted backup file into destPath.
func DecryptFile(sourcePath, destPath string, config *EncryptionConfig) error {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read encrypted file: %w", err)
	}

	if len(data) < len(encryptionMagicHeader) || string(data[:len(encryptionMagicHeader)]) != encryptionMagicHeader {
		return fmt.Errorf("file is not encrypted or has wrong format")
	}

	plaintext, err := DecryptData(data[len(encryptionMagicHeader):], config)
	if err != nil {
		return fmt.Errorf("decryption failed: %w", err)
	}

	if err := os.WriteFile(destPath, plaintext, 0o600); err != nil {
		return fmt.Errorf("failed to write decrypted file: %w", err)
	}
	return nil
}

// IsEncrypted reports whether a file carries the encrypted-backup header.
func IsEncrypted(filePath string) (bool, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return false, err
	}
	defer file.Close()

	header := make([]byte, len(encryptionMagicHeader))
	n, err := file.Read(header)
	if err != nil && err != io.EOF {
		return false, err
	}
	return n == len(encryptionMagicHeader) && string(header) == encryptionMagicHeader, nil
}
