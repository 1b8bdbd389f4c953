package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"

	"github.com/kudilabs/kudi-client/internal/common"
)

const (
	keystoreVersion = 1
	saltLength      = 16
)

// keystoreFile is the on-disk envelope around the encrypted signing key.
type keystoreFile struct {
	Version    int    `json:"version"`
	Address    string `json:"address"`
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

// deriveKey stretches the passphrase into an AES-256 key.
func deriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, 32)
}

// CreateKeystore generates a fresh ed25519 keypair and writes it to path,
// encrypted with the passphrase. Fails when the file already exists.
func CreateKeystore(path string, passphrase []byte) (*LocalWallet, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("keystore already exists: %s", path)
	}

	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate keypair: %w", err)
	}

	addr, err := solanaPublicKey(pub)
	if err != nil {
		return nil, err
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	key := deriveKey(passphrase, salt)
	defer common.WipeByteArray(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	ks := keystoreFile{
		Version:    keystoreVersion,
		Address:    addr.String(),
		Salt:       salt,
		Nonce:      nonce,
		Ciphertext: aesgcm.Seal(nil, nonce, priv.Seed(), nil),
	}

	data, err := json.Marshal(ks)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create keystore directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write keystore: %w", err)
	}

	return &LocalWallet{priv: priv, address: addr}, nil
}

// OpenKeystore decrypts the keystore at path with the passphrase.
// Returns ErrInvalidPassphrase when the data does not authenticate.
func OpenKeystore(path string, passphrase []byte) (*LocalWallet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keystore: %w", err)
	}

	var ks keystoreFile
	if err := json.Unmarshal(data, &ks); err != nil {
		return nil, fmt.Errorf("failed to parse keystore: %w", err)
	}
	if ks.Version != keystoreVersion {
		return nil, fmt.Errorf("unsupported keystore version: %d", ks.Version)
	}

	key := deriveKey(passphrase, ks.Salt)
	defer common.WipeByteArray(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	seed, err := aesgcm.Open(nil, ks.Nonce, ks.Ciphertext, nil)
	if err != nil {
		return nil, ErrInvalidPassphrase
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("corrupt keystore: bad seed length %d", len(seed))
	}

	priv := ed25519.NewKeyFromSeed(seed)
	common.WipeByteArray(seed)

	addr, err := solanaPublicKey(priv.Public().(ed25519.PublicKey))
	if err != nil {
		return nil, err
	}
	return &LocalWallet{priv: priv, address: addr}, nil
}
