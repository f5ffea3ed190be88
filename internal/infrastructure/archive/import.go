package archive

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/edutrack-hub/edutrack/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// IMPORT ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrPasswordRequired - the export is encrypted and no password was given.
	ErrPasswordRequired = shared.NewDomainError("archive", "Import", shared.ErrImport, "export is password protected")

	// ErrInvalidPassword - decryption failed, almost always a wrong password.
	ErrInvalidPassword = shared.NewDomainError("archive", "Import", shared.ErrImport, "invalid password")

	// ErrInvalidJSON - the input is not a JSON document this format knows.
	ErrInvalidJSON = shared.NewDomainError("archive", "Import", shared.ErrImport, "not a valid export file")

	// ErrNoRecognizableData - the envelope parsed but carries no records.
	ErrNoRecognizableData = shared.NewDomainError("archive", "Import", shared.ErrImport, "no recognizable data in export")
)

// zipMagic is the local-file-header signature every zip starts with.
var zipMagic = []byte{'P', 'K', 0x03, 0x04}

// ══════════════════════════════════════════════════════════════════════════════
// IMPORT
// ══════════════════════════════════════════════════════════════════════════════

// Import unpacks an export produced by ExportJSON or ExportZip. The container
// is detected from the bytes; password is needed only for encrypted exports.
func Import(data []byte, password string) (*Snapshot, error) {
	if bytes.HasPrefix(data, zipMagic) {
		payload, err := extractZip(data)
		if err != nil {
			return nil, err
		}
		data = payload
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, ErrInvalidJSON
	}
	if env.Version == 0 {
		return nil, ErrInvalidJSON
	}

	snap := env.Data
	if env.Encrypted {
		decrypted, err := decryptPayload(&env, password)
		if err != nil {
			return nil, err
		}
		snap = decrypted
	}

	if snap == nil || snap.IsEmpty() {
		return nil, ErrNoRecognizableData
	}
	return snap, nil
}

// extractZip returns the bytes of the first JSON entry in the zip.
func extractZip(data []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, ErrInvalidJSON
	}

	for _, f := range r.File {
		if !strings.HasSuffix(f.Name, ".json") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("archive: open zip entry %s: %w", f.Name, err)
		}
		payload, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("archive: read zip entry %s: %w", f.Name, err)
		}
		return payload, nil
	}

	return nil, ErrNoRecognizableData
}

// decryptPayload reverses the ExportJSON encryption path.
func decryptPayload(env *Envelope, password string) (*Snapshot, error) {
	if password == "" {
		return nil, ErrPasswordRequired
	}

	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return nil, ErrInvalidJSON
	}
	nonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil {
		return nil, ErrInvalidJSON
	}
	ciphertext, err := base64.StdEncoding.DecodeString(env.Payload)
	if err != nil {
		return nil, ErrInvalidJSON
	}

	gcm, err := newGCM(password, salt)
	if err != nil {
		return nil, err
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, ErrInvalidJSON
	}

	plain, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		// GCM authentication failure: wrong key, therefore wrong password.
		return nil, ErrInvalidPassword
	}

	var snap Snapshot
	if err := json.Unmarshal(plain, &snap); err != nil {
		return nil, ErrInvalidJSON
	}
	return &snap, nil
}
