// Package archive implements data export and import: the full record set is
// packed into a versioned JSON envelope, optionally inside a zip, optionally
// encrypted with a password. Import accepts anything export produces and
// fails with a precise error otherwise.
package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/pbkdf2"

	"github.com/edutrack-hub/edutrack/internal/domain/attendance"
	"github.com/edutrack-hub/edutrack/internal/domain/focus"
	"github.com/edutrack-hub/edutrack/internal/domain/planner"
	"github.com/edutrack-hub/edutrack/internal/domain/profile"
	"github.com/edutrack-hub/edutrack/internal/domain/shared"
	"github.com/edutrack-hub/edutrack/internal/domain/subject"
	"github.com/edutrack-hub/edutrack/internal/domain/task"
	"github.com/edutrack-hub/edutrack/internal/domain/topic"
	"github.com/edutrack-hub/edutrack/internal/infrastructure/persistence"
)

// ══════════════════════════════════════════════════════════════════════════════
// FORMAT
// ══════════════════════════════════════════════════════════════════════════════

// EnvelopeVersion is the current export format version.
const EnvelopeVersion = 1

// exportFileName is the JSON entry name inside a zip export.
const exportFileName = "edutrack-export.json"

// Key derivation parameters for password-protected exports.
const (
	keyIterations = 100_000
	keyLength     = 32
	saltLength    = 16
)

// Snapshot is the full record set carried by an export.
type Snapshot struct {
	Subjects   []*subject.Subject            `json:"subjects"`
	Timetable  []subject.TimetableEntry      `json:"timetable,omitempty"`
	Attendance []*attendance.DailyAttendance `json:"attendance"`
	Tasks      []*task.StudyTask             `json:"tasks"`
	Topics     []*topic.Topic                `json:"topics"`
	FocusLogs  []*focus.FocusLog             `json:"focusLogs,omitempty"`
	Profile    *profile.UserProfile          `json:"profile,omitempty"`
	Plans      []*planner.WeeklyPlan         `json:"plans,omitempty"`
}

// IsEmpty reports whether the snapshot carries no records at all.
func (s *Snapshot) IsEmpty() bool {
	return len(s.Subjects) == 0 &&
		len(s.Timetable) == 0 &&
		len(s.Attendance) == 0 &&
		len(s.Tasks) == 0 &&
		len(s.Topics) == 0 &&
		len(s.FocusLogs) == 0 &&
		s.Profile == nil &&
		len(s.Plans) == 0
}

// Envelope is the versioned export wrapper. Plain exports carry Data;
// password-protected exports carry the encrypted Payload plus the key
// derivation salt and the cipher nonce, all base64.
type Envelope struct {
	Version    int       `json:"version"`
	ExportDate time.Time `json:"exportDate"`

	Data *Snapshot `json:"data,omitempty"`

	Encrypted bool   `json:"encrypted,omitempty"`
	Salt      string `json:"salt,omitempty"`
	Nonce     string `json:"nonce,omitempty"`
	Payload   string `json:"payload,omitempty"`
}

// ══════════════════════════════════════════════════════════════════════════════
// SNAPSHOT COLLECTION
// ══════════════════════════════════════════════════════════════════════════════

// CollectSnapshot reads every collection from the stores. A missing profile
// is not an error; the snapshot simply carries none.
func CollectSnapshot(ctx context.Context, stores *persistence.Stores) (*Snapshot, error) {
	snap := &Snapshot{}
	var err error

	if snap.Subjects, err = stores.Subjects.List(ctx); err != nil {
		return nil, err
	}
	if snap.Timetable, err = stores.Timetable.List(ctx); err != nil {
		return nil, err
	}
	if snap.Attendance, err = stores.Attendance.List(ctx); err != nil {
		return nil, err
	}
	if snap.Tasks, err = stores.Tasks.List(ctx); err != nil {
		return nil, err
	}
	if snap.Topics, err = stores.Topics.List(ctx); err != nil {
		return nil, err
	}
	if snap.FocusLogs, err = stores.FocusLogs.List(ctx); err != nil {
		return nil, err
	}
	if snap.Plans, err = stores.Plans.List(ctx); err != nil {
		return nil, err
	}

	p, err := stores.Profile.Get(ctx)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	snap.Profile = p

	return snap, nil
}

// RestoreSnapshot writes every collection in the snapshot back to the stores,
// replacing what was there.
func RestoreSnapshot(ctx context.Context, stores *persistence.Stores, snap *Snapshot) error {
	for _, s := range snap.Subjects {
		if err := stores.Subjects.Save(ctx, s); err != nil {
			return err
		}
	}
	for _, e := range snap.Timetable {
		if err := stores.Timetable.Save(ctx, e); err != nil {
			return err
		}
	}
	for _, r := range snap.Attendance {
		if err := stores.Attendance.Save(ctx, r); err != nil {
			return err
		}
	}
	for _, t := range snap.Tasks {
		if err := stores.Tasks.Save(ctx, t); err != nil {
			return err
		}
	}
	for _, t := range snap.Topics {
		if err := stores.Topics.Save(ctx, t); err != nil {
			return err
		}
	}
	for _, l := range snap.FocusLogs {
		if err := stores.FocusLogs.Append(ctx, l); err != nil {
			return err
		}
	}
	for _, p := range snap.Plans {
		if err := stores.Plans.Append(ctx, p); err != nil {
			return err
		}
	}
	if snap.Profile != nil {
		if err := stores.Profile.Save(ctx, snap.Profile); err != nil {
			return err
		}
	}
	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// EXPORT
// ══════════════════════════════════════════════════════════════════════════════

// ExportJSON packs a snapshot into the envelope. With a non-empty password
// the snapshot is serialized, encrypted with AES-GCM under a pbkdf2-derived
// key, and carried as an opaque payload.
func ExportJSON(snap *Snapshot, exportDate time.Time, password string) ([]byte, error) {
	env := Envelope{
		Version:    EnvelopeVersion,
		ExportDate: exportDate.UTC(),
	}

	if password == "" {
		env.Data = snap
		return json.Marshal(env)
	}

	plain, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("archive: marshal snapshot: %w", err)
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("archive: generate salt: %w", err)
	}

	gcm, err := newGCM(password, salt)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("archive: generate nonce: %w", err)
	}

	env.Encrypted = true
	env.Salt = base64.StdEncoding.EncodeToString(salt)
	env.Nonce = base64.StdEncoding.EncodeToString(nonce)
	env.Payload = base64.StdEncoding.EncodeToString(gcm.Seal(nil, nonce, plain, nil))

	return json.Marshal(env)
}

// ExportZip packs the JSON envelope into a single-entry zip.
func ExportZip(snap *Snapshot, exportDate time.Time, password string) ([]byte, error) {
	payload, err := ExportJSON(snap, exportDate, password)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)

	f, err := w.Create(exportFileName)
	if err != nil {
		return nil, fmt.Errorf("archive: create zip entry: %w", err)
	}
	if _, err := f.Write(payload); err != nil {
		return nil, fmt.Errorf("archive: write zip entry: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("archive: close zip: %w", err)
	}

	return buf.Bytes(), nil
}

// newGCM derives a key from the password and salt and builds the AEAD.
func newGCM(password string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(password), salt, keyIterations, keyLength, sha256.New)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("archive: init cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("archive: init gcm: %w", err)
	}
	return gcm, nil
}
