package archive

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edutrack-hub/edutrack/internal/domain/attendance"
	"github.com/edutrack-hub/edutrack/internal/domain/profile"
	"github.com/edutrack-hub/edutrack/internal/domain/subject"
	"github.com/edutrack-hub/edutrack/internal/domain/task"
	"github.com/edutrack-hub/edutrack/internal/infrastructure/persistence"
	"github.com/edutrack-hub/edutrack/internal/infrastructure/persistence/memory"
)

var exportDate = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func sampleSnapshot(t *testing.T) *Snapshot {
	t.Helper()

	record := attendance.NewDailyAttendance(exportDate)
	require.NoError(t, record.Mark("s-1", attendance.StatusPresent))

	p := profile.NewUserProfile("Aruzhan")
	p.XP = 2500

	return &Snapshot{
		Subjects: []*subject.Subject{
			{ID: "s-1", Name: "Math", Color: "#ff0000", CreatedAt: exportDate},
		},
		Attendance: []*attendance.DailyAttendance{record},
		Tasks: []*task.StudyTask{
			{ID: "t-1", SubjectID: "s-1", Description: "Finish lab", TargetDate: exportDate, Status: task.StatusPending, CreatedAt: exportDate},
		},
		Profile: p,
	}
}

func TestExportImport_PlainRoundTrip(t *testing.T) {
	snap := sampleSnapshot(t)

	data, err := ExportJSON(snap, exportDate, "")
	require.NoError(t, err)

	got, err := Import(data, "")
	require.NoError(t, err)

	require.Len(t, got.Subjects, 1)
	assert.Equal(t, "Math", got.Subjects[0].Name)
	require.Len(t, got.Attendance, 1)
	assert.Equal(t, attendance.StatusPresent, got.Attendance[0].Subjects.Get("s-1"))
	require.NotNil(t, got.Profile)
	assert.Equal(t, profile.XP(2500), got.Profile.XP)
}

func TestExportImport_EncryptedRoundTrip(t *testing.T) {
	snap := sampleSnapshot(t)

	data, err := ExportJSON(snap, exportDate, "correct horse")
	require.NoError(t, err)

	// Ciphertext must not leak record contents.
	assert.NotContains(t, string(data), "Math")

	got, err := Import(data, "correct horse")
	require.NoError(t, err)
	require.Len(t, got.Subjects, 1)
	assert.Equal(t, "Math", got.Subjects[0].Name)
}

func TestImport_EncryptedErrors(t *testing.T) {
	data, err := ExportJSON(sampleSnapshot(t), exportDate, "correct horse")
	require.NoError(t, err)

	_, err = Import(data, "")
	assert.ErrorIs(t, err, ErrPasswordRequired)

	_, err = Import(data, "wrong password")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestExportImport_ZipRoundTrip(t *testing.T) {
	snap := sampleSnapshot(t)

	data, err := ExportZip(snap, exportDate, "")
	require.NoError(t, err)
	assert.Equal(t, []byte{'P', 'K', 0x03, 0x04}, data[:4])

	got, err := Import(data, "")
	require.NoError(t, err)
	require.Len(t, got.Tasks, 1)
	assert.Equal(t, "Finish lab", got.Tasks[0].Description)
}

func TestExportImport_ZipEncryptedRoundTrip(t *testing.T) {
	data, err := ExportZip(sampleSnapshot(t), exportDate, "secret")
	require.NoError(t, err)

	_, err = Import(data, "")
	assert.ErrorIs(t, err, ErrPasswordRequired)

	got, err := Import(data, "secret")
	require.NoError(t, err)
	assert.Len(t, got.Subjects, 1)
}

func TestImport_RejectsGarbage(t *testing.T) {
	_, err := Import([]byte("definitely not json"), "")
	assert.ErrorIs(t, err, ErrInvalidJSON)

	// Valid JSON but not an export envelope.
	_, err = Import([]byte(`{"foo": "bar"}`), "")
	assert.ErrorIs(t, err, ErrInvalidJSON)
}

func TestImport_EmptyEnvelope(t *testing.T) {
	data, err := ExportJSON(&Snapshot{}, exportDate, "")
	require.NoError(t, err)

	_, err = Import(data, "")
	assert.ErrorIs(t, err, ErrNoRecognizableData)
}

func TestCollectAndRestoreSnapshot(t *testing.T) {
	ctx := context.Background()
	source := persistence.NewStores(memory.NewStore())

	require.NoError(t, source.Subjects.Save(ctx, &subject.Subject{ID: "s-1", Name: "Math"}))
	require.NoError(t, source.Tasks.Save(ctx, &task.StudyTask{
		ID: "t-1", SubjectID: "s-1", Description: "Finish lab",
		TargetDate: exportDate, Status: task.StatusPending, CreatedAt: exportDate,
	}))

	snap, err := CollectSnapshot(ctx, source)
	require.NoError(t, err)
	assert.Nil(t, snap.Profile, "missing profile is not an error")

	target := persistence.NewStores(memory.NewStore())
	require.NoError(t, RestoreSnapshot(ctx, target, snap))

	subjects, err := target.Subjects.List(ctx)
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	assert.Equal(t, "Math", subjects[0].Name)

	tasks, err := target.Tasks.List(ctx)
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}
