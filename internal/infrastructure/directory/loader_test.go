package directory

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/mediverse/backend/internal/domain/events"
	"github.com/mediverse/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(e events.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

func setup(t *testing.T) (string, *Loader, *recordingPublisher) {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "doctor"), 0755))
	pub := &recordingPublisher{}
	return dir, NewLoader(&config.StorageConfig{DataDir: dir}, pub), pub
}

func writeDoctors(t *testing.T, dataDir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "doctor", "doctors.json"), []byte(content), 0644))
}

func TestLoader_Directory(t *testing.T) {
	dataDir, loader, _ := setup(t)
	writeDoctors(t, dataDir, `{"doctors":[{"id":"DOC002","name":"Dr. Michael Chen","specialty":"Cardiologist","rating":4.9,
		"available_slots":[{"date":"2026-10-21","time":"11:00","available":true}]}]}`)

	dir := loader.Directory()
	require.Len(t, dir.Doctors, 1)
	assert.Equal(t, "Cardiologist", dir.Doctors[0].Specialty)
	assert.Equal(t, 4.9, dir.Doctors[0].Rating)

	// 命中缓存：文件变更但未 Reload 时仍返回旧值
	writeDoctors(t, dataDir, `{"doctors":[]}`)
	assert.Len(t, loader.Directory().Doctors, 1)
}

func TestLoader_DirectoryMissingOrBroken(t *testing.T) {
	dataDir, loader, _ := setup(t)
	assert.Empty(t, loader.Directory().Doctors)

	writeDoctors(t, dataDir, "not json")
	fresh := NewLoader(&config.StorageConfig{DataDir: dataDir}, nil)
	assert.Empty(t, fresh.Directory().Doctors)
}

func TestLoader_ReloadPublishesEvent(t *testing.T) {
	dataDir, loader, pub := setup(t)
	writeDoctors(t, dataDir, `{"doctors":[{"name":"A"}]}`)
	require.Len(t, loader.Directory().Doctors, 1)

	writeDoctors(t, dataDir, `{"doctors":[{"name":"A"},{"name":"B"}]}`)
	loader.Reload(filepath.Join(dataDir, "doctor", "doctors.json"))

	assert.Len(t, loader.Directory().Doctors, 2)
	require.Len(t, pub.events, 1)
	evt, ok := pub.events[0].(*events.DirectoryEvent)
	require.True(t, ok)
	assert.Equal(t, 2, evt.DoctorCount)
}

func TestLoader_Credentials(t *testing.T) {
	dataDir, loader, _ := setup(t)

	_, err := loader.Credentials()
	assert.ErrorIs(t, err, ErrCredentialsUnavailable)

	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "creds.json"),
		[]byte(`{"users":[{"id":"P001","name":"John","email":"john@example.com","password":"x","role":"patient"}]}`), 0644))

	creds, err := loader.Credentials()
	require.NoError(t, err)
	require.Len(t, creds.Users, 1)
	assert.Equal(t, "john@example.com", creds.Users[0].Email)

	// 变更后失效
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "creds.json"), []byte(`{"users":[]}`), 0644))
	loader.Reload(filepath.Join(dataDir, "creds.json"))
	creds, err = loader.Credentials()
	require.NoError(t, err)
	assert.Empty(t, creds.Users)
}
