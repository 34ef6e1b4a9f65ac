package dispatch

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"postkutsche/internal/config"
	"postkutsche/internal/domain/archive"
	"postkutsche/internal/domain/letter"
	"postkutsche/internal/notify"
	"postkutsche/internal/ob24"
)

type MockMailClient struct {
	mock.Mock
}

func (m *MockMailClient) Submit(ctx context.Context, creds ob24.Credentials, path string, opts ob24.SubmitOptions) error {
	args := m.Called(ctx, creds, path, opts)
	return args.Error(0)
}

type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Reconcile(ctx context.Context, uploadFolder string) ([]*letter.PendingFile, error) {
	args := m.Called(ctx, uploadFolder)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*letter.PendingFile), args.Error(1)
}

type MockPendingRepo struct {
	mock.Mock
}

func (m *MockPendingRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockArchiveRepo struct {
	mock.Mock
}

func (m *MockArchiveRepo) Append(ctx context.Context, a *archive.ArchivedFile) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

type recordingEmitter struct {
	events []string
}

func (r *recordingEmitter) Broadcast(eventType string) {
	r.events = append(r.events, eventType)
}

func testStore(t *testing.T, uploadFolder string, withCreds bool) *config.Store {
	t.Helper()
	store, err := config.NewStore(filepath.Join(t.TempDir(), "postkutsche.toml"))
	require.NoError(t, err)

	cfg := store.Snapshot()
	cfg.Paths.UploadFolder = uploadFolder
	cfg.Paths.ArchiveFolder = ""
	if withCreds {
		cfg.OnlineBrief24.Username = "alice"
		cfg.OnlineBrief24.Password = "secret"
	}
	require.NoError(t, store.Update(cfg))
	return store
}

func pendingFixture(t *testing.T, uploadFolder, name string, id int64) *letter.PendingFile {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(uploadFolder, name), []byte("%PDF-1.4 "+name), 0o600))
	p := letter.NewPendingFile("111", name)
	p.ID = id
	return p
}

func TestSendAllSuccess(t *testing.T) {
	uploadFolder := t.TempDir()
	files := []*letter.PendingFile{
		pendingFixture(t, uploadFolder, "a.pdf", 1),
		pendingFixture(t, uploadFolder, "b.pdf", 2),
		pendingFixture(t, uploadFolder, "c.pdf", 3),
	}

	reconciler := new(MockReconciler)
	reconciler.On("Reconcile", mock.Anything, uploadFolder).Return(files, nil)

	mail := new(MockMailClient)
	mail.On("Submit", mock.Anything, ob24.Credentials{Username: "alice", Password: "secret"}, mock.Anything, mock.Anything).Return(nil)

	pending := new(MockPendingRepo)
	pending.On("Delete", mock.Anything, mock.Anything).Return(nil)

	archiveRepo := new(MockArchiveRepo)
	archiveRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	emitter := &recordingEmitter{}
	service := NewService(reconciler, pending, archiveRepo, mail, notify.NewLog(), emitter, testStore(t, uploadFolder, true))

	sent, err := service.SendAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, sent)
	mail.AssertNumberOfCalls(t, "Submit", 3)
	archiveRepo.AssertNumberOfCalls(t, "Append", 3)
	pending.AssertNumberOfCalls(t, "Delete", 3)
	assert.Equal(t, []string{"reload_pdf_files"}, emitter.events)

	// All files moved into <upload>/archive.
	for _, name := range []string{"a.pdf", "b.pdf", "c.pdf"} {
		assert.NoFileExists(t, filepath.Join(uploadFolder, name))
		assert.FileExists(t, filepath.Join(uploadFolder, "archive", name))
	}
}

func TestSendAllFailFastOnSecondFile(t *testing.T) {
	uploadFolder := t.TempDir()
	files := []*letter.PendingFile{
		pendingFixture(t, uploadFolder, "a.pdf", 1),
		pendingFixture(t, uploadFolder, "b.pdf", 2),
		pendingFixture(t, uploadFolder, "c.pdf", 3),
	}

	reconciler := new(MockReconciler)
	reconciler.On("Reconcile", mock.Anything, uploadFolder).Return(files, nil)

	mail := new(MockMailClient)
	mail.On("Submit", mock.Anything, mock.Anything, filepath.Join(uploadFolder, "a.pdf"), mock.Anything).Return(nil)
	mail.On("Submit", mock.Anything, mock.Anything, filepath.Join(uploadFolder, "b.pdf"), mock.Anything).Return(errors.New("service rejected letter"))

	pending := new(MockPendingRepo)
	pending.On("Delete", mock.Anything, int64(1)).Return(nil)

	archiveRepo := new(MockArchiveRepo)
	archiveRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	emitter := &recordingEmitter{}
	service := NewService(reconciler, pending, archiveRepo, mail, notify.NewLog(), emitter, testStore(t, uploadFolder, true))

	sent, err := service.SendAll(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "b.pdf")
	assert.Equal(t, 1, sent)

	// First file archived, rest untouched.
	assert.FileExists(t, filepath.Join(uploadFolder, "archive", "a.pdf"))
	assert.NoFileExists(t, filepath.Join(uploadFolder, "a.pdf"))
	assert.FileExists(t, filepath.Join(uploadFolder, "b.pdf"))
	assert.FileExists(t, filepath.Join(uploadFolder, "c.pdf"))

	// Third file was never attempted.
	mail.AssertNumberOfCalls(t, "Submit", 2)
	archiveRepo.AssertNumberOfCalls(t, "Append", 1)
	pending.AssertNumberOfCalls(t, "Delete", 1)
	assert.Empty(t, emitter.events)
}

func TestSendAllMissingCredentials(t *testing.T) {
	uploadFolder := t.TempDir()

	reconciler := new(MockReconciler)
	mail := new(MockMailClient)
	pending := new(MockPendingRepo)
	archiveRepo := new(MockArchiveRepo)

	service := NewService(reconciler, pending, archiveRepo, mail, notify.NewLog(), &recordingEmitter{}, testStore(t, uploadFolder, false))

	sent, err := service.SendAll(context.Background())

	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Zero(t, sent)
	reconciler.AssertNotCalled(t, "Reconcile", mock.Anything, mock.Anything)
	mail.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendAllNoPendingFiles(t *testing.T) {
	uploadFolder := t.TempDir()

	reconciler := new(MockReconciler)
	reconciler.On("Reconcile", mock.Anything, uploadFolder).Return([]*letter.PendingFile{}, nil)

	mail := new(MockMailClient)
	service := NewService(reconciler, new(MockPendingRepo), new(MockArchiveRepo), mail, notify.NewLog(), &recordingEmitter{}, testStore(t, uploadFolder, true))

	sent, err := service.SendAll(context.Background())

	assert.ErrorIs(t, err, ErrNoPendingFiles)
	assert.Zero(t, sent)
	mail.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSendAllUsesConfiguredArchiveFolder(t *testing.T) {
	uploadFolder := t.TempDir()
	archiveFolder := filepath.Join(t.TempDir(), "abgelegt")
	files := []*letter.PendingFile{pendingFixture(t, uploadFolder, "a.pdf", 1)}

	store := testStore(t, uploadFolder, true)
	cfg := store.Snapshot()
	cfg.Paths.ArchiveFolder = archiveFolder
	require.NoError(t, store.Update(cfg))

	reconciler := new(MockReconciler)
	reconciler.On("Reconcile", mock.Anything, uploadFolder).Return(files, nil)

	mail := new(MockMailClient)
	mail.On("Submit", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	pending := new(MockPendingRepo)
	pending.On("Delete", mock.Anything, int64(1)).Return(nil)

	archiveRepo := new(MockArchiveRepo)
	archiveRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	service := NewService(reconciler, pending, archiveRepo, mail, notify.NewLog(), &recordingEmitter{}, store)

	sent, err := service.SendAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.FileExists(t, filepath.Join(archiveFolder, "a.pdf"))
}

func TestSendAllSubmitsStoredOptions(t *testing.T) {
	uploadFolder := t.TempDir()
	p := pendingFixture(t, uploadFolder, "a.pdf", 1)
	p.Color = false
	p.Envelope = "c4"
	p.Registered = optionNull("standard")

	reconciler := new(MockReconciler)
	reconciler.On("Reconcile", mock.Anything, uploadFolder).Return([]*letter.PendingFile{p}, nil)

	mail := new(MockMailClient)
	mail.On("Submit", mock.Anything, mock.Anything, mock.Anything, mock.MatchedBy(func(opts ob24.SubmitOptions) bool {
		return !opts.Color && opts.Duplex && opts.Envelope == "c4" &&
			opts.Registered.Valid && opts.Registered.String == "standard" &&
			!opts.PaymentSlip.Valid
	})).Return(nil)

	pending := new(MockPendingRepo)
	pending.On("Delete", mock.Anything, int64(1)).Return(nil)

	archiveRepo := new(MockArchiveRepo)
	archiveRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

	service := NewService(reconciler, pending, archiveRepo, mail, notify.NewLog(), &recordingEmitter{}, testStore(t, uploadFolder, true))

	_, err := service.SendAll(context.Background())
	require.NoError(t, err)
	mail.AssertExpectations(t)
}

func optionNull(v string) sql.NullString {
	return sql.NullString{String: v, Valid: true}
}
