package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"audiodrop/internal/ingest"
	"audiodrop/internal/library"
	"audiodrop/internal/logging"
	"audiodrop/internal/metadata"
	"audiodrop/internal/model"
	"audiodrop/internal/player"
	"audiodrop/internal/repository"
	"audiodrop/internal/repository/kv"
	repoMocks "audiodrop/internal/repository/mocks"
	"audiodrop/internal/storage"
)

type upload struct {
	name, ctype string
	data        []byte
	err         error
}

func (u upload) Name() string        { return u.name }
func (u upload) Size() int64         { return int64(len(u.data)) }
func (u upload) ContentType() string { return u.ctype }
func (u upload) Open() (io.ReadCloser, error) {
	if u.err != nil {
		return nil, u.err
	}
	return io.NopCloser(bytes.NewReader(u.data)), nil
}

type fixture struct {
	svc  AudioService
	lib  *library.Library
	repo repository.AudioRepository
}

func newFixture(t *testing.T, exclusive bool) fixture {
	t.Helper()
	s, err := storage.NewFS(afero.NewMemMapFs(), "data")
	require.NoError(t, err)
	repo := kv.New(s, "audioFiles")
	lib, err := library.New(repo, logging.Discard(), prometheus.NewRegistry())
	require.NoError(t, err)
	lib.Load(context.Background())
	in := ingest.New(ingest.Options{}, logging.Discard())
	return fixture{
		svc:  NewAudioService(lib, in, player.NewRegistry(exclusive, lib.Has)),
		lib:  lib,
		repo: repo,
	}
}

func names(records []model.AudioRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name)
	}
	return out
}

func TestAudioService_Upload(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		files        []ingest.File
		wantNames    []string
		wantAccepted int
		wantSkipped  int
		wantErr      error
	}{
		{
			name: "mixed batch",
			files: []ingest.File{
				upload{name: "a.mp3", ctype: "audio/mpeg", data: bytes.Repeat([]byte{1}, 1048576)},
				upload{name: "b.txt", ctype: "text/plain", data: []byte("x")},
			},
			wantNames:    []string{"a.mp3"},
			wantAccepted: 1,
			wantSkipped:  1,
		},
		{
			name:      "no files",
			files:     nil,
			wantNames: []string{},
		},
		{
			name:        "unsupported only",
			files:       []ingest.File{upload{name: "c.wav", ctype: "audio/wav"}},
			wantNames:   []string{},
			wantSkipped: 1,
		},
		{
			name: "read failure adds nothing",
			files: []ingest.File{
				upload{name: "ok.mp3", ctype: "audio/mpeg", data: []byte{1}},
				upload{name: "bad.mp3", ctype: "audio/mpeg", err: errors.New("truncated")},
			},
			wantNames: []string{},
			wantErr:   ingest.ErrReadFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false)

			res, err := f.svc.Upload(ctx, tt.files)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantAccepted, res.Accepted)
				assert.Equal(t, tt.wantSkipped, res.Skipped)
			}
			assert.Equal(t, tt.wantNames, names(f.lib.List()))

			stored, err := f.repo.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNames, names(stored))
		})
	}
}

func TestAudioService_UploadAppendsInOrder(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	_, err := f.svc.Upload(ctx, []ingest.File{upload{name: "1.mp3", ctype: "audio/mpeg", data: []byte{1}}})
	require.NoError(t, err)
	_, err = f.svc.Upload(ctx, []ingest.File{
		upload{name: "2.mp3", ctype: "audio/mpeg", data: []byte{2}},
		upload{name: "3.mp3", ctype: "audio/mpeg", data: []byte{3}},
	})
	require.NoError(t, err)

	res, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, []string{"1.mp3", "2.mp3", "3.mp3"}, names(res.Items))
}

func TestAudioService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	up, err := f.svc.Upload(ctx, []ingest.File{
		upload{name: "a.mp3", ctype: "audio/mpeg", data: []byte{1}},
		upload{name: "b.mp3", ctype: "audio/mpeg", data: []byte{2}},
		upload{name: "c.mp3", ctype: "audio/mpeg", data: []byte{3}},
	})
	require.NoError(t, err)
	idB := up.Items[1].ID

	_, err = f.svc.Toggle(ctx, idB)
	require.NoError(t, err)
	require.Equal(t, player.Playing, f.svc.State(idB))

	require.NoError(t, f.svc.Delete(ctx, idB))
	assert.Equal(t, []string{"a.mp3", "c.mp3"}, names(f.lib.List()))
	assert.Equal(t, player.Paused, f.svc.State(idB))

	// unknown id is a no-op
	require.NoError(t, f.svc.Delete(ctx, "missing"))
	assert.Equal(t, []string{"a.mp3", "c.mp3"}, names(f.lib.List()))

	assert.ErrorIs(t, f.svc.Delete(ctx, ""), ErrIDRequired)
}

func TestAudioService_DeleteUnknownDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	mRepo := new(repoMocks.MockAudioRepository)
	mRepo.On("Load", mock.Anything).Return([]model.AudioRecord{{ID: "a", Name: "a.mp3"}}, nil)
	lib, err := library.New(mRepo, logging.Discard(), nil)
	require.NoError(t, err)
	lib.Load(ctx)
	svc := NewAudioService(lib, ingest.New(ingest.Options{}, logging.Discard()), player.NewRegistry(false, lib.Has))

	require.NoError(t, svc.Delete(ctx, "zzz"))
	mRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAudioService_GetContentTags(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	up, err := f.svc.Upload(ctx, []ingest.File{upload{name: "a.mp3", ctype: "audio/mpeg", data: make([]byte, 300)}})
	require.NoError(t, err)
	id := up.Items[0].ID

	rec, err := f.svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "a.mp3", rec.Name)

	ct, data, err := f.svc.Content(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "audio/mpeg", ct)
	assert.Len(t, data, 300)

	_, err = f.svc.Tags(ctx, id)
	assert.ErrorIs(t, err, metadata.ErrNoTags)

	_, err = f.svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = f.svc.Content(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.svc.Tags(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAudioService_Playback(t *testing.T) {
	ctx := context.Background()

	t.Run("independent rows", func(t *testing.T) {
		f := newFixture(t, false)
		up, err := f.svc.Upload(ctx, []ingest.File{
			upload{name: "a.mp3", ctype: "audio/mpeg", data: []byte{1}},
			upload{name: "b.mp3", ctype: "audio/mpeg", data: []byte{2}},
		})
		require.NoError(t, err)
		a, b := up.Items[0].ID, up.Items[1].ID

		tr, err := f.svc.Toggle(ctx, a)
		require.NoError(t, err)
		assert.Equal(t, player.Playing, tr.State)

		tr, err = f.svc.Toggle(ctx, b)
		require.NoError(t, err)
		assert.Empty(t, tr.Paused)
		assert.Equal(t, player.Playing, f.svc.State(a))

		tr, err = f.svc.Ended(ctx, a)
		require.NoError(t, err)
		assert.Equal(t, player.Paused, tr.State)

		tr, err = f.svc.Toggle(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, player.Paused, tr.State)
	})

	t.Run("exclusive rows", func(t *testing.T) {
		f := newFixture(t, true)
		up, err := f.svc.Upload(ctx, []ingest.File{
			upload{name: "a.mp3", ctype: "audio/mpeg", data: []byte{1}},
			upload{name: "b.mp3", ctype: "audio/mpeg", data: []byte{2}},
		})
		require.NoError(t, err)
		a, b := up.Items[0].ID, up.Items[1].ID

		_, err = f.svc.Toggle(ctx, a)
		require.NoError(t, err)
		tr, err := f.svc.Toggle(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, []string{a}, tr.Paused)
		assert.Equal(t, player.Paused, f.svc.State(a))
	})

	t.Run("unknown record", func(t *testing.T) {
		f := newFixture(t, false)
		_, err := f.svc.Toggle(ctx, "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = f.svc.Ended(ctx, "ghost")
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = f.svc.Toggle(ctx, "")
		assert.ErrorIs(t, err, ErrIDRequired)
		assert.Equal(t, player.Paused, f.svc.State("ghost"))
	})

	t.Run("reset pauses every row", func(t *testing.T) {
		f := newFixture(t, false)
		up, err := f.svc.Upload(ctx, []ingest.File{
			upload{name: "a.mp3", ctype: "audio/mpeg", data: []byte{1}},
			upload{name: "b.mp3", ctype: "audio/mpeg", data: []byte{2}},
		})
		require.NoError(t, err)
		for _, r := range up.Items {
			_, err := f.svc.Toggle(ctx, r.ID)
			require.NoError(t, err)
		}

		f.svc.ResetPlayback()

		for _, r := range up.Items {
			assert.Equal(t, player.Paused, f.svc.State(r.ID))
		}
	})
}

func TestAudioService_DeleteRacingToggle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)
	files := make([]ingest.File, 0, 50)
	for i := 0; i < 50; i++ {
		files = append(files, upload{name: fmt.Sprintf("%d.mp3", i), ctype: "audio/mpeg", data: []byte{byte(i)}})
	}
	up, err := f.svc.Upload(ctx, files)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, r := range up.Items {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = f.svc.Toggle(ctx, r.ID)
		}()
		go func() {
			defer wg.Done()
			_ = f.svc.Delete(ctx, r.ID)
		}()
	}
	wg.Wait()

	assert.Empty(t, f.lib.List())
	for _, r := range up.Items {
		assert.Equal(t, player.Paused, f.svc.State(r.ID), "deleted row %s left playing", r.ID)
	}
}

func TestAudioService_PingAndMIME(t *testing.T) {
	f := newFixture(t, false)
	assert.NoError(t, f.svc.Ping(context.Background()))
	assert.Equal(t, "audio/mpeg", f.svc.AcceptedMIME())

	mRepo := new(repoMocks.MockAudioRepository)
	mRepo.On("Ping", mock.Anything).Return(fmt.Errorf("down"))
	lib, err := library.New(mRepo, logging.Discard(), nil)
	require.NoError(t, err)
	svc := NewAudioService(lib, ingest.New(ingest.Options{}, logging.Discard()), player.NewRegistry(false, lib.Has))
	assert.Error(t, svc.Ping(context.Background()))
}
