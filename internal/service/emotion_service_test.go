package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/Ectechz/face-emotion/internal/domain"
	"github.com/Ectechz/face-emotion/internal/service"
)

// fakeStore records acquire/release calls so tests can assert the
// exactly-once release invariant.
type fakeStore struct {
	acquireErr   error
	acquires     int
	releases     int
	releasedPath string
}

func (f *fakeStore) Acquire(data []byte, originalName string) (string, error) {
	f.acquires++
	if f.acquireErr != nil {
		return "", f.acquireErr
	}
	return fmt.Sprintf("/tmp/fake-%d.jpg", f.acquires), nil
}

func (f *fakeStore) Release(path string) {
	f.releases++
	f.releasedPath = path
}

type fakeBackend struct {
	scores   domain.EmotionScores
	err      error
	called   int
	lastPath string
}

func (f *fakeBackend) Analyze(ctx context.Context, imagePath string) (domain.EmotionScores, error) {
	f.called++
	f.lastPath = imagePath
	if f.err != nil {
		return nil, f.err
	}
	return f.scores, nil
}

func Test_EmotionService_AnalyzeEmotion(t *testing.T) {

	tests := []struct {
		name         string
		filename     string
		store        *fakeStore
		backend      *fakeBackend
		want         *domain.AnalysisResult
		wantErr      error
		wantErrAs    bool // match with errors.As against wantErrTarget kind
		wantAcquires int
		wantReleases int
		wantAnalyze  int
	}{
		{
			name:         "happy path",
			filename:     "photo.JPG",
			store:        &fakeStore{},
			backend:      &fakeBackend{scores: domain.EmotionScores{"happy": 92.3, "sad": 1.1}},
			want:         &domain.AnalysisResult{Emotion: "happy", Level: 9},
			wantAcquires: 1,
			wantReleases: 1,
			wantAnalyze:  1,
		},
		{
			name:         "unsupported extension never acquires",
			filename:     "photo.gif",
			store:        &fakeStore{},
			backend:      &fakeBackend{},
			wantErr:      domain.ErrUnsupportedFormat,
			wantAcquires: 0,
			wantReleases: 0,
			wantAnalyze:  0,
		},
		{
			name:         "storage failure",
			filename:     "photo.png",
			store:        &fakeStore{acquireErr: errors.New("disk full")},
			backend:      &fakeBackend{},
			wantErr:      domain.ErrStorage,
			wantAcquires: 1,
			wantReleases: 0,
			wantAnalyze:  0,
		},
		{
			name:         "no face detected releases asset",
			filename:     "blank.png",
			store:        &fakeStore{},
			backend:      &fakeBackend{err: domain.ErrNoFaceDetected},
			wantErr:      domain.ErrNoFaceDetected,
			wantAcquires: 1,
			wantReleases: 1,
			wantAnalyze:  1,
		},
		{
			name:         "invalid input releases asset",
			filename:     "corrupt.png",
			store:        &fakeStore{},
			backend:      &fakeBackend{err: &domain.InvalidInputError{Message: "Image is corrupt"}},
			wantErrAs:    true,
			wantAcquires: 1,
			wantReleases: 1,
			wantAnalyze:  1,
		},
		{
			name:         "backend failure releases asset",
			filename:     "face.jpeg",
			store:        &fakeStore{},
			backend:      &fakeBackend{err: &domain.BackendError{Err: errors.New("model load failure")}},
			wantErrAs:    true,
			wantAcquires: 1,
			wantReleases: 1,
			wantAnalyze:  1,
		},
		{
			name:         "empty scores become backend failure",
			filename:     "face.bmp",
			store:        &fakeStore{},
			backend:      &fakeBackend{scores: domain.EmotionScores{}},
			wantErrAs:    true,
			wantAcquires: 1,
			wantReleases: 1,
			wantAnalyze:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := service.NewEmotionService(tt.store, tt.backend, zap.NewNop())

			got, err := svc.AnalyzeEmotion(context.Background(), []byte("image bytes"), tt.filename)

			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("AnalyzeEmotion() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErrAs {
				var invalid *domain.InvalidInputError
				var backendErr *domain.BackendError
				if !errors.As(err, &invalid) && !errors.As(err, &backendErr) {
					t.Errorf("AnalyzeEmotion() error = %v, want a typed taxonomy error", err)
				}
			}
			if tt.wantErr == nil && !tt.wantErrAs {
				if err != nil {
					t.Fatalf("AnalyzeEmotion() unexpected error = %v", err)
				}
				if got == nil || *got != *tt.want {
					t.Errorf("AnalyzeEmotion() = %+v, want %+v", got, tt.want)
				}
			}

			if tt.store.acquires != tt.wantAcquires {
				t.Errorf("acquires = %d, want %d", tt.store.acquires, tt.wantAcquires)
			}
			if tt.store.releases != tt.wantReleases {
				t.Errorf("releases = %d, want %d", tt.store.releases, tt.wantReleases)
			}
			if tt.backend.called != tt.wantAnalyze {
				t.Errorf("backend calls = %d, want %d", tt.backend.called, tt.wantAnalyze)
			}
		})
	}
}

func Test_EmotionService_ReleasesAcquiredPath(t *testing.T) {
	store := &fakeStore{}
	backend := &fakeBackend{scores: domain.EmotionScores{"neutral": 70.0}}
	svc := service.NewEmotionService(store, backend, zap.NewNop())

	if _, err := svc.AnalyzeEmotion(context.Background(), []byte("img"), "face.jpg"); err != nil {
		t.Fatalf("AnalyzeEmotion() error = %v", err)
	}

	if store.releasedPath != backend.lastPath {
		t.Errorf("released %q but analyzed %q; the same asset must be released",
			store.releasedPath, backend.lastPath)
	}
}

func Test_EmotionService_TieIsDeterministicWithinARun(t *testing.T) {
	store := &fakeStore{}
	backend := &fakeBackend{scores: domain.EmotionScores{"neutral": 50.0, "sad": 50.0}}
	svc := service.NewEmotionService(store, backend, zap.NewNop())

	got, err := svc.AnalyzeEmotion(context.Background(), []byte("img"), "face.jpg")
	if err != nil {
		t.Fatalf("AnalyzeEmotion() error = %v", err)
	}

	if got.Emotion != "neutral" && got.Emotion != "sad" {
		t.Errorf("emotion = %q, want one of the tied labels", got.Emotion)
	}
	if got.Level != 5 {
		t.Errorf("level = %d, want 5", got.Level)
	}
}
