package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Ectechz/face-emotion/internal/domain"
	"github.com/Ectechz/face-emotion/internal/repository"
	"github.com/Ectechz/face-emotion/pkg/utils"
)

// EmotionService orchestrates one analysis request: validate the filename,
// store the bytes as a temporary asset, run the classifier, normalize the
// score. Requests share no state; concurrency safety comes from each
// request owning its own temp asset.
type EmotionService interface {
	AnalyzeEmotion(ctx context.Context, fileBytes []byte, filename string) (*domain.AnalysisResult, error)
}

// FaceAnalyzer is the classifier backend as seen by the orchestrator.
type FaceAnalyzer interface {
	Analyze(ctx context.Context, imagePath string) (domain.EmotionScores, error)
}

type emotionService struct {
	store   repository.TempRepository
	backend FaceAnalyzer
	log     *zap.Logger
}

func NewEmotionService(store repository.TempRepository, backend FaceAnalyzer, log *zap.Logger) EmotionService {
	return &emotionService{
		store:   store,
		backend: backend,
		log:     log,
	}
}

func (s *emotionService) AnalyzeEmotion(ctx context.Context, fileBytes []byte, filename string) (*domain.AnalysisResult, error) {
	if !utils.IsSupportedFormat(filename) {
		s.log.Warn("Unsupported image format", zap.String("filename", filename))
		return nil, domain.ErrUnsupportedFormat
	}

	path, err := s.store.Acquire(fileBytes, filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	// The single release per acquire, on every exit path below.
	defer s.store.Release(path)

	scores, err := s.backend.Analyze(ctx, path)
	if err != nil {
		return nil, err
	}

	emotion, confidence := domain.Dominant(scores)
	if emotion == "" {
		return nil, &domain.BackendError{Err: fmt.Errorf("backend returned no emotion scores")}
	}

	level := domain.LevelFromConfidence(confidence)

	s.log.Info("Detected emotion",
		zap.String("emotion", emotion),
		zap.Float64("confidence", confidence),
		zap.Int("level", level))

	return &domain.AnalysisResult{
		Emotion: emotion,
		Level:   level,
	}, nil
}
