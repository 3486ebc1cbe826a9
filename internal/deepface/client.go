// Package deepface wraps the external face/emotion analysis backend. It
// owns the wire format, the dual-shape result normalization and the
// translation of backend failures into the service error taxonomy, so the
// rest of the service only ever sees domain.EmotionScores or a typed
// error.
package deepface

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/Ectechz/face-emotion/internal/config"
	"github.com/Ectechz/face-emotion/internal/domain"
)

// noFaceMarker is the substring the backend puts in its error message when
// face localization fails with enforce_detection on.
const noFaceMarker = "Face could not be detected"

type Client struct {
	baseURL    string
	detector   string
	httpClient *http.Client
	log        *zap.Logger
}

func NewClient(cfg *config.DeepFaceConfig, log *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		detector:   cfg.Detector,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

// Analyze runs emotion classification on the image at the given path.
// Detection is enforced: the backend must locate a face, there is no
// whole-image fallback. A failed analysis is terminal for the request;
// the client never retries.
func (c *Client) Analyze(ctx context.Context, imagePath string) (domain.EmotionScores, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, &domain.BackendError{Err: fmt.Errorf("reading image %s: %w", imagePath, err)}
	}

	body, err := json.Marshal(analyzeRequest{
		Img:              base64.StdEncoding.EncodeToString(data),
		Actions:          []string{"emotion"},
		DetectorBackend:  c.detector,
		EnforceDetection: true,
	})
	if err != nil {
		return nil, &domain.BackendError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, &domain.BackendError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.BackendError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.BackendError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, c.translateFailure(resp.StatusCode, respBody)
	}

	result, err := decodeResult(respBody)
	if err != nil {
		return nil, &domain.BackendError{Err: err}
	}

	c.log.Info("Face analyzed",
		zap.String("dominant_emotion", result.DominantEmotion),
		zap.Float64("face_confidence", result.FaceConfidence))

	return domain.EmotionScores(result.Emotion), nil
}

// translateFailure maps backend error responses onto the service taxonomy:
// a 4xx mentioning failed face detection is ErrNoFaceDetected, any other
// 4xx passes the backend's message through as invalid input, and
// everything else stays opaque.
func (c *Client) translateFailure(status int, body []byte) error {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err != nil || er.Error == "" {
		return &domain.BackendError{Err: fmt.Errorf("backend returned status %d: %s", status, body)}
	}

	if status >= 400 && status < 500 {
		if strings.Contains(er.Error, noFaceMarker) {
			return domain.ErrNoFaceDetected
		}
		return &domain.InvalidInputError{Message: er.Error}
	}

	return &domain.BackendError{Err: fmt.Errorf("backend returned status %d: %s", status, er.Error)}
}

// decodeResult normalizes the backend's dual return shape: results may be
// a single object or a sequence containing one. The first element wins.
func decodeResult(body []byte) (*analyzeResult, error) {
	var envelope struct {
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("decoding backend response: %w", err)
	}

	raw := bytes.TrimSpace(envelope.Results)
	if len(raw) == 0 {
		return nil, fmt.Errorf("backend response has no results")
	}

	if raw[0] == '[' {
		var results []analyzeResult
		if err := json.Unmarshal(raw, &results); err != nil {
			return nil, fmt.Errorf("decoding backend results: %w", err)
		}
		if len(results) == 0 {
			return nil, fmt.Errorf("backend returned an empty result list")
		}
		return &results[0], nil
	}

	var result analyzeResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decoding backend result: %w", err)
	}
	return &result, nil
}
