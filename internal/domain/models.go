package domain

import "math"

// EmotionScores maps an emotion label (angry, disgust, fear, happy, sad,
// surprise, neutral) to the classifier's confidence in [0, 100]. Produced
// fresh for every request, never cached.
type EmotionScores map[string]float64

// AnalysisResult is the payload returned to the caller on success.
type AnalysisResult struct {
	Emotion string `json:"emotion"`
	Level   int    `json:"level"`
}

// Dominant returns the label with the highest confidence and that
// confidence. On exact ties the winner is whichever tied label the scan
// reaches first; map iteration order makes this unspecified across runs.
// An empty score set yields ("", 0).
func Dominant(scores EmotionScores) (string, float64) {
	var (
		label      string
		confidence float64
		found      bool
	)
	for name, score := range scores {
		if !found || score > confidence {
			label = name
			confidence = score
			found = true
		}
	}
	return label, confidence
}

// LevelFromConfidence coarsens a confidence in [0, 100] into the 1-10
// intensity scale: round(confidence/10), clamped so near-zero confidences
// still land on level 1.
func LevelFromConfidence(confidence float64) int {
	level := int(math.Round(confidence / 10))
	if level < 1 {
		return 1
	}
	if level > 10 {
		return 10
	}
	return level
}
