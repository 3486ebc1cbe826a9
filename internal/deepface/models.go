package deepface

// analyzeRequest is the body for POST /analyze on a deepface-serve
// instance. The image travels base64-encoded.
type analyzeRequest struct {
	Img              string   `json:"img"`
	Actions          []string `json:"actions"`
	DetectorBackend  string   `json:"detector_backend"`
	EnforceDetection bool     `json:"enforce_detection"`
}

// analyzeResult is one detected face. Only the emotion map matters here;
// region and face_confidence are kept for log context.
type analyzeResult struct {
	Emotion         map[string]float64 `json:"emotion"`
	DominantEmotion string             `json:"dominant_emotion"`
	Region          facialArea         `json:"region"`
	FaceConfidence  float64            `json:"face_confidence"`
}

type facialArea struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// errorResponse is the backend's failure body.
type errorResponse struct {
	Error string `json:"error"`
}
