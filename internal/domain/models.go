package domain

// FetchStage identifies which of the two price calls an outcome belongs to
type FetchStage string

const (
	StagePrediction FetchStage = "prediction"
	StagePresent    FetchStage = "present"
)

// Selection is one user pick of a crop, identified by a token that is
// unique per pick so late responses can be told apart from current ones
type Selection struct {
	CropID string
	Token  string
}

// PredictParams are the contextual inputs sent with a prediction request
type PredictParams struct {
	Year     int
	Month    int
	Rainfall float64
	Yields   float64
}
