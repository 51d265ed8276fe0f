package simulation

// DefaultQuestionCount is the question count of a fresh simulation.
const DefaultQuestionCount = 10

// Config holds the constraints of a simulation before it starts.
type Config struct {
	N     int      `json:"n"`     // desired number of questions
	Areas []string `json:"areas"` // empty = all areas
}

// DefaultConfig returns ten questions from every area.
func DefaultConfig() Config {
	return Config{
		N:     DefaultQuestionCount,
		Areas: []string{},
	}
}
