package similarity

import "fmt"

// WeightsError represents an invalid weight configuration
type WeightsError struct {
	Message string
}

func (e *WeightsError) Error() string {
	return fmt.Sprintf("invalid similarity weights: %s", e.Message)
}
