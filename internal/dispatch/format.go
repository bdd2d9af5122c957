package dispatch

import (
	"encoding/json"
	"fmt"
)

// formatResult renders one remote call outcome as a single line.
func formatResult(payload any, err error) string {
	if err != nil {
		return "error: " + err.Error()
	}
	if payload == nil {
		return "ok"
	}
	body, mErr := json.Marshal(payload)
	if mErr != nil {
		return fmt.Sprint(payload)
	}
	return string(body)
}
