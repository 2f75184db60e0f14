package counsellor

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/akshay/uni-counsellor/internal/types"
)

// Action markers the model may embed in a chat reply. The payload
// between the brackets is either a JSON object or a bare string.
var actionPatterns = map[types.ActionType]*regexp.Regexp{
	types.ActionShortlist:   regexp.MustCompile(`SHORTLIST_UNIVERSITY\[([^\]]*)\]`),
	types.ActionCreateTask:  regexp.MustCompile(`CREATE_TASK\[([^\]]*)\]`),
	types.ActionUpdateStage: regexp.MustCompile(`UPDATE_STAGE\[([^\]]*)\]`),
}

var actionOrder = []types.ActionType{
	types.ActionShortlist,
	types.ActionCreateTask,
	types.ActionUpdateStage,
}

// parseActions extracts action markers from model output. Payloads that
// parse as JSON objects become structured details; anything else is
// kept under a "value" key so the caller still sees the raw payload.
func parseActions(text string) []types.Action {
	var actions []types.Action
	for _, actionType := range actionOrder {
		for _, match := range actionPatterns[actionType].FindAllStringSubmatch(text, -1) {
			payload := strings.TrimSpace(match[1])
			details := map[string]any{}
			if payload != "" {
				if err := json.Unmarshal([]byte(payload), &details); err != nil {
					details = map[string]any{"value": payload}
				}
			}
			actions = append(actions, types.Action{Type: actionType, Details: details})
		}
	}
	return actions
}

// cleanResponse strips action markers from the visible reply.
func cleanResponse(text string) string {
	for _, pattern := range actionPatterns {
		text = pattern.ReplaceAllString(text, "")
	}
	return strings.TrimSpace(text)
}
