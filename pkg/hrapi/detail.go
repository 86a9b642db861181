package hrapi

import (
	"encoding/json"
	"fmt"
	"strings"
)

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

type validationIssue struct {
	Loc []interface{} `json:"loc"`
	Msg string        `json:"msg"`
}

// DecodeDetail extracts the user-facing message from an error body.
// A string detail is returned verbatim; a list of validation issues is
// flattened into "field: message; ..."; anything else yields "".
func DecodeDetail(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(body.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var issues []validationIssue
	if err := json.Unmarshal(body.Detail, &issues); err != nil {
		return ""
	}
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		msg := strings.TrimSpace(issue.Msg)
		if msg == "" {
			continue
		}
		if field := issueField(issue.Loc); field != "" {
			msg = field + ": " + msg
		}
		parts = append(parts, msg)
	}
	return strings.Join(parts, "; ")
}

// issueField picks the last location segment, skipping the "body"/"query" prefix.
func issueField(loc []interface{}) string {
	if len(loc) < 2 {
		return ""
	}
	return fmt.Sprint(loc[len(loc)-1])
}
