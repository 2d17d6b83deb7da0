package summarize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/drpaneas/weekdigest/internal/textutil"
)

// ErrMalformedResponse marks a generative response from which no summary
// payload could be decoded. Callers degrade to fallback text; they never
// see a panic or an ambient exception from this stage.
var ErrMalformedResponse = errors.New("malformed summary response")

// ItemSummary is one entry of the batched summary payload; Index refers to
// the item's position in the prompt.
type ItemSummary struct {
	Index   int    `json:"index"`
	Summary string `json:"summary"`
}

type batchPayload struct {
	Summaries []ItemSummary `json:"summaries"`
}

// ParseBatch extracts the JSON object embedded in a possibly-decorated
// response (markdown fences, surrounding prose) by taking the first '{'
// through the last '}' and decoding it.
func ParseBatch(raw string) ([]ItemSummary, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("%w: no JSON object found in %q",
			ErrMalformedResponse, textutil.Truncate(raw, 200, "..."))
	}
	var payload batchPayload
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return payload.Summaries, nil
}
