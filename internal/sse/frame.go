package sse

import "encoding/json"

// dataPrefix marks an SSE payload line.
const dataPrefix = "data:"

// doneSentinel marks normal upstream termination. It is filtered out of
// processing; the read loop still runs until transport EOF.
const doneSentinel = "[DONE]"

// completionChunk is the chat-completion delta frame shape. Only the
// fields the reassembler needs are declared; everything else in the frame
// is ignored.
type completionChunk struct {
	Choices []completionChoice `json:"choices"`
}

// completionChoice carries one streamed choice of a completion frame.
type completionChoice struct {
	Delta        completionDelta `json:"delta"`
	FinishReason *string         `json:"finish_reason"`
}

// completionDelta is the incremental content fragment of one frame.
type completionDelta struct {
	Content string `json:"content"`
}

// upstreamError is the bare JSON object the backend emits when the
// upstream call fails, either in place of SSE frames or after some have
// already been delivered.
type upstreamError struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// parseUpstreamError attempts to decode a raw payload as a backend error
// object. Returns false when the payload is not one.
func parseUpstreamError(payload []byte) (upstreamError, bool) {
	var ue upstreamError
	if err := json.Unmarshal(payload, &ue); err != nil {
		return upstreamError{}, false
	}
	return ue, ue.Error != ""
}
