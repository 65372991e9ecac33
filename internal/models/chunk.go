package models

// DocumentChunk is a bounded-size contiguous slice of document text
// submitted as one validation unit. Chunks are immutable once created.
type DocumentChunk struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	CharStart int    `json:"char_start"`
	CharEnd   int    `json:"char_end"`
}

// Len returns the length of the chunk text in bytes.
func (c DocumentChunk) Len() int {
	return len(c.Text)
}
