package editor

// Transaction batches document edits so that multi-node changes apply as
// one atomic operation: a single normalization pass, no intermediate
// states observable by renderers.
type Transaction struct {
	doc *Document
	ops []func(*Document)
}

// Begin starts a new transaction on the document.
func (d *Document) Begin() *Transaction {
	return &Transaction{doc: d}
}

// AddMark queues attaching a mark over a structural range.
func (t *Transaction) AddMark(from, to int, mark Mark) *Transaction {
	t.ops = append(t.ops, func(d *Document) {
		d.addMark(from, to, mark)
	})
	return t
}

// RemoveMarkWhere queues stripping every mark satisfying the predicate.
func (t *Transaction) RemoveMarkWhere(pred func(Mark) bool) *Transaction {
	t.ops = append(t.ops, func(d *Document) {
		d.removeMarkWhere(pred)
	})
	return t
}

// SetSelection queues a selection change.
func (t *Transaction) SetSelection(from, to int) *Transaction {
	t.ops = append(t.ops, func(d *Document) {
		d.SetSelection(from, to)
	})
	return t
}

// Commit applies all queued edits and normalizes the document once.
// Returns the number of applied operations.
func (t *Transaction) Commit() int {
	for _, op := range t.ops {
		op(t.doc)
	}
	t.doc.normalize()
	applied := len(t.ops)
	t.ops = nil
	return applied
}
