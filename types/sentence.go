package types

type Sentence struct {
	Span
	Index int
}

func (sent *Sentence) GetSpan() *Span {
	return &sent.Span
}
