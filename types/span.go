package types

type HasSpan interface {
	GetSpan() *Span
}

// Span offsets are rune indices into the analyzed document.
type Span struct {
	Begin int
	End   int
	Text  string
}

func (span Span) Len() int {
	return span.End - span.Begin
}

// SpanSortFunction orders spans by begin offset, shorter first on ties.
func SpanSortFunction(spanA *Span, spanB *Span) bool {
	if spanA.Begin == spanB.Begin {
		return spanA.End < spanB.End
	}
	return spanA.Begin < spanB.Begin
}
