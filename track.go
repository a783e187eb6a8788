package progrich

import (
	"io"
	"iter"
)

// Track drains seq through a progress bar with total expected elements.
// The bar starts on first use and stops when the sequence ends, so a loop
// needs no bookkeeping at all:
//
//	for doc := range progrich.Track(docs, "Indexing", len(ids)) {
//		index(doc)
//	}
func Track[T any](seq iter.Seq[T], desc string, total int, opts ...BarOption) iter.Seq[T] {
	return func(yield func(T) bool) {
		bar := NewProgressBar(desc, float64(total), opts...)
		_ = bar.Start()
		defer func() {
			if !bar.Done() {
				_ = bar.Stop()
			}
		}()
		for v := range seq {
			if !yield(v) {
				return
			}
			_ = bar.Advance(1)
		}
	}
}

// TrackSlice is Track for a slice, with the total taken from its length.
func TrackSlice[S ~[]T, T any](s S, desc string, opts ...BarOption) iter.Seq[T] {
	return Track(func(yield func(T) bool) {
		for _, v := range s {
			if !yield(v) {
				return
			}
		}
	}, desc, len(s), opts...)
}

// TrackN counts from 0 to n-1 through a progress bar.
func TrackN(n int, desc string, opts ...BarOption) iter.Seq[int] {
	return Track(func(yield func(int) bool) {
		for i := 0; i < n; i++ {
			if !yield(i) {
				return
			}
		}
	}, desc, n, opts...)
}

type progressReader struct {
	r   io.Reader
	bar *ProgressBar
}

// NewReader wraps r with a byte-granular progress bar counting toward
// total. Reading to EOF or calling Close finishes the bar; Close also
// closes r when it is an io.Closer.
func NewReader(r io.Reader, total int64, desc string, opts ...BarOption) io.ReadCloser {
	bar := NewProgressBar(desc, float64(total), opts...)
	_ = bar.Start()
	return &progressReader{r: r, bar: bar}
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		_ = pr.bar.Advance(float64(n))
	}
	if err == io.EOF && !pr.bar.Done() {
		_ = pr.bar.Stop()
	}
	return n, err
}

func (pr *progressReader) Close() error {
	if !pr.bar.Done() {
		_ = pr.bar.Stop()
	}
	if c, ok := pr.r.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
