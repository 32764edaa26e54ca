package uploader

import (
	"io"
	"sync/atomic"
)

// ProgressFunc receives the number of file bytes handed to the transport so far and the batch total.
type ProgressFunc func(sent, total int64)

type progressReader struct {
	reader   io.Reader
	sent     *atomic.Int64
	total    int64
	progress ProgressFunc
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)
	if n > 0 && p.progress != nil {
		p.progress(p.sent.Add(int64(n)), p.total)
	}

	return n, err
}
