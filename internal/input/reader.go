package input

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
)

// MaxLineSize bounds a single input line. Longer lines are dropped.
const MaxLineSize = 1 << 20

// Reader is a worker that reads line-delimited commands from a stream and
// queues them for the tick loop.
type Reader struct {
	name string
	r    io.Reader
	q    *Queue
}

func NewReader(name string, r io.Reader, q *Queue) *Reader {
	return &Reader{
		name: name,
		r:    r,
		q:    q,
	}
}

// Start reads until ctx is cancelled. The end of the stream stops reading
// but does not return, so the rest of the app keeps running.
func (r *Reader) Start(ctx context.Context) error {
	lines := make(chan []byte)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		br := bufio.NewReaderSize(r.r, 64*1024)
		for {
			line, tooLong, err := readLine(br)
			if tooLong {
				slog.WarnContext(ctx, "dropping over-long input line", "source", r.name, "limit", MaxLineSize)
			} else if len(line) > 0 {
				select {
				case lines <- line:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) {
					errc <- err
				}
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-errc:
					slog.ErrorContext(ctx, "input stream failed", "source", r.name, "error", err)
				default:
				}
				slog.InfoContext(ctx, "input stream closed", "source", r.name)
				<-ctx.Done()
				return nil
			}
			Ingest(ctx, r.q, line)
		}
	}
}

// readLine returns the next line without its terminator. A line longer than
// MaxLineSize is consumed up to its newline and reported as tooLong with no
// content. err is set when the stream ends or fails after the returned line.
func readLine(br *bufio.Reader) (line []byte, tooLong bool, err error) {
	for {
		chunk, err := br.ReadSlice('\n')
		if !tooLong {
			// Leave room for a CRLF terminator before giving up on the line.
			if len(line)+len(chunk) > MaxLineSize+2 {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}

		line = bytes.TrimRight(line, "\r\n")
		if len(line) > MaxLineSize {
			tooLong = true
			line = nil
		}
		return line, tooLong, err
	}
}
