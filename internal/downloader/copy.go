package downloader

import (
	"errors"
	"io"
	"net/url"
)

var errNotAbsolute = errors.New("url is not absolute")

// progressWriter reports the running byte count after every write.
type progressWriter struct {
	w        io.Writer
	done     int64
	progress func(done int64)
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n, err := pw.w.Write(p)
	if n > 0 {
		pw.done += int64(n)
		if pw.progress != nil {
			pw.progress(pw.done)
		}
	}
	return n, err
}

func copyWithProgress(dst io.Writer, src io.Reader, progress func(done int64)) (int64, error) {
	pw := &progressWriter{w: dst, progress: progress}
	return io.CopyBuffer(pw, src, make([]byte, 32*1024))
}

func parseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, &url.Error{Op: "parse", URL: raw, Err: errNotAbsolute}
	}
	return u, nil
}
