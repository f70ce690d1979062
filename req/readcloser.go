package req

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// ReaderDummyCloser implements the Close method ontop of an io.Reader
// Used to pass an io.Reader for net/http.Request.Body
type ReaderDummyCloser struct {
	io.Reader
}

// Close implements a meaningless close method for ReaderDummyCloser
func (b ReaderDummyCloser) Close() error {
	return nil
}

// NewJSONBody encodes v as JSON and returns it as a request body along with its
// length. A nil v results in an empty body.
func NewJSONBody(v interface{}) (io.ReadCloser, int64, error) {
	if v == nil {
		return ReaderDummyCloser{bytes.NewReader(nil)}, 0, nil
	}

	buf := bytes.NewBuffer(nil)
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		return nil, 0, fmt.Errorf("failed to encode request body as JSON: %s", err.Error())
	}

	return ReaderDummyCloser{buf}, int64(buf.Len()), nil
}
