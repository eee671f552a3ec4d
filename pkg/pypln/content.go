package pypln

import (
	"bytes"
	"io"
)

// defaultFilename is used for content uploaded without a name, matching the
// name of the multipart field.
const defaultFilename = "blob"

// Content is one document to upload.
//
// Content built by Bytes, String or File keeps its data in memory and can
// be uploaded any number of times, e.g. retried from an UploadFailure.
// Content built by Reader, or with Body set directly, is read once: a second
// upload of the same value sends whatever is left in the reader.
type Content struct {
	// Filename is sent as the multipart file name. Defaults to "blob".
	Filename string

	Body io.Reader

	data []byte
}

// Bytes uploads b with the default filename.
func Bytes(b []byte) Content {
	return Content{data: b}
}

// String uploads s with the default filename.
func String(s string) Content {
	return Content{data: []byte(s)}
}

// File uploads b under name.
func File(name string, b []byte) Content {
	return Content{Filename: name, data: b}
}

// Reader uploads everything read from r under name.
func Reader(name string, r io.Reader) Content {
	return Content{Filename: name, Body: r}
}

// reader returns a fresh reader over in-memory data, or Body.
func (c Content) reader() io.Reader {
	if c.data != nil {
		return bytes.NewReader(c.data)
	}
	return c.Body
}

func (c Content) filename() string {
	if c.Filename == "" {
		return defaultFilename
	}
	return c.Filename
}

// String returns the filename, for logs and error reports.
func (c Content) String() string {
	return c.filename()
}
