package api

import (
	"bytes"
	"mime/multipart"
	"net/url"
)

// Request describes one pending outbound call: method, path relative to the
// API base, optional query parameters and an optional body. A Request is
// immutable once handed to the client, so a replay after token refresh sends
// exactly the same thing.
type Request struct {
	Method string
	Path   string
	Params url.Values

	// Body is JSON-encoded when non-nil. Mutually exclusive with Form.
	Body any

	// Form is sent as multipart/form-data (registration with avatar).
	Form *Form
}

// Form is a multipart payload: plain fields plus optional file parts.
type Form struct {
	Fields map[string]string
	Files  []FormFile
}

// FormFile is one file part of a multipart form.
type FormFile struct {
	Field   string
	Name    string
	Content []byte
}

// encode renders the form body and returns it with its content type.
// Called per send, so each attempt gets a fresh boundary.
func (f *Form) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range f.Fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}
	for _, file := range f.Files {
		part, err := w.CreateFormFile(file.Field, file.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}
