package remote

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path"
	"strings"

	"docflow/internal/domain"
	"docflow/internal/port"
)

// Digitizer uploads stored documents to the remote platform for OCR.
type Digitizer struct {
	client  *Client
	storage port.ObjectStorage
	bucket  string
}

// NewDigitizer creates a Digitizer reading document bytes from bucket.
func NewDigitizer(client *Client, storage port.ObjectStorage, bucket string) *Digitizer {
	return &Digitizer{client: client, storage: storage, bucket: bucket}
}

// Digitize uploads the object at documentPath and waits for digitization to
// finish, returning the remote document id.
func (d *Digitizer) Digitize(ctx context.Context, documentPath string) (string, error) {
	data, err := d.storage.Download(ctx, d.bucket, documentPath)
	if err != nil {
		return "", fmt.Errorf("downloading %s: %w", documentPath, err)
	}

	body, contentType, err := multipartFile(path.Base(documentPath), data)
	if err != nil {
		return "", err
	}

	projectID := domain.ProjectIDFromContext(ctx)
	var started startResponse
	if err := d.client.do(ctx, http.MethodPost,
		d.client.endpoint(projectID, "digitization", "start"),
		body, contentType, &started); err != nil {
		return "", fmt.Errorf("starting digitization: %w", err)
	}
	if started.DocumentID == "" {
		return "", fmt.Errorf("digitization start returned no documentId")
	}

	if _, err := d.client.poll(ctx, "digitization", started.DocumentID,
		d.client.endpoint(projectID, "digitization", "result", started.DocumentID)); err != nil {
		return "", err
	}
	return started.DocumentID, nil
}

func multipartFile(filename string, data []byte) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="File"; filename=%q`, filename))
	header.Set("Content-Type", contentTypeFor(filename))
	part, err := w.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("creating multipart part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("writing multipart body: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("closing multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func contentTypeFor(filename string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(filename), "."))
	if ft, ok := domain.AllowedExtensions[ext]; ok {
		return domain.AllowedFileTypes[ft]
	}
	return "application/octet-stream"
}
