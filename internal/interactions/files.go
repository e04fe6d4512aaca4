package interactions

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"github.com/bwmarrin/discordgo"
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeMultipart combines a JSON payload and one or more attachments into a
// multipart/form-data body. The payload goes into a payload_json part and
// each attachment into a files[i] part, preserving input order and
// filenames. It returns the content type (with boundary) and the body.
func encodeMultipart(payload interface{}, files []*discordgo.File) (string, []byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="payload_json"`)
	h.Set("Content-Type", "application/json")

	part, err := w.CreatePart(h)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create payload part: %w", err)
	}
	if _, err = part.Write(jsonData); err != nil {
		return "", nil, fmt.Errorf("failed to write payload part: %w", err)
	}

	for i, file := range files {
		fh := make(textproto.MIMEHeader)
		fh.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files[%d]"; filename="%s"`,
			i, quoteEscaper.Replace(file.Name)))
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		fh.Set("Content-Type", contentType)

		part, err = w.CreatePart(fh)
		if err != nil {
			return "", nil, fmt.Errorf("failed to create part for %s: %w", file.Name, err)
		}
		if _, err = io.Copy(part, file.Reader); err != nil {
			return "", nil, fmt.Errorf("failed to write part for %s: %w", file.Name, err)
		}
	}

	if err = w.Close(); err != nil {
		return "", nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	return w.FormDataContentType(), buf.Bytes(), nil
}

// closeFiles releases every attachment whose reader is closeable. It runs on
// every exit path of an operation that carried files, success or failure.
func closeFiles(files []*discordgo.File) {
	for _, file := range files {
		if closer, ok := file.Reader.(io.Closer); ok {
			_ = closer.Close()
		}
	}
}
