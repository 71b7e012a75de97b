package models

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"
)

// Multipart part names expected by the user API.
const (
	PartData = "data"
	PartFile = "file"
)

// Metadata is the JSON blob carrying every non-binary user field.
// Nil fields are absent and are not sent.
type Metadata struct {
	Name      *string   `json:"name,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Password  *string   `json:"password,omitempty"`
	Role      *string   `json:"role,omitempty"`
	Address   *string   `json:"address,omitempty"`
	Active    *bool     `json:"active,omitempty"`
	Languages *[]string `json:"languages,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Birthdate *Date     `json:"birthdate,omitempty"`
	Gender    *string   `json:"gender,omitempty"`
}

// Upload is an image file selected in a form.
type Upload struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

// Fingerprint identifies the selected file by name and content.
func (u *Upload) Fingerprint() string {
	if u == nil {
		return ""
	}
	h := xxh3.New()
	_, _ = h.WriteString(u.Filename)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write(u.Data)
	return strconv.FormatUint(h.Sum64(), 16)
}

// Payload is the two-part request body sent on create and update:
// a "data" part with the metadata JSON and an optional "file" part.
type Payload struct {
	Metadata Metadata
	File     *Upload
}

// WriteMultipart encodes the payload to w and returns the multipart content type.
func (p Payload) WriteMultipart(w io.Writer) (string, error) {
	mw := multipart.NewWriter(w)

	blob, err := json.Marshal(p.Metadata)
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	if err := mw.WriteField(PartData, string(blob)); err != nil {
		return "", fmt.Errorf("write %s part: %w", PartData, err)
	}

	if p.File != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			PartFile, escapeQuotes(p.File.Filename)))
		contentType := p.File.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := mw.CreatePart(header)
		if err != nil {
			return "", fmt.Errorf("create %s part: %w", PartFile, err)
		}
		if _, err := part.Write(p.File.Data); err != nil {
			return "", fmt.Errorf("write %s part: %w", PartFile, err)
		}
	}

	if err := mw.Close(); err != nil {
		return "", err
	}
	return mw.FormDataContentType(), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
