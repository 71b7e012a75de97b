package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/sbilibin2017/gw-user-admin/internal/models"
)

// Multipart bodies above this size are spooled to disk by net/http.
const formMemory = 1 << 20

// postedFields lists the scalar fields a form post may carry.
var postedFields = []string{
	models.FieldName,
	models.FieldEmail,
	models.FieldPassword,
	models.FieldRole,
	models.FieldAddress,
	models.FieldActive,
	models.FieldPhone,
	models.FieldBirthdate,
	models.FieldGender,
}

// readFormPost extracts the form fields and the optional image file of a post.
// A repeated field keeps its last value, so a checkbox wins over its hidden fallback.
func readFormPost(r *http.Request) (map[string]string, *models.Upload, error) {
	if err := r.ParseMultipartForm(formMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, nil, err
	}

	values := make(map[string]string)
	for _, field := range postedFields {
		if vs, ok := r.PostForm[field]; ok && len(vs) > 0 {
			values[field] = vs[len(vs)-1]
		}
	}

	file, header, err := r.FormFile(models.FieldImage)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return values, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", models.FieldImage, err)
	}
	if header.Filename == "" && len(data) == 0 {
		return values, nil, nil
	}
	return values, &models.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// postStatus maps a body parsing error to a response status.
func postStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
