package validator_test

import (
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/shared/failure"
	"folio/shared/validator"
)

type testimonialPayload struct {
	Name   string `json:"name"   validate:"required,max=10"`
	Email  string `json:"email"  validate:"omitempty,email"`
	Rating int    `json:"rating" validate:"min=1,max=5"`
	Color  string `json:"color"  validate:"omitempty,hexcolor"`
	Role   string `json:"role"   validate:"omitempty,oneof=admin user"`
}

type uploadPayload struct {
	File *multipart.FileHeader `validate:"required,mimetypes=image/* application/pdf,maxfilesize=1"`
}

func fileHeader(contentType string, size int64) *multipart.FileHeader {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Type", contentType)

	return &multipart.FileHeader{Filename: "upload", Header: header, Size: size}
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		data    testimonialPayload
		wantMsg string
	}{
		{
			name: "valid payload",
			data: testimonialPayload{Name: "Ana", Email: "ana@example.com", Rating: 5, Color: "#aabbcc", Role: "user"},
		},
		{
			name:    "missing name",
			data:    testimonialPayload{Rating: 3},
			wantMsg: "Name is required",
		},
		{
			name:    "rating out of range",
			data:    testimonialPayload{Name: "Ana", Rating: 6},
			wantMsg: "Rating must be less than or equal to 5",
		},
		{
			name:    "invalid email",
			data:    testimonialPayload{Name: "Ana", Rating: 4, Email: "ana"},
			wantMsg: "Email must be a valid email address",
		},
		{
			name:    "invalid colour",
			data:    testimonialPayload{Name: "Ana", Rating: 4, Color: "blue"},
			wantMsg: "Color must be a hex colour such as #aabbcc",
		},
		{
			name:    "invalid role",
			data:    testimonialPayload{Name: "Ana", Rating: 4, Role: "owner"},
			wantMsg: "Role must be one of admin user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
			assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantErr  bool
		wantName string
	}{
		{
			name:     "valid body",
			body:     `{"name":"Ana","rating":4}`,
			wantName: "Ana",
		},
		{
			name:    "fails validation",
			body:    `{"name":"Ana","rating":0}`,
			wantErr: true,
		},
		{
			name:    "malformed body",
			body:    `{"name":`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data testimonialPayload

			err := validator.Validate(strings.NewReader(tt.body), &data)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantName, data.Name)
		})
	}
}

func TestValidateVar(t *testing.T) {
	tests := []struct {
		name    string
		field   any
		tag     string
		wantErr bool
	}{
		{name: "image wildcard", field: "image/webp", tag: "mimetypes=image/*"},
		{name: "image wildcard with parameters", field: "Image/JPEG; charset=binary", tag: "mimetypes=image/*"},
		{name: "text is not an image", field: "text/plain", tag: "mimetypes=image/*", wantErr: true},
		{name: "wildcard needs a full type", field: "imagex/png", tag: "mimetypes=image/*", wantErr: true},
		{name: "empty content type", field: "", tag: "mimetypes=image/*", wantErr: true},
		{name: "exact type list", field: "image/png", tag: "mimetypes=image/png image/jpeg"},
		{name: "exact type list miss", field: "image/gif", tag: "mimetypes=image/png image/jpeg", wantErr: true},
		{name: "size at the limit", field: int64(10 << 20), tag: "maxfilesize=10"},
		{name: "size over the limit", field: int64(10<<20 + 1), tag: "maxfilesize=10", wantErr: true},
		{name: "size as int", field: 512, tag: "maxfilesize=1"},
		{name: "unsupported size type", field: "large", tag: "maxfilesize=1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateVar(tt.field, tt.tag)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateStruct_FileHeader(t *testing.T) {
	tests := []struct {
		name    string
		file    *multipart.FileHeader
		wantMsg string
	}{
		{name: "image part", file: fileHeader("image/jpeg", 1024)},
		{name: "listed exact type", file: fileHeader("application/pdf", 1024)},
		{name: "wrong type", file: fileHeader("text/plain", 10), wantMsg: "file type must be one of image/* application/pdf"},
		{name: "too large", file: fileHeader("image/png", 2<<20), wantMsg: "file exceeds maximum size of 1MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&uploadPayload{File: tt.file})

			if tt.wantMsg == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestImageFile(t *testing.T) {
	assert.NoError(t, validator.ImageFile("image/jpeg", 2<<20, 10))
	assert.EqualError(t, validator.ImageFile("text/plain", 10, 10), "file type must be one of image/*")
	assert.EqualError(t, validator.ImageFile("image/jpeg", 15<<20, 10), "file exceeds maximum size of 10MB")
}
