package otel_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"

	"folio/infras/otel"
)

type state int

func (state) String() string { return "uploading" }

func TestAttribute(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  attribute.KeyValue
	}{
		{name: "bool", key: "image.is_featured", value: true, want: attribute.Bool("image.is_featured", true)},
		{name: "string", key: "image.id", value: "img-1", want: attribute.String("image.id", "img-1")},
		{name: "int", key: "batch.size", value: 3, want: attribute.Int("batch.size", 3)},
		{name: "int64", key: "image.bytes", value: int64(2048), want: attribute.Int64("image.bytes", 2048)},
		{name: "float", key: "ratio", value: 1.5, want: attribute.Float64("ratio", 1.5)},
		{name: "strings", key: "image.tags", value: []string{"a", "b"}, want: attribute.StringSlice("image.tags", []string{"a", "b"})},
		{
			name:  "time",
			key:   "event.at",
			value: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
			want:  attribute.String("event.at", "2024-01-02T03:04:05Z"),
		},
		{name: "duration", key: "upload.elapsed", value: 1500 * time.Millisecond, want: attribute.Int64("upload.elapsed.ms", 1500)},
		{name: "stringer", key: "uploader.state", value: state(0), want: attribute.String("uploader.state", "uploading")},
		{name: "fallback", key: "other", value: struct{ A int }{1}, want: attribute.String("other", "{1}")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, otel.Attribute(tt.key, tt.value))
		})
	}
}
