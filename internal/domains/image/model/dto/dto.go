package dto

import (
	"bytes"
	"folio/internal/domains/image/model"
	"folio/shared"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/pkg/errors"
)

// UploadFile is one file of an upload batch. Open is called at most once, after the declared
// type and size checks pass.
type UploadFile struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

var errPayloadDiscarded = errors.New("payload was not kept")

// FromPart consumes one file part of a streamed form. Only parts declared as images and no larger
// than maxSize are kept in memory; the rest are drained so the next part can be read. Size is what
// the client sent either way.
func (f *UploadFile) FromPart(part *multipart.Part, maxSize int64) error {
	f.Filename = part.FileName()
	f.ContentType = part.Header.Get(constant.RequestHeaderContentType)
	f.Size = 0

	var kept []byte

	if strings.HasPrefix(f.ContentType, constant.ContentTypeImagePrefix) {
		data, err := io.ReadAll(io.LimitReader(part, maxSize+1))
		if err != nil {
			return errors.Wrapf(err, "read file %q", f.Filename)
		}

		f.Size = int64(len(data))
		if f.Size <= maxSize {
			kept = data
		}
	}

	rest, err := io.Copy(io.Discard, part)
	if err != nil {
		return errors.Wrapf(err, "drain file %q", f.Filename)
	}

	f.Size += rest
	f.Open = func() (io.ReadCloser, error) {
		if kept == nil {
			return nil, errPayloadDiscarded
		}

		return io.NopCloser(bytes.NewReader(kept)), nil
	}

	return nil
}

type UploadRequest struct {
	Files      []UploadFile
	AlbumID    *string
	IsFeatured bool
	IsActive   bool
}

type UploadedImage struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	IsFeatured bool   `json:"is_featured"`
	Order      int    `json:"order"`
}

// UploadResult is the outcome for a single file: Image is set on success, Filename and Error on failure.
type UploadResult struct {
	Success  bool           `json:"success"`
	Image    *UploadedImage `json:"image,omitempty"`
	Filename string         `json:"filename,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type UploadResponse struct {
	Message string         `json:"message"`
	Results []UploadResult `json:"results"`
}

func (r *UploadResponse) Succeeded() int {
	count := 0

	for _, result := range r.Results {
		if result.Success {
			count++
		}
	}

	return count
}

type AlbumSummary struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Category *string `json:"category,omitempty"`
}

type ImageResponse struct {
	ID          string        `json:"id"`
	Title       *string       `json:"title"`
	Description *string       `json:"description"`
	URL         string        `json:"url"`
	StorageID   *string       `json:"storage_id,omitempty"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Size        int64         `json:"size"`
	Format      string        `json:"format"`
	IsActive    bool          `json:"is_active"`
	IsFeatured  bool          `json:"is_featured"`
	Order       int           `json:"order"`
	Tags        []string      `json:"tags"`
	AlbumID     *string       `json:"album_id"`
	Album       *AlbumSummary `json:"album,omitempty"`
	gDto.Metadata
}

func (r *ImageResponse) FromModel(image model.Image) {
	r.ID = image.ID
	r.Title = image.Title
	r.Description = image.Description
	r.URL = image.URL
	r.StorageID = image.StorageID
	r.Width = image.Width
	r.Height = image.Height
	r.Size = image.Size
	r.Format = image.Format
	r.IsActive = image.IsActive
	r.IsFeatured = image.IsFeatured
	r.Order = image.DisplayOrder
	r.AlbumID = image.AlbumID

	r.Tags = []string(image.Tags)
	if r.Tags == nil {
		r.Tags = []string{}
	}

	r.Metadata.FromModel(image.Metadata)
}

func (r *ImageResponse) FromDetail(detail model.ImageDetail) {
	r.FromModel(detail.Image)

	if detail.AlbumID != nil && detail.AlbumTitle != nil {
		r.Album = &AlbumSummary{
			ID:       *detail.AlbumID,
			Title:    *detail.AlbumTitle,
			Category: detail.AlbumCategory,
		}
	}
}

type GetImagesResponse struct {
	Images    []ImageResponse `json:"images"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetImagesResponse) FromDetails(details []model.ImageDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Images = make([]ImageResponse, len(details))
	for i, detail := range details {
		r.Images[i].FromDetail(detail)
	}
}

// UpdateImageRequest carries a partial field set; nil fields are left untouched. An empty
// album_id detaches the image from its album.
type UpdateImageRequest struct {
	Title        *string         `db:"title"         json:"title"         validate:"omitempty,max=255"`
	Description  *string         `db:"description"   json:"description"`
	IsActive     *bool           `db:"is_active"     json:"is_active"`
	IsFeatured   *bool           `db:"is_featured"   json:"is_featured"`
	DisplayOrder *int            `db:"display_order" json:"order"         validate:"omitempty,gte=0"`
	Tags         *pq.StringArray `db:"tags"          json:"tags"`
	AlbumID      *string         `db:"album_id"      json:"album_id"      validate:"omitempty,max=36"`
}

type ReconcileResponse struct {
	Scanned  int `json:"scanned"`
	Orphaned int `json:"orphaned"`
	Deleted  int `json:"deleted"`
	Failed   int `json:"failed"`
}

// Event is published on the image events topic after catalog changes.
type Event struct {
	Type       string    `json:"type"`
	ImageID    string    `json:"image_id,omitempty"`
	StorageID  string    `json:"storage_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
