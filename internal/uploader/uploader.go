// Package uploader is the client side of the image upload endpoint. It keeps a pending batch of
// files, validates them the way the server does, posts them as one multipart request and keeps
// whatever the server refused so the caller can resubmit it.
package uploader

import (
	"context"
	"encoding/json"
	"fmt"
	"folio/internal/domains/image/model/dto"
	"folio/shared/constant"
	"folio/transport/http/response"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	uploadPath = "/v1/images/upload"

	bearerPrefix = "Bearer "
)

var (
	ErrUploading = errors.New("an upload is already in progress")
	ErrNoFiles   = errors.New("no files selected")
)

type State int

const (
	StateIdle State = iota
	StateFilesSelected
	StateUploading
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFilesSelected:
		return "filesSelected"
	case StateUploading:
		return "uploading"
	default:
		return "unknown"
	}
}

// FailedFile is a file the server refused, together with its reason.
type FailedFile struct {
	Name  string
	Error string
}

type Result struct {
	Message   string
	Uploaded  []dto.UploadedImage
	Failed    []FailedFile
	Succeeded int
	Total     int
}

// Uploader is safe for concurrent use, but only one Upload runs at a time.
type Uploader struct {
	baseURL  string
	token    string
	apiKey   string
	client   *http.Client
	maxFiles int
	maxSize  int
	progress ProgressFunc

	mu       sync.Mutex
	state    State
	files    []File
	albumID  string
	featured bool
	active   bool
}

type Option func(*Uploader)

func WithHTTPClient(client *http.Client) Option {
	return func(u *Uploader) {
		u.client = client
	}
}

// WithToken sends the access token as a bearer credential.
func WithToken(token string) Option {
	return func(u *Uploader) {
		u.token = token
	}
}

func WithAPIKey(key string) Option {
	return func(u *Uploader) {
		u.apiKey = key
	}
}

func WithProgress(progress ProgressFunc) Option {
	return func(u *Uploader) {
		u.progress = progress
	}
}

func WithMaxFiles(maxFiles int) Option {
	return func(u *Uploader) {
		if maxFiles > 0 {
			u.maxFiles = maxFiles
		}
	}
}

func WithMaxFileSizeMB(megabytes int) Option {
	return func(u *Uploader) {
		if megabytes > 0 {
			u.maxSize = megabytes
		}
	}
}

func New(baseURL string, opts ...Option) *Uploader {
	u := &Uploader{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		client:   http.DefaultClient,
		maxFiles: constant.DefaultUploadMaxFiles,
		maxSize:  constant.DefaultUploadMaxFileSizeMB,
		state:    StateIdle,
		active:   true,
	}

	for _, opt := range opts {
		opt(u)
	}

	return u
}

func (u *Uploader) State() State {
	u.mu.Lock()
	defer u.mu.Unlock()

	return u.state
}

// Pending returns a copy of the queued files.
func (u *Uploader) Pending() []File {
	u.mu.Lock()
	defer u.mu.Unlock()

	return append([]File(nil), u.files...)
}

// Add queues the files that pass validation. Files beyond the batch limit are dropped without
// being reported.
func (u *Uploader) Add(files ...File) ([]Rejection, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.state == StateUploading {
		return nil, ErrUploading
	}

	var rejections []Rejection

	for _, file := range files {
		if rejection := file.validate(u.maxSize); rejection != nil {
			rejections = append(rejections, *rejection)

			continue
		}

		if len(u.files) >= u.maxFiles {
			continue
		}

		u.files = append(u.files, file)
	}

	u.settle()

	return rejections, nil
}

// Remove drops the pending file at index.
func (u *Uploader) Remove(index int) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.state == StateUploading {
		return ErrUploading
	}

	if index < 0 || index >= len(u.files) {
		return errors.Errorf("no pending file at index %d", index)
	}

	u.files = append(u.files[:index], u.files[index+1:]...)
	u.settle()

	return nil
}

func (u *Uploader) Clear() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.state == StateUploading {
		return ErrUploading
	}

	u.files = nil
	u.settle()

	return nil
}

// SetFeatured applies to the whole batch.
func (u *Uploader) SetFeatured(featured bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.featured = featured
}

// SetActive applies to the whole batch. Batches are active unless told otherwise.
func (u *Uploader) SetActive(active bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.active = active
}

func (u *Uploader) SetAlbum(albumID string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.albumID = strings.TrimSpace(albumID)
}

// Upload posts the pending batch. Files the server accepted leave the queue; refused files stay
// queued. When the request itself fails every file stays queued and the error is returned.
func (u *Uploader) Upload(ctx context.Context) (Result, error) {
	u.mu.Lock()

	if u.state == StateUploading {
		u.mu.Unlock()

		return Result{}, ErrUploading
	}

	if len(u.files) == 0 {
		u.mu.Unlock()

		return Result{}, ErrNoFiles
	}

	u.state = StateUploading
	batch := append([]File(nil), u.files...)
	fields := map[string]string{
		constant.FormIsFeatured: strconv.FormatBool(u.featured),
		constant.FormIsActive:   strconv.FormatBool(u.active),
	}

	if u.albumID != constant.Empty {
		fields[constant.FormAlbumID] = u.albumID
	}

	u.mu.Unlock()

	res, err := u.send(ctx, batch, fields)

	u.mu.Lock()
	defer u.mu.Unlock()

	if err != nil {
		u.settle()

		return Result{}, err
	}

	u.files = retainFailed(batch, res.Results)
	u.settle()

	result := Result{
		Message: res.Message,
		Total:   len(batch),
	}

	for index, item := range res.Results {
		if item.Success {
			result.Succeeded++

			if item.Image != nil {
				result.Uploaded = append(result.Uploaded, *item.Image)
			}

			continue
		}

		name := item.Filename
		if name == constant.Empty && index < len(batch) {
			name = batch[index].Name
		}

		result.Failed = append(result.Failed, FailedFile{Name: name, Error: item.Error})
	}

	log.Debug().Int("succeeded", result.Succeeded).Int("total", result.Total).Msg("upload batch finished")

	return result, nil
}

func (u *Uploader) send(ctx context.Context, batch []File, fields map[string]string) (dto.UploadResponse, error) {
	body, writer := io.Pipe()
	form := multipart.NewWriter(writer)

	var total int64
	for _, file := range batch {
		total += file.Size
	}

	sent := &atomic.Int64{}

	go func() {
		writer.CloseWithError(u.writeForm(form, batch, fields, sent, total))
	}()

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, u.baseURL+uploadPath, body)
	if err != nil {
		body.CloseWithError(err)

		return dto.UploadResponse{}, errors.Wrap(err, "build upload request")
	}

	request.Header.Set(constant.RequestHeaderContentType, form.FormDataContentType())

	if u.token != constant.Empty {
		request.Header.Set(constant.RequestHeaderAuthorization, bearerPrefix+u.token)
	}

	if u.apiKey != constant.Empty {
		request.Header.Set(constant.RequestHeaderAPIKey, u.apiKey)
	}

	resp, err := u.client.Do(request)
	if err != nil {
		return dto.UploadResponse{}, errors.Wrap(err, "send upload request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return dto.UploadResponse{}, decodeError(resp)
	}

	payload := response.Data[dto.UploadResponse]{}
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return dto.UploadResponse{}, errors.Wrap(err, "decode upload response")
	}

	if payload.Data == nil {
		return dto.UploadResponse{}, errors.New("upload response has no data")
	}

	return *payload.Data, nil
}

func (u *Uploader) writeForm(form *multipart.Writer, batch []File, fields map[string]string, sent *atomic.Int64, total int64) error {
	for key, value := range fields {
		if err := form.WriteField(key, value); err != nil {
			return err
		}
	}

	for _, file := range batch {
		if err := writeFile(form, file, &progressReader{sent: sent, total: total, progress: u.progress}); err != nil {
			return err
		}
	}

	return form.Close()
}

func writeFile(form *multipart.Writer, file File, progress *progressReader) error {
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, constant.FormFiles, file.Name))
	header.Set(constant.RequestHeaderContentType, file.ContentType)

	part, err := form.CreatePart(header)
	if err != nil {
		return err
	}

	content, err := file.open()
	if err != nil {
		return errors.Wrapf(err, "open %s", file.Name)
	}
	defer content.Close()

	progress.reader = content

	_, err = io.Copy(part, progress)

	return errors.Wrapf(err, "copy %s", file.Name)
}

func decodeError(resp *http.Response) error {
	payload := response.Error{}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && payload.Error != nil {
		return errors.Errorf("upload rejected with status %d: %s", resp.StatusCode, *payload.Error)
	}

	return errors.Errorf("upload rejected with status %d", resp.StatusCode)
}

// retainFailed keeps the files whose result reports a failure. Results are in submission order;
// a file with no matching result is kept.
func retainFailed(batch []File, results []dto.UploadResult) []File {
	var remaining []File

	for index, file := range batch {
		if index < len(results) && results[index].Success {
			continue
		}

		remaining = append(remaining, file)
	}

	return remaining
}

func (u *Uploader) settle() {
	if len(u.files) == 0 {
		u.state = StateIdle

		return
	}

	u.state = StateFilesSelected
}
