package devicesapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/architeacher/gadgets/internal/catalog"
	"github.com/architeacher/gadgets/internal/config"
	"github.com/architeacher/gadgets/internal/domain/model"
	"github.com/architeacher/gadgets/internal/ports"
	"github.com/architeacher/gadgets/internal/services"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
)

// ErrRequestFailed is returned for any answer outside the 2xx range that has
// no more specific meaning.
var ErrRequestFailed = errors.New("devices api request failed")

var errNotFound = errors.New("not found")

const (
	pathDevices     = "/devices"
	pathUpload      = "/upload-photo"
	pathPreferences = "/preferences"
)

type (
	// Client talks to the devices REST API. Each call issues exactly one
	// request and never retries.
	Client struct {
		baseURL    string
		httpClient *http.Client
		maxPhoto   int64
	}

	Option func(*Client)

	uploadResponse struct {
		URL string `json:"url"`
	}
)

// WithHTTPClient replaces the instrumented default client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTracerProvider sets the provider used for client spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.httpClient.Transport = otelhttp.NewTransport(http.DefaultTransport, otelhttp.WithTracerProvider(tp))
	}
}

func WithMaxPhotoBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxPhoto = n
		}
	}
}

func NewClient(cfg config.DevicesAPI, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		maxPhoto: services.MaxPhotoBytes,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) ListDevices(ctx context.Context) ([]model.Device, error) {
	devices := make([]model.Device, 0)
	if err := c.do(ctx, "list devices", http.MethodGet, pathDevices, nil, &devices); err != nil {
		return nil, err
	}

	return devices, nil
}

// GetDevice returns model.ErrDeviceNotFound when the API answers 404.
func (c *Client) GetDevice(ctx context.Context, id model.DeviceID) (*model.Device, error) {
	var device model.Device
	if err := c.do(ctx, "get device", http.MethodGet, devicePath(id), nil, &device); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, model.ErrDeviceNotFound
		}

		return nil, err
	}

	return &device, nil
}

func (c *Client) CreateDevice(ctx context.Context, payload catalog.Payload) (*model.Device, error) {
	var device model.Device
	if err := c.do(ctx, "create device", http.MethodPost, pathDevices, payload, &device); err != nil {
		return nil, err
	}

	return &device, nil
}

// UpdateDevice replaces the whole record.
func (c *Client) UpdateDevice(ctx context.Context, id model.DeviceID, payload catalog.Payload) (*model.Device, error) {
	var device model.Device
	if err := c.do(ctx, "update device", http.MethodPut, devicePath(id), payload, &device); err != nil {
		return nil, err
	}

	return &device, nil
}

func (c *Client) DeleteDevice(ctx context.Context, id model.DeviceID) error {
	return c.do(ctx, "delete device", http.MethodDelete, devicePath(id), nil, nil)
}

// UploadPhoto checks the image locally and only then sends it as a multipart
// form. It answers with the URL the API stored the photo under.
func (c *Client) UploadPhoto(ctx context.Context, upload ports.PhotoUpload) (string, error) {
	if err := services.ValidatePhoto(upload.ContentType, upload.Size, c.maxPhoto); err != nil {
		return "", err
	}

	var body bytes.Buffer

	form := multipart.NewWriter(&body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, upload.Filename))
	header.Set("Content-Type", upload.ContentType)

	part, err := form.CreatePart(header)
	if err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	if _, err := io.Copy(part, upload.Content); err != nil {
		return "", fmt.Errorf("failed to read photo: %w", err)
	}

	if err := form.WriteField("photo_type", upload.PhotoType); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	if err := form.Close(); err != nil {
		return "", fmt.Errorf("failed to build upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pathUpload, &body)
	if err != nil {
		return "", fmt.Errorf("failed to create upload request: %w", err)
	}

	req.Header.Set("Content-Type", form.FormDataContentType())

	var resp uploadResponse
	if err := c.send(req, "upload photo", &resp); err != nil {
		return "", err
	}

	return resp.URL, nil
}

func (c *Client) GetPreferences(ctx context.Context) (model.Preferences, error) {
	var prefs model.Preferences
	if err := c.do(ctx, "get preferences", http.MethodGet, pathPreferences, nil, &prefs); err != nil {
		return model.DefaultPreferences(), err
	}

	return prefs, nil
}

func (c *Client) SavePreferences(ctx context.Context, prefs model.Preferences) error {
	return c.do(ctx, "save preferences", http.MethodPut, pathPreferences, prefs, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", op, err)
		}

		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", op, err)
	}

	req.Header.Set("Accept", "application/json")

	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, op, out)
}

func (c *Client) send(req *http.Request, op string, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)

		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s: %w: %w", op, ErrRequestFailed, errNotFound)
		}

		return fmt.Errorf("%s: %w: status %d", op, ErrRequestFailed, resp.StatusCode)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}

	return nil
}

func devicePath(id model.DeviceID) string {
	return pathDevices + "/" + url.PathEscape(id.String())
}
