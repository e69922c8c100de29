package mediastore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент медиа-хранилища, куда загружаются вложения бронирований
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента медиа-хранилища
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// uploadResponse хранилище исторически отвечало тремя разными ключами,
// принимаем любой из них
type uploadResponse struct {
	URL       string `json:"url"`
	ImageURL  string `json:"imageUrl"`
	ImageURL2 string `json:"image_url"`
}

func (r *uploadResponse) resolve() string {
	switch {
	case r.URL != "":
		return r.URL
	case r.ImageURL != "":
		return r.ImageURL
	default:
		return r.ImageURL2
	}
}

// Upload загружает файл и возвращает его публичный URL
func (c *Client) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, content); err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	url := fmt.Sprintf("%s/api/images", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, pr)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		c.log.Warn("Media upload rejected: status=%d body=%q", resp.StatusCode, string(body))
		return "", fmt.Errorf("%w: status %d", ErrUploadFailed, resp.StatusCode)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	uploadedURL := parsed.resolve()
	if uploadedURL == "" {
		return "", fmt.Errorf("%w: no url in response", ErrInvalidResponse)
	}

	c.log.Info("Media uploaded: file=%s url=%s", filename, uploadedURL)
	return uploadedURL, nil
}
