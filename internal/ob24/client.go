// Package ob24 is the HTTP client for the onlinebrief24.de letter-shipping
// service. The workflow only consumes success or failure of a submission.
package ob24

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const DefaultBaseURL = "https://api.onlinebrief24.de"

// ErrUnauthorized is returned when the service rejects the credentials.
var ErrUnauthorized = errors.New("onlinebrief24: invalid credentials")

// Credentials authenticate a submission batch.
type Credentials struct {
	Username string
	Password string
}

// SubmitOptions are the mailing options sent with a letter.
type SubmitOptions struct {
	Color        bool
	Duplex       bool
	Envelope     string
	Distribution string
	Registered   sql.NullString
	PaymentSlip  sql.NullString
}

// Client submits letters over HTTP. Calls block until the service answers;
// there is no client-side timeout, cancellation goes through ctx.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a client for the given base URL (empty selects the production
// endpoint).
func New(baseURL string) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Submit uploads the PDF at path for physical delivery. A non-2xx answer is
// an error and the letter is treated as not submitted.
func (c *Client) Submit(ctx context.Context, creds Credentials, path string, opts SubmitOptions) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open letter: %w", err)
	}
	defer f.Close()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("read letter: %w", err)
	}

	fields := map[string]string{
		"color":        strconv.FormatBool(opts.Color),
		"duplex":       strconv.FormatBool(opts.Duplex),
		"envelope":     opts.Envelope,
		"distribution": opts.Distribution,
	}
	if opts.Registered.Valid {
		fields["registered"] = opts.Registered.String
	}
	if opts.PaymentSlip.Valid {
		fields["payment_slip"] = opts.PaymentSlip.String
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("build upload: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/letters", &body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(creds.Username, creds.Password)
	req.Header.Set("Content-Type", w.FormDataContentType())

	log.Printf("ob24 submit filename=%q envelope=%s distribution=%s", filepath.Base(path), opts.Envelope, opts.Distribution)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("submit letter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("onlinebrief24: %s", errorMessage(resp))
	}
	return nil
}

func errorMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(data) == 0 {
		return resp.Status
	}
	var apiErr struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &apiErr); err == nil {
		if apiErr.Error != "" {
			return apiErr.Error
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return fmt.Sprintf("%s: %s", resp.Status, strings.TrimSpace(string(data)))
}
