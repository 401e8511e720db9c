package libreview

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/gzip"

	"cgmd/internal/models"
	"cgmd/internal/providers"
	"cgmd/internal/structures"
)

// LoginResult carries the raw vendor account id. Callers must hash it
// before storing; the client itself keeps no state between calls.
type LoginResult struct {
	Token     string
	ExpiresAt int64
	Duration  int64
	AccountID string
}

type GraphResult struct {
	Patient models.PatientSummary
	History []models.Reading
}

type ClientInterface interface {
	Login(ctx context.Context, creds models.Credentials) (*LoginResult, error)
	ListPatients(ctx context.Context, session models.Session) ([]models.PatientSummary, error)
	GetGraph(ctx context.Context, session models.Session, patientID string) (*GraphResult, error)
	GetLogbook(ctx context.Context, session models.Session, patientID string) ([]models.Reading, error)
}

// Client is a stateless wrapper around the LibreLinkUp REST API. The
// session is an explicit parameter on every authenticated call; there are
// no mutable token fields.
type Client struct {
	apiUrl     string
	product    string
	version    string
	httpClient *http.Client
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewClient(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) ClientInterface {
	return &Client{
		apiUrl:  strings.TrimRight(conf.LibreView.ApiUrl, "/"),
		product: conf.LibreView.Product,
		version: conf.LibreView.Version,
		httpClient: &http.Client{
			Timeout: conf.LibreView.Timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// commonHeaders sets the header block the vendor requires on every request.
// The API rejects requests without the product/version identification.
func (c *Client) commonHeaders(req *http.Request) {
	req.Header.Set("accept-encoding", "gzip")
	req.Header.Set("cache-control", "no-cache")
	req.Header.Set("connection", "Keep-Alive")
	req.Header.Set("product", c.product)
	req.Header.Set("version", c.version)
}

func (c *Client) sessionHeaders(req *http.Request, session models.Session) {
	c.commonHeaders(req)
	req.Header.Set("authorization", "Bearer "+session.Token)
	req.Header.Set("account-id", session.AccountIDHash)
}

// do executes the request and decodes the JSON body into out. Because
// accept-encoding is set explicitly, net/http's transparent decompression
// is disabled and gzip bodies are decoded here.
func (c *Client) do(req *http.Request, endpoint string, out interface{}) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ObserveVendorRequestDuration(endpoint, time.Since(start))
	if err != nil {
		return fmt.Errorf("libreview: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return &AuthError{Message: fmt.Sprintf("vendor returned status %d", resp.StatusCode)}
	}
	if resp.StatusCode != http.StatusOK {
		return &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
	}

	var body io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return fmt.Errorf("libreview: %s: %w", endpoint, err)
		}
		defer gz.Close()
		body = gz
	}

	if err := json.NewDecoder(body).Decode(out); err != nil {
		return fmt.Errorf("libreview: %s: decode: %w", endpoint, err)
	}
	return nil
}

func (c *Client) Login(ctx context.Context, creds models.Credentials) (*LoginResult, error) {
	payload, err := json.Marshal(loginArgs{Email: creds.Email, Password: creds.Password})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiUrl+"/llu/auth/login", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	c.commonHeaders(req)
	req.Header.Set("content-type", "application/json")

	var response loginResponse
	if err := c.do(req, "login", &response); err != nil {
		return nil, err
	}

	if response.Data == nil || response.Data.AuthTicket.Token == "" {
		message := ""
		if response.Error != nil {
			message = response.Error.Message
		}
		return nil, &AuthError{Message: message}
	}

	c.logger.Infof(providers.TypeVendor, "login succeeded, ticket valid for %ds", response.Data.AuthTicket.Duration)
	return &LoginResult{
		Token:     response.Data.AuthTicket.Token,
		ExpiresAt: response.Data.AuthTicket.Expires,
		Duration:  response.Data.AuthTicket.Duration,
		AccountID: response.Data.User.ID,
	}, nil
}

func (c *Client) get(ctx context.Context, session models.Session, path, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiUrl+path, nil)
	if err != nil {
		return err
	}
	c.sessionHeaders(req, session)
	return c.do(req, endpoint, out)
}

func (c *Client) ListPatients(ctx context.Context, session models.Session) ([]models.PatientSummary, error) {
	var response patientsResponse
	if err := c.get(ctx, session, "/llu/connections", "connections", &response); err != nil {
		return nil, err
	}

	patients := make([]models.PatientSummary, 0, len(response.Data))
	for _, p := range response.Data {
		patients = append(patients, toPatientSummary(p))
	}
	return patients, nil
}

func (c *Client) GetGraph(ctx context.Context, session models.Session, patientID string) (*GraphResult, error) {
	var response graphResponse
	if err := c.get(ctx, session, "/llu/connections/"+patientID+"/graph", "graph", &response); err != nil {
		return nil, err
	}

	history := make([]models.Reading, 0, len(response.Data.GraphData))
	for _, m := range response.Data.GraphData {
		history = append(history, toReading(m))
	}
	return &GraphResult{
		Patient: toPatientSummary(response.Data.Connection),
		History: history,
	}, nil
}

func (c *Client) GetLogbook(ctx context.Context, session models.Session, patientID string) ([]models.Reading, error) {
	var response logbookResponse
	if err := c.get(ctx, session, "/llu/connections/"+patientID+"/logbook", "logbook", &response); err != nil {
		return nil, err
	}

	entries := make([]models.Reading, 0, len(response.Data))
	for _, m := range response.Data {
		entries = append(entries, toReading(m))
	}
	return entries, nil
}
