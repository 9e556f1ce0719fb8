package zohoclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"log/slog"
)

const (
	defaultAccountsURL = "https://accounts.zoho.in"
	defaultBaseURL     = "https://www.zohoapis.in"
	defaultUserAgent   = "lexdesk-whatsapp-intake/0.1"
	defaultTokenTTL    = 50 * time.Minute
)

// ErrAuthFailed indicates the token exchange did not yield an access token.
var ErrAuthFailed = errors.New("zohoclient: auth failed")

// Config controls how the Zoho CRM client behaves.
type Config struct {
	AccountsURL  string
	BaseURL      string
	ClientID     string
	ClientSecret string
	RefreshToken string
	Timeout      time.Duration
	TokenTTL     time.Duration
	HTTPClient   *http.Client
	Logger       *slog.Logger
	UserAgent    string
}

// Client wraps the Zoho CRM v2 endpoints used by the intake pipeline:
// OAuth token refresh, lead creation, and follow-up task creation.
type Client struct {
	accountsURL  string
	baseURL      string
	clientID     string
	clientSecret string
	refreshToken string
	httpClient   *http.Client
	tokenTTL     time.Duration
	logger       *slog.Logger
	userAgent    string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

// New creates a configured Client with sane defaults.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.ClientID) == "" || strings.TrimSpace(cfg.ClientSecret) == "" {
		return nil, errors.New("zohoclient: client id and secret are required")
	}
	if strings.TrimSpace(cfg.RefreshToken) == "" {
		return nil, errors.New("zohoclient: refresh token is required")
	}
	accountsURL := strings.TrimSpace(cfg.AccountsURL)
	if accountsURL == "" {
		accountsURL = defaultAccountsURL
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	tokenTTL := cfg.TokenTTL
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		accountsURL:  strings.TrimRight(accountsURL, "/"),
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		refreshToken: cfg.RefreshToken,
		httpClient:   httpClient,
		tokenTTL:     tokenTTL,
		logger:       logger,
		userAgent:    userAgent,
	}, nil
}

// AccessToken exchanges the refresh credential for a short-lived access token.
// Tokens are cached until expiry; a single exchange attempt is made per miss.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.token != "" && time.Now().Before(c.tokenExpiry) {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	form := url.Values{}
	form.Set("refresh_token", c.refreshToken)
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.accountsURL+"/oauth/v2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("zohoclient: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: read response: %v", ErrAuthFailed, err)
	}

	var parsed tokenResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("%w: malformed token response", ErrAuthFailed)
	}
	if parsed.AccessToken == "" {
		return "", fmt.Errorf("%w: %s", ErrAuthFailed, strings.TrimSpace(string(body)))
	}

	ttl := c.tokenTTL
	if parsed.ExpiresIn > 0 {
		ttl = time.Duration(parsed.ExpiresIn) * time.Second
	}

	c.mu.Lock()
	c.token = parsed.AccessToken
	c.tokenExpiry = time.Now().Add(ttl)
	c.mu.Unlock()

	return parsed.AccessToken, nil
}

// InvalidateToken drops the cached access token so the next call refetches.
func (c *Client) InvalidateToken() {
	c.mu.Lock()
	c.token = ""
	c.tokenExpiry = time.Time{}
	c.mu.Unlock()
}

// CreateLead issues a single lead-create request and returns the CRM's raw
// response payload, success or error shape alike. Auth failure short-circuits
// with AuthFailedPayload and no network write.
func (c *Client) CreateLead(ctx context.Context, lead LeadRecord) json.RawMessage {
	payload := leadPayload{
		Data: []leadData{{
			LastName:    lead.LastName,
			Phone:       lead.Phone,
			Description: lead.Description,
			MatterType:  lead.MatterType,
			Urgency:     lead.Urgency,
		}},
		Trigger: []string{"workflow"},
	}
	return c.createRecord(ctx, "/crm/v2/Leads", payload)
}

// CreateTask creates a follow-up task referencing the lead by id.
func (c *Client) CreateTask(ctx context.Context, leadID, summary string) json.RawMessage {
	payload := taskPayload{
		Data: []taskData{{
			Subject:     "Follow-up Needed",
			Description: summary,
			Status:      "Not Started",
			WhatID:      leadID,
		}},
	}
	return c.createRecord(ctx, "/crm/v2/Tasks", payload)
}

func (c *Client) createRecord(ctx context.Context, path string, payload any) json.RawMessage {
	token, err := c.AccessToken(ctx)
	if err != nil {
		c.logger.Warn("zoho token exchange failed", "path", path, "error", err)
		return AuthFailedPayload
	}

	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.Error("zoho payload marshal failed", "path", path, "error", err)
		return RequestFailedPayload
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("zoho request build failed", "path", path, "error", err)
		return RequestFailedPayload
	}
	req.Header.Set("Authorization", "Zoho-oauthtoken "+token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("zoho request failed", "path", path, "error", err)
		return RequestFailedPayload
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("zoho response read failed", "path", path, "error", err)
		return RequestFailedPayload
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.InvalidateToken()
	}

	if !json.Valid(data) {
		c.logger.Warn("zoho returned non-JSON body", "path", path, "status", resp.StatusCode)
		return RequestFailedPayload
	}
	return json.RawMessage(data)
}
