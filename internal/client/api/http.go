package api

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
	"time"

	"github.com/mkalinin/healthportal/internal/client/models"
	"github.com/mkalinin/healthportal/internal/logging"
)

// HTTPClient is the concrete Client speaking JSON over HTTP to the portal
// backend. The bearer header is attached by the auth transport per request.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the given base URL (e.g.
// "http://localhost:5000/api"). Timeout bounds every request; the client
// itself imposes no retries.
func NewHTTPClient(baseURL string, tokens TokenSource, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: NewAuthTransport(nil, tokens),
		},
		log: log,
	}
}

// do performs one JSON request. Non-2xx responses come back as *Error;
// failures to reach the server wrap ErrUnavailable.
func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := decodeError(resp.StatusCode, data)
		c.log.Debug(ctx, "request rejected", "method", method, "path", path, "status", resp.StatusCode)
		return apiErr
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

type messageBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// otpIssued applies the portal's success convention: a login-shaped call
// started an OTP exchange iff its message mentions "otp", any case.
func otpIssued(message string) bool {
	return strings.Contains(strings.ToLower(message), "otp")
}

// decodeLoginShaped turns the outcome of a login-shaped call into a tagged
// LoginResult. Rejections (including 2xx bodies without an OTP indicator)
// are data, not errors; only transport failures propagate.
func decodeLoginShaped(body messageBody, err error) (LoginResult, error) {
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			return LoginResult{Outcome: OutcomeRejected, Message: apiErr.Message}, nil
		}
		return LoginResult{}, err
	}
	if otpIssued(body.Message) {
		return LoginResult{Outcome: OutcomeOTPRequired, Message: body.Message}, nil
	}
	return LoginResult{Outcome: OutcomeRejected, Message: firstNonEmpty(body.Error, body.Message)}, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string, isAdmin bool) (LoginResult, error) {
	var body messageBody
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password, IsAdmin: isAdmin}, &body)
	return decodeLoginShaped(body, err)
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type verifyOTPResponse struct {
	Token   string       `json:"token"`
	User    *models.User `json:"user"`
	Message string       `json:"message"`
	Error   string       `json:"error"`
}

func (c *HTTPClient) VerifyLoginOTP(ctx context.Context, email, otp string) (VerifyResult, error) {
	var body verifyOTPResponse
	err := c.do(ctx, http.MethodPost, "/auth/verify-login-otp", verifyOTPRequest{Email: email, OTP: otp}, &body)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) {
			return VerifyResult{Message: apiErr.Message}, nil
		}
		return VerifyResult{}, err
	}
	if body.Token == "" {
		return VerifyResult{Message: firstNonEmpty(body.Error, body.Message)}, nil
	}
	return VerifyResult{Authenticated: true, Token: body.Token, User: body.User, Message: body.Message}, nil
}

type googleRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (c *HTTPClient) GoogleSignIn(ctx context.Context, email, name string) (LoginResult, error) {
	var body messageBody
	err := c.do(ctx, http.MethodPost, "/auth/google", googleRequest{Email: email, Name: name}, &body)
	return decodeLoginShaped(body, err)
}

type emailRequest struct {
	Email string `json:"email"`
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	var body messageBody
	if err := c.do(ctx, http.MethodPost, "/auth/forgot-password", emailRequest{Email: email}, &body); err != nil {
		return "", err
	}
	return firstNonEmpty(body.Message, body.Error), nil
}

func (c *HTTPClient) Signup(ctx context.Context, req SignupRequest) (string, error) {
	var body messageBody
	if err := c.do(ctx, http.MethodPost, "/auth/signup", req, &body); err != nil {
		return "", err
	}
	return firstNonEmpty(body.Message, body.Error), nil
}

func (c *HTTPClient) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) UpdateUser(ctx context.Context, user models.User) error {
	return c.do(ctx, http.MethodPut, "/admin/users/"+url.PathEscape(user.ID), user, nil)
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) ListMedicines(ctx context.Context) ([]models.Medicine, error) {
	var list []models.Medicine
	if err := c.do(ctx, http.MethodGet, "/medicine", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) ListCommonMedicines(ctx context.Context, category string) ([]models.Medicine, error) {
	path := "/medicine/common"
	if category != "" {
		path += "?category=" + url.QueryEscape(category)
	}
	var list []models.Medicine
	if err := c.do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) CreateMedicine(ctx context.Context, m models.Medicine) error {
	return c.do(ctx, http.MethodPost, "/medicine", m, nil)
}

func (c *HTTPClient) UpdateMedicine(ctx context.Context, m models.Medicine) error {
	return c.do(ctx, http.MethodPut, "/medicine/"+url.PathEscape(m.ID), m, nil)
}

func (c *HTTPClient) DeleteMedicine(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/medicine/"+url.PathEscape(id), nil, nil)
}

func (c *HTTPClient) ListArticles(ctx context.Context) ([]models.Article, error) {
	var list []models.Article
	if err := c.do(ctx, http.MethodGet, "/articles", nil, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *HTTPClient) DeleteArticle(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/articles/"+url.PathEscape(id), nil, nil)
}
