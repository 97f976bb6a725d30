package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"tienda-storefront/internal/logger"
	"tienda-storefront/internal/metrics"
)

// Client talks to the usuarios API. Credential verification happens
// upstream; this side only relays and maps results.
type Client interface {
	Login(ctx context.Context, email, password string) (User, error)
	Register(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, id int64, u User) (User, error)
	Exists(ctx context.Context, email string) (bool, error)
	Find(ctx context.Context, email string) (User, error)
	List(ctx context.Context) ([]User, error)
	Get(ctx context.Context, id int64) (User, error)
	Delete(ctx context.Context, id int64) error
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) Client {
	return &client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type embeddedUsers struct {
	Embedded struct {
		UsuarioList []User `json:"usuarioList"`
	} `json:"_embedded"`
}

// Login validates credentials against the backend. The response never
// includes the password; it is blanked defensively anyway.
func (c *client) Login(ctx context.Context, email, password string) (User, error) {
	log := logger.FromCtx(ctx).With(zap.String("email", email))

	params := url.Values{}
	params.Set("usuario", email)
	params.Set("password", password)

	body, status, err := c.do(ctx, http.MethodPost, "/usuarios/login?"+params.Encode(), nil, "login")
	if err != nil {
		if status == http.StatusUnauthorized {
			log.Warn("login rejected")
			return User{}, ErrInvalidCredentials
		}
		log.Error("login request failed", zap.Error(err))
		return User{}, err
	}

	var u User
	if err := json.Unmarshal(body, &u); err != nil {
		return User{}, fmt.Errorf("failed decoding login response: %w", err)
	}
	u.Password = ""

	log.Info("login accepted",
		zap.Int64("user_id", u.ID),
		zap.Int("role_id", u.RoleID()),
	)
	return u, nil
}

func (c *client) Register(ctx context.Context, u User) (User, error) {
	log := logger.FromCtx(ctx).With(zap.String("email", u.Email))

	body, status, err := c.do(ctx, http.MethodPost, "/usuarios/register", u, "register")
	if err != nil {
		if status == http.StatusBadRequest {
			log.Warn("registration rejected, user exists")
			return User{}, ErrUserExists
		}
		log.Error("registration failed", zap.Error(err))
		return User{}, fmt.Errorf("%w: %v", ErrRegisterFailed, err)
	}

	var created User
	if err := json.Unmarshal(body, &created); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrRegisterFailed, err)
	}

	log.Info("user registered", zap.Int64("user_id", created.ID))
	return created, nil
}

func (c *client) Update(ctx context.Context, id int64, u User) (User, error) {
	log := logger.FromCtx(ctx).With(zap.Int64("user_id", id))

	body, status, err := c.do(ctx, http.MethodPut, "/usuarios/update/"+strconv.FormatInt(id, 10), u, "update")
	if err != nil {
		if status == http.StatusBadRequest || status == http.StatusNotFound {
			log.Warn("update rejected, user missing")
			return User{}, ErrUserNotFound
		}
		log.Error("update failed", zap.Error(err))
		return User{}, fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}

	var updated User
	if err := json.Unmarshal(body, &updated); err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrUpdateFailed, err)
	}

	log.Info("user updated")
	return updated, nil
}

// Exists reports whether an account with the email is registered. Errors
// degrade to false, matching the legacy prefill behavior.
func (c *client) Exists(ctx context.Context, email string) (bool, error) {
	params := url.Values{}
	params.Set("email", email)

	body, _, err := c.do(ctx, http.MethodGet, "/usuarios/exists?"+params.Encode(), nil, "exists")
	if err != nil {
		logger.FromCtx(ctx).Warn("exists check failed", zap.Error(err))
		return false, nil
	}

	var exists bool
	if err := json.Unmarshal(body, &exists); err != nil {
		return false, nil
	}
	return exists, nil
}

func (c *client) Find(ctx context.Context, email string) (User, error) {
	params := url.Values{}
	params.Set("email", email)

	body, _, err := c.do(ctx, http.MethodGet, "/usuarios/find?"+params.Encode(), nil, "find")
	if err != nil {
		return User{}, ErrUserNotFound
	}

	var u User
	if err := json.Unmarshal(body, &u); err != nil {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (c *client) List(ctx context.Context) ([]User, error) {
	body, _, err := c.do(ctx, http.MethodGet, "/usuarios", nil, "list")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListFailed, err)
	}

	var envelope embeddedUsers
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrListFailed, err)
	}
	return envelope.Embedded.UsuarioList, nil
}

func (c *client) Get(ctx context.Context, id int64) (User, error) {
	body, status, err := c.do(ctx, http.MethodGet, "/usuarios/"+strconv.FormatInt(id, 10), nil, "get")
	if err != nil {
		if status == http.StatusNotFound {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}

	var u User
	if err := json.Unmarshal(body, &u); err != nil {
		return User{}, fmt.Errorf("failed decoding user: %w", err)
	}
	return u, nil
}

func (c *client) Delete(ctx context.Context, id int64) error {
	if _, _, err := c.do(ctx, http.MethodDelete, "/usuarios/delete/"+strconv.FormatInt(id, 10), nil, "delete"); err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}

	logger.FromCtx(ctx).Info("user deleted", zap.Int64("user_id", id))
	return nil
}

func (c *client) do(ctx context.Context, method, path string, payload any, operation string) ([]byte, int, error) {
	timer := time.Now()
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues("usuarios", operation).
			Observe(time.Since(timer).Seconds())
	}()

	var reqBody io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, err
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, resp.StatusCode, fmt.Errorf("status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	return bodyBytes, resp.StatusCode, nil
}
