// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/config"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/logger"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/resource"
	"github.com/MKhiriev/lims-tamanu-bridge/internal/utils"
)

const (
	// LoginPath is the Tamanu endpoint exchanging credentials for a token.
	LoginPath = "/api/login"
	// FHIRPath is the base path of the Tamanu FHIR materialised API.
	FHIRPath = "/api/integration/fhir/mat"

	// tokenLeeway is how long before expiry a token is renewed.
	tokenLeeway = 30 * time.Second
	// transportRetries is the number of retries of failed transports.
	transportRetries = 2
	// maxPages guards against servers returning the same next link forever.
	maxPages = 10000
)

// TamanuSession is the [Session] over the Tamanu HTTP API.
type TamanuSession struct {
	client      *utils.HTTPClient
	host        string
	credentials config.Credentials
	pageSize    int
	now         func() time.Time

	mu    sync.RWMutex
	token string

	cacheMu  sync.Mutex
	resolved map[string]*resource.Resource

	logger *logger.Logger
}

// NewTamanuSession constructs a session for remote. No request is made
// until [TamanuSession.Login] or the first call needing a token.
func NewTamanuSession(remote config.Remote, log *logger.Logger) (*TamanuSession, error) {
	host, err := normalizeHost(remote.Host)
	if err != nil {
		return nil, fmt.Errorf("invalid tamanu host: %w", err)
	}

	client := utils.NewHTTPClient(remote.RequestTimeout, transportRetries)
	client.SetBaseURL(host)

	return &TamanuSession{
		client:      client,
		host:        host,
		credentials: remote.Credentials,
		pageSize:    remote.PageSize,
		now:         time.Now,
		resolved:    make(map[string]*resource.Resource),
		logger:      log,
	}, nil
}

func normalizeHost(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Host implements [Session].
func (s *TamanuSession) Host() string {
	return s.host
}

// Token returns the bearer token currently held.
func (s *TamanuSession) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *TamanuSession) setToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = strings.TrimSpace(token)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login exchanges the configured credentials for a bearer token. Rejected
// credentials are [ErrUnauthorized].
func (s *TamanuSession) Login(ctx context.Context) error {
	log := logger.FromContext(ctx)

	if s.credentials.Username == "" {
		return ErrMissingCredentials
	}

	var out loginResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(loginRequest{Email: s.credentials.Username, Password: s.credentials.Password}).
		SetResult(&out).
		Post(LoginPath)
	if err != nil {
		log.Err(err).Str("func", "TamanuSession.Login").Str("host", s.host).Msg("login request failed")
		return mapTransportError("login", err)
	}
	if err = mapHTTPError(resp); err != nil {
		if errors.Is(err, ErrBadRequest) || errors.Is(err, ErrForbidden) {
			err = fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		log.Warn().Str("func", "TamanuSession.Login").Str("host", s.host).Int("status", resp.StatusCode()).Msg("login rejected")
		return err
	}
	if out.Token == "" {
		return fmt.Errorf("%w: login response without token", ErrInvalidResponse)
	}

	s.setToken(out.Token)
	log.Debug().Str("func", "TamanuSession.Login").Str("host", s.host).Msg("logged in")
	return nil
}

// ensureToken logs in when no token is held or the held one is about to
// expire.
func (s *TamanuSession) ensureToken(ctx context.Context) error {
	token := s.Token()
	if token != "" && !utils.TokenExpired(token, s.now(), tokenLeeway) {
		return nil
	}
	return s.Login(ctx)
}

// do sends an authenticated request built by build. A 401 answer triggers
// a single fresh login and retry.
func (s *TamanuSession) do(ctx context.Context, op string, build func(*resty.Request) (*resty.Response, error)) (*resty.Response, error) {
	if err := s.ensureToken(ctx); err != nil {
		return nil, err
	}

	for attempt := 0; ; attempt++ {
		req := s.client.R().
			SetContext(ctx).
			SetAuthToken(s.Token())

		resp, err := build(req)
		if err != nil {
			return nil, mapTransportError(op, err)
		}

		if resp.StatusCode() == http.StatusUnauthorized && attempt == 0 {
			logger.FromContext(ctx).Info().
				Str("func", "TamanuSession.do").
				Str("op", op).
				Msg("token rejected, logging in again")
			if err = s.Login(ctx); err != nil {
				return nil, err
			}
			continue
		}

		if err = mapHTTPError(resp); err != nil {
			return resp, err
		}
		return resp, nil
	}
}

// fhirURL returns the FHIR path of resourceType, or of one resource when
// id is given.
func fhirURL(resourceType, id string) string {
	if id == "" {
		return FHIRPath + "/" + resourceType
	}
	return FHIRPath + "/" + resourceType + "/" + url.PathEscape(id)
}

type bundle struct {
	ResourceType string `json:"resourceType"`
	Link         []struct {
		Relation string `json:"relation"`
		URL      string `json:"url"`
	} `json:"link"`
	Entry []struct {
		Resource map[string]any `json:"resource"`
	} `json:"entry"`
}

func (b bundle) next() string {
	for _, link := range b.Link {
		if link.Relation == "next" {
			return link.URL
		}
	}
	return ""
}

// GetResources implements [Session].
func (s *TamanuSession) GetResources(ctx context.Context, resourceType string, query url.Values) ([]*resource.Resource, error) {
	log := logger.FromContext(ctx)

	params := url.Values{}
	for key, values := range query {
		params[key] = append([]string(nil), values...)
	}
	if s.pageSize > 0 && params.Get("_count") == "" {
		params.Set("_count", strconv.Itoa(s.pageSize))
	}

	target := fhirURL(resourceType, "")
	first := true
	seen := make(map[string]struct{})
	resources := make([]*resource.Resource, 0)

	for page := 0; page < maxPages; page++ {
		resp, err := s.do(ctx, "get "+resourceType, func(req *resty.Request) (*resty.Response, error) {
			if first {
				req.SetQueryParamsFromValues(params)
			}
			return req.Get(target)
		})
		if err != nil {
			log.Err(err).
				Str("func", "TamanuSession.GetResources").
				Str("resource_type", resourceType).
				Int("page", page).
				Msg("failed to fetch page")
			return nil, err
		}

		var b bundle
		if err = json.Unmarshal(resp.Body(), &b); err != nil {
			return nil, fmt.Errorf("%w: decode %s bundle: %w", ErrInvalidResponse, resourceType, err)
		}
		for _, entry := range b.Entry {
			if entry.Resource != nil {
				resources = append(resources, resource.New(entry.Resource))
			}
		}

		next := b.next()
		if next == "" {
			break
		}
		if _, dup := seen[next]; dup {
			log.Warn().Str("func", "TamanuSession.GetResources").Str("next", next).Msg("next link repeated, stop paging")
			break
		}
		seen[next] = struct{}{}
		target = next
		first = false
	}

	log.Debug().
		Str("func", "TamanuSession.GetResources").
		Str("resource_type", resourceType).
		Int("count", len(resources)).
		Msg("fetched resources")
	return resources, nil
}

// Resolve implements [resource.ReferenceResolver]. Fetched resources are
// kept for the lifetime of the session; a reference to a resource the
// server does not know resolves to nil.
func (s *TamanuSession) Resolve(ctx context.Context, ref resource.Reference) (*resource.Resource, error) {
	key := ref.Reference
	if key == "" {
		return nil, nil
	}

	s.cacheMu.Lock()
	cached, ok := s.resolved[key]
	s.cacheMu.Unlock()
	if ok {
		return cached, nil
	}

	target := key
	if !strings.Contains(key, "://") {
		resourceType := ref.ResourceType()
		if resourceType == "" {
			return nil, fmt.Errorf("%w: reference %q without type", ErrBadRequest, key)
		}
		target = fhirURL(resourceType, ref.ID())
	}

	resp, err := s.do(ctx, "resolve "+key, func(req *resty.Request) (*resty.Response, error) {
		return req.Get(target)
	})
	if errors.Is(err, ErrNotFound) {
		logger.FromContext(ctx).Warn().
			Str("func", "TamanuSession.Resolve").
			Str("reference", key).
			Msg("referenced resource not found")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	res, err := decodeResolved(resp.Body())
	if err != nil {
		return nil, err
	}

	s.cacheMu.Lock()
	s.resolved[key] = res
	s.cacheMu.Unlock()
	return res, nil
}

// decodeResolved decodes a single resource, or the first entry of a search
// bundle.
func decodeResolved(body []byte) (*resource.Resource, error) {
	res, err := resource.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if res.Type() != "Bundle" {
		return res, nil
	}

	var b bundle
	if err = json.Unmarshal(body, &b); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	if len(b.Entry) == 0 || b.Entry[0].Resource == nil {
		return nil, nil
	}
	return resource.New(b.Entry[0].Resource), nil
}

// Post implements [Session].
func (s *TamanuSession) Post(ctx context.Context, resourceType string, payload any) (*resource.Resource, error) {
	log := logger.FromContext(ctx)

	resp, err := s.do(ctx, "post "+resourceType, func(req *resty.Request) (*resty.Response, error) {
		return req.
			SetHeader("Content-Type", "application/json").
			SetBody(payload).
			Post(fhirURL(resourceType, ""))
	})
	if err != nil {
		log.Err(err).Str("func", "TamanuSession.Post").Str("resource_type", resourceType).Msg("post failed")
		return nil, err
	}

	body := resp.Body()
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, nil
	}
	res, err := resource.Decode(body)
	if err != nil {
		// the resource was created, an undecodable answer is only logged
		log.Warn().Err(err).Str("func", "TamanuSession.Post").Msg("post response is not a resource")
		return nil, nil
	}
	return res, nil
}
