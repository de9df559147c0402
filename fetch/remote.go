// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package fetch

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/poiesic/charkeep/core"
	"github.com/valyala/fasthttp"
)

// DefaultRemoteURL is the public D&D 5e SRD API.
const DefaultRemoteURL = "https://www.dnd5eapi.co/api"

// Remote fetches documents over HTTP from a base URL.
type Remote struct {
	baseURL string
	client  *fasthttp.Client
}

var _ Fetcher = (*Remote)(nil)

// NewRemote creates a fetcher for paths under baseURL.
// An empty baseURL uses DefaultRemoteURL.
func NewRemote(baseURL string) *Remote {
	if baseURL == "" {
		baseURL = DefaultRemoteURL
	}
	return &Remote{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client: &fasthttp.Client{
			Name: "charkeep",
		},
	}
}

// BaseURL returns the URL prefix used for relative paths.
func (r *Remote) BaseURL() string {
	return r.baseURL
}

// URL returns the absolute URL for p. Absolute http(s) URLs pass through.
func (r *Remote) URL(p string) string {
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	return r.baseURL + "/" + strings.TrimPrefix(p, "/")
}

// Fetch issues a GET for p. A 404 maps to core.ErrNotFound; any other
// non-2xx status or transport error maps to core.ErrUnreachable.
func (r *Remote) Fetch(ctx context.Context, p string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	url := r.URL(p)
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	var err error
	if deadline, ok := ctx.Deadline(); ok {
		err = r.client.DoDeadline(req, resp, deadline)
	} else {
		err = r.client.Do(req, resp)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", core.ErrUnreachable, url, err)
	}

	status := resp.StatusCode()
	switch {
	case status == fasthttp.StatusNotFound:
		return nil, fmt.Errorf("%w: GET %s", core.ErrNotFound, url)
	case status < 200 || status >= 300:
		return nil, fmt.Errorf("%w: GET %s: status %d", core.ErrUnreachable, url, status)
	}

	// Body is only valid until the response is released.
	return bytes.Clone(resp.Body()), nil
}
