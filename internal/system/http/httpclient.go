/*
 * Copyright (c) 2025, Bazario Labs. (https://bazario.io)
 *
 * Bazario Labs licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

// Package http provides a centralized HTTP client for making outbound requests.
package http

import (
	"context"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// ClientInterface defines the interface for HTTP client operations.
type ClientInterface interface {
	// Do executes an HTTP request and returns an HTTP response.
	Do(req *http.Request) (*http.Response, error)
	// Get issues a GET to the specified URL, bounded by the client timeout
	// and the provided context.
	Get(ctx context.Context, url string) (*http.Response, error)
}

// Client implements ClientInterface with a bounded request timeout.
type Client struct {
	client *http.Client
}

// NewClient creates a new Client with the default timeout.
func NewClient() ClientInterface {
	return NewClientWithTimeout(defaultTimeout)
}

// NewClientWithTimeout creates a new Client with a custom timeout.
func NewClientWithTimeout(timeout time.Duration) ClientInterface {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// NewClientWithConfig creates a new Client wrapping the given http.Client.
func NewClientWithConfig(client *http.Client) ClientInterface {
	return &Client{
		client: client,
	}
}

// Do executes an HTTP request and returns an HTTP response.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}

// Get issues a GET to the specified URL.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.client.Do(req)
}
