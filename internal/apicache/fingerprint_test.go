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

package apicache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	testCases := []struct {
		name     string
		method   string
		url      string
		params   map[string]string
		expected string
	}{
		{
			name:     "NoParams",
			method:   "GET",
			url:      "/v1/categories",
			expected: "GET|/v1/categories",
		},
		{
			name:     "SingleParam",
			method:   "GET",
			url:      "/v1/listings",
			params:   map[string]string{"category": "tools"},
			expected: "GET|/v1/listings|category=tools",
		},
		{
			name:     "ParamsSortedByName",
			method:   "GET",
			url:      "/v1/listings",
			params:   map[string]string{"radius": "5", "category": "tools", "lat": "40.7"},
			expected: "GET|/v1/listings|category=tools&lat=40.7&radius=5",
		},
		{
			name:     "MethodUppercased",
			method:   "get",
			url:      "/v1/categories",
			expected: "GET|/v1/categories",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Fingerprint(tc.method, tc.url, tc.params))
		})
	}
}

func TestFingerprintIsOrderIndependent(t *testing.T) {
	a := Fingerprint("GET", "/v1/listings", map[string]string{"a": "1", "b": "2", "c": "3"})
	b := Fingerprint("GET", "/v1/listings", map[string]string{"c": "3", "a": "1", "b": "2"})
	assert.Equal(t, a, b)
}
