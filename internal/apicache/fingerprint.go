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
	"sort"
	"strings"
)

// Fingerprint builds the canonical cache key for a request: method, URL, and
// parameters sorted by name. Two requests with the same method, URL, and
// parameter set always produce the same fingerprint regardless of parameter
// order.
func Fingerprint(method, requestURL string, params map[string]string) string {
	var builder strings.Builder
	builder.WriteString(strings.ToUpper(method))
	builder.WriteString("|")
	builder.WriteString(requestURL)

	if len(params) > 0 {
		names := make([]string, 0, len(params))
		for name := range params {
			names = append(names, name)
		}
		sort.Strings(names)

		builder.WriteString("|")
		for i, name := range names {
			if i > 0 {
				builder.WriteString("&")
			}
			builder.WriteString(name)
			builder.WriteString("=")
			builder.WriteString(params[name])
		}
	}

	return builder.String()
}
