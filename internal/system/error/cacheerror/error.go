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

// Package cacheerror defines the error structures for the cache layer.
package cacheerror

import (
	"errors"
	"fmt"
)

// DecodeError indicates that a stored cache record could not be parsed.
// Callers recover from it locally by treating the record as a cache miss.
type DecodeError struct {
	Reason string
	Err    error
}

// Error returns the error message for the DecodeError.
func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cache record decode failed: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("cache record decode failed: %s", e.Reason)
}

// Unwrap returns the underlying error of the DecodeError.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// FetchError indicates that a network fetch failed. It is surfaced to the
// immediate caller and never retried by the cache layer itself.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error returns the error message for the FetchError.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch failed for %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch failed for %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying error of the FetchError.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// StoreUnavailableError indicates that the persistent store rejected an
// operation. Read paths treat it as a miss; maintenance surfaces it in the
// sweep report for diagnostics.
type StoreUnavailableError struct {
	Op  string
	Err error
}

// Error returns the error message for the StoreUnavailableError.
func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("persistent store unavailable during %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error of the StoreUnavailableError.
func (e *StoreUnavailableError) Unwrap() error {
	return e.Err
}

// IsDecodeError reports whether the error chain contains a DecodeError.
func IsDecodeError(err error) bool {
	var target *DecodeError
	return errors.As(err, &target)
}

// IsFetchError reports whether the error chain contains a FetchError.
func IsFetchError(err error) bool {
	var target *FetchError
	return errors.As(err, &target)
}

// IsStoreUnavailableError reports whether the error chain contains a StoreUnavailableError.
func IsStoreUnavailableError(err error) bool {
	var target *StoreUnavailableError
	return errors.As(err, &target)
}
