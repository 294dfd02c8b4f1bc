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

package config

const (
	// DefaultFetchTimeoutSeconds is the default timeout for outbound image downloads.
	DefaultFetchTimeoutSeconds = 30

	// DefaultImageCacheDirectory is the default directory for cached image files.
	DefaultImageCacheDirectory = "cache/images"
	// DefaultImageCacheTTLSeconds is the default TTL for cached images (7 days).
	DefaultImageCacheTTLSeconds = 604800
	// DefaultImageCacheSizeBytes is the default size budget for the image namespace (50 MiB).
	DefaultImageCacheSizeBytes = 50 << 20

	// DefaultAPICacheTTLSeconds is the default TTL for cached API responses (5 minutes).
	DefaultAPICacheTTLSeconds = 300
	// DefaultAPICacheSizeBytes is the default size budget for the API namespace (8 MiB).
	DefaultAPICacheSizeBytes = 8 << 20

	// DefaultMaintenanceIntervalSeconds is the default interval between maintenance sweeps.
	DefaultMaintenanceIntervalSeconds = 300
)
