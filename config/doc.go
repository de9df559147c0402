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


// Package config loads runtime configuration.
//
// Values are layered, later sources winning:
//
//  1. DefaultConfig
//  2. a YAML file read with viper (keys: mode, data_dir, content_dir,
//     remote_url, local_backend, pool_size)
//  3. environment variables with the CHARKEEP_ prefix
//     (CHARKEEP_MODE, CHARKEEP_DATA_DIR, ...)
//
// Command-line flags are applied by the caller on top of the loaded Config.
package config
