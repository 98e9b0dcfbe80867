// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the environment. Sections are read under their
// envPrefix tag, so TAMANU_HOST lands in cfg.Tamanu.Host and
// STORAGE_DB_DSN in cfg.Storage.DB.DSN. Unset variables leave the zero
// value, which the merge treats as "not configured".
func parseEnv(cfg *StructuredConfig) error {
	if err := env.ParseWithOptions(cfg, env.Options{}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}
