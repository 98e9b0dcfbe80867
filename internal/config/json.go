// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the layout of the optional JSON config file.
type StructuredJSONConfig struct {
	Tamanu struct {
		Host           string   `json:"host"`
		User           string   `json:"user"`
		RequestTimeout Duration `json:"request_timeout"`
		PageSize       int      `json:"page_size"`
	} `json:"tamanu,omitempty"`

	LIMS struct {
		User        string `json:"user"`
		ServiceUser string `json:"service_user"`
	} `json:"lims,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Sync struct {
		Resource   string `json:"resource"`
		Since      string `json:"since"`
		Cache      string `json:"cache"`
		CacheSince string `json:"cache_since"`
		Dry        bool   `json:"dry"`
		MaxRetries int    `json:"max_retries"`
	} `json:"sync,omitempty"`

	Tasks struct {
		MaxTasks         int   `json:"max_tasks"`
		SendObservations *bool `json:"send_observations"`
	} `json:"tasks,omitempty"`

	Metrics struct {
		Textfile string `json:"textfile"`
	} `json:"metrics,omitempty"`

	Verbose bool `json:"verbose"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Tamanu: Tamanu{
			Host:           jsonCfg.Tamanu.Host,
			User:           jsonCfg.Tamanu.User,
			RequestTimeout: time.Duration(jsonCfg.Tamanu.RequestTimeout),
			PageSize:       jsonCfg.Tamanu.PageSize,
		},
		LIMS: LIMS{
			User:        jsonCfg.LIMS.User,
			ServiceUser: jsonCfg.LIMS.ServiceUser,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Sync: Sync{
			Resource:   jsonCfg.Sync.Resource,
			Since:      jsonCfg.Sync.Since,
			Cache:      jsonCfg.Sync.Cache,
			CacheSince: jsonCfg.Sync.CacheSince,
			Dry:        jsonCfg.Sync.Dry,
			MaxRetries: jsonCfg.Sync.MaxRetries,
		},
		Tasks: Tasks{
			MaxTasks:         jsonCfg.Tasks.MaxTasks,
			SendObservations: jsonCfg.Tasks.SendObservations,
		},
		Metrics: Metrics{
			Textfile: jsonCfg.Metrics.Textfile,
		},
		Verbose:      jsonCfg.Verbose,
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
