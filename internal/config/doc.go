// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config provides configuration loading, merging, and validation
// facilities for the bridge commands.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Environment variables
//  3. JSON config file
//  4. Command-line flags
//
// The main entry points are [GetSyncConfig] and [GetTasksConfig], which
// build a [StructuredConfig] and validate the command-specific view of it.
package config
