// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command tamanu synchronizes Tamanu lab requests and patients into the
// local LIMS store and sends the results back as DiagnosticReports.
//
//	tamanu sync --tamanu_host https://tamanu.example --tamanu_user lab:secret -r ServiceRequest
//	tamanu tasks --tamanu_host https://tamanu.example --tamanu_user lab:secret -m 50
//	tamanu notify --sample <uid>
//	tamanu migrate
//	tamanu version
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/lims-tamanu-bridge/internal/app"
	"github.com/MKhiriev/lims-tamanu-bridge/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	root := newRootCmd(info)

	if err := root.ExecuteContext(ctx); err != nil {
		return app.Fail(os.Stdout, err)
	}
	return app.ExitOK
}

func printBuildInfo(info models.AppBuildInfo) {
	fmt.Println(info.String())
}
