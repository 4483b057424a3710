//go:build !cgo

package host

import (
	"context"
	"errors"

	"github.com/edwinsyarief/combine/app"
)

// Runner reports that window mode is unavailable in this build.
func Runner(context.Context) app.Runner {
	return func(*app.App) error {
		return errors.New("window mode requires cgo (build/run with CGO_ENABLED=1)")
	}
}
