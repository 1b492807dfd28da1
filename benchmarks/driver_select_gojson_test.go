//go:build gojson

package goenum_test

import (
	goenum "github.com/reoring/goenum"
	drv "github.com/reoring/goenum/source/gojson"
)

func init() {
	goenum.SetJSONDriver(drv.Driver())
}
