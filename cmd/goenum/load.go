package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/reoring/goenum"
	"github.com/reoring/goenum/source/gojson"
	yamlsrc "github.com/reoring/goenum/source/yaml"
)

func (a *app) options() goenum.Options {
	return goenum.Options{
		MaxDepth: a.v.GetInt(cfgKeyMaxDepth),
		MaxBytes: a.v.GetInt64(cfgKeyMaxBytes),
		Logger:   a.log,
	}
}

func (a *app) selectDriver() error {
	switch d := a.v.GetString(cfgKeyDriver); d {
	case driverStd, "":
		goenum.UseDefaultJSONDriver()
	case driverGoJSON:
		goenum.SetJSONDriver(gojson.Driver())
	default:
		return userErrorf("unknown driver %q (want %s or %s)", d, driverStd, driverGoJSON)
	}
	return nil
}

// load builds the registry stored in path. The format follows the extension.
func (a *app) load(path string) (*goenum.Node, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".json" && ext != ".yaml" && ext != ".yml" {
		return nil, userErrorf("unsupported file extension %q (want .json, .yaml or .yml)", ext)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &exitError{code: exitSysError, err: err}
	}
	defer f.Close()

	opts := a.options()
	if ext == ".json" {
		if err := a.selectDriver(); err != nil {
			return nil, err
		}
		a.log.Debug("loading spec", "file", path, "driver", goenum.CurrentJSONDriver().Name())
		return a.checkBuild(goenum.BuildFrom(goenum.JSONReader(f), opts))
	}
	a.log.Debug("loading spec", "file", path, "format", "yaml")
	return a.checkBuild(yamlsrc.Build(f, opts))
}

// checkBuild turns spec problems into user errors.
func (a *app) checkBuild(n *goenum.Node, err error) (*goenum.Node, error) {
	if err == nil {
		return n, nil
	}
	if goenum.ErrorCode(err) != "" {
		return nil, &exitError{code: exitUserError, err: err}
	}
	return nil, &exitError{code: exitUserError, err: fmt.Errorf("parse: %w", err)}
}

// level resolves a dotted --at path below root.
func level(root *goenum.Node, at string) (*goenum.Node, error) {
	n, ok := root.Walk(goenum.ParsePath(at)...)
	if !ok {
		return nil, userErrorf("no nested level at %q", at)
	}
	return n, nil
}
