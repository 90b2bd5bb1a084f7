// Copyright 2015-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Command fakemapd serves an in-memory map server configuration API.
// It answers the same REST calls as a real map server's /rest and
// /gwc/rest endpoints, which makes it useful for trying out client
// code without standing up the real thing.  Nothing is persisted.
package main

import (
	"flag"
	"io/ioutil"

	"github.com/diffeo/go-geoserver/encoder"
	"github.com/diffeo/go-geoserver/memory"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

// config is the optional YAML configuration file.
type config struct {
	// User and Password, if set, are required on every request.
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`

	// Workspaces are created at startup.
	Workspaces []string `mapstructure:"workspaces"`

	// LogLevel is a logrus level name.
	LogLevel string `mapstructure:"log_level"`
}

func main() {
	var err error

	httpBind := flag.String("http", ":8080",
		"[ip]:port for HTTP REST interface")
	prefix := flag.String("prefix", "/geoserver",
		"URL path the API lives under")
	configFile := flag.String("config", "", "configuration YAML file")
	user := flag.String("user", "", "require this basic-auth user")
	password := flag.String("password", "", "require this basic-auth password")
	logRequests := flag.Bool("log-requests", false, "log all requests")
	flag.Parse()

	var cfg config
	if *configFile != "" {
		var raw map[string]interface{}
		raw, err = loadConfigYaml(*configFile)
		if err == nil {
			err = mapstructure.Decode(raw, &cfg)
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"err": err,
			}).Fatal("Could not load YAML configuration")
			return
		}
	}
	if *user != "" {
		cfg.User = *user
		cfg.Password = *password
	}
	if cfg.LogLevel != "" {
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"err":   err,
				"level": cfg.LogLevel,
			}).Fatal("Invalid log level")
			return
		}
		logrus.SetLevel(level)
	}

	catalog := memory.New()
	for _, name := range cfg.Workspaces {
		err = seedWorkspace(catalog, name)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"err":       err,
				"workspace": name,
			}).Fatal("Could not create workspace")
			return
		}
	}

	var reqLogger *logrus.Logger
	if *logRequests {
		stdlog := logrus.StandardLogger()
		reqLogger = &logrus.Logger{
			Out:       stdlog.Out,
			Formatter: stdlog.Formatter,
			Hooks:     stdlog.Hooks,
			Level:     logrus.DebugLevel,
		}
	}

	go observe(catalog)
	server := &HTTP{
		catalog:   catalog,
		laddr:     *httpBind,
		prefix:    *prefix,
		user:      cfg.User,
		password:  cfg.Password,
		reqLogger: reqLogger,
	}
	logrus.WithFields(logrus.Fields{
		"http":   *httpBind,
		"prefix": *prefix,
	}).Info("Serving")
	if err = server.Serve(); err != nil {
		logrus.WithFields(logrus.Fields{
			"err": err,
		}).Fatal("HTTP server failed")
	}
}

func loadConfigYaml(filename string) (map[string]interface{}, error) {
	var result map[string]interface{}
	var err error
	var bytes []byte
	bytes, err = ioutil.ReadFile(filename)
	if err == nil {
		err = yaml.Unmarshal(bytes, &result)
	}
	return result, err
}

// seedWorkspace creates a workspace, and with it its namespace.
func seedWorkspace(catalog *memory.Catalog, name string) error {
	enc := encoder.New("workspace")
	if err := enc.Set("name", name); err != nil {
		return err
	}
	_, err := catalog.Create(memory.Path{"workspaces"}, enc.Root())
	return err
}
