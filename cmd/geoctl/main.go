// Copyright 2016-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Command geoctl inspects and changes a map server's configuration
// from the command line.
//
// Paths name objects relative to the server's REST root, such as
// "workspaces/topp" or "layers/topp:roads"; geoctl escapes each path
// segment.  Settings can come from a YAML file:
//
//     url: http://localhost:8080/geoserver
//     user: admin
//     password: geoserver
//     workspace: topp
//     log_level: info
//
// and command-line flags override the file.
package main

import (
	"io/ioutil"
	"os"

	"github.com/diffeo/go-geoserver/restclient"
	"github.com/diffeo/go-geoserver/restdata"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
	"gopkg.in/yaml.v2"
)

// config holds connection settings, from the YAML file and flags.
type config struct {
	URL       string `mapstructure:"url"`
	User      string `mapstructure:"user"`
	Password  string `mapstructure:"password"`
	Workspace string `mapstructure:"workspace"`
	LogLevel  string `mapstructure:"log_level"`
}

// session is the state shared by every command of one run.
type session struct {
	Config config
	Client *restclient.Client
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

// setup fills in the session from the global flags.
func (s *session) setup(c *cli.Context) (err error) {
	if filename := c.String("config"); filename != "" {
		var raw map[string]interface{}
		raw, err = loadConfigYaml(filename)
		if err == nil {
			err = mapstructure.Decode(raw, &s.Config)
		}
		if err != nil {
			return
		}
	}
	for flag, field := range map[string]*string{
		"url":       &s.Config.URL,
		"user":      &s.Config.User,
		"password":  &s.Config.Password,
		"workspace": &s.Config.Workspace,
		"log-level": &s.Config.LogLevel,
	} {
		if c.IsSet(flag) || *field == "" {
			*field = c.String(flag)
		}
	}

	level, err := logrus.ParseLevel(s.Config.LogLevel)
	if err != nil {
		return
	}
	logrus.SetLevel(level)

	s.Client, err = restclient.New(s.Config.URL, s.Config.User, s.Config.Password)
	if err != nil {
		return
	}
	if c.Bool("json") {
		s.Client.Format = restdata.FormatJSON
	}
	return
}

func newApp() *cli.App {
	s := &session{}
	app := cli.NewApp()
	app.Name = "geoctl"
	app.Usage = "manage a map server's REST configuration"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "YAML configuration file",
		},
		cli.StringFlag{
			Name:  "url",
			Value: "http://localhost:8080/geoserver",
			Usage: "base URL of the map server",
		},
		cli.StringFlag{
			Name:  "user",
			Usage: "basic authentication user",
		},
		cli.StringFlag{
			Name:  "password",
			Usage: "basic authentication password",
		},
		cli.StringFlag{
			Name:  "workspace",
			Usage: "default workspace for workspace-scoped commands",
		},
		cli.StringFlag{
			Name:  "log-level",
			Value: "warning",
			Usage: "logging level (debug, info, warning, error)",
		},
		cli.BoolFlag{
			Name:  "json",
			Usage: "exchange JSON instead of XML",
		},
	}
	app.Commands = []cli.Command{
		existsCommand(s),
		getCommand(s),
		namesCommand(s),
		setCommand(s),
		putCommand(s),
		postCommand(s),
		deleteCommand(s),
		workspaceCommand(s),
	}
	app.Before = s.setup
	return app
}

func main() {
	app := newApp()
	app.Writer = os.Stdout
	app.RunAndExitOnError()
}
