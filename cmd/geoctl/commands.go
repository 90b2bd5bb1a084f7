// Copyright 2016-2026 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package main

import (
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/diffeo/go-geoserver/decoder"
	"github.com/diffeo/go-geoserver/encoder"
	"github.com/diffeo/go-geoserver/restclient"
	"github.com/diffeo/go-geoserver/restdata"
	"github.com/urfave/cli"
)

// errNoPath is returned when a command is not given an object path.
var errNoPath = errors.New("missing object path")

// errNoName is returned when a workspace command has neither a name
// argument nor a configured default workspace.
var errNoName = errors.New("missing workspace name")

// gwcPrefix marks a path as belonging to the tile cache API.
const gwcPrefix = "gwc/"

// objectURL turns a user-supplied path into a URL.  Each "/"-separated
// segment is escaped on its own.  If suffix is true the client's
// format suffix is added.
func (s *session) objectURL(path string, suffix bool) (string, error) {
	root := s.Client.RESTRoot()
	if strings.HasPrefix(path, gwcPrefix) {
		root = s.Client.GWCRoot()
		path = path[len(gwcPrefix):]
	}
	var segments []string
	for _, segment := range strings.Split(path, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	if len(segments) == 0 {
		return "", errNoPath
	}
	u := restdata.JoinPath(root, segments...)
	if suffix && !hasSuffix(segments[len(segments)-1]) {
		u = restdata.WithSuffix(u, s.Client.Format.Suffix())
	}
	return u, nil
}

// hasSuffix returns true if a path segment already picks a
// representation, like "line.sld".
func hasSuffix(segment string) bool {
	switch strings.ToLower(filepath.Ext(segment)) {
	case ".xml", ".json", ".sld":
		return true
	}
	return false
}

// pathArg returns the URL for the command's first argument.
func (s *session) pathArg(c *cli.Context) (string, error) {
	return s.objectURL(c.Args().First(), true)
}

// fetch reads a document, turning absence into an error.
func (s *session) fetch(u string) (*decoder.View, error) {
	out := s.Client.Do(http.MethodGet, u, nil, "")
	if err := out.Error(); err != nil {
		return nil, err
	}
	view := out.View()
	if view == nil {
		return nil, fmt.Errorf("%v: response is not a document", u)
	}
	return view, nil
}

func existsCommand(s *session) cli.Command {
	return cli.Command{
		Name:      "exists",
		Usage:     "check whether an object exists",
		ArgsUsage: "PATH",
		Action: func(c *cli.Context) error {
			u, err := s.pathArg(c)
			if err != nil {
				return err
			}
			u = restdata.QuietOnNotFound(u)
			exists, err := restclient.Exists(u, s.Config.User, s.Config.Password)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, exists)
			return nil
		},
	}
}

func getCommand(s *session) cli.Command {
	return cli.Command{
		Name:      "get",
		Usage:     "print an object's document",
		ArgsUsage: "PATH",
		Action: func(c *cli.Context) error {
			u, err := s.pathArg(c)
			if err != nil {
				return err
			}
			out := s.Client.Do(http.MethodGet, u, nil, "")
			if err := out.Error(); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, string(out.Body))
			return nil
		},
	}
}

func namesCommand(s *session) cli.Command {
	return cli.Command{
		Name:      "names",
		Usage:     "list the names of a collection's members",
		ArgsUsage: "PATH",
		Action: func(c *cli.Context) error {
			u, err := s.pathArg(c)
			if err != nil {
				return err
			}
			view, err := s.fetch(u)
			if err != nil {
				return err
			}
			items, err := view.Items()
			if err != nil {
				return err
			}
			for _, name := range items.Names() {
				fmt.Fprintln(c.App.Writer, name)
			}
			return nil
		},
	}
}

func setCommand(s *session) cli.Command {
	return cli.Command{
		Name:      "set",
		Usage:     "change some fields of an object, leaving the rest alone",
		ArgsUsage: "PATH FIELD=VALUE...",
		Description: "FIELD is a /-separated path within the document, such as\n" +
			"   defaultStyle/name.  An empty VALUE is ignored.",
		Action: func(c *cli.Context) error {
			u, err := s.pathArg(c)
			if err != nil {
				return err
			}
			// The root element has to match the object's type
			current, err := s.fetch(u)
			if err != nil {
				return err
			}
			enc := encoder.New(current.Name())
			for _, arg := range c.Args().Tail() {
				parts := strings.SplitN(arg, "=", 2)
				if len(parts) != 2 {
					return fmt.Errorf("expected FIELD=VALUE, got %q", arg)
				}
				if err := enc.Set(parts[0], parts[1]); err != nil {
					return err
				}
			}
			if enc.IsEmpty() {
				return restclient.ErrEmptyPayload
			}
			body, err := s.Client.Format.Marshal(enc.Root())
			if err != nil {
				return err
			}
			return s.Client.Do(http.MethodPut, u, body, s.Client.Format.MediaType()).Error()
		},
	}
}

// contentType picks the media type of an uploaded file: the flag if
// given, else from the file extension, else the client's format.
func (s *session) contentType(c *cli.Context, filename string) string {
	if ct := c.String("content-type"); ct != "" {
		return ct
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".sld":
		return restdata.SLDMediaType
	case ".se":
		return restdata.SE11MediaType
	case ".zip":
		return restdata.ZipMediaType
	case ".xml":
		return restdata.XMLMediaType
	case ".json":
		return restdata.JSONMediaType
	}
	return s.Client.Format.MediaType()
}

// isDocument returns true if a media type is a catalog document, so
// that the URL takes a format suffix.
func isDocument(mediaType string) bool {
	_, err := restdata.FormatOf(mediaType)
	return err == nil && mediaType != restdata.SLDMediaType && mediaType != restdata.SE11MediaType
}

// readBody reads a file, or standard input for "-".
func readBody(filename string) ([]byte, error) {
	if filename == "-" {
		return ioutil.ReadAll(os.Stdin)
	}
	return ioutil.ReadFile(filename)
}

// upload sends the file named by the second argument to the object
// at the first.
func (s *session) upload(c *cli.Context, method string) (restclient.Outcome, error) {
	filename := c.Args().Get(1)
	if filename == "" {
		return restclient.Outcome{}, fmt.Errorf("usage: %v PATH FILE", c.Command.Name)
	}
	body, err := readBody(filename)
	if err != nil {
		return restclient.Outcome{}, err
	}
	ct := s.contentType(c, filename)
	u, err := s.objectURL(c.Args().First(), isDocument(ct))
	if err != nil {
		return restclient.Outcome{}, err
	}
	out := s.Client.Do(method, u, body, ct)
	return out, out.Error()
}

var contentTypeFlag = cli.StringFlag{
	Name:  "content-type",
	Usage: "media type of FILE (default: from its extension)",
}

func putCommand(s *session) cli.Command {
	return cli.Command{
		Name:      "put",
		Usage:     "send a file to an object, creating or updating it",
		ArgsUsage: "PATH FILE",
		Flags:     []cli.Flag{contentTypeFlag},
		Action: func(c *cli.Context) error {
			_, err := s.upload(c, http.MethodPut)
			return err
		},
	}
}

func postCommand(s *session) cli.Command {
	return cli.Command{
		Name:      "post",
		Usage:     "send a file to a collection, creating a member",
		ArgsUsage: "PATH FILE",
		Flags:     []cli.Flag{contentTypeFlag},
		Action: func(c *cli.Context) error {
			out, err := s.upload(c, http.MethodPost)
			if err != nil {
				return err
			}
			if out.Location != "" {
				fmt.Fprintln(c.App.Writer, out.Location)
			}
			return nil
		},
	}
}

func deleteCommand(s *session) cli.Command {
	return cli.Command{
		Name:      "delete",
		Usage:     "remove an object",
		ArgsUsage: "PATH",
		Flags: []cli.Flag{
			cli.BoolFlag{
				Name:  "recurse",
				Usage: "also remove everything that depends on the object",
			},
			cli.StringFlag{
				Name:  "purge",
				Usage: "also remove files: true, all, metadata or none",
			},
		},
		Action: func(c *cli.Context) error {
			u, err := s.pathArg(c)
			if err != nil {
				return err
			}
			if c.Bool("recurse") {
				u = restdata.Recurse(u)
			}
			if purge := c.String("purge"); purge != "" {
				u = restdata.Purge(u, purge)
			}
			out := s.Client.Do(http.MethodDelete, u, nil, "")
			if out.Kind == restclient.NotFound {
				fmt.Fprintln(c.App.Writer, false)
				return nil
			}
			if err := out.Error(); err != nil {
				return err
			}
			fmt.Fprintln(c.App.Writer, true)
			return nil
		},
	}
}

// workspaceName is the first argument, or the configured default.
func (s *session) workspaceName(c *cli.Context) (string, error) {
	if name := c.Args().First(); name != "" {
		return name, nil
	}
	if s.Config.Workspace != "" {
		return s.Config.Workspace, nil
	}
	return "", errNoName
}

func workspaceCommand(s *session) cli.Command {
	return cli.Command{
		Name:  "workspace",
		Usage: "manage workspaces",
		Subcommands: []cli.Command{
			{
				Name:      "create",
				Usage:     "create a workspace",
				ArgsUsage: "[NAME]",
				Flags: []cli.Flag{
					cli.BoolFlag{
						Name:  "isolated",
						Usage: "hide the workspace from global services",
					},
				},
				Action: func(c *cli.Context) error {
					name, err := s.workspaceName(c)
					if err != nil {
						return err
					}
					return s.Client.CreateWorkspace(name, c.Bool("isolated"))
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a workspace",
				ArgsUsage: "[NAME]",
				Flags: []cli.Flag{
					cli.BoolFlag{
						Name:  "recurse",
						Usage: "also remove its stores, layers and styles",
					},
				},
				Action: func(c *cli.Context) error {
					name, err := s.workspaceName(c)
					if err != nil {
						return err
					}
					deleted, err := s.Client.DeleteWorkspace(name, c.Bool("recurse"))
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, deleted)
					return nil
				},
			},
			{
				Name:  "list",
				Usage: "list workspaces",
				Action: func(c *cli.Context) error {
					names, err := s.Client.Workspaces()
					if err != nil {
						return err
					}
					for _, name := range names {
						fmt.Fprintln(c.App.Writer, name)
					}
					return nil
				},
			},
		},
	}
}
