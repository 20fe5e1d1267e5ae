package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Honny1/openscap/server/config"
	"github.com/Honny1/openscap/server/contexts/ctxerr"
	"github.com/Honny1/openscap/server/oval"
	"github.com/Honny1/openscap/server/oval/ovalxml"
	"github.com/clbanning/mxj"
	"github.com/fatih/color"
	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

// initLogger builds the logger described by cfg. When a log file is
// configured, logs go to both output and the file, and the returned closer
// releases the file.
func initLogger(cfg config.OvalinfoConfig, output io.Writer) (kitlog.Logger, io.Closer) {
	var closer io.Closer = io.NopCloser(nil)
	if cfg.Logging.File != "" {
		logFile := &lumberjack.Logger{
			Filename:   filepath.Clean(cfg.Logging.File),
			MaxSize:    25, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
		}
		output = io.MultiWriter(output, logFile)
		closer = logFile
	}

	var logger kitlog.Logger
	if cfg.Logging.JSON {
		logger = kitlog.NewJSONLogger(kitlog.NewSyncWriter(output))
	} else {
		logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(output))
	}
	if cfg.Logging.Debug {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowInfo())
	}
	return kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC), closer
}

// command holds what every subcommand needs once the config is loaded.
type command struct {
	cfg    config.OvalinfoConfig
	logger kitlog.Logger
	ctx    context.Context
	out    io.Writer
	errOut io.Writer
	logs   io.Closer
}

func newCommand(cmd *cobra.Command, configManager config.Manager) (*command, error) {
	cfg, err := configManager.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, logs := initLogger(cfg, cmd.ErrOrStderr())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ctxerr.NewContext(ctx, ctxerr.HandlerFunc(func(ctx context.Context, err error) error {
		level.Error(logger).Log("err", err, "cause", ctxerr.Cause(err))
		return err
	}))

	return &command{
		cfg:    cfg,
		logger: logger,
		ctx:    ctx,
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
		logs:   logs,
	}, nil
}

// Close releases the log file, if any.
func (c *command) Close() error {
	return c.logs.Close()
}

// handle passes err to the error handler, which logs it.
func (c *command) handle(err error) error {
	if err == nil {
		return nil
	}
	return ctxerr.Handle(c.ctx, err)
}

func (c *command) parser() oval.Parser {
	return oval.Parser{
		Logger:         c.logger,
		SkipValidation: !c.cfg.Parser.Validate,
	}
}

// openInput opens path for reading, "-" being the standard input.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

// checkWarnings reports the parse warnings and fails in strict mode with all
// of them.
func (c *command) checkWarnings(path string, warnings []ovalxml.Warning) error {
	if len(warnings) == 0 {
		return nil
	}
	color.New(color.FgYellow).Fprintf(c.errOut, "WARNING: %s: %d element(s) could not be resolved\n", path, len(warnings))
	if c.cfg.Parser.Strict {
		var merr *multierror.Error
		for i := range warnings {
			merr = multierror.Append(merr, &warnings[i])
		}
		return ctxerr.Wrapf(c.ctx, merr.ErrorOrNil(), "strict mode, %s", path)
	}
	return nil
}

// writeOutput writes the xml produced by writeXML in the configured format.
// Text output is handled by the callers.
func (c *command) writeOutput(writeXML func(w io.Writer, indent int) error) error {
	switch c.cfg.Output.Format {
	case config.OutputFormatXML:
		if err := writeXML(c.out, c.cfg.Output.Indent); err != nil {
			return err
		}
		_, err := fmt.Fprintln(c.out)
		return err
	case config.OutputFormatJSON:
		var buf bytes.Buffer
		if err := writeXML(&buf, 0); err != nil {
			return err
		}
		m, err := mxj.NewMapXml(buf.Bytes())
		if err != nil {
			return fmt.Errorf("convert xml to json: %w", err)
		}
		payload, err := m.JsonIndent("", strings.Repeat(" ", c.cfg.Output.Indent))
		if err != nil {
			return fmt.Errorf("convert xml to json: %w", err)
		}
		_, err = fmt.Fprintln(c.out, string(payload))
		return err
	default:
		return ctxerr.New(c.ctx, fmt.Sprintf("unsupported output format %q", c.cfg.Output.Format))
	}
}
