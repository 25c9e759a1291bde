// Command sdfcheck loads an SDF scene description document and reports
// structural load errors and frame-semantics validation defects.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jacoelho/sdf"
	sdferrors "github.com/jacoelho/sdf/errors"
)

// Exit codes: 0 valid, 1 document defects, 2 usage error.
const (
	exitValid    = 0
	exitInvalid  = 1
	exitUsageErr = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var format string

	root := &cobra.Command{
		Use:           "sdfcheck <file.sdf>",
		Short:         "Check an SDF document's structure and frame semantics",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return check(args[0], format, stdout)
		},
	}
	root.Flags().StringVar(&format, "format", "text", "report format: text or yaml")
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		if _, ok := err.(*defectsError); ok {
			return exitInvalid
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		if _, ok := sdferrors.AsDiagnostics(err); ok {
			return exitInvalid
		}
		return exitUsageErr
	}
	return exitValid
}

// defectsError marks a run that completed but found document defects.
type defectsError struct{}

func (*defectsError) Error() string { return "document has defects" }

// report is the machine-readable check result.
type report struct {
	File       string   `yaml:"file"`
	Loaded     bool     `yaml:"loaded"`
	LoadErrors []string `yaml:"load_errors,omitempty"`
	Defects    []string `yaml:"frame_defects,omitempty"`
}

func check(path, format string, out io.Writer) error {
	if format != "text" && format != "yaml" {
		return fmt.Errorf("unknown format %q", format)
	}

	rep := report{File: path}

	var root sdf.Root
	if diags := root.Load(path); !diags.Empty() {
		for _, d := range diags {
			rep.LoadErrors = append(rep.LoadErrors, d.Error())
		}
	} else {
		rep.Loaded = true
		for _, d := range root.Validate() {
			rep.Defects = append(rep.Defects, d.Error())
		}
	}

	if err := write(rep, format, out); err != nil {
		return err
	}
	if len(rep.LoadErrors) > 0 || len(rep.Defects) > 0 {
		return &defectsError{}
	}
	return nil
}

func write(rep report, format string, out io.Writer) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(out)
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		return enc.Close()
	}

	if !rep.Loaded {
		fmt.Fprintf(out, "%s fails to load\n", rep.File)
		for _, msg := range rep.LoadErrors {
			fmt.Fprintln(out, " ", msg)
		}
		return nil
	}
	if len(rep.Defects) > 0 {
		fmt.Fprintf(out, "%s loads but has frame-semantics defects\n", rep.File)
		for _, msg := range rep.Defects {
			fmt.Fprintln(out, " ", msg)
		}
		return nil
	}
	fmt.Fprintf(out, "%s validates\n", rep.File)
	return nil
}
