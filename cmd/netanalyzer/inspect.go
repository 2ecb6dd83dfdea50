package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-netanalyzer/pkg/netio"
	"github.com/dd0wney/cluso-netanalyzer/pkg/network"
)

// inspectReport is printed by the inspect command.
type inspectReport struct {
	File               string `yaml:"file"`
	network.Inspection `yaml:",inline"`
	// Interpretations lists the analysis modes worth running, defaults
	// first.
	Interpretations []string `yaml:"interpretations"`
}

func newInspectCmd(global *globalOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inspect <network-file>",
		Short: "Summarise a network and list the interpretations it supports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := global.load(); err != nil {
				return err
			}
			return runInspect(cmd.OutOrStdout(), args[0], format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "Input format: sif, edgelist, json (default: from extension)")
	return cmd
}

func runInspect(w io.Writer, path, format string) error {
	host, err := netio.ReadFile(path, format)
	if err != nil {
		return err
	}

	ins := network.Inspect(host.View())
	report := inspectReport{File: path, Inspection: ins}
	for _, in := range ins.Interpretations() {
		report.Interpretations = append(report.Interpretations, in.String())
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}
