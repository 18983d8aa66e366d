package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ldo/go0r/pkg/plugin"
)

// resolvePlugin loads a plugin either directly from a shared object
// path or by scanning the search directories for its declared name.
func resolvePlugin(nameOrPath string) (*plugin.Plugin, func(), error) {
	if info, err := os.Stat(nameOrPath); err == nil && !info.IsDir() {
		p, err := plugin.Open(nameOrPath)
		if err != nil {
			return nil, nil, err
		}
		return p, func() { _ = p.Close() }, nil
	}

	scanner := plugin.NewScannerWithLogger(log)
	plugins := scanner.ScanAll(cfg.Paths)
	closeAll := func() {
		for _, p := range plugins {
			_ = p.Close()
		}
	}
	p, found := plugins[nameOrPath]
	if !found {
		closeAll()
		return nil, nil, fmt.Errorf("plugin %q not found in %v", nameOrPath, cfg.Paths)
	}
	return p, closeAll, nil
}

var showCmd = &cobra.Command{
	Use:   "show <plugin>",
	Short: "Show one plugin's metadata and parameter schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, done, err := resolvePlugin(args[0])
		if err != nil {
			return err
		}
		defer done()

		if output == "yaml" {
			out, err := yaml.Marshal(report(p))
			if err != nil {
				return err
			}
			cmd.Print(string(out))
			return nil
		}

		major, minor := p.Version()
		cmd.Printf("name:         %s\n", p.Name())
		cmd.Printf("author:       %s\n", p.Author())
		cmd.Printf("type:         %s (%d in / %d out)\n", p.Type(), p.Type().Inputs(), p.Type().Outputs())
		cmd.Printf("colour model: %s\n", p.Model().Name)
		cmd.Printf("version:      %d.%d (frei0r ABI %d)\n", major, minor, p.ABIVersion())
		if p.Explanation() != "" {
			cmd.Printf("explanation:  %s\n", p.Explanation())
		}
		cmd.Printf("path:         %s\n", p.Path())
		params := p.Params()
		if len(params) == 0 {
			cmd.Println("parameters:   none")
			return nil
		}
		cmd.Println("parameters:")
		for _, d := range params {
			cmd.Printf("  [%d] %-20s %-9s %s\n", d.Index, d.Name, d.Kind, d.Explanation)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
