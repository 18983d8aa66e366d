package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ldo/go0r/pkg/plugin"
)

// pluginReport is the serializable view of a descriptor used by the
// list and show commands.
type pluginReport struct {
	Name        string        `yaml:"name"`
	Author      string        `yaml:"author,omitempty"`
	Type        string        `yaml:"type"`
	ColourModel string        `yaml:"colour_model"`
	Version     string        `yaml:"version"`
	Explanation string        `yaml:"explanation,omitempty"`
	Path        string        `yaml:"path"`
	Params      []paramReport `yaml:"params,omitempty"`
}

type paramReport struct {
	Index       int    `yaml:"index"`
	Name        string `yaml:"name"`
	Kind        string `yaml:"kind"`
	Explanation string `yaml:"explanation,omitempty"`
}

func report(p *plugin.Plugin) pluginReport {
	major, minor := p.Version()
	r := pluginReport{
		Name:        p.Name(),
		Author:      p.Author(),
		Type:        p.Type().String(),
		ColourModel: p.Model().Name,
		Version:     fmt.Sprintf("%d.%d", major, minor),
		Explanation: p.Explanation(),
		Path:        p.Path(),
	}
	for _, d := range p.Params() {
		r.Params = append(r.Params, paramReport{
			Index:       d.Index,
			Name:        d.Name,
			Kind:        d.Kind.String(),
			Explanation: d.Explanation,
		})
	}
	return r
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Discover and list available plugins",
	RunE: func(cmd *cobra.Command, args []string) error {
		scanner := plugin.NewScannerWithLogger(log)
		plugins := scanner.ScanAll(cfg.Paths)
		defer func() {
			for _, p := range plugins {
				_ = p.Close()
			}
		}()

		names := make([]string, 0, len(plugins))
		for name := range plugins {
			names = append(names, name)
		}
		sort.Strings(names)

		if output == "yaml" {
			reports := make([]pluginReport, 0, len(names))
			for _, name := range names {
				reports = append(reports, report(plugins[name]))
			}
			out, err := yaml.Marshal(reports)
			if err != nil {
				return err
			}
			cmd.Print(string(out))
			return nil
		}

		for _, name := range names {
			p := plugins[name]
			cmd.Printf("%-28s %-7s %-9s %s\n", name, p.Type(), p.Model().Name, p.Explanation())
		}
		cmd.Printf("%d plugin(s) in %d director(ies)\n", len(names), len(cfg.Paths))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
