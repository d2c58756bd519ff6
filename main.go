// Command matth evaluates a scene script and answers exact distance and
// raycast queries against it, printing the result as JSON.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/minsley/Matth/pkg/config"
	"github.com/spf13/cobra"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("matth: ")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		distance   string
		ray        string
		stlPath    string
		mesh       bool
	)

	cmd := &cobra.Command{
		Use:   "matth [flags] scene.matth",
		Short: "Exact signed distance and raycast queries for sphere and capsule scenes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			q := Query{Mesh: mesh, STLPath: stlPath}
			if distance != "" {
				p, err := parseVec(distance)
				if err != nil {
					return fmt.Errorf("--distance: %w", err)
				}
				q.Distance = &p
			}
			if ray != "" {
				r, err := parseRay(ray)
				if err != nil {
					return fmt.Errorf("--ray: %w", err)
				}
				q.Ray = &r
			}

			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			res := NewApp(cfg).Query(string(source), q)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
			if len(res.Errors) > 0 {
				return fmt.Errorf("%s: %d error(s)", args[0], len(res.Errors))
			}
			return nil
		},
		SilenceUsage: true,
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "matth.toml", "TOML settings file; a missing file uses defaults")
	f.StringVar(&distance, "distance", "", "report the signed distance at `x,y,z`")
	f.StringVar(&ray, "ray", "", "trace a ray given as `ox,oy,oz:dx,dy,dz`")
	f.StringVar(&stlPath, "stl", "", "write the union of the roots to this STL `file`")
	f.BoolVar(&mesh, "mesh", false, "include a triangle mesh per root in the output")

	return cmd
}
