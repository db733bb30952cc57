package main

import (
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/hupe1980/molsel"
	"github.com/hupe1980/molsel/codec"
	"github.com/hupe1980/molsel/geom"
	"github.com/hupe1980/molsel/loci"
	"github.com/spf13/cobra"
)

type globalFlags struct {
	structurePath string
	configPath    string
	logLevel      string
	json          bool
}

func newRootCmd() *cobra.Command {
	var g globalFlags
	root := &cobra.Command{
		Use:           "molsel",
		Short:         "Spatial queries and selections over molecular structures",
		Long:          `Run radius and nearest-neighbor queries against a JSON structure fixture and turn the hits into re-evaluatable selection expressions.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&g.structurePath, "structure", "s", "", "structure fixture (JSON)")
	pf.StringVar(&g.configPath, "config", "", "YAML config file")
	pf.StringVar(&g.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	pf.BoolVar(&g.json, "json", false, "print JSON")
	_ = root.MarkPersistentFlagRequired("structure")

	root.AddCommand(newFindCmd(&g), newNearestCmd(&g), newExprCmd(&g))
	return root
}

// open loads config and structure and creates an Explorer logging to stderr.
func (g *globalFlags) open(cmd *cobra.Command) (*molsel.Explorer, Config, error) {
	cfg, err := loadConfig(g.configPath)
	if err != nil {
		return nil, Config{}, err
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
		if err := validate.Struct(cfg); err != nil {
			return nil, Config{}, fmt.Errorf("invalid --log-level: %w", err)
		}
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg)
	f, err := readFixture(g.structurePath)
	if err != nil {
		return nil, Config{}, err
	}
	s, err := f.Build(cfg.lookupOptions())
	if err != nil {
		return nil, Config{}, fmt.Errorf("build structure: %w", err)
	}
	c, _ := codec.ByName(cfg.Codec)
	ex, err := molsel.New(s, molsel.WithLogger(logger), molsel.WithCodec(c))
	if err != nil {
		return nil, Config{}, err
	}
	return ex, cfg, nil
}

func newLogger(w io.Writer, cfg Config) *molsel.Logger {
	opts := &slog.HandlerOptions{Level: cfg.level()}
	if cfg.LogFormat == "json" {
		return molsel.NewLogger(slog.NewJSONHandler(w, opts))
	}
	return molsel.NewLogger(slog.NewTextHandler(w, opts))
}

func parsePoint(s string) (geom.Vec3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geom.Vec3{}, fmt.Errorf("point %q: want x,y,z", s)
	}
	var p geom.Vec3
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return geom.Vec3{}, fmt.Errorf("point %q: %w", s, err)
		}
		p[i] = v
	}
	return p, nil
}

func printHits(w io.Writer, asJSON bool, hits []molsel.Hit) error {
	if asJSON {
		return gojson.NewEncoder(w).Encode(hits)
	}
	for _, h := range hits {
		fmt.Fprintf(w, "unit=%d element=%d source=%d squared_distance=%.4f\n",
			h.UnitID, h.Element, h.SourceIndex, h.SquaredDistance)
	}
	return nil
}

func newFindCmd(g *globalFlags) *cobra.Command {
	var (
		at     string
		radius float64
	)
	cmd := &cobra.Command{
		Use:   "find",
		Short: "List elements within a radius of a point",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePoint(at)
			if err != nil {
				return err
			}
			ex, _, err := g.open(cmd)
			if err != nil {
				return err
			}
			hits, err := ex.Within(cmd.Context(), p, radius)
			if err != nil {
				return err
			}
			return printHits(cmd.OutOrStdout(), g.json, hits)
		},
	}
	cmd.Flags().StringVar(&at, "at", "0,0,0", "query point x,y,z")
	cmd.Flags().Float64VarP(&radius, "radius", "r", 5, "query radius")
	return cmd
}

func newNearestCmd(g *globalFlags) *cobra.Command {
	var (
		at string
		k  int
	)
	cmd := &cobra.Command{
		Use:   "nearest",
		Short: "List the k elements nearest to a point",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePoint(at)
			if err != nil {
				return err
			}
			ex, _, err := g.open(cmd)
			if err != nil {
				return err
			}
			hits, err := ex.Nearest(cmd.Context(), p, k)
			if err != nil {
				return err
			}
			return printHits(cmd.OutOrStdout(), g.json, hits)
		},
	}
	cmd.Flags().StringVar(&at, "at", "0,0,0", "query point x,y,z")
	cmd.Flags().IntVar(&k, "k", 1, "number of neighbors")
	return cmd
}

func newExprCmd(g *globalFlags) *cobra.Command {
	var (
		at          string
		radius      float64
		granularity string
		encode      bool
	)
	cmd := &cobra.Command{
		Use:   "expr",
		Short: "Print the selection expression for the elements around a point",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parsePoint(at)
			if err != nil {
				return err
			}
			gr, err := loci.ParseGranularity(granularity)
			if err != nil {
				return err
			}
			ex, cfg, err := g.open(cmd)
			if err != nil {
				return err
			}
			sel, err := ex.SelectWithin(cmd.Context(), p, radius, gr)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			switch {
			case encode:
				payload, err := ex.Encode(sel)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s %s\n", cfg.Codec, base64.StdEncoding.EncodeToString(payload))
			case g.json:
				return gojson.NewEncoder(w).Encode(ex.Expression(sel))
			default:
				fmt.Fprintln(w, ex.Expression(sel))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "0,0,0", "query point x,y,z")
	cmd.Flags().Float64VarP(&radius, "radius", "r", 5, "query radius")
	cmd.Flags().StringVarP(&granularity, "granularity", "g", string(loci.GranularityResidue), "extension level")
	cmd.Flags().BoolVar(&encode, "encode", false, "print the codec-encoded expression as base64")
	return cmd
}
