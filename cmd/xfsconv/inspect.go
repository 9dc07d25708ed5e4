package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/xfsconv/internal/logger"
	"github.com/samcharles93/xfsconv/internal/render"
	"github.com/samcharles93/xfsconv/pkg/xfs"
)

type inspectReport struct {
	Path        string           `json:"path"`
	Bytes       int              `json:"bytes"`
	Magic       string           `json:"magic"`
	Version     int16            `json:"version"`
	StructInfo  xfs.InfoHeader   `json:"structureInfo"`
	ParamInfo   xfs.InfoHeader   `json:"parameterInfo"`
	Offsets     xfs.OffsetTable  `json:"offsets,omitempty"`
	Stats       xfs.Stats        `json:"stats"`
	Diagnostics []xfs.Diagnostic `json:"diagnostics,omitempty"`
}

func inspectCmd() *cli.Command {
	var (
		settings    decodeSettings
		asJSON      bool
		showOffsets bool
	)

	return &cli.Command{
		Name:      "inspect",
		Usage:     "Summarize the layout and contents of an XFS container",
		ArgsUsage: "<path>",
		Flags: append(decodeFlags(&settings, false),
			&cli.BoolFlag{Name: "json", Usage: "print the report as JSON", Destination: &asJSON},
			&cli.BoolFlag{Name: "offsets", Usage: "list every offset table entry", Destination: &showOffsets},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return cli.Exit("Usage: xfsconv inspect <path>", exitUsage)
			}
			path := cmd.Args().First()
			if err := checkInput(path); err != nil {
				return cli.Exit(err.Error(), exitUsage)
			}

			applyDecodeConfig(cmd, appConfig, &settings)
			opts, _, err := settings.options(logger.FromContext(ctx))
			if err != nil {
				return cli.Exit(err.Error(), exitUsage)
			}

			rep, err := inspectFile(path, opts)
			if err != nil {
				return cli.Exit(err.Error(), exitFailure)
			}
			if !showOffsets && !asJSON {
				rep.Offsets = nil
			}

			w := cmd.Root().Writer
			if asJSON {
				return render.WriteJSON(w, rep)
			}
			return printReport(w, rep, showOffsets)
		},
	}
}

func inspectFile(path string, opts []xfs.Option) (*inspectReport, error) {
	f, err := xfs.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	s, err := xfs.Load(f.Data, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c, err := xfs.NewDecoder(s, opts...).Decode()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &inspectReport{
		Path:        path,
		Bytes:       len(f.Data),
		Magic:       s.Header.MagicString(),
		Version:     s.Header.Version,
		StructInfo:  s.StructInfo,
		ParamInfo:   s.ParamInfo,
		Offsets:     s.Offsets,
		Stats:       xfs.Summarize(c),
		Diagnostics: c.Diagnostics,
	}, nil
}

func printReport(w io.Writer, rep *inspectReport, showOffsets bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "file:\t%s (%d bytes)\n", rep.Path, rep.Bytes)
	fmt.Fprintf(tw, "magic:\t%q version %d\n", rep.Magic, rep.Version)
	fmt.Fprintf(tw, "structure block:\t%d entries, %d bytes\n", rep.StructInfo.Count, rep.StructInfo.Size)
	fmt.Fprintf(tw, "parameter block:\t%d entries, %d bytes\n", rep.ParamInfo.Count, rep.ParamInfo.Size)
	fmt.Fprintf(tw, "top-level structures:\t%d\n", rep.Stats.TopLevel)
	fmt.Fprintf(tw, "structures:\t%d (max depth %d)\n", rep.Stats.Structures, rep.Stats.MaxDepth)
	fmt.Fprintf(tw, "fields:\t%d (%d distinct names)\n", rep.Stats.Fields, rep.Stats.Names)
	for _, t := range rep.Stats.SortedTypes() {
		fmt.Fprintf(tw, "  type 0x%04x:\t%d\n", t, rep.Stats.ByType[t])
	}
	if showOffsets {
		parts := make([]string, len(rep.Offsets))
		for i, off := range rep.Offsets {
			parts[i] = fmt.Sprintf("%d", off)
		}
		fmt.Fprintf(tw, "offsets:\t%s\n", strings.Join(parts, " "))
	}
	fmt.Fprintf(tw, "diagnostics:\t%d\n", len(rep.Diagnostics))
	for _, d := range rep.Diagnostics {
		fmt.Fprintf(tw, "  %s @%d:\t%s\n", d.Kind, d.Offset, d.Message)
	}
	return tw.Flush()
}
