// ltbench measures the latency and throughput of x86 instructions on the
// host CPU.
package main

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/colorfulnotion/ltbench/bench"
	"github.com/colorfulnotion/ltbench/catalog"
	"github.com/colorfulnotion/ltbench/common"
	"github.com/colorfulnotion/ltbench/counter"
	"github.com/colorfulnotion/ltbench/cpu"
	"github.com/colorfulnotion/ltbench/log"
	"github.com/colorfulnotion/ltbench/sink"
	"github.com/colorfulnotion/ltbench/stage"
	"github.com/colorfulnotion/ltbench/x86"
	"github.com/spf13/cobra"
)

func init() {
	// the cycle counter is bound to the opening thread
	runtime.LockOSThread()
}

func setupLogging() {
	level := os.Getenv("LTBENCH_LOG")
	if level == "" {
		level = "warn"
	}
	log.InitLogger(level)
	if mods := os.Getenv("LTBENCH_DEBUG"); mods != "" {
		log.EnableModules(mods)
	}
}

func main() {
	setupLogging()

	var (
		csvOut  bool
		logDir  string
		classes []string
		match   string
		stages  bool
	)

	var rootCmd = &cobra.Command{
		Use:   "ltbench",
		Short: "Measure x86 instruction latency and throughput",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseClasses(classes)
			if err != nil {
				return err
			}
			return runBench(csvOut, logDir, ids, match, stages)
		},
		SilenceUsage: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Flags().BoolVar(&csvOut, "csv", false, "print result records instead of the aligned table")
	rootCmd.Flags().StringVar(&logDir, "dir", ".", "directory that receives logs/<os>/<brand>.csv")
	rootCmd.Flags().BoolVar(&stages, "stages", false, "print time spent in each harness phase to stderr")
	rootCmd.PersistentFlags().StringSliceVar(&classes, "class", nil, "restrict to register classes (reg64,m128,m256,m512)")
	rootCmd.PersistentFlags().StringVar(&match, "match", "", "restrict to instructions whose name contains this text")

	var all bool
	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "Show the catalog entries the host would run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseClasses(classes)
			if err != nil {
				return err
			}
			info := cpu.Detect()
			if all {
				info = cpu.New(info.Brand, cpu.Known...)
			}
			entries := catalog.Filter(catalog.Build(info), ids, match)
			fmt.Fprint(cmd.OutOrStdout(), catalog.Tree(info.Brand, entries).String())
			return nil
		},
	}
	listCmd.Flags().BoolVar(&all, "all", false, "include entries gated on features the host lacks")

	var compareCmd = &cobra.Command{
		Use:   "compare a.csv b.csv",
		Short: "Compare two result logs side by side",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := sink.Load(args[0])
			if err != nil {
				return err
			}
			b, err := sink.Load(args[1])
			if err != nil {
				return err
			}
			return sink.Compare(cmd.OutOrStdout(), a, b)
		},
	}

	var reportCmd = &cobra.Command{
		Use:   "report in.csv out.html",
		Short: "Render a result log as HTML bar charts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := sink.Load(args[0])
			if err != nil {
				return err
			}
			f, err := os.Create(args[1])
			if err != nil {
				return err
			}
			if err := sink.Report(f, args[0], results); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}

	var disasmCmd = &cobra.Command{
		Use:   "disasm [file]",
		Short: "Disassemble the last generated block",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := bench.DefaultConfig().SideFile
			if len(args) == 1 {
				path = args[0]
			}
			code, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), x86.Disassemble(code))
			return nil
		},
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), common.VersionString())
		},
	}

	rootCmd.AddCommand(listCmd, compareCmd, reportCmd, disasmCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Crit(log.CLIMonitoring, "ltbench failed", "err", err)
	}
}

func parseClasses(names []string) ([]bench.ClassID, error) {
	var ids []bench.ClassID
	for _, n := range names {
		id, err := bench.ParseClass(strings.TrimSpace(n))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func runBench(csvOut bool, dir string, classes []bench.ClassID, match string, stages bool) error {
	info := cpu.Detect()
	log.Info(log.CLIMonitoring, "host", "brand", info.Brand, "vendor", info.Vendor,
		"features", strings.Join(info.FeatureList(), ","))

	c, err := counter.Open()
	if errors.Is(err, counter.ErrUnsupported) {
		return fmt.Errorf("no cycle counter on %s/%s: %w", runtime.GOOS, runtime.GOARCH, err)
	}
	if err != nil {
		return fmt.Errorf("open cycle counter: %w", err)
	}
	defer c.Close()

	r, err := bench.NewRunner(bench.DefaultConfig(), c)
	if err != nil {
		return err
	}
	defer r.Close()
	var rec *stage.Recorder
	if stages {
		rec = stage.New()
		r.SetStages(rec)
	}

	resultLog, err := sink.OpenLog(dir, info.Brand)
	if err != nil {
		return err
	}
	console := sink.NewConsole(os.Stdout, csvOut)
	if err := console.Start(info.Brand); err != nil {
		resultLog.Close()
		return err
	}
	out := sink.Multi{resultLog, console}

	entries := catalog.Filter(catalog.Build(info), classes, match)
	if err := r.RunAll(entries, out.Write); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if stages {
		sink.StageTable(os.Stderr, rec.Snapshot())
	}
	log.Info(log.CLIMonitoring, "results written", "path", resultLog.Path(), "entries", len(entries))
	return nil
}
