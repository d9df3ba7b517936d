package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cashenchris/grouptheory/autf"
	"github.com/cashenchris/grouptheory/libautf"
	"github.com/cashenchris/grouptheory/libautf/catalog"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
	"github.com/spf13/cobra"
)

// app holds the flag values shared across commands; unset flags take their value from the config file.
type app struct {
	configPath string
	Config
}

func newRootCmd(logFlags *flag.FlagSet) *cobra.Command {
	a := &app{
		Config: DefaultConfig,
	}

	root := &cobra.Command{
		Use:   "autf",
		Short: "canonical representatives of Aut(F) orbits of free group words",
		Long: `autf computes the shortlex least word in the orbit of a word of a free group under Aut(F),
and enumerates one such representative per orbit for a given rank and length.

Words are written as letters ("abAB", "a^3 B^-2") or as integer tuples ("(1, 2, -1, -2)").`,
		PersistentPreRunE: a.loadConfig,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default $HOME/"+DefaultConfigName+")")
	pf.IntVarP(&a.Rank, "rank", "r", a.Rank, "rank of the free group")
	pf.BoolVar(&a.Inversion, "inversion", a.Inversion, "identify each word with its inverse")
	pf.BoolVar(&a.Compress, "compress", a.Compress, "print words as their shortlex index")
	pf.BoolVar(&a.Letters, "letters", a.Letters, "print words as letters")
	if logFlags != nil {
		pf.AddGoFlagSet(logFlags)
	}

	root.AddCommand(
		a.canonCmd(),
		a.isCanonCmd(),
		a.slpciCmd(),
		a.levelSetCmd(),
		a.repsCmd(),
		a.candidatesCmd(),
		a.selectCmd(),
		a.verifyCmd(),
		a.encodeCmd(),
		a.decodeCmd(),
		a.configCmd(),
		a.runCmd(),
	)
	return root
}

func (a *app) loadConfig(cmd *cobra.Command, args []string) error {
	pathname := a.configPath
	mustExist := pathname != ""
	if !mustExist {
		pathname = DefaultConfigPath()
	}
	cfg, err := LoadConfig(pathname, mustExist)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("rank") {
		a.Rank = cfg.Rank
	}
	if !flags.Changed("inversion") {
		a.Inversion = cfg.Inversion
	}
	if !flags.Changed("compress") {
		a.Compress = cfg.Compress
	}
	if !flags.Changed("letters") {
		a.Letters = cfg.Letters
	}
	if flags.Lookup("workers") != nil && !flags.Changed("workers") {
		a.Workers = cfg.Workers
	}
	if flags.Lookup("catalog") != nil && !flags.Changed("catalog") {
		a.Catalog = cfg.Catalog
	}
	if a.ProgressEvery == 0 {
		a.ProgressEvery = cfg.ProgressEvery
	}
	return nil
}

// readWord parses the words given on the command line, joined by spaces.
// The rank is that of the word unless --rank was given explicitly for an integer tuple.
func (a *app) readWord(cmd *cobra.Command, args []string) (autf.Input, libautf.SearchOpts, error) {
	in, err := autf.ParseInput(strings.Join(args, " "))
	if err != nil {
		return in, libautf.SearchOpts{}, err
	}
	if in.Alphabet == nil && cmd.Flags().Changed("rank") {
		if a.Rank < in.Rank {
			return in, libautf.SearchOpts{}, errors.Wrapf(autf.ErrBadRank, "word %v needs rank %d", in.Word, in.Rank)
		}
		in.Rank = a.Rank
	}
	opts := libautf.SearchOpts{
		Rank:        in.Rank,
		NoInversion: !a.Inversion,
	}
	return in, opts, nil
}

func (a *app) formatWord(in *autf.Input, rank int, w autf.Word) string {
	if a.Compress {
		if val, err := (autf.Codec{Rank: rank}).EncodeShortlex(w); err == nil {
			return strconv.FormatUint(val, 10)
		}
	}
	if in != nil && !a.Letters {
		return in.Format(w)
	}
	opts := a.printOpts(rank)
	return opts.FormatWord(w)
}

func (a *app) printOpts(rank int) autf.PrintOpts {
	opts := autf.DefaultPrintOpts
	opts.Rank = rank
	opts.Compress = a.Compress
	if a.Letters {
		opts.Alphabet = &autf.DefaultAlphabet
	}
	return opts
}

func (a *app) enumOpts(length int) libautf.EnumOpts {
	return libautf.EnumOpts{
		SearchOpts: libautf.SearchOpts{
			Rank:        a.Rank,
			NoInversion: !a.Inversion,
		},
		Length:        length,
		Workers:       a.Workers,
		ProgressEvery: a.ProgressEvery,
	}
}

func (a *app) canonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "canon WORD",
		Short: "print the canonical representative of the orbit of WORD",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, opts, err := a.readWord(cmd, args)
			if err != nil {
				return err
			}
			rep, err := libautf.CanonicalRepresentative(opts, in.Word)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.formatWord(&in, opts.Rank, rep))
			return nil
		},
	}
}

func (a *app) isCanonCmd() *cobra.Command {
	skipChecks := false
	cmd := &cobra.Command{
		Use:   "is-canon WORD",
		Short: "print whether WORD is the canonical representative of its orbit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, opts, err := a.readWord(cmd, args)
			if err != nil {
				return err
			}
			canon, err := libautf.IsCanonicalRepresentative(opts, in.Word, skipChecks)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), canon)
			return nil
		},
	}
	cmd.Flags().BoolVar(&skipChecks, "skip-checks", false, "assume WORD is SLPCI canonical and Whitehead minimal")
	return cmd
}

func (a *app) slpciCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slpci WORD",
		Short: "print the least word under rotation, generator permutation and inversion",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, opts, err := a.readWord(cmd, args)
			if err != nil {
				return err
			}
			rep := libautf.SLPCIRep(opts.Rank, in.Word, opts.NoInversion)
			fmt.Fprintln(cmd.OutOrStdout(), a.formatWord(&in, opts.Rank, rep))
			return nil
		},
	}
}

func (a *app) levelSetCmd() *cobra.Command {
	edges := false
	cmd := &cobra.Command{
		Use:   "levelset WORD",
		Short: "print the SLPCI canonical words of the Whitehead minimal level set containing WORD",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, opts, err := a.readWord(cmd, args)
			if err != nil {
				return err
			}
			w := libautf.MinimalRepresentative(opts.Rank, in.Word.CyclicReduce())
			if len(w) != len(in.Word) {
				klog.Infof("%s is not Whitehead minimal; using %s", in.Format(in.Word), in.Format(w))
			}

			out := cmd.OutOrStdout()
			graph := libautf.ReducedLevelSetGraph(opts, w)
			for i, v := range graph.Verts {
				fmt.Fprintf(out, "%d,%s\n", i, a.formatWord(&in, opts.Rank, v))
			}
			if edges {
				for _, e := range graph.Edges {
					fmt.Fprintf(out, "%d-%d\n", e[0], e[1])
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&edges, "edges", false, "also print the edges between level set words")
	return cmd
}

// repPrinter writes numbered words in the same layout as WordStream.Print.
type repPrinter struct {
	out   io.Writer
	opts  autf.PrintOpts
	count int
}

func (p *repPrinter) print(w autf.Word) {
	p.count++
	if p.opts.Label != "" {
		fmt.Fprintf(p.out, "%s,", p.opts.Label)
	}
	fmt.Fprintf(p.out, "%06d,%s\n", p.count, p.opts.FormatWord(w))
}

func (a *app) newPrinter(cmd *cobra.Command, label string) *repPrinter {
	opts := a.printOpts(a.Rank)
	opts.Label = label
	return &repPrinter{
		out:  cmd.OutOrStdout(),
		opts: opts,
	}
}

func (a *app) repsCmd() *cobra.Command {
	var (
		length int
		lowMem bool
		quiet  bool
	)
	cmd := &cobra.Command{
		Use:   "reps",
		Short: "print one canonical representative per Aut(F) orbit of words with the given rank and minimal length",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.enumOpts(length)
			p := a.newPrinter(cmd, "")
			emit := p.print
			if quiet {
				emit = func(w autf.Word) { p.count++ }
			}

			var err error
			switch {
			case a.Catalog != "":
				err = a.catalogReps(cmd.Context(), opts, emit)
			case a.Workers > 0:
				err = libautf.EnumCanonicalReps(cmd.Context(), opts, emit)
			default:
				gen := libautf.GenerateAutReps
				if lowMem {
					gen = libautf.GenerateAutRepsLowMem
				}
				ctx := cmd.Context()
				err = gen(opts, func(w autf.Word) bool {
					emit(w)
					return ctx.Err() == nil
				})
				if err == nil {
					err = ctx.Err()
				}
			}
			if err != nil {
				return err
			}
			klog.V(1).Infof("%v: %d reps", opts.RunSpec(), p.count)
			if quiet {
				fmt.Fprintln(cmd.OutOrStdout(), p.count)
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.IntVarP(&length, "length", "n", 0, "minimal word length of the orbits to enumerate")
	flags.BoolVar(&lowMem, "lowmem", false, "test each candidate on its own rather than partitioning all candidates")
	flags.BoolVarP(&quiet, "count", "c", false, "print only the number of representatives")
	flags.IntVarP(&a.Workers, "workers", "j", a.Workers, "enumerate windows on this many goroutines (0 enumerates sequentially)")
	flags.StringVar(&a.Catalog, "catalog", a.Catalog, "store representatives in this catalog and resume from its checkpoint")
	flags.IntVar(&a.ProgressEvery, "progress-every", 0, "checkpoint after this many precandidates")
	return cmd
}

// catalogReps adds each representative to the catalog, resuming from and recording the run's checkpoint.
// Only newly added representatives are passed to emit.
func (a *app) catalogReps(ctx context.Context, opts libautf.EnumOpts, emit func(w autf.Word)) error {
	cat, err := catalog.OpenCatalog(nil, autf.CatalogOpts{
		DbPathName: a.Catalog,
	})
	if err != nil {
		return err
	}
	defer cat.Close()

	spec := opts.RunSpec()
	at, done, found := cat.Checkpoint(spec)
	if done {
		klog.Infof("%v is complete with %d reps", spec, cat.NumReps(spec))
		return nil
	}
	if found && at != nil {
		klog.Infof("%v: resuming at %v with %d reps", spec, at, cat.NumReps(spec))
		opts.Start = at
	}

	var checkpointErr error
	opts.Progress = func(at autf.Word) bool {
		if checkpointErr = cat.SetCheckpoint(spec, at, false); checkpointErr != nil {
			return false
		}
		klog.V(2).Infof("%v: checkpoint %v", spec, at)
		return ctx.Err() == nil
	}

	err = libautf.GenerateAutRepsLowMem(opts, func(w autf.Word) bool {
		if cat.TryAddRep(spec, w) {
			emit(w)
		}
		return ctx.Err() == nil
	})
	if err == nil {
		err = checkpointErr
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		return err
	}
	return cat.SetCheckpoint(spec, nil, true)
}

func (a *app) candidatesCmd() *cobra.Command {
	length := 0
	cmd := &cobra.Command{
		Use:   "candidates",
		Short: "print the words of the given length that are SLPCI canonical and Whitehead minimal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.enumOpts(length)
			p := a.newPrinter(cmd, "")
			ctx := cmd.Context()
			err := libautf.EnumCandidates(opts, func(w autf.Word) bool {
				p.print(w)
				return ctx.Err() == nil
			})
			if err == nil {
				err = ctx.Err()
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&length, "length", "n", 0, "word length")
	return cmd
}

func (a *app) selectCmd() *cobra.Command {
	length := 0
	cmd := &cobra.Command{
		Use:   "select",
		Short: "print the representatives stored in a catalog for the given rank and length",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.Catalog == "" {
				return errors.Wrap(autf.ErrBadCatalogParam, "--catalog is required")
			}
			cat, err := catalog.OpenCatalog(nil, autf.CatalogOpts{
				DbPathName: a.Catalog,
				ReadOnly:   true,
			})
			if err != nil {
				return err
			}
			defer cat.Close()

			spec := a.enumOpts(length).RunSpec()
			if _, done, _ := cat.Checkpoint(spec); !done {
				klog.Warningf("%v is incomplete", spec)
			}

			stream := autf.NewWordStream()
			go func() {
				cat.Select(spec, stream.Outlet)
				stream.Close()
			}()
			p := a.newPrinter(cmd, "")
			for w := range stream.Outlet {
				p.print(w)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&length, "length", "n", 0, "word length")
	cmd.Flags().StringVar(&a.Catalog, "catalog", a.Catalog, "catalog to read")
	return cmd
}

func (a *app) verifyCmd() *cobra.Command {
	maxLength := 0
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "check the representative count against a brute force orbit count for each length up to --length",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.enumOpts(0).SearchOpts
			out := cmd.OutOrStdout()
			for length := 0; length <= maxLength; length++ {
				numReps, numOrbits, err := libautf.VerifyCorrectCount(opts, length)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "rank %d, length %d: %d reps, %d orbits\n", opts.Rank, length, numReps, numOrbits)
				if numReps != numOrbits {
					return errors.Errorf("rank %d, length %d: found %d reps but %d orbits", opts.Rank, length, numReps, numOrbits)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&maxLength, "length", "n", 4, "longest length to check")
	return cmd
}

func (a *app) encodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode WORD",
		Short: "print the shortlex index of WORD",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := autf.ParseWordExpr(a.Rank, autf.DefaultAlphabet, strings.Join(args, " "))
			if err != nil {
				return err
			}
			val, err := autf.Codec{Rank: a.Rank}.EncodeShortlex(w)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), val)
			return nil
		},
	}
}

func (a *app) decodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode N...",
		Short: "print the words with the given shortlex indices",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec := autf.Codec{Rank: a.Rank}
			opts := a.printOpts(a.Rank)
			opts.Compress = false
			for _, arg := range args {
				val, err := strconv.ParseUint(arg, 10, 64)
				if err != nil {
					return errors.Wrapf(autf.ErrParse, "%q is not an index", arg)
				}
				w, err := codec.DecodeShortlex(val)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), opts.FormatWord(w))
			}
			return nil
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	write := ""
	cmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration, or write it with --write",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if write != "" {
				return WriteConfig(write, a.Config)
			}
			return writeConfigTo(cmd.OutOrStdout(), a.Config)
		},
	}
	cmd.Flags().StringVar(&write, "write", "", "save the effective configuration to this file")
	cmd.Flags().IntVarP(&a.Workers, "workers", "j", a.Workers, "default worker count")
	cmd.Flags().StringVar(&a.Catalog, "catalog", a.Catalog, "default catalog")
	return cmd
}

func (a *app) runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [SCRIPT]",
		Short: "run a python script with the _autf module, or start a REPL",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pathname := ""
			if len(args) > 0 {
				pathname = args[0]
			}
			return go_gpython(pathname)
		},
	}
}
