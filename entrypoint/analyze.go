package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/morispolanco/subjuntivo-buscador/engine"
	"github.com/morispolanco/subjuntivo-buscador/pipeline"
	"github.com/morispolanco/subjuntivo-buscador/types"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

func analyzeCmd(config *Config) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze a text file, or stdin when no file is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatJSON && format != formatTable {
				return fmt.Errorf("unknown format %q, use %s or %s", format, formatJSON, formatTable)
			}
			var input io.Reader = cmd.InOrStdin()
			tid := "stdin"
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				input = f
				tid = filepath.Base(args[0])
			}
			text, err := io.ReadAll(input)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			cfg, err := engineConfiguration(*config)
			if err != nil {
				return err
			}
			analyzer, err := engine.New(cfg)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(config.RequestTimeout)*time.Second)
			defer cancel()
			return analyze(ctx, analyzer, pipeline.Request{Tid: tid, Text: string(text)}, format, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&format, "format", "o", formatJSON, "output format: json or table")
	return cmd
}

func analyze(ctx context.Context, analyzer engine.Analyzer, request pipeline.Request, format string, out io.Writer) error {
	ppln := pipeline.Subjunctive(analyzer, nil, pipeline.DefaultSubjunctiveParams())
	result, ok := <-ppln(ctx, request)
	if !ok {
		return errors.New("analysis returned no result")
	}
	if format == formatJSON {
		_, err := fmt.Fprintln(out, result)
		return err
	}
	var response types.SubjunctiveResponse
	if err := json.Unmarshal([]byte(result), &response); err != nil {
		return err
	}
	return writeTable(out, response)
}

func writeTable(out io.Writer, response types.SubjunctiveResponse) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VERBO\tLEMA\tTIEMPO\tPERSONA\tNÚMERO\tCLÁUSULA")
	for _, verb := range response.Verbs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			verb.Verb, verb.Lemma, dash(verb.Tense), dash(verb.Person), dash(verb.Number),
			strings.Join(strings.Fields(verb.Clause), " "))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\ntotal: %d, lemas únicos: %d, oraciones con subjuntivo: %d (estrategia %s)\n",
		response.Summary.Total, response.Summary.UniqueLemmas, response.Summary.SentencesWithSubjunctive, response.Strategy)
	for _, warning := range response.Warnings {
		fmt.Fprintf(out, "aviso: %s\n", warning)
	}
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
