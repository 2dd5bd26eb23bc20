// Command textpolish-score scores text files (or stdin) for AI likelihood and
// optionally polishes them, without any server or database
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"textpolish/internal/adapters/llm"
	"textpolish/internal/core/langhint"
	"textpolish/internal/core/polish"
	"textpolish/internal/core/scorer"
	"textpolish/internal/core/textclean"
	"textpolish/internal/platform/config"
	"textpolish/internal/platform/logger"
)

type report struct {
	Source        string            `json:"source"`
	AIProbability float64           `json:"ai_probability"`
	Confidence    scorer.Confidence `json:"confidence_level"`
	Analysis      scorer.Signals    `json:"analysis"`
	Matched       []string          `json:"matched_patterns"`
	Sentences     int               `json:"sentence_count"`
	Language      string            `json:"language,omitempty"`
	Polished      string            `json:"processed_text,omitempty"`
	APIUsed       string            `json:"api_used,omitempty"`
	// PolishedScore is the probability after polishing
	PolishedScore *float64 `json:"polished_ai_probability,omitempty"`
}

func main() {
	var (
		fStyle   = flag.String("style", "", "polish into this style (academic, formal, casual, creative); empty only scores")
		fJSON    = flag.Bool("json", false, "print JSON lines instead of a table")
		fOffline = flag.Bool("offline", false, "never call the remote model; use the local transform")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [file ...]\nreads stdin when no file is given\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if _, err := config.LoadDotenv(); err != nil {
		logger.Get().Fatal().Err(err).Msg("load .env failed")
	}
	l := logger.Named("score")

	inputs, err := readInputs(flag.Args())
	if err != nil {
		l.Fatal().Err(err).Msg("read input")
	}

	var p *polish.Polisher
	if *fStyle != "" {
		style, ok := polish.ParseStyle(*fStyle)
		if !ok {
			l.Fatal().Str("style", *fStyle).Strs("allowed", polish.StyleIDs()).Msg("bad -style")
		}
		*fStyle = string(style)
		p = polish.New(nil, polish.Options{})
		if !*fOffline {
			var gen polish.Generator
			var err error
			p, gen, err = llm.NewPolisher(context.Background(), llm.ConfigFromEnv(config.New()))
			if err != nil {
				l.Fatal().Err(err).Msg("llm setup failed")
			}
			if c, ok := gen.(io.Closer); ok {
				defer func() { _ = c.Close() }()
			}
		}
	}

	sc := scorer.New(nil)
	reports := make([]report, 0, len(inputs))
	for _, in := range inputs {
		text := textclean.Clean(in.text)
		res := sc.Score(text)
		rep := report{
			Source:        in.name,
			AIProbability: res.Probability,
			Confidence:    res.Confidence,
			Analysis:      res.Signals,
			Matched:       res.Matched,
			Sentences:     res.Sentences,
			Language:      langhint.Detect(text).Lang,
		}
		if p != nil && text != "" {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			out := p.Polish(ctx, text, polish.Style(*fStyle))
			cancel()
			after := sc.Score(out.Text).Probability
			rep.Polished, rep.APIUsed, rep.PolishedScore = out.Text, out.Provider, &after
		}
		reports = append(reports, rep)
	}

	if *fJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetEscapeHTML(false)
		for _, r := range reports {
			_ = enc.Encode(r)
		}
		return
	}
	printTable(os.Stdout, reports)
}

type input struct{ name, text string }

func readInputs(paths []string) ([]input, error) {
	if len(paths) == 0 {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		return []input{{"-", string(b)}}, nil
	}
	out := make([]input, 0, len(paths))
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, err
		}
		out = append(out, input{p, string(b)})
	}
	return out, nil
}

func printTable(w io.Writer, reports []report) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tAI\tLEVEL\tPATTERN\tCOMPLEXITY\tSTRUCTURE\tSENTENCES\tAFTER")
	for _, r := range reports {
		after := "-"
		if r.PolishedScore != nil {
			after = fmt.Sprintf("%.2f (%s)", *r.PolishedScore, r.APIUsed)
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%.2f\t%.2f\t%.2f\t%d\t%s\n",
			r.Source, r.AIProbability, r.Confidence,
			r.Analysis.Pattern, r.Analysis.Complexity, r.Analysis.Structure, r.Sentences, after)
	}
	_ = tw.Flush()
	for _, r := range reports {
		if r.Polished != "" {
			fmt.Fprintf(w, "\n== %s ==\n%s\n", r.Source, r.Polished)
		}
	}
}
