// phonetics-to-hangul writes English words the way they sound, in Hangul.
//
//	phonetics-to-hangul hello world
//	phonetics-to-hangul --ipa ɪɡzæmpʌl
//	echo "text to convert" | phonetics-to-hangul
//	phonetics-to-hangul --interactive
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/jusunglee/phonetics-to-hangul/internal/app"
	"github.com/jusunglee/phonetics-to-hangul/internal/logger"
	"github.com/jusunglee/phonetics-to-hangul/internal/pronounce"
	"github.com/jusunglee/phonetics-to-hangul/internal/tui"
)

func main() {
	if err := mainE(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func mainE() error {
	_ = godotenv.Load()

	fs := ff.NewFlagSet("phonetics-to-hangul")

	var (
		ipaMode     = fs.BoolLong("ipa", "Treat the input as IPA instead of words")
		interactive = fs.BoolLong("interactive", "Convert lines typed into an interactive prompt")
	)
	appFlags := app.RegisterFlags(fs)

	if err := ff.Parse(fs, os.Args[1:], ff.WithEnvVars()); err != nil {
		fmt.Printf("%s\n", ffhelp.Flags(fs))
		return fmt.Errorf("parsing flags: %w", err)
	}

	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.Build(ctx, appFlags.Config(), log)
	if err != nil {
		return err
	}
	defer a.Close()

	if *interactive {
		return tui.Run(ctx, a.Transcriber, *ipaMode)
	}

	if args := fs.GetArgs(); len(args) > 0 {
		return convert(ctx, a.Transcriber, strings.Join(args, " "), *ipaMode)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if err := convert(ctx, a.Transcriber, scanner.Text(), *ipaMode); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func convert(ctx context.Context, t *pronounce.Transcriber, text string, ipaMode bool) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var results []pronounce.Result
	if ipaMode {
		results = t.TranscribeIPA(text)
	} else {
		var err error
		results, err = t.Transcribe(ctx, text)
		if err != nil {
			return fmt.Errorf("transcribing %q: %w", text, err)
		}
	}

	fmt.Println(tui.RenderResults(results))
	return nil
}
