package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-screening/internal/config"
	"github.com/tartampluch/go-screening/internal/engine"
	"github.com/tartampluch/go-screening/internal/notify"
)

// generateOptions mirrors the form fields plus the CLI-only outputs.
type generateOptions struct {
	month, day, year string
	sex, smoker      string
	today            string
	vcard            string
	ics              string
	email            string
}

// fixedClock pins "today" for the --today flag.
type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func generateCmd() *cobra.Command {
	var opts generateOptions
	cmd := &cobra.Command{
		Use:   config.CmdGenerate,
		Short: config.CmdDescGenerate,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.Context(), opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.month, config.FlagMonth, "", config.FlagDescMonth)
	f.StringVar(&opts.day, config.FlagDay, "", config.FlagDescDay)
	f.StringVar(&opts.year, config.FlagYear, "", config.FlagDescYear)
	f.StringVar(&opts.sex, config.FlagSex, "", config.FlagDescSex)
	f.StringVar(&opts.smoker, config.FlagSmoker, "", config.FlagDescSmoker)
	f.StringVar(&opts.today, config.FlagToday, "", config.FlagDescToday)
	f.StringVar(&opts.vcard, config.FlagVCard, "", config.FlagDescVCard)
	f.StringVar(&opts.ics, config.FlagICS, "", config.FlagDescICS)
	f.StringVar(&opts.email, config.FlagEmail, "", config.FlagDescEmail)
	return cmd
}

// runGenerate prints the checklist for the profile described by opts and
// optionally writes it as iCalendar and mails the digest. A failed delivery is
// reported on errOut and does not fail the command.
func runGenerate(ctx context.Context, opts generateOptions, out, errOut io.Writer) error {
	log := slog.With(config.LogKeyComponent, config.CompCLI)

	now := time.Now()
	if opts.today != "" {
		t, err := time.ParseInLocation(config.DateFormatISO, opts.today, time.Local)
		if err != nil {
			return fmt.Errorf("%s: %w", config.ErrBadToday, err)
		}
		now = t
	}

	p, err := resolveProfile(ctx, opts)
	if err != nil {
		return err
	}

	if err := engine.ValidateBirthDate(p.BirthMonth, p.BirthDay, p.BirthYear, now); err != nil {
		return err
	}

	gen := &engine.Generator{Clock: fixedClock(now)}
	recs, err := gen.Generate(p)
	if err != nil {
		return err
	}

	subject, body := notify.Digest(recs)
	if _, err := io.WriteString(out, body); err != nil {
		return err
	}

	if opts.ics != "" {
		data, err := engine.RenderCalendar(recs, now)
		if err != nil {
			return err
		}
		if err := os.WriteFile(opts.ics, data, config.FilePermUserRW); err != nil {
			return fmt.Errorf("%s: %w", config.ErrICSWrite, err)
		}
		log.Info(config.MsgICSWritten,
			config.LogKeyFile, opts.ics,
			config.LogKeySizeBytes, len(data))
	}

	if opts.email != "" {
		if len(recs) == 0 {
			return nil
		}
		notify.LoadEnv(config.EnvFileName)
		mode, settings := notify.SettingsFromEnv()
		// Delivery failure is a warning: the checklist above is still valid.
		if err := <-notify.Dispatch(ctx, notify.New(mode, settings), opts.email, subject, body); err != nil {
			fmt.Fprintf(errOut, config.MsgEmailWarning, err)
		}
	}
	return nil
}

// resolveProfile starts from the contact card, if any, and applies the flags on top.
func resolveProfile(ctx context.Context, opts generateOptions) (engine.Profile, error) {
	var p engine.Profile
	if opts.vcard != "" {
		src := engine.ContactSource{Fetcher: engine.NewHTTPFetcher()}
		imported, err := src.LoadProfile(ctx, opts.vcard)
		if err != nil {
			return engine.Profile{}, err
		}
		p = imported
	}

	if opts.month != "" {
		p.BirthMonth = opts.month
	}
	if opts.day != "" {
		p.BirthDay = opts.day
	}
	if opts.year != "" {
		p.BirthYear = opts.year
	}

	if opts.sex != "" {
		sex, err := engine.ParseSex(opts.sex)
		if err != nil {
			return engine.Profile{}, err
		}
		p.Sex = sex
	}
	smoker, err := engine.ParseSmoker(opts.smoker)
	if err != nil {
		return engine.Profile{}, err
	}
	p.Smoker = smoker
	return p, nil
}
