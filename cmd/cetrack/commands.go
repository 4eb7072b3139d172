package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/codec"
	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/ics"
	appLog "github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/log"
	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/model"
	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/query"
	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/reminder"
)

func (a *app) cmdAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "Event name (required)")
	date := fs.String("date", "", "Start time, e.g. 2026-09-12T18:30 (required)")
	location := fs.String("location", "", "Venue (required)")
	category := fs.String("category", "other", "Category (academic, technical, cultural, sports, workshop, seminar, other)")
	description := fs.String("description", "", "Description")
	organizer := fs.String("organizer", "", "Organizer")
	capacity := fs.Int("capacity", 0, "Seat capacity (0 = unspecified)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	when, err := model.ParseEventTime(*date)
	if err != nil && *date != "" {
		return fmt.Errorf("invalid -date: %w", err)
	}

	a.store.Load()
	rec, err := a.store.Add(model.Draft{
		Name:        strings.TrimSpace(*name),
		Date:        when,
		Location:    strings.TrimSpace(*location),
		Category:    model.Category(strings.TrimSpace(*category)),
		Description: *description,
		Organizer:   *organizer,
		Capacity:    model.Capacity(*capacity),
	})
	if err != nil {
		return err
	}
	fmt.Printf("Event added: %s (id %s, %s)\n", rec.Name, rec.ID, humanTime(rec.Date, a.loc))
	return nil
}

func (a *app) cmdList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	filter := fs.String("filter", query.FilterAll, "Category filter, or \"all\"")
	search := fs.String("search", "", "Free-text search across name, description, location, organizer, category")
	sortKey := fs.String("sort", a.conf.DefaultSort, "Sort: date-asc, date-desc, name-asc, name-desc, category")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.store.Load()
	view := query.View(a.store.All(), query.ViewState{
		Filter: *filter,
		Search: *search,
		Sort:   query.Sort(*sortKey),
	})
	renderList(os.Stdout, view, time.Now(), a.loc)
	return nil
}

func (a *app) cmdStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.store.Load()
	st := query.Statistics(a.store.All(), time.Now())
	fmt.Printf("Total:    %d\n", st.Total)
	fmt.Printf("Upcoming: %d\n", st.Upcoming)
	fmt.Printf("Past:     %d\n", st.Past)
	fmt.Printf("Data:     %.2f KB used\n", float64(a.persist.Size())/1024)
	return nil
}

func (a *app) cmdRemove(args []string) error {
	fs := flag.NewFlagSet("remove", flag.ExitOnError)
	id := fs.String("id", "", "Event id (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("remove: -id is required")
	}

	a.store.Load()
	present := false
	for _, rec := range a.store.All() {
		if rec.ID == model.ID(*id) {
			present = true
			break
		}
	}
	if err := a.store.Remove(model.ID(*id)); err != nil {
		return err
	}
	if present {
		fmt.Println("Event removed.")
	} else {
		fmt.Println("No event with that id.")
	}
	return nil
}

func (a *app) cmdClear(args []string) error {
	fs := flag.NewFlagSet("clear", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.store.Load()
	if err := a.store.Clear(); err != nil {
		return err
	}
	fmt.Println("All events cleared.")
	return nil
}

func (a *app) cmdReset(args []string) error {
	fs := flag.NewFlagSet("reset", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	if err := a.persist.Reset(); err != nil {
		return err
	}
	fmt.Println("Collection reset; sample events will be restored on next run.")
	return nil
}

func (a *app) cmdExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", "json", "Output format: json, csv, or ics")
	out := fs.String("out", "", "Output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.store.Load()
	records := a.store.All()

	var data []byte
	var err error
	switch *format {
	case "json":
		data, err = codec.ExportJSON(records)
	case "csv":
		data = codec.ExportCSV(records)
	case "ics":
		data = ics.Export(records)
	default:
		return fmt.Errorf("export: unknown format %q", *format)
	}
	if err != nil {
		return err
	}

	if *out == "" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}
	if err := os.WriteFile(*out, data, 0o600); err != nil {
		return err
	}
	fmt.Printf("Exported %d events to %s\n", len(records), *out)
	return nil
}

func (a *app) cmdImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "Import from a local file")
	feedURL := fs.String("url", "", "Import from an ICS subscription URL")
	format := fs.String("format", "", "Payload format: json or ics (default: inferred)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if (*file == "") == (*feedURL == "") {
		return errors.New("import: exactly one of -file or -url is required")
	}

	var body []byte
	var err error
	switch {
	case *feedURL != "":
		fetcher := ics.NewFetcher(a.conf.CacheDir)
		body, err = fetcher.Fetch(context.Background(), *feedURL)
	default:
		body, err = os.ReadFile(*file)
	}
	if err != nil {
		return err
	}

	kind := *format
	if kind == "" {
		kind = inferFormat(*file, *feedURL)
	}

	var candidates []model.Candidate
	switch kind {
	case "ics":
		parsed, perr := ics.Parse(body)
		if perr != nil {
			return perr
		}
		now := time.Now()
		candidates = ics.Expand(parsed, ics.ExpandConfig{
			RangeStart: now,
			RangeEnd:   now.AddDate(0, 0, a.conf.HorizonDays),
		})
	case "json":
		candidates, err = codec.ImportJSON(body)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("import: unknown format %q", kind)
	}

	a.store.Load()
	admitted, err := a.store.BulkMerge(candidates)
	if err != nil {
		return err
	}
	if admitted == 0 {
		return errors.New("no valid events found")
	}
	fmt.Printf("%d events imported successfully\n", admitted)
	return nil
}

func inferFormat(file, feedURL string) string {
	if feedURL != "" || strings.HasSuffix(strings.ToLower(file), ".ics") {
		return "ics"
	}
	return "json"
}

func (a *app) cmdWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	window := time.Duration(a.conf.ReminderWindowMinutes) * time.Minute
	checker := reminder.NewChecker(reminder.LogNotifier{Log: appLog.Logger}, window)

	sweep := func() {
		// Reload so events added by other invocations are seen.
		a.store.Load()
		checker.Sweep(a.store.All(), time.Now())
	}

	c := cron.New()
	if _, err := c.AddFunc(a.conf.WatchCron, sweep); err != nil {
		return fmt.Errorf("watch: bad cron spec %q: %w", a.conf.WatchCron, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		appLog.Logger.Info().Str("signal", sig.String()).Msg("shutting down watch")
		cancel()
	}()

	appLog.Logger.Info().Str("cron", a.conf.WatchCron).Dur("window", window).Msg("watching for upcoming events")
	sweep()
	c.Start()
	<-ctx.Done()

	stopCtx := c.Stop()
	<-stopCtx.Done()
	return nil
}
