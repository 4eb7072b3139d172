// Command cetrack is a local campus event catalog: add, list, and search
// events, watch for upcoming ones, and move collections in and out via
// JSON, CSV, and iCalendar.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/config"
	appLog "github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/log"
	"github.com/karanpandatyxz-bot/CAMPUS-EVENT-TRACKER/internal/store"
)

// app wires the configuration, persistence, and store for one command
// invocation.
type app struct {
	conf    *config.Config
	persist *store.FilePersistence
	store   *store.Store
	loc     *time.Location
}

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", defaultConfigPath(), "Path to config file")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	conf, err := config.Load(configPath)
	if err != nil {
		appLog.Logger.Error().Err(err).Str("config_path", configPath).Msg("failed to load config")
		os.Exit(1)
	}
	appLog.Setup(conf.LogLevel)

	a := &app{
		conf:    conf,
		persist: store.NewFilePersistence(conf.DataPath),
		loc:     loadLocation(conf.Timezone),
	}
	a.store = store.New(a.persist, appLog.Logger)

	if err := a.run(args[0], args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "cetrack:", err)
		os.Exit(1)
	}
}

func (a *app) run(command string, args []string) error {
	switch command {
	case "add":
		return a.cmdAdd(args)
	case "list":
		return a.cmdList(args)
	case "stats":
		return a.cmdStats(args)
	case "remove":
		return a.cmdRemove(args)
	case "clear":
		return a.cmdClear(args)
	case "reset":
		return a.cmdReset(args)
	case "export":
		return a.cmdExport(args)
	case "import":
		return a.cmdImport(args)
	case "watch":
		return a.cmdWatch(args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func loadLocation(tz string) *time.Location {
	if tz == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		appLog.Logger.Warn().Err(err).Str("timezone", tz).Msg("invalid timezone, using local")
		return time.Local
	}
	return loc
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cetrack.yaml"
	}
	return filepath.Join(home, ".cetrack", "config.yaml")
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: cetrack [-config PATH] <command> [flags]

Commands:
  add     Add a new event (-name -date -location -category ...)
  list    Show events (-filter -search -sort)
  stats   Show collection statistics
  remove  Delete an event by id (-id)
  clear   Remove all events (cleared state survives restarts)
  reset   Remove all data; sample events return on next run
  export  Write the collection as json, csv, or ics (-format -out)
  import  Merge events from a json/ics file or ICS URL (-file | -url)
  watch   Announce upcoming events on a schedule until interrupted
`)
	flag.PrintDefaults()
}
