package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	conf "github.com/Dragunija/PPE-Data-Visualization/config"
	"github.com/Dragunija/PPE-Data-Visualization/hepmc"
	"github.com/Dragunija/PPE-Data-Visualization/model/action"
	"github.com/Dragunija/PPE-Data-Visualization/model/mongo"
	"github.com/Dragunija/PPE-Data-Visualization/scene"
	"github.com/Dragunija/PPE-Data-Visualization/tui"
	"github.com/Dragunija/PPE-Data-Visualization/viewer"
	"github.com/Dragunija/PPE-Data-Visualization/web"
)

var rootCmd = &cobra.Command{
	Use:          "hepvis",
	Short:        "HepMC event display",
	Long:         "serve HepMC events over HTTP and display them in the terminal",
	SilenceUsage: true,
}

var viewFlags struct {
	server  string
	file    string
	local   string
	mode    string
	config  string
	logFile string
}

var exportFlags struct {
	local  string
	no     int
	mode   string
	config string
}

func init() {
	view := cmdView.Flags()
	view.StringVar(&viewFlags.server, "server", "http://127.0.0.1:5000", "event server URL")
	view.StringVar(&viewFlags.file, "file", "", "file name on the event server")
	view.StringVar(&viewFlags.local, "local", "", "read events from a local HepMC file instead of a server")
	view.StringVar(&viewFlags.mode, "mode", scene.Momentum.String(), "initial view: momentum or spacetime")
	view.StringVar(&viewFlags.config, "config", "", "viewer settings file")
	view.StringVar(&viewFlags.logFile, "log-file", "hepvis.log", "file receiving log output while the display runs")

	export := cmdExport.Flags()
	export.StringVar(&exportFlags.local, "local", "", "HepMC file to read")
	export.IntVar(&exportFlags.no, "no", 1, "event number, starting at 1")
	export.StringVar(&exportFlags.mode, "mode", scene.Momentum.String(), "view: momentum or spacetime")
	export.StringVar(&exportFlags.config, "config", "", "viewer settings file")
	_ = cmdExport.MarkFlagRequired("local")

	rootCmd.AddCommand(cmdServe, cmdView, cmdExport, cmdImport)
}

var cmdServe = &cobra.Command{
	Use:   "serve",
	Short: "start the event server",
	Long:  "serve events from HEPVIS_DB_URL or, when unset, from the HepMC files of HEPVIS_DATA_DIR",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := conf.SetupConfig()
		log.Infof("Config: %+v", *config)
		router, routerErr := web.NewRouter(config)
		if routerErr != nil {
			return routerErr
		}

		portString := ":" + strconv.FormatInt(config.BackendPort, 10)
		log.Infof("Listening on %v", portString)
		return http.ListenAndServe(portString, router)
	},
}

var cmdView = &cobra.Command{
	Use:   "view",
	Short: "display events in the terminal",
	Long:  "display events of a file on an event server (--server, --file) or of a local file (--local)",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		if levelErr := setupLoggingLevel(); levelErr != nil {
			return levelErr
		}
		mode, modeErr := scene.ParseViewMode(viewFlags.mode)
		if modeErr != nil {
			return modeErr
		}
		vc, configErr := conf.ReadViewerConfig(viewFlags.config)
		if configErr != nil {
			return configErr
		}

		var fetcher viewer.Fetcher
		filename := viewFlags.file
		switch {
		case viewFlags.local != "":
			fetcher, filename = viewer.LocalFetcher(viewFlags.local)
		case filename != "":
			fetcher = viewer.NewHTTPFetcher(viewFlags.server)
		default:
			return fmt.Errorf("either --file or --local is required")
		}

		logFile, logErr := os.OpenFile(viewFlags.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if logErr != nil {
			return logErr
		}
		defer logFile.Close()
		conf.SetLoggingOutput(logFile)

		canvas := tui.NewCanvas(80, 24)
		app := viewer.NewApp(vc, fetcher, canvas)
		initial := app.Open(filename, mode)
		return tui.Run(cmd.Context(), app, canvas, initial, vc.Display.FrameRate)
	},
}

var cmdExport = &cobra.Command{
	Use:   "export OUT.vtk",
	Short: "write the lines of one event as VTK polydata",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if levelErr := setupLoggingLevel(); levelErr != nil {
			return levelErr
		}
		mode, modeErr := scene.ParseViewMode(exportFlags.mode)
		if modeErr != nil {
			return modeErr
		}
		vc, configErr := conf.ReadViewerConfig(exportFlags.config)
		if configErr != nil {
			return configErr
		}

		fetcher, filename := viewer.LocalFetcher(exportFlags.local)
		payload, fetchErr := fetcher.Fetch(cmd.Context(), filename, exportFlags.no)
		if fetchErr != nil {
			return fetchErr
		}
		particles, vertices, decodeErr := payload.Decode()
		if decodeErr != nil {
			return decodeErr
		}
		s := scene.New()
		if buildErr := viewer.NewBuilder(vc).Build(s, mode, particles, vertices); buildErr != nil {
			log.Warnf("event %d: %s", exportFlags.no, buildErr.Error())
		}

		out, createErr := os.Create(args[0])
		if createErr != nil {
			return createErr
		}
		if exportErr := scene.ExportVTK(out, s); exportErr != nil {
			out.Close()
			return exportErr
		}
		log.Infof("wrote %d tracks of event %d to %s", len(s.Particles()), exportFlags.no, args[0])
		return out.Close()
	},
}

var cmdImport = &cobra.Command{
	Use:   "import FILE...",
	Short: "load HepMC files into the event store",
	Long:  "store every event of the given files in HEPVIS_DB_URL or, when unset, copy them into HEPVIS_DATA_DIR",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := conf.SetupConfig()
		source, release, sourceErr := openSource(config)
		if sourceErr != nil {
			return sourceErr
		}
		defer release()

		resolver := &action.Resolver{Config: config}
		for _, path := range args {
			file, openErr := os.Open(path)
			if openErr != nil {
				return openErr
			}
			result, uploadErr := resolver.Upload(source, filepath.Base(path), file)
			file.Close()
			if uploadErr != nil {
				return fmt.Errorf("%s: %w", path, uploadErr)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d events\n", result.Filename, result.Events)
		}
		return nil
	},
}

func openSource(config *conf.Config) (action.EventSource, func(), error) {
	if !config.UseDB() {
		return hepmc.NewDir(config.DataDir), func() {}, nil
	}
	dbCreatorFunc, dbErr := mongo.SetupDB(config)
	if dbErr != nil {
		return nil, nil, dbErr
	}
	db := dbCreatorFunc()
	return db, db.Close, nil
}

// setupLoggingLevel applies HEPVIS_LOG_LEVEL for commands which do not read
// the server configuration.
func setupLoggingLevel() error {
	level := os.Getenv("HEPVIS_LOG_LEVEL")
	if level == "" {
		return nil
	}
	parsed, parseErr := conf.ParseLoggingLevel(level)
	if parseErr != nil {
		return parseErr
	}
	return conf.SetLoggingLevel(parsed)
}
