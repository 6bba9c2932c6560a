package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/clarktrimble/sabot"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/pkg/errors"

	"vitrina"
	"vitrina/api"
	"vitrina/catalog"
	"vitrina/store/duck"
	"vitrina/store/pg"
	"vitrina/util"
)

const usage = `usage: vitrina [-config path] browse|serve|sample

  browse  page through vehicles in the terminal
  serve   serve vehicle and post views as json
  sample  write a sample config to the config path
`

func main() {

	cfgPath := flag.String("config", "vitrina.yaml", "path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	err := run(flag.Arg(0), *cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %+v\n", err)
		os.Exit(1)
	}
}

func run(command, cfgPath string) (err error) {

	if command == "sample" {
		written, err := util.SampleConfig(util.Sample, cfgPath, 0644)
		if err != nil {
			return err
		}
		if !written {
			fmt.Printf("%s exists, leaving it be\n", cfgPath)
		}
		return nil
	}

	cfg, err := util.LoadVitrina(cfgPath)
	if err != nil {
		return
	}

	status, err := parseStatus(cfg.Store.Status)
	if err != nil {
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	switch command {
	case "browse":
		// the terminal belongs to bubbletea, so log to file
		logFile := util.OpenLog(cfg.Log.Path, 0644)
		defer util.CloseLog(logFile)
		return browse(ctx, cfg, status, logFile)

	case "serve":
		return serve(ctx, cfg, status, os.Stdout)
	}

	return errors.Errorf("unknown command: %q", command)
}

func browse(ctx context.Context, cfg util.Config, status catalog.Status, logFile io.Writer) (err error) {

	lgr := &sabot.Sabot{Writer: logFile}
	ctx = lgr.WithFields(ctx, "run_id", uuid.NewString(), "command", "browse")

	store, err := openStore(ctx, cfg.Store, lgr)
	if err != nil {
		return
	}
	defer store.Close()

	model, err := vitrina.NewModel(ctx, store, layout(cfg.View), status, lgr)
	if err != nil {
		return
	}

	_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
	err = errors.Wrapf(err, "failed to run browser")
	return
}

func serve(ctx context.Context, cfg util.Config, status catalog.Status, logOut io.Writer) (err error) {

	lgr := &sabot.Sabot{Writer: logOut}
	ctx = lgr.WithFields(ctx, "run_id", uuid.NewString(), "command", "serve")

	store, err := openStore(ctx, cfg.Store, lgr)
	if err != nil {
		return
	}
	defer store.Close()

	var posts []catalog.Post
	if cfg.Store.Posts != "" {
		posts, err = catalog.LoadPosts(cfg.Store.Posts)
		if err != nil {
			return
		}
	}

	lay := layout(cfg.View)
	srv := api.NewServer(store, api.Options{
		Status:      status,
		DefaultSort: lay.DefaultSort,
		Posts:       posts,
	}, lgr)

	go func() {
		<-ctx.Done()
		shutCtx, shutCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutCancel()
		srv.Shutdown(shutCtx)
	}()

	return srv.Start(ctx, cfg.Server.Addr)
}

// openStore opens the configured vehicle store, loading the json export for duck.
func openStore(ctx context.Context, cfg util.StoreConfig, lgr *sabot.Sabot) (store vitrina.Store, err error) {

	if cfg.Kind == util.PgStore {
		pgs, err := pg.New(ctx, cfg.Dsn, lgr)
		if err != nil {
			return nil, err
		}
		return pgs, nil
	}

	dk, err := duck.New(lgr)
	if err != nil {
		return
	}

	err = dk.Load(ctx, cfg.Path)
	if err != nil {
		dk.Close()
		return
	}

	store = dk
	return
}

// layout overlays configured view settings on the default layout.
func layout(cfg util.ViewConfig) vitrina.Layout {

	lay := vitrina.DefaultLayout()
	if len(cfg.Columns) > 0 {
		lay.Columns = cfg.Columns
	}
	if cfg.DefaultSort != nil {
		lay.DefaultSort = cfg.DefaultSort
	}
	if cfg.Language != "" {
		lay.Language = cfg.Language
	}
	return lay
}

func parseStatus(text string) (status catalog.Status, err error) {

	if text == "" {
		return
	}
	return catalog.ParseStatus(text)
}
