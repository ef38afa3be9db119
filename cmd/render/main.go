package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samirrijal/aeroprofile/internal/adapters/export"
	"github.com/samirrijal/aeroprofile/internal/adapters/postgres"
	"github.com/samirrijal/aeroprofile/internal/adapters/profilejson"
	"github.com/samirrijal/aeroprofile/internal/core/domain"
	"github.com/samirrijal/aeroprofile/internal/core/geometry"
	"github.com/samirrijal/aeroprofile/internal/core/usecases"
	"github.com/samirrijal/aeroprofile/internal/pkg/config"
)

// rendered is one decoded and generated profile file.
type rendered struct {
	path string
	res  *profilejson.Result
}

func main() {
	formats := flag.String("format", "geojson", "comma-separated outputs: geojson, pdf")
	outDir := flag.String("out", ".", "output directory")
	store := flag.Bool("store", false, "also import the profiles into Postgres in one batch")
	strict := flag.Bool("strict", false, "apply form-level range checks")
	workers := flag.Int("j", 4, "max files rendered concurrently")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		log.Fatal("usage: render [-format geojson,pdf] [-out dir] [-store] profile.json...")
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create %s: %v", *outDir, err)
	}
	want := strings.Split(*formats, ",")

	log.Printf("Aeroprofile render: %d files -> %s (%s)", len(files), *outDir, *formats)

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		done   []rendered
		failed int
		sem    = make(chan struct{}, max(*workers, 1))
	)
	for _, f := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(path string) {
			defer wg.Done()
			defer func() { <-sem }()

			r, err := renderFile(path, *outDir, want, *strict)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("ERROR [%s]: %v", path, err)
				failed++
				return
			}
			done = append(done, r)
		}(f)
	}
	wg.Wait()

	if *store && len(done) > 0 {
		if err := storeAll(done); err != nil {
			log.Fatalf("store: %v", err)
		}
	}

	log.Printf("done: %d rendered, %d failed", len(done), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func renderFile(path, outDir string, formats []string, strict bool) (rendered, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return rendered{}, err
	}
	res, err := profilejson.Decode(data)
	if err != nil {
		return rendered{}, err
	}
	for _, n := range res.Notices {
		log.Printf("[%s] notice %s: %s", path, n.Code, n.Message)
	}
	if strict {
		if err := profilejson.ValidateDocument(res.Config); err != nil {
			return rendered{}, err
		}
	}
	set, err := geometry.Generate(res.Config, res.Style)
	if err != nil {
		return rendered{}, err
	}
	for _, w := range set.Warnings {
		log.Printf("[%s] warning %s: %s", path, w.Code, w.Message)
	}

	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	for _, format := range formats {
		var out []byte
		switch strings.TrimSpace(format) {
		case "geojson":
			if out, err = export.GeoJSON(set); err != nil {
				return rendered{}, err
			}
		case "pdf":
			var buf bytes.Buffer
			tbl := geometry.DistanceAltitudeTable(res.Config.Runway, res.Config.Points, geometry.DefaultTableLayout)
			title := "RWY " + res.Config.Runway.Direction
			if err := export.PDF(&buf, set, export.PDFOptions{Title: title, Table: &tbl}); err != nil {
				return rendered{}, err
			}
			out = buf.Bytes()
		default:
			return rendered{}, fmt.Errorf("unknown format %q", format)
		}
		dst := filepath.Join(outDir, base+"."+strings.TrimSpace(format))
		if err := os.WriteFile(dst, out, 0o644); err != nil {
			return rendered{}, err
		}
		log.Printf("[%s] %d features -> %s", path, set.Len(), dst)
	}
	return rendered{path: path, res: res}, nil
}

func storeAll(done []rendered) error {
	cfg, err := config.Load("aeroprofile-render")
	if err != nil {
		return err
	}
	ctx := context.Background()
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	charts := usecases.NewChartService(nil, nil, usecases.ChartOptions{})
	svc := usecases.NewProfileService(postgres.NewProfileRepo(db), charts)

	ps := make([]domain.Profile, len(done))
	for i, r := range done {
		ps[i] = domain.Profile{
			Name:   strings.TrimSuffix(filepath.Base(r.path), filepath.Ext(r.path)),
			Config: r.res.Config,
			Style:  r.res.Style,
		}
	}
	ids, err := svc.Import(ctx, ps)
	if err != nil {
		return err
	}
	log.Printf("stored %d profiles: %s", len(ids), strings.Join(ids, ", "))
	return nil
}
