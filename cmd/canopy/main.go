package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/Legal-and-General/canopy-design-tokens/internal/artifact"
	"github.com/Legal-and-General/canopy-design-tokens/internal/catalog"
	"github.com/Legal-and-General/canopy-design-tokens/internal/config"
	"github.com/Legal-and-General/canopy-design-tokens/internal/figma"
	"github.com/Legal-and-General/canopy-design-tokens/internal/graph"
	"github.com/Legal-and-General/canopy-design-tokens/internal/outfs"
	"github.com/Legal-and-General/canopy-design-tokens/internal/render"
	"github.com/Legal-and-General/canopy-design-tokens/internal/tokens"
)

func main() {
	fileKey := flag.String("file-key", "", "design file key (falls back to FIGMA_FILE_KEY)")
	outDir := flag.String("out", "dist", "output directory")
	fromFile := flag.String("from-file", "", "load a saved raw graph JSON instead of fetching")
	targetsPath := flag.String("targets", "", "render targets YAML file")
	publish := flag.Bool("publish", false, "publish emitted files to S3-compatible storage")
	skipRender := flag.Bool("skip-render", false, "write token artifacts only, no stylesheets or typed module")
	saveRaw := flag.Bool("save-raw", false, "save the fetched raw graph next to the artifacts")
	flag.Parse()

	cfg := config.FromEnv()
	if *fileKey == "" {
		*fileKey = cfg.FileKey
	}

	ctx := context.Background()
	runID := uuid.New()
	startedAt := time.Now().UTC()

	var resp *figma.VariablesResponse
	if *fromFile != "" {
		b, err := os.ReadFile(*fromFile)
		if err != nil {
			log.Fatal(err)
		}
		resp = &figma.VariablesResponse{}
		if err := json.Unmarshal(b, resp); err != nil {
			log.Fatalf("decode %s: %v", *fromFile, err)
		}
		log.Printf("loaded raw graph from %s", *fromFile)
	} else {
		if *fileKey == "" {
			log.Fatal("--file-key or FIGMA_FILE_KEY is required")
		}
		client := figma.NewClient(cfg.Token)
		var err error
		resp, err = client.LocalVariables(ctx, *fileKey)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("fetched raw graph for file %s", *fileKey)
	}

	idx, err := graph.Load(resp)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("indexed %d variables in %d collections", len(idx.Variables), len(idx.Collections))

	trees, stats, err := tokens.NewBuilder(idx).Build()
	if err != nil {
		log.Fatal(err)
	}

	out, err := outfs.New(*outDir)
	if err != nil {
		log.Fatal(err)
	}

	var written []string
	if *saveRaw {
		b, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			log.Fatal(err)
		}
		if err := out.WriteFile("raw-graph.json", b); err != nil {
			log.Fatal(err)
		}
		written = append(written, "raw-graph.json")
	}

	store := artifact.NewStore(out)
	for _, name := range sortedNames(trees) {
		file, err := store.WriteCollection(name, trees[name])
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("%s: %d tokens → %s", name, trees[name].Len(), file)
		written = append(written, file)
	}

	if !*skipRender {
		targets, err := config.LoadTargets(*targetsPath)
		if err != nil {
			log.Fatal(err)
		}
		written = append(written, renderOutputs(out, trees, targets)...)
	}

	if *publish {
		pub, err := artifact.NewS3Publisher(artifact.S3Config{
			Endpoint:  cfg.Publish.Endpoint,
			Region:    cfg.Publish.Region,
			AccessKey: cfg.Publish.AccessKey,
			SecretKey: cfg.Publish.SecretKey,
			Bucket:    cfg.Publish.Bucket,
			UseSSL:    cfg.Publish.UseSSL,
		})
		if err != nil {
			log.Fatal(err)
		}
		for _, file := range written {
			b, err := out.ReadFile(file)
			if err != nil {
				log.Fatal(err)
			}
			if err := pub.Publish(ctx, runID.String(), file, b); err != nil {
				log.Fatal(err)
			}
		}
		log.Printf("published %d files under run %s", len(written), runID)
	}

	if runs, err := catalog.NewFromEnv(cfg.CatalogDSN); err != nil {
		log.Printf("WARNING: run catalog disabled: %v", err)
	} else if runs != nil {
		defer runs.Close()
		if err := runs.Record(ctx, catalog.Run{
			ID:         runID,
			FileKey:    *fileKey,
			Produced:   stats.Produced,
			Skipped:    stats.Skipped,
			Unresolved: stats.Unresolved,
			Overwrites: stats.Overwrites,
			StartedAt:  startedAt,
			FinishedAt: time.Now().UTC(),
		}); err != nil {
			log.Printf("WARNING: record run: %v", err)
		}
	}

	log.Printf("done: %d tokens produced, %d skipped, %d unresolved, %d overwritten → %s",
		stats.Produced, stats.Skipped, stats.Unresolved, stats.Overwrites, out.Root())
}

func renderOutputs(out *outfs.Dir, trees map[string]*tokens.Tree, targets config.Targets) []string {
	var written []string
	for _, name := range targets.Stylesheets {
		tr, ok := trees[name]
		if !ok {
			continue
		}
		file := "css/" + artifact.Slug(name) + ".css"
		if err := out.WriteFile(file, render.Stylesheet(name, tr)); err != nil {
			log.Fatal(err)
		}
		written = append(written, file)
	}

	combined := map[string]*tokens.Tree{}
	for _, name := range targets.Combined {
		if tr, ok := trees[name]; ok {
			combined[name] = tr
		}
	}
	if len(combined) > 0 {
		if err := out.WriteFile("scss/variables.scss", render.Combined(combined)); err != nil {
			log.Fatal(err)
		}
		written = append(written, "scss/variables.scss")
	}

	if targets.Typed {
		b, err := render.TypeScript(trees)
		if err != nil {
			log.Fatal(err)
		}
		if err := out.WriteFile("ts/tokens.ts", b); err != nil {
			log.Fatal(err)
		}
		written = append(written, "ts/tokens.ts")
	}
	return written
}

func sortedNames(trees map[string]*tokens.Tree) []string {
	names := make([]string, 0, len(trees))
	for name := range trees {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
