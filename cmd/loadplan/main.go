// LoadPlan — ULD Load Planner
//
// A console tool that places cargo containers (ULDs) onto the discrete bay
// slots of an aircraft, honoring deck restrictions, nose/tail clearances,
// and multi-slot widths, then prints the bay diagram and assignment report.
//
// Build:
//   go build -o loadplan ./cmd/loadplan
//
// Typical runs:
//   loadplan -model B747-400F -manifest uld_manifest.csv
//   loadplan -model B777F -strategy balance -pdf loadsheet.pdf
//   loadplan -load flight-123 -strategy firstfit
//   loadplan            (fully interactive)
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/skylane/loadplan/internal/catalog"
	"github.com/skylane/loadplan/internal/config"
	"github.com/skylane/loadplan/internal/engine"
	"github.com/skylane/loadplan/internal/export"
	"github.com/skylane/loadplan/internal/importer"
	"github.com/skylane/loadplan/internal/logging"
	"github.com/skylane/loadplan/internal/model"
	"github.com/skylane/loadplan/internal/project"
	"github.com/skylane/loadplan/internal/prompt"
	"github.com/skylane/loadplan/internal/render"
)

func main() {
	var (
		configDir  = flag.String("config", ".", "directory containing loadplan.json")
		aircraftDB = flag.String("aircraft-db", "", "aircraft catalog path (overrides config)")
		uldDB      = flag.String("uld-db", "", "container-type catalog path (overrides config)")
		modelName  = flag.String("model", "", "aircraft model (prompted when empty)")
		manifest   = flag.String("manifest", "", "container manifest (.csv or .xlsx); interactive entry when empty")
		strategy   = flag.String("strategy", "", "placement strategy: firstfit or balance (overrides config)")
		outFile    = flag.String("out", "", "text artifact path (overrides config)")
		pdfFile    = flag.String("pdf", "", "also export a PDF load sheet to this path")
		labelsFile = flag.String("labels", "", "also export QR-coded ULD labels to this path")
		dxfFile    = flag.String("dxf", "", "also export the deck layout as DXF to this path")
		xlsxFile   = flag.String("xlsx", "", "also export the assignment summary as XLSX to this path")
		sessFile   = flag.String("session", "", "save the full planning session (name or path)")
		loadFile   = flag.String("load", "", "replan a saved session (name or path) instead of prompting")
	)
	flag.Parse()

	cfg, cfgErr := config.Load(*configDir)
	log := logging.New(os.Stderr, cfg.LogLevel)
	if cfgErr != nil {
		log.Warn().Err(cfgErr).Msg("config unreadable, using defaults")
	}

	if *aircraftDB != "" {
		cfg.AircraftDB = *aircraftDB
	}
	if *uldDB != "" {
		cfg.ULDDB = *uldDB
	}
	if *strategy != "" {
		cfg.Strategy = *strategy
	}
	if *outFile != "" {
		cfg.OutputFile = *outFile
	}

	types, err := catalog.LoadContainerTypes(cfg.ULDDB)
	if err != nil {
		log.Warn().Err(err).Msg("container-type catalog unavailable, all widths default to 1")
		types = nil
	}
	library, err := catalog.LoadAircraft(cfg.AircraftDB)
	if err != nil {
		log.Warn().Err(err).Msg("aircraft catalog unavailable")
		library = catalog.Library{}
	}

	p := prompt.New(os.Stdin, os.Stdout)

	fmt.Println("=== ULD Load Planner ===")

	var (
		ac         model.Aircraft
		containers []model.Container
	)
	settings := cfg.Settings()

	if *loadFile != "" {
		sess, err := loadSession(*loadFile)
		if err != nil {
			log.Fatal().Err(err).Str("session", *loadFile).Msg("could not load session")
		}
		ac = sess.Aircraft
		containers = sess.Containers
		if *strategy == "" {
			settings = sess.Settings
		}
		fmt.Printf("Replanning session %s: %s, %d ULDs\n", sess.Name, ac.Model, len(containers))
	} else {
		var err error
		ac, err = chooseAircraft(p, library, *modelName)
		if err != nil {
			log.Fatal().Err(err).Msg("aircraft selection failed")
		}
		containers, err = collectContainers(p, *manifest, log)
		if err != nil {
			log.Fatal().Err(err).Msg("container input failed")
		}
	}

	planner := engine.New(settings, types)
	result := planner.Plan(ac, containers)

	lines := render.PlanLines(result, types)
	for _, line := range lines {
		fmt.Println(line)
	}

	if err := render.WriteFile(cfg.OutputFile, lines); err != nil {
		log.Warn().Err(err).Str("path", cfg.OutputFile).Msg("could not save load plan")
	} else {
		fmt.Printf("\nLoad plan saved to %s\n", cfg.OutputFile)
	}

	exports := []struct {
		path string
		kind string
		run  func(string) error
	}{
		{*pdfFile, "PDF load sheet", func(p string) error { return export.ExportPDF(p, result, types) }},
		{*labelsFile, "ULD labels", func(p string) error { return export.ExportLabels(p, result, types) }},
		{*dxfFile, "DXF layout", func(p string) error { return export.ExportDXF(p, result) }},
		{*xlsxFile, "XLSX summary", func(p string) error { return export.ExportXLSX(p, result) }},
	}
	for _, e := range exports {
		if e.path == "" {
			continue
		}
		if err := e.run(e.path); err != nil {
			log.Warn().Err(err).Str("path", e.path).Msgf("could not export %s", e.kind)
			continue
		}
		fmt.Printf("%s saved to %s\n", e.kind, e.path)
	}

	if *sessFile != "" {
		sess := project.Session{
			Name:       ac.Model,
			Aircraft:   ac,
			Containers: containers,
			Settings:   settings,
			Result:     &result,
		}
		if err := saveSession(*sessFile, sess); err != nil {
			log.Warn().Err(err).Str("session", *sessFile).Msg("could not save session")
		}
	}
}

// loadSession reads a saved session by name or path.
func loadSession(ref string) (project.Session, error) {
	path, err := project.ResolvePath(ref)
	if err != nil {
		return project.Session{}, err
	}
	return project.Load(path)
}

// saveSession writes a session by name or path.
func saveSession(ref string, sess project.Session) error {
	path, err := project.ResolvePath(ref)
	if err != nil {
		return err
	}
	return project.Save(path, sess)
}

// chooseAircraft resolves the aircraft from the catalog, prompting for the
// model when none was given and for a custom geometry when the model is
// unknown.
func chooseAircraft(p *prompt.Prompter, library catalog.Library, modelName string) (model.Aircraft, error) {
	if len(library) > 0 {
		fmt.Println("Aircraft in catalog:")
		for _, m := range library.Models() {
			fmt.Printf(" - %s\n", m)
		}
	}

	name := modelName
	if name == "" {
		var err error
		name, err = p.StringDefault("Enter aircraft model: ", "")
		if err != nil {
			return model.Aircraft{}, err
		}
	}

	if ac, ok := library[name]; ok && name != "" {
		fmt.Printf("Using catalog entry for %s\n", name)
		return ac, nil
	}

	fmt.Println("Custom aircraft")
	mainSlots, err := p.IntMin("Main deck slots: ", 0)
	if err != nil {
		return model.Aircraft{}, err
	}
	lowerSlots, err := p.IntMin("Lower deck slots: ", 0)
	if err != nil {
		return model.Aircraft{}, err
	}

	ac := model.Aircraft{
		Model:     name,
		MainDeck:  model.DeckGeometry{Slots: mainSlots, RowLength: 8},
		LowerDeck: model.DeckGeometry{Slots: lowerSlots, RowLength: 8},
	}
	if ac.Model == "" {
		ac.Model = "CUSTOM"
	}
	return ac, nil
}

// collectContainers reads the container list from a manifest file or, when
// none is given, interactively.
func collectContainers(p *prompt.Prompter, manifest string, log zerolog.Logger) ([]model.Container, error) {
	if manifest != "" {
		res := importer.Import(manifest)
		for _, w := range res.Warnings {
			log.Warn().Msg(w)
		}
		for _, e := range res.Errors {
			log.Warn().Msg(e)
		}
		if len(res.Containers) == 0 {
			return nil, fmt.Errorf("manifest %s yielded no containers", manifest)
		}
		return res.Containers, nil
	}

	n, err := p.Int("Number of ULDs: ")
	if err != nil {
		return nil, err
	}
	return p.Containers(n)
}
