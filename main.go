package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/crate/internal/config"
	"github.com/llehouerou/crate/internal/container"
	"github.com/llehouerou/crate/internal/errmsg"
	"github.com/llehouerou/crate/internal/sorter"
	"github.com/llehouerou/crate/internal/ui"
)

func main() {
	dbPath := flag.String("db", "", "path to the container snapshot database")
	planOnly := flag.Bool("plan", false, "print the planned moves and exit")
	applyNow := flag.Bool("apply", false, "apply the planned moves without the interactive preview")
	dryRun := flag.Bool("dry-run", false, "plan but never apply moves")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpInitialize, err))
		os.Exit(1)
	}

	path := *dbPath
	if path == "" {
		path = cfg.SnapshotDB
	}

	snap, err := container.OpenSnapshot(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, errmsg.Format(errmsg.OpSnapshotOpen, err))
		os.Exit(1)
	}
	defer snap.Close()

	dry := *dryRun || cfg.DryRun

	switch {
	case *planOnly:
		err = runPlan(snap)
	case *applyNow:
		err = runApply(snap, dry, cfg.ShouldConfirm())
	default:
		err = runPreview(snap, dry)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runPlan(snap *container.Snapshot) error {
	plan, err := sorter.PlanReorder(snap)
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpPlanReorder, err))
	}

	if plan.InOrder() {
		fmt.Printf("%d entries already in alphabetical order\n", snap.Count())
		return nil
	}
	fmt.Printf("%d entries, %d moves:\n", snap.Count(), len(plan.Moves))
	for _, mv := range plan.Moves {
		fmt.Printf("  move %3d -> %3d\n", mv.From, mv.To)
	}
	return nil
}

func runApply(snap *container.Snapshot, dry, confirm bool) error {
	plan, err := sorter.PlanReorder(snap)
	if err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpPlanReorder, err))
	}

	if plan.InOrder() {
		fmt.Println("Already in alphabetical order, nothing to do")
		return nil
	}
	if dry {
		fmt.Printf("Dry run: %d moves not applied\n", len(plan.Moves))
		return nil
	}
	if confirm {
		fmt.Printf("Apply %d moves? [y/N] ", len(plan.Moves))
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if s := strings.ToLower(strings.TrimSpace(answer)); s != "y" && s != "yes" {
			fmt.Println("Aborted")
			return nil
		}
	}

	if err := plan.Apply(snap); err != nil {
		return fmt.Errorf("%s", errmsg.Format(errmsg.OpApplyMoves, err))
	}
	fmt.Printf("Applied %d moves\n", len(plan.Moves))
	return nil
}

func runPreview(snap *container.Snapshot, dry bool) error {
	p := tea.NewProgram(ui.New(snap, dry), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run preview: %w", err)
	}
	return nil
}
