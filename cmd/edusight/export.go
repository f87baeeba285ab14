package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	"github.com/noah-isme/edusight/internal/dto"
	"github.com/noah-isme/edusight/pkg/export"
	"github.com/noah-isme/edusight/pkg/storage"
)

func (a *app) cmdExport(args []string) error {
	if len(args) == 0 || args[0] != "performance" {
		return errors.New("usage: edusight export performance [csv|pdf]")
	}

	format := "pdf"
	if len(args) > 1 {
		format = args[1]
	}

	user, err := a.requireRole(dto.RoleStudent)
	if err != nil {
		return err
	}

	snapshot, err := a.client.StudentPerformance(context.Background(), user.ID)
	if err != nil {
		return err
	}

	report := export.PerformanceReport(snapshot)

	var data []byte
	switch format {
	case "csv":
		data, err = export.NewCSVExporter().Render(report)
	case "pdf":
		data, err = export.NewPDFExporter().Render(report)
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
	if err != nil {
		return err
	}

	store, err := storage.NewLocalStorage(a.cfg.Exports.Dir)
	if err != nil {
		return err
	}

	filename := fmt.Sprintf("performance_%s.%s", time.Now().UTC().Format("20060102_150405"), format)
	path, err := store.Save(filename, data)
	if err != nil {
		return err
	}

	color.Green("Report saved to %s", path)
	return nil
}
