package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/noah-isme/edusight/internal/dto"
	"github.com/noah-isme/edusight/pkg/storage"
)

func (a *app) cmdSheets(args []string) error {
	user, err := a.requireRole(dto.RoleStudent)
	if err != nil {
		return err
	}

	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "upload":
		if len(args) != 3 {
			return errors.New("usage: edusight sheets upload <code> <file.pdf>")
		}
		file, err := storage.OpenUpload(args[2])
		if err != nil {
			return err
		}
		defer file.Close() //nolint:errcheck

		ack, err := a.client.UploadAnswerSheet(context.Background(), user.ID, args[1], args[2], file)
		if err != nil {
			return err
		}
		color.Green("%s", ack.Message)
		return nil
	case "list":
		sheets, err := a.client.AnswerSheets(context.Background(), user.ID)
		if err != nil {
			return err
		}
		if len(sheets) == 0 {
			fmt.Println("No answer sheets uploaded yet.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FILE\tSTATUS\tUPLOADED\tPROCESSED")
		for _, sheet := range sheets {
			processed := "-"
			if sheet.ProcessedAt != nil {
				processed = *sheet.ProcessedAt
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", sheet.FileName, sheet.Status, sheet.CreatedAt, processed)
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown sheets subcommand: %s", sub)
	}
}

func (a *app) cmdPerformance() error {
	user, err := a.requireRole(dto.RoleStudent)
	if err != nil {
		return err
	}

	snapshot, err := a.client.StudentPerformance(context.Background(), user.ID)
	if err != nil {
		return err
	}

	color.New(color.Bold).Printf("Performance - %s\n\n", snapshot.StudentName)
	fmt.Printf("overall average: %.1f\n\n", snapshot.OverallAverage)

	if len(snapshot.TopicScores) == 0 {
		fmt.Println("No graded answer sheets yet.")
		return nil
	}

	topics := make([]string, 0, len(snapshot.TopicScores))
	for topic := range snapshot.TopicScores {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TOPIC\tSCORE\tCLASS AVG")
	for _, topic := range topics {
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\n", topic, snapshot.TopicScores[topic], snapshot.ClassAverages[topic])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()

	if len(snapshot.StrongTopics) > 0 {
		color.Green("strong: %v", snapshot.StrongTopics)
	}
	if len(snapshot.WeakTopics) > 0 {
		color.Yellow("needs work: %v", snapshot.WeakTopics)
	}
	return nil
}
