package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/noah-isme/edusight/internal/dto"
	"github.com/noah-isme/edusight/pkg/storage"
)

func (a *app) cmdCodes(args []string) error {
	user, err := a.requireRole(dto.RoleTeacher)
	if err != nil {
		return err
	}

	sub := "list"
	if len(args) > 0 {
		sub = args[0]
	}

	switch sub {
	case "generate":
		code, err := a.client.GenerateAccessCode(context.Background(), user.ID)
		if err != nil {
			return err
		}
		color.New(color.Bold).Printf("%s\n", code.Code)
		fmt.Printf("expires at %s\n", code.ExpiresAt)
		return nil
	case "list":
		codes, err := a.client.ActiveCodes(context.Background(), user.ID)
		if err != nil {
			return err
		}
		if len(codes) == 0 {
			fmt.Println("No active codes.")
			return nil
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "CODE\tCREATED\tEXPIRES")
		for _, code := range codes {
			fmt.Fprintf(w, "%s\t%s\t%s\n", code.Code, code.CreatedAt, code.ExpiresAt)
		}
		return w.Flush()
	default:
		return fmt.Errorf("unknown codes subcommand: %s", sub)
	}
}

func (a *app) cmdSyllabus(args []string) error {
	user, err := a.requireRole(dto.RoleTeacher)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		return errors.New("usage: edusight syllabus upload <file.pdf> | syllabus show")
	}

	switch args[0] {
	case "upload":
		if len(args) != 2 {
			return errors.New("usage: edusight syllabus upload <file.pdf>")
		}
		file, err := storage.OpenUpload(args[1])
		if err != nil {
			return err
		}
		defer file.Close() //nolint:errcheck

		syllabus, err := a.client.UploadSyllabus(context.Background(), user.ID, args[1], file)
		if err != nil {
			return err
		}
		color.Green("Syllabus uploaded.")
		printTopics(syllabus.Topics)
		return nil
	case "show":
		syllabus, err := a.client.Syllabus(context.Background(), user.ID)
		if err != nil {
			return err
		}
		if syllabus.ID == 0 {
			fmt.Println(syllabus.Message)
			return nil
		}
		fmt.Printf("uploaded %s\n", syllabus.CreatedAt)
		printTopics(syllabus.Topics)
		return nil
	default:
		return fmt.Errorf("unknown syllabus subcommand: %s", args[0])
	}
}

// cmdDashboard fetches the overview and comparison concurrently and waits
// for both before rendering; the two calls are independent round trips.
func (a *app) cmdDashboard() error {
	user, err := a.requireRole(dto.RoleTeacher)
	if err != nil {
		return err
	}

	ctx := context.Background()

	var (
		wg            sync.WaitGroup
		overview      *dto.TeacherOverview
		comparison    *dto.TopicComparison
		overviewErr   error
		comparisonErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		overview, overviewErr = a.client.TeacherOverview(ctx, user.ID)
	}()
	go func() {
		defer wg.Done()
		comparison, comparisonErr = a.client.TopicComparison(ctx, user.ID)
	}()
	wg.Wait()

	if overviewErr != nil {
		return overviewErr
	}
	if comparisonErr != nil {
		return comparisonErr
	}

	color.New(color.Bold).Printf("Class overview - %s\n\n", user.Name)
	fmt.Printf("students: %d\n", overview.TotalStudents)
	fmt.Printf("topics analyzed: %d\n", overview.TopicsAnalyzed)
	fmt.Printf("average understanding: %.1f\n", overview.AverageUnderstanding)
	fmt.Printf("pending analysis: %d\n\n", overview.PendingAnalysis)

	if len(overview.TopicStatistics) > 0 {
		topics := make([]string, 0, len(overview.TopicStatistics))
		for topic := range overview.TopicStatistics {
			topics = append(topics, topic)
		}
		sort.Strings(topics)

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "TOPIC\tCLASS AVG")
		for _, topic := range topics {
			fmt.Fprintf(w, "%s\t%.1f\n", topic, overview.TopicStatistics[topic].Average)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Println()
	}

	if len(overview.RecentUploads) > 0 {
		fmt.Println("Recent uploads:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "STUDENT\tFILE\tSTATUS\tDATE")
		for _, upload := range overview.RecentUploads {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", upload.StudentName, upload.FileName, upload.Status, upload.UploadDate)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Println()
	}

	fmt.Printf("comparison covers %d topics across %d students\n", len(comparison.Topics), len(comparison.Students))
	return nil
}

func printTopics(topics []string) {
	if len(topics) == 0 {
		fmt.Println("No topics extracted.")
		return
	}
	fmt.Println("Topics:")
	for _, topic := range topics {
		fmt.Printf("  - %s\n", topic)
	}
}
