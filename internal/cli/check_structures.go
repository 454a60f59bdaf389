package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mrlokans/sentences/internal/config"
	"github.com/mrlokans/sentences/internal/database"
	"github.com/mrlokans/sentences/internal/database/audit"
	"github.com/mrlokans/sentences/internal/database/sentences"
	"github.com/mrlokans/sentences/internal/entities"
	"github.com/mrlokans/sentences/internal/services"
)

// ErrStaleStructures is returned when -fail is set and the audit found
// sentences whose structure no longer matches their text.
var ErrStaleStructures = errors.New("stale structures found")

type CheckStructuresCommand struct {
	DatabasePath   string
	BatchSize      int
	Timeout        time.Duration
	FailOnMismatch bool
	Verbose        bool

	Out io.Writer
}

func NewCheckStructuresCommand() *CheckStructuresCommand {
	return &CheckStructuresCommand{Out: os.Stdout}
}

func (cmd *CheckStructuresCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("check-structures", flag.ContinueOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the sentences database")
	fs.IntVar(&cmd.BatchSize, "batch", services.DefaultAuditBatchSize, "Number of sentences loaded per batch")
	fs.DurationVar(&cmd.Timeout, "timeout", 10*time.Minute, "Abort the audit after this long")
	fs.BoolVar(&cmd.FailOnMismatch, "fail", false, "Exit with an error when stale structures are found")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "List the IDs of stale sentences")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s check-structures [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Check that every stored structure still flattens to its sentence text.\n")
		fmt.Fprintf(os.Stderr, "The result is stored as a structure audit report.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s check-structures -db ./sentences.db\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s check-structures -fail -verbose\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.DatabasePath == "" {
		fs.Usage()
		return fmt.Errorf("database path is required")
	}
	if cmd.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", cmd.BatchSize)
	}

	return nil
}

func (cmd *CheckStructuresCommand) Run() error {
	if cmd.Out == nil {
		cmd.Out = os.Stdout
	}

	db, err := database.NewDatabase(config.Database{Path: cmd.DatabasePath, LogLevel: "error"})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	if cmd.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cmd.Timeout)
		defer cancel()
	}

	auditor := services.NewStructureAuditor(sentences.NewRepository(db.DB), audit.NewRepository(db.DB), cmd.BatchSize)
	report, err := auditor.Run(ctx, entities.AuditTriggerCLI)
	if err != nil {
		return fmt.Errorf("structure audit failed: %w", err)
	}

	fmt.Fprintf(cmd.Out, "Checked %d structured sentences in %v\n", report.Checked, report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
	fmt.Fprintf(cmd.Out, "Stale structures: %d\n", report.Mismatched)

	if cmd.Verbose && report.MismatchedIDs != "" {
		for _, id := range strings.Split(report.MismatchedIDs, ",") {
			fmt.Fprintf(cmd.Out, "  %s\n", id)
		}
	}

	if cmd.FailOnMismatch && report.Mismatched > 0 {
		return fmt.Errorf("%w: %d", ErrStaleStructures, report.Mismatched)
	}
	return nil
}
