package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	_ "github.com/lib/pq"

	"github.com/mailbeacon/mailbeacon/config"
	"github.com/mailbeacon/mailbeacon/internal/database"
	"github.com/mailbeacon/mailbeacon/internal/repository"
	"github.com/mailbeacon/mailbeacon/internal/service"
	"github.com/mailbeacon/mailbeacon/pkg/logger"
)

// subscribers imports or exports distribution list members as CSV.
//
//	subscribers -list newsletter -import members.csv
//	subscribers -list newsletter -export
func main() {
	list := flag.String("list", "", "distribution list name")
	importFile := flag.String("import", "", "CSV file to import (email,name header)")
	export := flag.Bool("export", false, "write the list as CSV to stdout")
	flag.Parse()

	if *list == "" {
		fmt.Fprintln(os.Stderr, "error: -list is required")
		flag.Usage()
		os.Exit(1)
	}
	if *importFile == "" && !*export {
		fmt.Fprintln(os.Stderr, "error: one of -import or -export is required")
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	svc := service.NewSubscriberService(
		repository.NewSubscriberRepository(db),
		logger.NewLoggerWithLevel(cfg.LogLevel),
	)

	ctx := context.Background()

	if *importFile != "" {
		f, err := os.Open(*importFile)
		if err != nil {
			log.Fatalf("Failed to open %s: %v", *importFile, err)
		}
		defer f.Close()

		imported, skipped, err := svc.ImportCSV(ctx, *list, f)
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		fmt.Printf("imported %d subscribers into %s (%d skipped)\n", imported, *list, skipped)
		return
	}

	if err := svc.ExportCSV(ctx, *list, os.Stdout); err != nil {
		log.Fatalf("Export failed: %v", err)
	}
}
