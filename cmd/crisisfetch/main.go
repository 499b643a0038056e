package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"generosity-backend/cmd/config"
	"generosity-backend/internal/utils"
	"generosity-backend/pkg/crisisalert"

	"github.com/spf13/cobra"
)

// crisisfetch pulls external disaster feeds and stores them as system
// crisis alerts. Meant to run from cron alongside the API server.
func main() {
	var force bool

	cmd := &cobra.Command{
		Use:           "crisisfetch",
		Short:         "Fetch external disaster data into system crisis alerts",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "bypass the recent-run guard")

	if err := cmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run(force bool) error {
	utils.LoadConfig()

	db, err := config.ConnectDB()
	if err != nil {
		return err
	}

	repository := crisisalert.NewCrisisAlertRepository(db)
	service := crisisalert.NewCrisisAlertService(repository, crisisalert.NewDisasterFetcher())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := service.RefreshSystemAlerts(ctx, force)
	if err != nil {
		return err
	}

	if result.Suppressed {
		fmt.Println("refresh suppressed: a recent run already created system alerts (use --force to override)")
		return nil
	}

	fmt.Printf("created %d system alerts\n", result.CreatedCount)
	for _, title := range result.Titles {
		fmt.Printf("  - %s\n", title)
	}
	return nil
}
