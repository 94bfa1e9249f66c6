package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edubridge/edubridge/internal/config"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Initialize the configuration file",
	RunE:  runOnboard,
}

func runOnboard(_ *cobra.Command, _ []string) error {
	cfgPath := config.ConfigPath()

	if _, err := os.Stat(cfgPath); err == nil {
		fmt.Printf("Config already exists at %s\n", cfgPath)
		fmt.Printf("Press Enter to refresh (keep existing values) or Ctrl+C to cancel: ")
		fmt.Scanln()
		existing, loadErr := config.Load(cfgPath)
		if loadErr != nil {
			def := config.DefaultConfig()
			existing = &def
		}
		if err := config.Save(existing, cfgPath); err != nil {
			return err
		}
		fmt.Printf("✓ Config refreshed at %s\n", cfgPath)
	} else {
		cfg := config.DefaultConfig()
		cfg.Schools = []config.SchoolConfig{{
			Subdomain: "yourschool",
			Username:  "",
			Password:  "",
		}}
		if err := config.Save(&cfg, cfgPath); err != nil {
			return err
		}
		fmt.Printf("✓ Created config at %s\n", cfgPath)
	}

	fmt.Printf("\n%s edubridge is ready!\n\n", logo)
	fmt.Println("Next steps:")
	fmt.Printf("  1. Put your Edupage subdomain and credentials in %s\n", cfgPath)
	fmt.Println("     (or set EDUPAGE_SUBDOMAIN, EDUPAGE_USERNAME, EDUPAGE_PASSWORD)")
	fmt.Println("  2. Check them: edubridge status")
	fmt.Println("  3. Point your MCP client at: edubridge serve")
	return nil
}
