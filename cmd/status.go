package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/edubridge/edubridge/internal/config"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show edubridge status",
	RunE:  runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfgPath := config.ConfigPath()

	fmt.Printf("%s edubridge Status\n\n", logo)

	_, statErr := os.Stat(cfgPath)
	cfgMark := "✗"
	if statErr == nil {
		cfgMark = "✓"
	}
	fmt.Printf("Config:     %s %s\n", cfgPath, cfgMark)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("  (could not load config: %v)\n", err)
		return nil
	}
	cfg.MergeEnv()

	fmt.Printf("Item limit: %d\n", cfg.Timeline.Limit)
	if cfg.KeepAliveMinutes > 0 {
		fmt.Printf("Keep-alive: every %d min\n\n", cfg.KeepAliveMinutes)
	} else {
		fmt.Printf("Keep-alive: disabled\n\n")
	}

	fmt.Println("Schools:")
	if len(cfg.Schools) == 0 {
		fmt.Println("  (none configured)")
		fmt.Printf("\nAdd schools to %s or set EDUPAGE_SUBDOMAIN,\nEDUPAGE_USERNAME and EDUPAGE_PASSWORD.\n", cfgPath)
		return nil
	}
	for _, school := range cfg.Schools {
		mark := "✓"
		if school.Username == "" || school.Password == "" {
			mark = "✗ (missing credentials)"
		}
		fmt.Printf("  %-20s %s\n", school.Subdomain, mark)
	}
	return nil
}
