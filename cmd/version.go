// =============================================================================
// SEPA XML Export - Version Command
// =============================================================================
//
// This file defines the 'version' command, which displays the application
// version and the supported SEPA versions.
//
// =============================================================================

package cmd

import (
	"fmt"
	"runtime"
	"sort"

	"github.com/spf13/cobra"

	"github.com/paybatch/sepaxml/internal/profile"
)

// Version is the application version. Set at build time using ldflags.
var Version = "1.0.0"

// BuildDate is the date the application was built. Set at build time
// using ldflags.
var BuildDate = "unknown"

// versionCmd represents the 'version' command.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version and supported SEPA versions",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("SEPA XML Export")
		fmt.Printf("Version:    %s\n", Version)
		fmt.Printf("Build Date: %s\n", BuildDate)
		fmt.Printf("Go Version: %s\n", runtime.Version())

		names := make([]string, 0)
		for _, code := range profile.Versions() {
			names = append(names, code.String())
		}
		sort.Strings(names)
		fmt.Println("Supported SEPA versions:")
		for _, name := range names {
			fmt.Printf("  %s\n", name)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
