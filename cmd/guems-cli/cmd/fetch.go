package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"guems-backend/lib/scrapers/icloudems"
)

var fetchOutput string
var fetchProfile bool

func init() {
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "write the page source to a file instead of stdout")
	fetchCmd.Flags().BoolVar(&fetchProfile, "profile", false, "fetch the profile page instead of the timetable")
	rootCmd.AddCommand(fetchCmd)
}

func requireEnv(name string) string {
	value, ok := os.LookupEnv(name)
	if !ok {
		fmt.Fprintf(os.Stderr, "You should specify the environment variable %s.\n", name)
		os.Exit(1)
	}
	return value
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Logs into the portal and downloads a page source.",
	Run: func(cmd *cobra.Command, args []string) {
		client, err := icloudems.NewClient(icloudems.ClientOptions{
			BaseUrl:         requireEnv("GUEMS_BASE_URL"),
			AdmissionNumber: requireEnv("GUEMS_ADMISSION_NUMBER"),
			Password:        requireEnv("GUEMS_PASSWORD"),
		})
		if err != nil {
			log.Fatal(err)
		}
		defer client.Close()

		err = client.Login(cmd.Context())
		if err != nil {
			log.Fatal(err)
		}

		target := icloudems.PageTimetable
		if fetchProfile {
			target = icloudems.PageProfile
		}
		source, err := client.DownloadPageSource(cmd.Context(), target)
		if err != nil {
			log.Fatal(err)
		}

		if fetchOutput == "" {
			fmt.Println(source)
			return
		}
		err = os.WriteFile(fetchOutput, []byte(source), 0644)
		if err != nil {
			log.Fatal(err)
		}
	},
}
