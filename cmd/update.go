package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/blang/semver"
	"github.com/pkg/errors"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
	"github.com/spf13/cobra"

	"github.com/olickqc/hardlinkcheck/pkg/runtime"
)

func UpdateCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "update",
		Short: "Update to latest version",
		Long:  `This command can be used to self-update to the latest version.`,
	}

	command.RunE = func(cmd *cobra.Command, args []string) error {
		// parse current version
		v, err := semver.Parse(runtime.Version)
		if err != nil {
			return errors.Wrap(err, "parse current build version")
		}

		// detect latest version
		fmt.Println("Checking for the latest version...")
		latest, found, err := selfupdate.DetectLatest("olickqc/hardlinkcheck")
		if err != nil {
			return errors.Wrap(err, "determine latest available version")
		}

		// check version
		if !found || latest.Version.LTE(v) {
			fmt.Printf("Already using the latest version: %v\n", runtime.Version)
			return nil
		}

		// ask update
		fmt.Printf("Do you want to update to the latest version: %v? (y/n):\n", latest.Version)
		input, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil || (input != "y\n" && input != "n\n") {
			return errors.New("failed validating input")
		} else if input == "n\n" {
			return nil
		}

		// get existing executable path
		exe, err := os.Executable()
		if err != nil {
			return errors.Wrap(err, "locate current executable path")
		}

		if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
			return errors.Wrap(err, "update existing binary to latest release")
		}

		fmt.Printf("Successfully updated to the latest version: %v\n", latest.Version)
		return nil
	}

	return command
}
