package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// Environment passed to the extensions, the same variables LoadConfig reads.
const (
	EnvCatalog      = "TGR_CATALOG"
	EnvDB           = "TGR_DB"
	EnvRatesURL     = "TGR_RATES_URL"
	EnvGoldURL      = "TGR_GOLD_URL"
	EnvBaseCurrency = "TGR_BASE_CURRENCY"
	EnvLang         = "TGR_LANG"
	EnvVerbose      = "TGR_VERBOSE"
)

// RunExtension attempts to find and execute an external tgr-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	name := "tgr-" + subcommand

	lp, err := exec.LookPath(name)
	if err != nil {
		return false, 0
	}
	cfg, err := config()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return true, 1
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// the resolved configuration overrides the inherited environment.
	cmd.Env = append(os.Environ(),
		EnvCatalog+"="+cfg.Catalog,
		EnvDB+"="+cfg.DB,
		EnvRatesURL+"="+cfg.RatesURL,
		EnvGoldURL+"="+cfg.GoldURL,
		EnvBaseCurrency+"="+cfg.BaseCurrency,
		EnvLang+"="+cfg.Lang,
		EnvVerbose+"="+strconv.FormatBool(*Verbose),
	)

	if err := cmd.Run(); err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			return true, exitError.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", name, err)
		return true, 1
	}
	return true, 0
}
