// Command keystore-convert batch-converts EIP-2335 BLS12-381 validator
// keystores, re-encrypting each under freshly drawn salts and IVs, the way
// tools/keystores decrypts a single keystore but generalized to a whole
// directory and to both web3signer and nimbus on-disk layouts.
package main

import (
	"fmt"
	"os"

	"github.com/logrusorgru/aurora"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-keystore-convert/internal/eip2335"
	"github.com/prysmaticlabs/prysm-keystore-convert/internal/logsetup"
	"github.com/prysmaticlabs/prysm-keystore-convert/internal/naming"
	"github.com/prysmaticlabs/prysm-keystore-convert/internal/pipeline"
	"github.com/prysmaticlabs/prysm-keystore-convert/internal/version"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var log = logrus.WithField("prefix", "main")

var (
	srcFlag = &cli.StringFlag{
		Name:     "src",
		Aliases:  []string{"s"},
		Usage:    "Source directory of keystores to convert",
		Required: true,
	}
	destFlag = &cli.StringFlag{
		Name:     "dest",
		Aliases:  []string{"d"},
		Usage:    "Destination directory for converted keystores (created if missing)",
		Required: true,
	}
	passwordDirFlag = &cli.StringFlag{
		Name:     "password_dir",
		Aliases:  []string{"w"},
		Usage:    "Directory of password files matching the source keystores",
		Required: true,
	}
	modeFlag = &cli.StringFlag{
		Name:    "mode",
		Aliases: []string{"m"},
		Usage:   "On-disk naming convention: WEB3SIGNER or NIMBUS",
		Value:   naming.Web3Signer.String(),
	}
	pbkdf2CountFlag = &cli.UintFlag{
		Name:  "c",
		Usage: "PBKDF2 iteration count for re-encryption (intended for testing; override for production use)",
		Value: 1,
	}
	scryptNFlag = &cli.UintFlag{
		Name:  "n",
		Usage: "scrypt N parameter for re-encryption",
		Value: 2,
	}
	scryptPFlag = &cli.UintFlag{
		Name:  "p",
		Usage: "scrypt p parameter for re-encryption",
		Value: 1,
	}
	scryptRFlag = &cli.UintFlag{
		Name:  "r",
		Usage: "scrypt r parameter for re-encryption",
		Value: 8,
	}
	kdfFlag = &cli.StringFlag{
		Name:  "kdf",
		Usage: "KDF to re-encrypt with: scrypt or pbkdf2",
		Value: string(eip2335.KdfPbkdf2),
	}
	logFormatFlag = &cli.StringFlag{
		Name:  "log-format",
		Usage: "Log output format: text, json, fluentd",
		Value: "text",
	}
	logFileFlag = &cli.StringFlag{
		Name:  "log-file",
		Usage: "If set, also write logs to this file",
	}
)

func main() {
	app := &cli.App{
		Name:    "keystore-convert",
		Usage:   "Batch-convert EIP-2335 keystores, re-encrypting each under fresh salts and IVs",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			srcFlag,
			destFlag,
			passwordDirFlag,
			modeFlag,
			pbkdf2CountFlag,
			scryptNFlag,
			scryptPFlag,
			scryptRFlag,
			kdfFlag,
			logFormatFlag,
			logFileFlag,
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Error("run failed")
		os.Exit(1)
	}
}

func run(cliCtx *cli.Context) error {
	if err := logsetup.Configure(cliCtx.String(logFormatFlag.Name), cliCtx.String(logFileFlag.Name)); err != nil {
		return errors.Wrap(err, "could not configure logging")
	}

	mode, err := naming.ParseMode(cliCtx.String(modeFlag.Name))
	if err != nil {
		return errors.Wrap(err, "could not parse mode")
	}

	kdfFunction := eip2335.KdfFunction(cliCtx.String(kdfFlag.Name))
	if kdfFunction != eip2335.KdfPbkdf2 && kdfFunction != eip2335.KdfScrypt {
		return errors.Errorf("unsupported kdf %q: must be scrypt or pbkdf2", kdfFunction)
	}

	cfg := pipeline.Config{
		KdfFunction: kdfFunction,
		Pbkdf2Count: uint32(cliCtx.Uint(pbkdf2CountFlag.Name)),
		ScryptN:     uint32(cliCtx.Uint(scryptNFlag.Name)),
		ScryptR:     uint32(cliCtx.Uint(scryptRFlag.Name)),
		ScryptP:     uint32(cliCtx.Uint(scryptPFlag.Name)),
	}

	summary, results, err := pipeline.Run(
		mode,
		cliCtx.String(srcFlag.Name),
		cliCtx.String(passwordDirFlag.Name),
		cliCtx.String(destFlag.Name),
		cfg,
	)
	if err != nil {
		return err
	}

	printSummary(summary, results)

	if summary.Failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d keystores failed to convert", summary.Failed, summary.Failed+summary.Converted), 1)
	}
	return nil
}

func printSummary(summary pipeline.Summary, results []pipeline.Result) {
	au := aurora.NewAurora(true)
	fmt.Println("")
	fmt.Printf("%s %s\n", au.BrightCyan("[converted]").Bold(), au.BrightGreen(summary.Converted))
	fmt.Printf("%s %s\n", au.BrightCyan("[failed]").Bold(), au.BrightRed(summary.Failed))
	for _, result := range results {
		if result.Err == nil {
			continue
		}
		fmt.Printf("  %s %s: %v\n", au.BrightRed("[failed]"), result.Pk, result.Err)
	}
}
