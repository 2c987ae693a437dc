/*
Copyright © 2021 Billy G. Allie <bill.allie@defiant.mug.org>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/bgallie/sdes/cryptors/bitops"
	"github.com/bgallie/sdes/cryptors/sdes"
	"github.com/bgallie/sdes/internal/build"
	"github.com/bgallie/sdes/internal/logging"
)

var (
	cfgFile        string
	inputFileName  string
	outputFileName string
	logger         = nopLogger()
)

const (
	sdesConfigFile = ".sdes"
	sdesSuffix     = ".sdes"
)

var errNoKey = errors.New("you must supply a 10-bit key")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sdes",
	Short: "Simplified Data Encryption Standard",
	Long: `sdes encrypts and decrypts data with S-DES, a two round Feistel cipher
over 8-bit blocks with a 10-bit key.`,
	Version:           build.Version,
	SilenceUsage:      true,
	PersistentPreRunE: initLogging,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sdes.yaml)")
	rootCmd.PersistentFlags().StringP("key", "k", "", "the 10-bit key, for example 1010000010 (prompted for when not given)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-output", "stderr", "log output (console, stdout, stderr, json)")
	rootCmd.PersistentFlags().StringVarP(&inputFileName, "inputFile", "i", "-", "Name of the file to encrypt/decrypt.")
	rootCmd.PersistentFlags().StringVarP(&outputFileName, "outputFile", "o", "", "Name of the file containing the encrypted/decrypted data.")
	cobra.CheckErr(viper.BindPFlag("key", rootCmd.PersistentFlags().Lookup("key")))
	cobra.CheckErr(viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level")))
	cobra.CheckErr(viper.BindPFlag("log-output", rootCmd.PersistentFlags().Lookup("log-output")))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".sdes" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(sdesConfigFile)
	}

	viper.SetEnvPrefix("SDES")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func initLogging(_ *cobra.Command, _ []string) error {
	var err error
	logger, err = logging.New(logging.Config{
		LogLevel:  viper.GetString("log-level"),
		LogOutput: viper.GetString("log-output"),
	})
	return err
}

// getKey obtains the key from either:
//  1. The --key flag
//  2. The SDES_KEY environment variable or the "key" config entry
//  3. User input from the terminal
func getKey() (bitops.Bits, error) {
	var secret string
	if viper.IsSet("key") {
		secret = viper.GetString("key")
	} else if term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintf(os.Stderr, "Enter the 10-bit key: ")
		byteSecret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr, "")
		if err != nil {
			return nil, err
		}
		secret = string(byteSecret)
	}

	secret = strings.TrimSpace(secret)
	if len(secret) == 0 {
		return nil, errNoKey
	}
	return sdes.ParseKey(secret)
}

func newCipher() (*sdes.Cipher, error) {
	key, err := getKey()
	if err != nil {
		return nil, err
	}
	return sdes.NewCipher(key)
}

// runBlocks applies fn to every 8-bit block given on the command line and
// prints one result per line.
func runBlocks(cmd *cobra.Command, field string, blocks []string, fn func(block, key bitops.Bits) bitops.Bits) error {
	key, err := getKey()
	if err != nil {
		return err
	}
	for _, arg := range blocks {
		block, err := sdes.ParseBlock(field, arg)
		if err != nil {
			return err
		}
		result := fn(block, key)
		logger.Debug().Str(field, arg).Stringer("result", result).Msg("Processed block")
		fmt.Fprintln(cmd.OutOrStdout(), result)
	}
	return nil
}

/*
getInputFile returns the file to read.  If an input file name was given
then that file is opened, otherwise stdin is used.
*/
func getInputFile() (*os.File, error) {
	if len(inputFileName) == 0 || inputFileName == "-" {
		return os.Stdin, nil
	}
	return os.Open(inputFileName)
}

/*
getOutputFile returns the file to write.  An explicit output file name
wins; otherwise encryption writes to <input>.sdes and decryption writes to
the name stored in the envelope or the input name without .sdes.  Data read
from stdin goes to stdout unless a name is known.
*/
func getOutputFile(encode bool, storedName string) (*os.File, error) {
	switch {
	case len(outputFileName) > 0:
		if outputFileName == "-" {
			return os.Stdout, nil
		}
		return os.Create(outputFileName)
	case encode:
		if len(inputFileName) == 0 || inputFileName == "-" {
			return os.Stdout, nil
		}
		return os.Create(inputFileName + sdesSuffix)
	case len(storedName) > 0:
		return os.Create(filepath.Join(filepath.Dir(inputFileName), filepath.Base(storedName)))
	case strings.HasSuffix(inputFileName, sdesSuffix):
		return os.Create(strings.TrimSuffix(inputFileName, sdesSuffix))
	default:
		return os.Stdout, nil
	}
}

func closeFile(f *os.File) {
	if f == os.Stdin || f == os.Stdout {
		return
	}
	if err := f.Close(); err != nil {
		logger.Warn().Err(err).Str("file", f.Name()).Msg("Unable to close file")
	}
}
