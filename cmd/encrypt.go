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
	"github.com/spf13/cobra"

	"github.com/bgallie/sdes/cryptors/sdes"
	"github.com/bgallie/sdes/internal/envelope"
)

var (
	useASCII85  bool
	usePem      bool
	compression bool
)

// encryptCmd represents the encrypt command
var encryptCmd = &cobra.Command{
	Use:   "encrypt [block ...]",
	Short: "Encrypt plaintext using S-DES",
	Long: `Encrypt plaintext using S-DES.

Each block given as an argument must be 8 characters of '0' and '1' and is
encrypted on its own, one ciphertext per output line.  Without arguments the
input file (or stdin) is encrypted byte by byte into an envelope.`,
	Example: `  sdes encrypt -k 1010000010 10111101
  sdes encrypt -k 1010000010 -a -i notes.txt`,
	RunE: encrypt,
}

func init() {
	rootCmd.AddCommand(encryptCmd)
	encryptCmd.Flags().BoolVarP(&useASCII85, "useASCII85", "a", false, "use ASCII85 encoding")
	encryptCmd.Flags().BoolVarP(&usePem, "usePem", "p", false, "use PEM encoding.")
	encryptCmd.Flags().BoolVarP(&compression, "compress", "c", false, "compress input file using flate")
	encryptCmd.MarkFlagsMutuallyExclusive("useASCII85", "usePem")
}

func encrypt(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return runBlocks(cmd, "plaintext", args, sdes.EncryptBits)
	}

	c, err := newCipher()
	if err != nil {
		return err
	}
	fin, err := getInputFile()
	if err != nil {
		return err
	}
	defer closeFile(fin)
	fout, err := getOutputFile(true, "")
	if err != nil {
		return err
	}
	defer closeFile(fout)

	opts := envelope.Options{
		Format:   envelope.Binary,
		Compress: compression,
		FileName: inputFileName,
	}
	if useASCII85 {
		opts.Format = envelope.ASCII85
	} else if usePem {
		opts.Format = envelope.PEM
	}
	logger.Info().
		Str("input", fin.Name()).Str("output", fout.Name()).
		Stringer("format", opts.Format).Bool("compress", opts.Compress).
		Msg("Encrypting")
	return envelope.Seal(cmd.Context(), fout, fin, c, opts)
}
