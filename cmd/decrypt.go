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
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/bgallie/sdes/cryptors/sdes"
	"github.com/bgallie/sdes/internal/envelope"
)

// decryptCmd represents the decrypt command
var decryptCmd = &cobra.Command{
	Use:   "decrypt [block ...]",
	Short: "Decrypt S-DES ciphertext.",
	Long: `Decrypt S-DES ciphertext.

Each block given as an argument must be 8 characters of '0' and '1'.  Without
arguments the input file (or stdin) must hold an envelope written by the
encrypt command; its format is detected automatically.`,
	RunE: decrypt,
}

func init() {
	rootCmd.AddCommand(decryptCmd)
}

func decrypt(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return runBlocks(cmd, "ciphertext", args, sdes.DecryptBits)
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

	hdr, rdr, err := envelope.NewReader(cmd.Context(), fin, c)
	if err != nil {
		return err
	}
	defer rdr.Close()

	fout, err := getOutputFile(false, hdr.FileName)
	if err != nil {
		return err
	}

	logger.Info().
		Str("input", fin.Name()).Str("output", fout.Name()).
		Stringer("format", hdr.Format).Bool("compressed", hdr.Compressed).
		Msg("Decrypting")
	_, err = io.Copy(fout, rdr)
	closeFile(fout)
	if err != nil && fout != os.Stdout {
		// drop the partial plaintext
		if rerr := os.Remove(fout.Name()); rerr != nil {
			logger.Warn().Err(rerr).Str("file", fout.Name()).Msg("Unable to remove partial output")
		}
	}
	return err
}
