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
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bgallie/sdes/internal/httpserver"
	"github.com/bgallie/sdes/internal/metrics"
	"github.com/bgallie/sdes/internal/web"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the S-DES web form and JSON API",
	Long: `Serve a web form that encrypts an 8-bit plaintext with a 10-bit key and
decrypts the result again, together with a JSON API (/api/encrypt,
/api/decrypt, /api/keys), build status (/status) and metrics (/metrics).`,
	Args: cobra.NoArgs,
	RunE: serve,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "localhost:8080", "address to listen on")
	serveCmd.Flags().Duration("read-timeout", 10*time.Second, "HTTP read timeout")
	serveCmd.Flags().Duration("write-timeout", 10*time.Second, "HTTP write timeout")
	serveCmd.Flags().Duration("shutdown-timeout", 10*time.Second, "time allowed for a graceful shutdown")
	for _, name := range []string{"addr", "read-timeout", "write-timeout", "shutdown-timeout"} {
		cobra.CheckErr(viper.BindPFlag(name, serveCmd.Flags().Lookup(name)))
	}
}

func serve(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return runServer(ctx, viper.GetString("addr"), nil)
}

// runServer serves until ctx is done.  ready, when not nil, is called with
// the bound address once the server accepts connections.
func runServer(ctx context.Context, addr string, ready func(net.Addr)) error {
	gin.SetMode(gin.ReleaseMode)
	router, err := web.NewRouter(web.New(logger, metrics.New()))
	if err != nil {
		return err
	}

	svr, err := httpserver.New(
		addr,
		router,
		httpserver.WithLogger(logger),
		httpserver.WithTimeouts(viper.GetDuration("read-timeout"), viper.GetDuration("write-timeout")),
		httpserver.WithShutdownTimeout(viper.GetDuration("shutdown-timeout")),
		httpserver.WithReadySignal(func(a net.Addr) {
			logger.Warn().Stringer("addr", a).Msg("Serving S-DES")
			if ready != nil {
				ready(a)
			}
		}),
	)
	if err != nil {
		return err
	}
	return svr.ListenAndServe(ctx)
}
