package web

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bgallie/sdes/internal/validation"
)

var errValidatorEngine = errors.New("unexpected validator engine")

func NewRouter(a *API) (*gin.Engine, error) {
	validate, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, errValidatorEngine
	}
	if err := validation.RegisterRules(validate); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), a.observe)
	router.SetHTMLTemplate(indexPage)

	router.GET("/", a.ShowForm)
	router.POST("/", a.SubmitForm)
	router.GET("/status", a.Status)
	router.POST("/api/encrypt", a.Encrypt)
	router.POST("/api/decrypt", a.Decrypt)
	router.POST("/api/keys", a.Keys)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(a.metrics.Registry, promhttp.HandlerOpts{})))
	return router, nil
}

// observe logs every request and records its outcome.
func (a *API) observe(c *gin.Context) {
	started := time.Now()
	c.Next()
	elapsed := time.Since(started)

	path := c.FullPath()
	if path == "" {
		path = "unmatched"
	}
	method := c.Request.Method
	status := c.Writer.Status()
	a.metrics.HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	a.metrics.HTTPDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
	a.logger.Debug().
		Str("method", method).Str("path", c.Request.URL.Path).
		Int("status", status).Dur("elapsed", elapsed).
		Msg("Handled request")
}
