package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/bgallie/sdes/cryptors/sdes"
	"github.com/bgallie/sdes/internal/build"
	"github.com/bgallie/sdes/internal/metrics"
)

const (
	opEncrypt = "encrypt"
	opDecrypt = "decrypt"
	opKeys    = "keys"
)

type API struct {
	logger  *zerolog.Logger
	metrics *metrics.Metrics
}

type Error struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func New(logger *zerolog.Logger, m *metrics.Metrics) *API {
	return &API{
		logger:  logger,
		metrics: m,
	}
}

type blockRequest struct {
	Key   string `json:"key" binding:"required,bits"`
	Block string `json:"block" binding:"required,bits"`
}

type blockResponse struct {
	Result string `json:"result"`
}

type keysRequest struct {
	Key string `json:"key" binding:"required,bits"`
}

type keysResponse struct {
	K1 string `json:"k1"`
	K2 string `json:"k2"`
}

func (a *API) Status(c *gin.Context) {
	status := map[string]string{
		"BuildTime":    build.Time,
		"BuildCommit":  build.Commit,
		"BuildVersion": build.Version,
	}
	c.JSON(http.StatusOK, status)
}

func (a *API) Encrypt(c *gin.Context) {
	a.runBlock(c, opEncrypt, sdes.Encrypt)
}

func (a *API) Decrypt(c *gin.Context) {
	a.runBlock(c, opDecrypt, sdes.Decrypt)
}

func (a *API) Keys(c *gin.Context) {
	var req keysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.rejectRequest(c, opKeys, err)
		return
	}
	k1, k2, err := sdes.Keys(req.Key)
	if err != nil {
		a.rejectInput(c, opKeys, err)
		return
	}
	a.metrics.CipherOperations.WithLabelValues(opKeys).Inc()
	c.JSON(http.StatusOK, keysResponse{K1: k1, K2: k2})
}

func (a *API) runBlock(c *gin.Context, op string, fn func(string, string) (string, error)) {
	var req blockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		a.rejectRequest(c, op, err)
		return
	}
	result, err := a.cipher(op, fn, req.Block, req.Key)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, Error{Error: err.Error(), Kind: errorKind(err)})
		return
	}
	c.JSON(http.StatusOK, blockResponse{Result: result})
}

func (a *API) encrypt(plaintext, key string) (string, error) {
	return a.cipher(opEncrypt, sdes.Encrypt, plaintext, key)
}

func (a *API) decrypt(ciphertext, key string) (string, error) {
	return a.cipher(opDecrypt, sdes.Decrypt, ciphertext, key)
}

// cipher runs fn and accounts for the outcome.
func (a *API) cipher(op string, fn func(string, string) (string, error), block, key string) (string, error) {
	result, err := fn(block, key)
	if err != nil {
		a.metrics.CipherErrors.WithLabelValues(op, errorKind(err)).Inc()
		a.logger.Warn().Err(err).Str("op", op).Msg("Rejected cipher input")
		return "", err
	}
	a.metrics.CipherOperations.WithLabelValues(op).Inc()
	a.logger.Debug().Str("op", op).Str("result", result).Msg("Cipher operation complete")
	return result, nil
}

func (a *API) rejectRequest(c *gin.Context, op string, err error) {
	a.metrics.CipherErrors.WithLabelValues(op, "invalid_request").Inc()
	a.logger.Warn().Err(err).Str("op", op).Msg("Unable to bind request")
	c.JSON(http.StatusBadRequest, Error{Error: err.Error(), Kind: "invalid_request"})
}

func (a *API) rejectInput(c *gin.Context, op string, err error) {
	kind := errorKind(err)
	a.metrics.CipherErrors.WithLabelValues(op, kind).Inc()
	a.logger.Warn().Err(err).Str("op", op).Msg("Rejected cipher input")
	c.JSON(http.StatusUnprocessableEntity, Error{Error: err.Error(), Kind: kind})
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, sdes.ErrInvalidLength):
		return "invalid_length"
	case errors.Is(err, sdes.ErrInvalidCharacter):
		return "invalid_character"
	default:
		return "unknown"
	}
}
