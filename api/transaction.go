package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/MinterTeam/taxtoken/coreV2/code"
	"github.com/MinterTeam/taxtoken/coreV2/transaction"
	"github.com/gin-gonic/gin"
)

const maxBodySize = 1 << 16

type TransactionResult struct {
	Height int64             `json:"height"`
	Tags   map[string]string `json:"tags,omitempty"`
}

func (s *Service) checkTransaction(c *gin.Context) {
	raw, ok := readBody(c)
	if !ok {
		return
	}

	s.respond(c, s.token.CheckRawTx(raw))
}

func (s *Service) sendTransaction(c *gin.Context) {
	raw, ok := readBody(c)
	if !ok {
		return
	}

	s.respond(c, s.token.DeliverRawTx(raw))
}

func (s *Service) respond(c *gin.Context, response transaction.Response) {
	if response.Code != code.OK {
		c.JSON(http.StatusBadRequest, Response{
			Code: response.Code,
			Log:  response.Log,
			Info: info(response.Info),
		})
		return
	}

	result := TransactionResult{Height: s.token.Height()}
	if len(response.Tags) != 0 {
		result.Tags = make(map[string]string, len(response.Tags))
		for _, tag := range response.Tags {
			result.Tags[string(tag.Key)] = string(tag.Value)
		}
	}

	c.JSON(http.StatusOK, Response{Code: code.OK, Result: result})
}

func readBody(c *gin.Context) ([]byte, bool) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodySize))
	if err != nil {
		c.JSON(http.StatusBadRequest, Response{Code: code.DecodeError, Log: err.Error()})
		return nil, false
	}

	return raw, true
}

func info(s string) json.RawMessage {
	if s == "" || !json.Valid([]byte(s)) {
		return nil
	}
	return json.RawMessage(s)
}
